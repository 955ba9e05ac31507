package editor

import "slices"

// InsertChar types c at the cursor. On the virtual row past the end a new
// empty row is created first.
func (s *State) InsertChar(c byte) {
	if s.CY == s.Doc.NumRows() {
		s.Doc.InsertRow(s.Doc.NumRows(), nil)
	}
	s.Doc.InsertChar(s.CY, s.CX, c)
	s.CX++
}

// InsertNewline splits the current row at the cursor and moves to the start
// of the new line.
func (s *State) InsertNewline() {
	if s.CX == 0 {
		s.Doc.InsertRow(s.CY, nil)
	} else {
		tail := slices.Clone(s.currentRow().Chars()[s.CX:])
		s.Doc.InsertRow(s.CY+1, tail)
		s.Doc.TruncateRow(s.CY, s.CX)
	}
	s.CY++
	s.CX = 0
}

// DeleteChar deletes the character left of the cursor. At column 0 the
// current row is merged into the previous one.
func (s *State) DeleteChar() {
	if s.CY == s.Doc.NumRows() {
		return
	}
	if s.CX == 0 && s.CY == 0 {
		return
	}

	if s.CX > 0 {
		s.Doc.DeleteChar(s.CY, s.CX-1)
		s.CX--
		return
	}

	s.CX = s.Doc.RowLen(s.CY - 1)
	s.Doc.AppendString(s.CY-1, s.currentRow().Chars())
	s.Doc.DeleteRow(s.CY)
	s.CY--
}
