package editor

import "github.com/zjrosen/vertext/internal/keys"

// MoveCursor applies one arrow-key motion. Vertical motion keeps CX until
// the final clamp, so moving onto a shorter line snaps the column back.
func (s *State) MoveCursor(dir keys.ControlKey) {
	row := s.currentRow()

	switch dir {
	case keys.Left:
		if s.CX != 0 {
			s.CX--
		} else if s.CY > 0 {
			s.CY--
			s.CX = s.Doc.RowLen(s.CY)
		}
	case keys.Right:
		if row != nil && s.CX < row.Len() {
			s.CX++
		} else if row != nil && s.CX == row.Len() {
			s.CY++
			s.CX = 0
		}
	case keys.Up:
		if s.CY != 0 {
			s.CY--
		}
	case keys.Down:
		if s.CY < s.Doc.NumRows() {
			s.CY++
		}
	}

	s.clampX()
}

// MoveHome puts the cursor at the start of the line.
func (s *State) MoveHome() {
	s.CX = 0
}

// MoveEnd puts the cursor after the last character of the line.
func (s *State) MoveEnd() {
	if s.CY < s.Doc.NumRows() {
		s.CX = s.Doc.RowLen(s.CY)
	}
}

// PageUp jumps to the top of the viewport, then moves up a screenful.
func (s *State) PageUp() {
	s.CY = s.RowOff
	s.clampX()
	for range s.ScreenRows {
		s.MoveCursor(keys.Up)
	}
}

// PageDown jumps to the bottom of the viewport, then moves down a screenful.
// The cursor may land on the virtual row past the end.
func (s *State) PageDown() {
	s.CY = min(s.RowOff+s.ScreenRows-1, s.Doc.NumRows())
	s.CY = max(s.CY, 0)
	s.clampX()
	for range s.ScreenRows {
		s.MoveCursor(keys.Down)
	}
}

func (s *State) clampX() {
	s.CX = min(s.CX, s.Doc.RowLen(s.CY))
}
