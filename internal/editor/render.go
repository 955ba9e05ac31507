package editor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/vertext/internal/appendbuf"
)

const (
	noName       = "[No Name]"
	modifiedMark = "(modified)"
)

var reverseVideo = ansi.Style{}.Reverse(true).String()

// Scroll recomputes RX from the cursor and moves the viewport just enough
// to bring the cursor into view.
func (s *State) Scroll() {
	s.RX = s.Doc.RenderColumn(s.CY, s.CX)

	if s.ScreenRows > 0 {
		if s.CY < s.RowOff {
			s.RowOff = s.CY
		}
		if s.CY >= s.RowOff+s.ScreenRows {
			s.RowOff = s.CY - s.ScreenRows + 1
		}
	}
	if s.ScreenCols > 0 {
		if s.RX < s.ColOff {
			s.ColOff = s.RX
		}
		if s.RX >= s.ColOff+s.ScreenCols {
			s.ColOff = s.RX - s.ScreenCols + 1
		}
	}
}

// DrawFrame appends one complete frame to ab. words is the document word
// count shown in the status bar.
func (s *State) DrawFrame(ab *appendbuf.Buffer, words int, now time.Time, timeout time.Duration) {
	ab.AppendString(ansi.HideCursor)
	ab.AppendString(ansi.CursorHomePosition)

	s.drawRows(ab)
	s.drawStatusBar(ab, words)
	s.drawMessageBar(ab, now, timeout)

	ab.AppendString(ansi.CursorPosition(s.RX-s.ColOff+1, s.CY-s.RowOff+1))
	ab.AppendString(ansi.ShowCursor)
}

func (s *State) drawRows(ab *appendbuf.Buffer) {
	for y := range s.ScreenRows {
		if row := s.Doc.Row(y + s.RowOff); row != nil {
			render := row.Render()
			if s.ColOff < len(render) {
				render = render[s.ColOff:]
				ab.Append(render[:min(len(render), s.ScreenCols)])
			}
		}
		ab.AppendString(ansi.EraseLineRight)
		ab.AppendString("\r\n")
	}
}

// statusText returns the left and right halves of the status bar.
func (s *State) statusText(words int) (left, right string) {
	name := s.Doc.Filename()
	if name == "" {
		name = noName
	}
	var mark string
	if s.Doc.IsDirty() {
		mark = modifiedMark
	}
	left = fmt.Sprintf("Line: %d, Column: %d, Words: %d", s.CY+1, s.RX+1, words)
	right = fmt.Sprintf("%.20s - %d lines %s", name, s.Doc.NumRows(), mark)
	return left, right
}

func (s *State) drawStatusBar(ab *appendbuf.Buffer, words int) {
	left, right := s.statusText(words)
	left = left[:min(len(left), s.ScreenCols)]
	room := s.ScreenCols - len(left)
	right = right[:min(len(right), room)]

	ab.AppendString(reverseVideo)
	ab.AppendString(left)
	ab.AppendString(strings.Repeat(" ", room-len(right)))
	ab.AppendString(right)
	ab.AppendString(ansi.ResetStyle)
	ab.AppendString("\r\n")
}

func (s *State) drawMessageBar(ab *appendbuf.Buffer, now time.Time, timeout time.Duration) {
	ab.AppendString(ansi.EraseLineRight)
	if s.Status.Visible(now, timeout) {
		msg := s.Status.Text
		ab.AppendString(msg[:min(len(msg), s.ScreenCols)])
	}
}
