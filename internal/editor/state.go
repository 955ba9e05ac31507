// Package editor is the editing engine: it owns the cursor and viewport over
// a buffer.Document, turns key events into edits and motion, and draws frames.
package editor

import (
	"fmt"
	"time"

	"github.com/zjrosen/vertext/internal/buffer"
)

// ReservedRows is the number of terminal rows used by the status and message bars.
const ReservedRows = 2

// StatusMessage is a transient line shown in the message bar.
type StatusMessage struct {
	Text string
	Time time.Time
}

// Visible reports whether the message is non-empty and younger than timeout.
func (m StatusMessage) Visible(now time.Time, timeout time.Duration) bool {
	return m.Text != "" && now.Sub(m.Time) < timeout
}

// State is the complete mutable editing state: document, cursor, viewport
// and status message. Every engine operation takes it explicitly.
type State struct {
	Doc *buffer.Document

	// Cursor. CX indexes the row's characters, CY indexes rows; both may sit
	// one past the end. RX is CX after tab expansion, recomputed by Scroll.
	CX, CY int
	RX     int

	// Viewport
	RowOff, ColOff int
	ScreenRows     int // text rows, excluding the status and message bars
	ScreenCols     int

	Status StatusMessage
}

// NewState returns a state for doc on a terminal of the given size.
func NewState(doc *buffer.Document, termRows, termCols int) *State {
	s := &State{Doc: doc}
	s.SetTerminalSize(termRows, termCols)
	return s
}

// SetTerminalSize updates the viewport for a terminal of the given size,
// reserving room for the status and message bars.
func (s *State) SetTerminalSize(rows, cols int) {
	s.ScreenRows = max(rows-ReservedRows, 0)
	s.ScreenCols = max(cols, 0)
}

// SetStatus formats and timestamps the status message.
func (s *State) SetStatus(now time.Time, format string, args ...any) {
	s.Status = StatusMessage{
		Text: fmt.Sprintf(format, args...),
		Time: now,
	}
}

// currentRow returns the row under the cursor, or nil on the virtual row.
func (s *State) currentRow() *buffer.Row {
	return s.Doc.Row(s.CY)
}
