package editor

import (
	"context"

	"github.com/charmbracelet/bubbles/key"

	"github.com/zjrosen/vertext/internal/keys"
)

const quitWarning = "Unsaved changes! Press Ctrl-S to save the file or Ctrl-Q %d more times to quit."

// ProcessKeypress reads one key and applies it. quit is true once the user
// has confirmed leaving the editor.
func (e *Editor) ProcessKeypress(ctx context.Context) (quit bool, err error) {
	k, err := e.readKey(ctx)
	if err != nil {
		return false, err
	}
	return e.dispatch(ctx, k)
}

func (e *Editor) dispatch(ctx context.Context, k keys.Key) (bool, error) {
	s := e.state
	km := e.keymap

	switch {
	case key.Matches(k, km.Newline):
		s.InsertNewline()

	case key.Matches(k, km.Quit):
		if s.Doc.IsDirty() && e.quitTimes > 0 {
			e.SetStatus(quitWarning, e.quitTimes)
			e.quitTimes--
			return false, nil
		}
		return true, nil

	case key.Matches(k, km.Save):
		if err := e.Save(ctx); err != nil {
			return false, err
		}

	case key.Matches(k, km.Home):
		s.MoveHome()
	case key.Matches(k, km.End):
		s.MoveEnd()

	case key.Matches(k, km.Backspace):
		s.DeleteChar()
	case key.Matches(k, km.Delete):
		s.MoveCursor(keys.Right)
		s.DeleteChar()

	case key.Matches(k, km.PageUp):
		s.PageUp()
	case key.Matches(k, km.PageDown):
		s.PageDown()

	case key.Matches(k, km.Up, km.Down, km.Left, km.Right):
		s.MoveCursor(k.Control)

	case key.Matches(k, km.Ignore):

	default:
		if insertable(k) {
			s.InsertChar(k.Byte)
		}
	}

	e.quitTimes = e.cfg.QuitTimes
	return false, nil
}

// insertable reports whether k types a character into the document. Tabs
// and bytes above 7-bit ASCII are kept; other control bytes never enter a row.
func insertable(k keys.Key) bool {
	if k.Kind != keys.KindPrintable {
		return false
	}
	return k.IsText() || k.Byte == keys.ByteTab || k.Byte >= 128
}
