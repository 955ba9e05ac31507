package editor

import (
	"context"

	"github.com/charmbracelet/bubbles/key"

	"github.com/zjrosen/vertext/internal/keys"
)

// Prompt asks for a line of input in the message bar. template must contain
// one %s verb for the text typed so far. ok is false when the user pressed
// Escape.
func (e *Editor) Prompt(ctx context.Context, template string) (text string, ok bool, err error) {
	var input []byte

	for {
		e.SetStatus(template, input)
		if err := e.Refresh(ctx); err != nil {
			return "", false, err
		}

		k, err := e.readKey(ctx)
		if err != nil {
			return "", false, err
		}

		switch {
		case key.Matches(k, e.keymap.Backspace, e.keymap.Delete):
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		case k.Is(keys.Escape):
			e.SetStatus("")
			return "", false, nil
		case key.Matches(k, e.keymap.Newline):
			if len(input) > 0 {
				e.SetStatus("")
				return string(input), true, nil
			}
		case k.IsText():
			input = append(input, k.Byte)
		}
	}
}
