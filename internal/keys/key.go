package keys

import "fmt"

// Kind distinguishes plain input bytes from decoded control keys.
type Kind int

const (
	// KindPrintable is a single input byte passed through verbatim. This
	// includes ASCII control bytes such as Ctrl-Q (0x11) or Enter (0x0d).
	KindPrintable Kind = iota
	// KindControl is a named key decoded from an escape sequence.
	KindControl
)

// ControlKey names the keys that arrive as escape sequences.
type ControlKey int

const (
	ControlNone ControlKey = iota
	Escape
	Up
	Down
	Left
	Right
	Home
	End
	Delete
	PageUp
	PageDown
)

var controlNames = map[ControlKey]string{
	Escape:   "esc",
	Up:       "up",
	Down:     "down",
	Left:     "left",
	Right:    "right",
	Home:     "home",
	End:      "end",
	Delete:   "delete",
	PageUp:   "pgup",
	PageDown: "pgdown",
}

func (c ControlKey) String() string {
	if name, ok := controlNames[c]; ok {
		return name
	}
	return "none"
}

// Raw byte values the editor dispatches on.
const (
	ByteEnter     byte = '\r'
	ByteEscape    byte = 0x1b
	ByteBackspace byte = 127
	ByteTab       byte = '\t'
)

// Ctrl returns the byte produced by holding Ctrl with k.
func Ctrl(k byte) byte {
	return k & 0x1f
}

// Key is one logical key event: either a raw byte or a named control key.
type Key struct {
	Kind    Kind
	Byte    byte       // valid when Kind == KindPrintable
	Control ControlKey // valid when Kind == KindControl
}

// Printable wraps a raw input byte.
func Printable(b byte) Key {
	return Key{Kind: KindPrintable, Byte: b}
}

// Control wraps a decoded control key.
func Control(c ControlKey) Key {
	return Key{Kind: KindControl, Control: c}
}

// Is reports whether k is the control key c.
func (k Key) Is(c ControlKey) bool {
	return k.Kind == KindControl && k.Control == c
}

// IsByte reports whether k is the raw byte b.
func (k Key) IsByte(b byte) bool {
	return k.Kind == KindPrintable && k.Byte == b
}

// IsCntrl reports whether k is a raw ASCII control byte (iscntrl).
func (k Key) IsCntrl() bool {
	return k.Kind == KindPrintable && (k.Byte < 0x20 || k.Byte == ByteBackspace)
}

// IsText reports whether k is a 7-bit byte that is not a control byte.
func (k Key) IsText() bool {
	return k.Kind == KindPrintable && !k.IsCntrl() && k.Byte < 128
}

// String names the key the way key bindings refer to it, e.g. "ctrl+s",
// "enter", "up" or "a".
func (k Key) String() string {
	if k.Kind == KindControl {
		return k.Control.String()
	}
	switch b := k.Byte; {
	case b == ByteEnter:
		return "enter"
	case b == ByteTab:
		return "tab"
	case b == ByteBackspace:
		return "backspace"
	case b == ByteEscape:
		return "esc"
	case b == 0:
		return "ctrl+@"
	case b >= 1 && b <= 26:
		return "ctrl+" + string(rune('a'+b-1))
	case b == 28:
		return "ctrl+\\"
	case b == 29:
		return "ctrl+]"
	case b == 30:
		return "ctrl+^"
	case b == 31:
		return "ctrl+_"
	case b < 128:
		return string(rune(b))
	default:
		return fmt.Sprintf("\\x%02x", b)
	}
}
