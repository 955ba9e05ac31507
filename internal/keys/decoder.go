package keys

import (
	"errors"
	"fmt"

	"github.com/zjrosen/vertext/internal/log"
)

// ErrTimeout is returned by a ByteReader when no byte arrived within its
// read timeout. It is not a failure.
var ErrTimeout = errors.New("read timeout")

// ErrNoKey is returned by ReadKey when no key is available yet. Callers
// retry, optionally doing idle work in between.
var ErrNoKey = errors.New("no key available")

// ByteReader reads one byte with a short timeout. A timeout is reported as
// ErrTimeout; every other error is fatal.
type ByteReader interface {
	ReadByte() (byte, error)
}

// Decoder turns a raw byte stream into key events, folding terminal escape
// sequences into single control keys.
type Decoder struct {
	r ByteReader
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r ByteReader) *Decoder {
	return &Decoder{r: r}
}

// ReadKey returns the next key event. It returns ErrNoKey when the first read
// times out and a wrapped error when the reader fails.
func (d *Decoder) ReadKey() (Key, error) {
	c, err := d.r.ReadByte()
	if err != nil {
		if errors.Is(err, ErrTimeout) {
			return Key{}, ErrNoKey
		}
		return Key{}, fmt.Errorf("reading key: %w", err)
	}
	if c != ByteEscape {
		return Printable(c), nil
	}

	// A failed lookahead means the user pressed a bare Escape.
	seq := []byte{ByteEscape}
	for range 2 {
		b, err := d.r.ReadByte()
		if err != nil {
			return Control(Escape), nil
		}
		seq = append(seq, b)
	}
	if seq[1] == '[' && isDigit(seq[2]) {
		b, err := d.r.ReadByte()
		if err != nil {
			return Control(Escape), nil
		}
		seq = append(seq, b)
	}

	k := DecodeSequence(seq)
	log.Debug(log.CatInput, "decoded escape sequence", "seq", fmt.Sprintf("%q", seq), "key", k)
	return k, nil
}

// DecodeSequence maps a complete escape sequence to its key. Sequences that
// do not name a known key decode to a bare Escape.
func DecodeSequence(seq []byte) Key {
	if len(seq) < 3 || seq[0] != ByteEscape {
		return Control(Escape)
	}
	switch seq[1] {
	case '[':
		if isDigit(seq[2]) {
			if len(seq) != 4 || seq[3] != '~' {
				return Control(Escape)
			}
			switch seq[2] {
			case '1', '7':
				return Control(Home)
			case '3':
				return Control(Delete)
			case '4', '8':
				return Control(End)
			case '5':
				return Control(PageUp)
			case '6':
				return Control(PageDown)
			}
			return Control(Escape)
		}
		if len(seq) != 3 {
			return Control(Escape)
		}
		switch seq[2] {
		case 'A':
			return Control(Up)
		case 'B':
			return Control(Down)
		case 'C':
			return Control(Right)
		case 'D':
			return Control(Left)
		case 'H':
			return Control(Home)
		case 'F':
			return Control(End)
		}
	case 'O':
		if len(seq) != 3 {
			return Control(Escape)
		}
		switch seq[2] {
		case 'H':
			return Control(Home)
		case 'F':
			return Control(End)
		}
	}
	return Control(Escape)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
