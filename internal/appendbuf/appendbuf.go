// Package appendbuf batches the bytes of one screen refresh so the whole frame
// reaches the terminal in a single write.
package appendbuf

import (
	"fmt"
	"io"
)

// initialCap is sized for a typical 80x24 frame plus escape sequences.
const initialCap = 4096

// Buffer accumulates output bytes until Flush.
// The zero value is ready to use.
type Buffer struct {
	b []byte
}

// New returns an empty Buffer with room for one typical frame.
func New() *Buffer {
	return &Buffer{b: make([]byte, 0, initialCap)}
}

// Append adds p to the end of the buffer.
func (ab *Buffer) Append(p []byte) {
	ab.b = append(ab.b, p...)
}

// AppendString adds s to the end of the buffer.
func (ab *Buffer) AppendString(s string) {
	ab.b = append(ab.b, s...)
}

// AppendByte adds a single byte.
func (ab *Buffer) AppendByte(c byte) {
	ab.b = append(ab.b, c)
}

// Len returns the number of accumulated bytes.
func (ab *Buffer) Len() int {
	return len(ab.b)
}

// Bytes returns the accumulated bytes. The slice is only valid until the
// next mutation.
func (ab *Buffer) Bytes() []byte {
	return ab.b
}

// Flush hands every accumulated byte to w in one Write call and frees the
// accumulator, whether or not the write succeeded.
func (ab *Buffer) Flush(w io.Writer) error {
	defer ab.Free()
	if len(ab.b) == 0 {
		return nil
	}
	n, err := w.Write(ab.b)
	if err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	if n != len(ab.b) {
		return fmt.Errorf("writing frame: %w (%d of %d bytes)", io.ErrShortWrite, n, len(ab.b))
	}
	return nil
}

// Free releases the accumulator. The buffer can be reused afterwards.
func (ab *Buffer) Free() {
	ab.b = nil
}
