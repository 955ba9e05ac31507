// Package term puts the controlling terminal into raw mode and provides
// the byte-level input source and output sink the editor runs on.
package term

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"

	"github.com/zjrosen/vertext/internal/keys"
	"github.com/zjrosen/vertext/internal/log"
)

// ErrNotTerminal is returned by Open when stdin is not a terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

// Terminal is a raw-mode terminal. Reads time out after a tenth of a second
// so the caller's loop stays responsive without a timer.
type Terminal struct {
	fdReader
	out      *os.File
	orig     *unix.Termios
	sigwinch chan os.Signal
}

// Open switches in to raw mode and returns a Terminal writing to out.
// Call Restore to return the terminal to its original mode.
func Open(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !xterm.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	orig, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("tcgetattr: %w", err)
	}

	raw := *orig
	// Input flags: disable break, CR to NL, parity, strip, flow control
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	// Output flags: disable post processing
	raw.Oflag &^= unix.OPOST
	// Control flags: set 8 bit chars
	raw.Cflag |= unix.CS8
	// Local flags: disable echo, canonical mode, signals, extended input
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	// Control chars: return after 100ms even if nothing was typed
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, fmt.Errorf("tcsetattr: %w", err)
	}

	t := &Terminal{
		fdReader: fdReader{fd: fd},
		out:      out,
		orig:     orig,
		sigwinch: make(chan os.Signal, 1),
	}
	signal.Notify(t.sigwinch, unix.SIGWINCH)

	log.Debug(log.CatTerm, "raw mode enabled", "fd", fd)
	return t, nil
}

// Restore returns the terminal to the mode it was in before Open.
func (t *Terminal) Restore() error {
	signal.Stop(t.sigwinch)
	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, t.orig); err != nil {
		return fmt.Errorf("tcsetattr: %w", err)
	}
	log.Debug(log.CatTerm, "raw mode disabled")
	return nil
}

// Write sends p to the terminal unbuffered.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Resized reports whether a SIGWINCH arrived since the last call.
func (t *Terminal) Resized() bool {
	select {
	case <-t.sigwinch:
		return true
	default:
		return false
	}
}

// Size returns the terminal's rows and columns. When the window size ioctl
// is unavailable the cursor is pushed to the bottom-right corner and its
// position queried instead.
func (t *Terminal) Size() (rows, cols int, err error) {
	cols, rows, err = xterm.GetSize(int(t.out.Fd()))
	if err == nil && cols > 0 {
		return rows, cols, nil
	}
	log.Debug(log.CatTerm, "window size ioctl failed, querying cursor", "err", err)

	probe := ansi.CursorForward(999) + ansi.CursorDown(999) + ansi.RequestCursorPositionReport
	if _, err := t.out.WriteString(probe); err != nil {
		return 0, 0, fmt.Errorf("querying cursor position: %w", err)
	}

	var report []byte
	for len(report) < 31 {
		b, err := t.ReadByte()
		if err != nil {
			break
		}
		if b == 'R' {
			break
		}
		report = append(report, b)
	}
	return parseCursorReport(report)
}

// parseCursorReport parses "ESC [ rows ; cols" (the trailing R stripped).
func parseCursorReport(report []byte) (rows, cols int, err error) {
	if !bytes.HasPrefix(report, []byte("\x1b[")) {
		return 0, 0, fmt.Errorf("malformed cursor position report %q", report)
	}
	if _, err := fmt.Sscanf(string(report[2:]), "%d;%d", &rows, &cols); err != nil {
		return 0, 0, fmt.Errorf("malformed cursor position report %q: %w", report, err)
	}
	return rows, cols, nil
}

// fdReader reads single bytes straight from a file descriptor. os.File is
// bypassed because it reports a zero-byte read as io.EOF, while in raw mode
// a zero-byte read only means the VTIME timeout expired.
type fdReader struct {
	fd int
}

// ReadByte reads one byte, returning keys.ErrTimeout when none arrived.
func (r fdReader) ReadByte() (byte, error) {
	var buf [1]byte
	n, err := unix.Read(r.fd, buf[:])
	switch {
	case errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR):
		return 0, keys.ErrTimeout
	case err != nil:
		return 0, fmt.Errorf("read: %w", err)
	case n == 0:
		return 0, keys.ErrTimeout
	}
	return buf[0], nil
}
