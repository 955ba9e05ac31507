// Package storage loads and stores documents as plain newline-delimited
// text on an afero filesystem.
package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/zjrosen/vertext/internal/log"
)

// Store reads and writes document files.
type Store struct {
	fs afero.Fs
}

// New returns a Store backed by fs.
func New(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// NewOS returns a Store backed by the operating system filesystem.
func NewOS() *Store {
	return New(afero.NewOsFs())
}

// Load reads name and splits it into lines. Both "\n" and "\r\n"
// terminators are stripped; a final line without a terminator is kept.
func (s *Store) Load(name string) ([][]byte, error) {
	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	lines := SplitLines(data)
	log.Info(log.CatFile, "loaded file", "name", name, "bytes", len(data), "lines", len(lines))
	return lines, nil
}

// SplitLines splits data the way the editor reads files: one line per
// newline, trailing carriage returns and newlines removed.
func SplitLines(data []byte) [][]byte {
	var lines [][]byte
	for len(data) > 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i+1], data[i+1:]
		} else {
			data = nil
		}
		lines = append(lines, bytes.TrimRight(line, "\r\n"))
	}
	return lines
}

// Store writes data to name, truncating the file to exactly len(data)
// bytes first. The file is created with mode 0644 if missing.
func (s *Store) Store(name string, data []byte) error {
	f, err := s.fs.OpenFile(name, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	if err := f.Truncate(int64(len(data))); err != nil {
		_ = f.Close()
		return fmt.Errorf("truncating %s: %w", name, err)
	}
	n, err := f.Write(data)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if n != len(data) {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", name, io.ErrShortWrite)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}
	log.Info(log.CatFile, "stored file", "name", name, "bytes", n)
	return nil
}
