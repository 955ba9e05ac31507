package storage

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"empty", "", nil},
		{"single terminated", "a\n", []string{"a"}},
		{"single unterminated", "a", []string{"a"}},
		{"crlf", "a\r\nbb\r\n", []string{"a", "bb"}},
		{"mixed", "a\nb\r\nc", []string{"a", "b", "c"}},
		{"blank lines", "\n\n", []string{"", ""}},
		{"interior cr kept", "a\rb\n", []string{"a\rb"}},
		{"tabs kept", "\tx\n", []string{"\tx"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines([]byte(tt.data))
			var strs []string
			for _, l := range got {
				strs = append(strs, string(l))
			}
			require.Equal(t, tt.want, strs)
		})
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := New(afero.NewMemMapFs())
	_, err := s.Load("missing.txt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing.txt")
}

func TestStore_StoreThenLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs)

	require.NoError(t, s.Store("doc.txt", []byte("a\nbb\n\n")))

	data, err := afero.ReadFile(fs, "doc.txt")
	require.NoError(t, err)
	require.Equal(t, "a\nbb\n\n", string(data))

	lines, err := s.Load("doc.txt")
	require.NoError(t, err)
	require.Len(t, lines, 3)
	require.Equal(t, "bb", string(lines[1]))
}

func TestStore_TruncatesLongerFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "doc.txt", []byte("a much longer original body\n"), 0644))

	require.NoError(t, New(fs).Store("doc.txt", []byte("short\n")))

	data, err := afero.ReadFile(fs, "doc.txt")
	require.NoError(t, err)
	require.Equal(t, "short\n", string(data))
}

func TestStore_ReadOnlyFsFails(t *testing.T) {
	s := New(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	err := s.Store("doc.txt", []byte("x\n"))
	require.Error(t, err)
}
