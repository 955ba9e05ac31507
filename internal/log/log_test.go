package log

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLog_FormatsFields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	Info(CatFile, "saved", "bytes", 12, "name", "notes.txt")

	out := buf.String()
	require.Contains(t, out, "[INFO] [file] saved bytes=12 name=notes.txt")
	require.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestLog_OrphanKey(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	Debug(CatInput, "key", "kind")

	require.Contains(t, buf.String(), "kind=<missing>")
}

func TestLog_MinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	SetMinLevel(LevelWarn)
	Debug(CatRender, "dropped")
	Info(CatRender, "dropped")
	Warn(CatRender, "kept")

	require.NotContains(t, buf.String(), "dropped")
	require.Contains(t, buf.String(), "[WARN] [render] kept")
}

func TestLog_Disabled(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	SetEnabled(false)
	Error(CatTerm, "nothing")
	require.Empty(t, buf.String())
}

func TestLog_ErrorErr(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	ErrorErr(CatFile, "save failed", errors.New("disk full"))
	ErrorErr(CatFile, "save failed", nil)

	require.Contains(t, buf.String(), "error=disk full")
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestLog_NilLoggerIsNoop(t *testing.T) {
	Reset()
	require.NotPanics(t, func() {
		Info(CatBuffer, "ignored")
		SetEnabled(true)
		SetMinLevel(LevelDebug)
	})
}

func TestInit_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		cleanup()
		Reset()
	})

	Info(CatConfig, "hello")
	require.FileExists(t, path)
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}

func TestFormatEntry(t *testing.T) {
	ts := time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC)
	got := formatEntry(ts, LevelError, CatFile, "save failed", []any{"name", "a.txt", "bytes", 3})
	require.Equal(t, "2025-12-06T10:45:00 [ERROR] [file] save failed name=a.txt bytes=3\n", got)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}
