// Package log provides structured logging for vertext.
// The editor owns the terminal in raw mode, so log output only ever goes to a
// file, and only when enabled via --debug or VERTEXT_DEBUG.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel converts a config value such as "warn" into a Level.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelDebug, fmt.Errorf("unknown log level %q", s)
}

// Category groups related log messages.
type Category string

const (
	CatConfig  Category = "config"  // Configuration loading
	CatTerm    Category = "term"    // Raw mode, window size, terminal I/O
	CatInput   Category = "input"   // Key decoding
	CatBuffer  Category = "buffer"  // Row and document mutation
	CatRender  Category = "render"  // Scroll and frame drawing
	CatFile    Category = "file"    // Open and save
	CatWatcher Category = "watcher" // External file modification events
	CatCache   Category = "cache"
)

// Logger writes one line per entry to a single sink.
type Logger struct {
	mu       sync.Mutex
	closer   io.Closer
	w        io.Writer
	enabled  bool
	minLevel Level
	now      func() time.Time
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init opens path for appending and makes it the destination of the package
// level functions. The returned func closes the file.
func Init(path string) (func(), error) {
	var initErr error
	once.Do(func() {
		var f *os.File
		f, initErr = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: user-chosen debug log path
		if initErr == nil {
			defaultLogger = newLogger(f)
			defaultLogger.closer = f
		}
	})
	if initErr != nil {
		return nil, fmt.Errorf("opening log file: %w", initErr)
	}
	if defaultLogger == nil {
		return nil, fmt.Errorf("logger initialization failed or already attempted")
	}
	l := defaultLogger
	return func() {
		if l.closer != nil {
			_ = l.closer.Close()
		}
	}, nil
}

// InitWriter points the global logger at w. Used by tests to capture output.
func InitWriter(w io.Writer) {
	defaultLogger = newLogger(w)
}

// Reset disables the global logger.
func Reset() {
	defaultLogger = nil
}

func newLogger(w io.Writer) *Logger {
	return &Logger{
		w:        w,
		enabled:  true,
		minLevel: LevelDebug,
		now:      time.Now,
	}
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := defaultLogger; l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	if l := defaultLogger; l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

func Debug(cat Category, msg string, fields ...any) { defaultLogger.log(LevelDebug, cat, msg, fields) }
func Info(cat Category, msg string, fields ...any) { defaultLogger.log(LevelInfo, cat, msg, fields) }
func Warn(cat Category, msg string, fields ...any) { defaultLogger.log(LevelWarn, cat, msg, fields) }
func Error(cat Category, msg string, fields ...any) { defaultLogger.log(LevelError, cat, msg, fields) }

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	value := "<nil>"
	if err != nil {
		value = err.Error()
	}
	defaultLogger.log(LevelError, cat, msg, append(fields, "error", value))
}

func (l *Logger) log(level Level, cat Category, msg string, fields []any) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel || l.w == nil {
		return
	}
	_, _ = io.WriteString(l.w, formatEntry(l.now(), level, cat, msg, fields))
}

// formatEntry renders one line:
//
//	2025-12-06T10:45:00 [ERROR] [file] message key=value key2=value2
func formatEntry(ts time.Time, level Level, cat Category, msg string, fields []any) string {
	var b strings.Builder
	b.WriteString(ts.Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteByte('\n')
	return b.String()
}
