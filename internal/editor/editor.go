package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/vertext/internal/appendbuf"
	"github.com/zjrosen/vertext/internal/buffer"
	"github.com/zjrosen/vertext/internal/cachemanager"
	"github.com/zjrosen/vertext/internal/config"
	"github.com/zjrosen/vertext/internal/keys"
	"github.com/zjrosen/vertext/internal/log"
	"github.com/zjrosen/vertext/internal/storage"
)

// Terminal is the byte-level device the editor runs on.
type Terminal interface {
	keys.ByteReader
	io.Writer
	Size() (rows, cols int, err error)
}

// resizeReporter is implemented by terminals that can tell when the window
// size changed.
type resizeReporter interface {
	Resized() bool
}

// ChangeNotifier reports changes made to the open file by other processes.
type ChangeNotifier interface {
	Poll() bool
	MarkSelfWrite()
}

// Options configures a new Editor. Zero fields get defaults.
type Options struct {
	Config   config.Config
	Store    *storage.Store
	Notifier ChangeNotifier
	Now      func() time.Time
}

// Editor couples the editing state to a terminal, a key decoder and file
// storage.
type Editor struct {
	state    *State
	term     Terminal
	decoder  *keys.Decoder
	keymap   keys.KeyMap
	store    *storage.Store
	notifier ChangeNotifier
	words    *cachemanager.RevisionCache[string, int, *buffer.Document]
	cfg      config.Config

	quitTimes int
	now       func() time.Time
}

// New creates an editor on t with an empty document. Failing to read the
// terminal size is fatal.
func New(t Terminal, opts Options) (*Editor, error) {
	rows, cols, err := t.Size()
	if err != nil {
		return nil, fmt.Errorf("getting window size: %w", err)
	}

	if opts.Store == nil {
		opts.Store = storage.NewOS()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	wordCache := cachemanager.NewInMemoryCacheManager[string, int](
		"word-count", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)

	e := &Editor{
		state:     NewState(buffer.New(opts.Config.TabStop), rows, cols),
		term:      t,
		decoder:   keys.NewDecoder(t),
		keymap:    keys.DefaultKeyMap(),
		store:     opts.Store,
		notifier:  opts.Notifier,
		cfg:       opts.Config,
		quitTimes: opts.Config.QuitTimes,
		now:       opts.Now,
	}
	e.words = cachemanager.NewRevisionCache[string, int, *buffer.Document](wordCache, countWords, false)

	log.Debug(log.CatTerm, "editor created", "rows", rows, "cols", cols)
	return e, nil
}

func countWords(_ context.Context, doc *buffer.Document) (int, error) {
	return doc.WordCount(), nil
}

// State exposes the editing state.
func (e *Editor) State() *State {
	return e.state
}

// SetStatus sets the message bar text.
func (e *Editor) SetStatus(format string, args ...any) {
	e.state.SetStatus(e.now(), format, args...)
}

// wordCount returns the document's word count, recomputed only when the
// document has changed since the last frame.
func (e *Editor) wordCount(ctx context.Context) int {
	doc := e.state.Doc
	key := strconv.FormatUint(doc.Revision(), 10)
	n, err := e.words.Get(ctx, key, doc, cachemanager.DefaultExpiration)
	if err != nil {
		return doc.WordCount()
	}
	return n
}

// Refresh scrolls the viewport to the cursor and redraws the whole screen
// with a single write.
func (e *Editor) Refresh(ctx context.Context) error {
	e.state.Scroll()

	ab := appendbuf.New()
	e.state.DrawFrame(ab, e.wordCount(ctx), e.now(), e.cfg.MessageTimeout)
	if err := ab.Flush(e.term); err != nil {
		return fmt.Errorf("drawing frame: %w", err)
	}
	return nil
}

// readKey blocks until a key arrives, handling resizes and external file
// changes while the input is idle.
func (e *Editor) readKey(ctx context.Context) (keys.Key, error) {
	for {
		if err := ctx.Err(); err != nil {
			return keys.Key{}, err
		}

		k, err := e.decoder.ReadKey()
		if err == nil {
			log.Debug(log.CatInput, "key", "key", k.String())
			return k, nil
		}
		if !errors.Is(err, keys.ErrNoKey) {
			return keys.Key{}, err
		}

		if err := e.idle(ctx); err != nil {
			return keys.Key{}, err
		}
	}
}

func (e *Editor) idle(ctx context.Context) error {
	redraw := false

	if r, ok := e.term.(resizeReporter); ok && r.Resized() {
		rows, cols, err := e.term.Size()
		if err != nil {
			log.ErrorErr(log.CatTerm, "window size after resize", err)
		} else {
			e.state.SetTerminalSize(rows, cols)
			log.Debug(log.CatTerm, "resized", "rows", rows, "cols", cols)
			redraw = true
		}
	}

	if e.notifier != nil && e.notifier.Poll() {
		name := e.state.Doc.Filename()
		log.Warn(log.CatWatcher, "file changed on disk", "name", name)
		e.SetStatus("Warning: %s changed on disk", name)
		redraw = true
	}

	if redraw {
		return e.Refresh(ctx)
	}
	return nil
}

// Run draws and processes keys until the user quits, ctx is cancelled or a
// fatal error occurs. The screen is cleared when the user quits.
func (e *Editor) Run(ctx context.Context) error {
	e.SetStatus("%s", e.keymap.HelpLine())

	for {
		if err := e.Refresh(ctx); err != nil {
			return err
		}
		quit, err := e.ProcessKeypress(ctx)
		if err != nil {
			return err
		}
		if quit {
			log.Info(log.CatInput, "quit")
			return ClearScreen(e.term)
		}
	}
}

// ClearScreen erases the terminal and homes the cursor.
func ClearScreen(w io.Writer) error {
	ab := appendbuf.New()
	ab.AppendString(ansi.EraseEntireScreen)
	ab.AppendString(ansi.CursorHomePosition)
	return ab.Flush(w)
}
