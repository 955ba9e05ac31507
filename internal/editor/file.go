package editor

import (
	"context"

	"github.com/zjrosen/vertext/internal/log"
)

// Open loads name into the document and makes it the save target.
func (e *Editor) Open(name string) error {
	lines, err := e.store.Load(name)
	if err != nil {
		return err
	}

	doc := e.state.Doc
	doc.SetFilename(name)
	doc.LoadLines(lines)
	return nil
}

// Save writes the document to its file, prompting for a name first when it
// has none. Write failures are reported in the message bar; only a terminal
// failure while prompting is returned.
func (e *Editor) Save(ctx context.Context) error {
	doc := e.state.Doc

	if doc.Filename() == "" {
		name, ok, err := e.Prompt(ctx, "Save as: %s")
		if err != nil {
			return err
		}
		if !ok {
			e.SetStatus("Save aborted")
			return nil
		}
		doc.SetFilename(name)
	}

	data, n := doc.Serialize()
	if e.notifier != nil {
		e.notifier.MarkSelfWrite()
	}
	if err := e.store.Store(doc.Filename(), data); err != nil {
		log.ErrorErr(log.CatFile, "save failed", err, "name", doc.Filename())
		e.SetStatus("Can't save! I/O error: %s", err)
		return nil
	}

	doc.ResetDirty()
	e.SetStatus("%d bytes written to disk", n)
	return nil
}
