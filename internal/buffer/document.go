// Package buffer implements the editor's document model: an ordered
// collection of rows, each holding raw characters plus a tab-expanded render.
//
// Every index-taking operation silently ignores out-of-range requests, so the
// editor can forward cursor-derived positions without pre-validation.
package buffer

import (
	"math"
	"slices"

	"github.com/zjrosen/vertext/internal/log"
)

// DefaultTabStop is the tab width used when none is configured.
const DefaultTabStop = 8

// DirtySaturated is the ceiling of the dirty counter. Any non-zero value
// means the document has unsaved changes.
const DirtySaturated = math.MaxInt

// Document is the ordered sequence of rows being edited.
type Document struct {
	rows     []Row
	tabStop  int
	dirty    int
	revision uint64
	filename string
}

// New creates an empty document. A tabStop below 1 selects DefaultTabStop.
func New(tabStop int) *Document {
	if tabStop < 1 {
		tabStop = DefaultTabStop
	}
	return &Document{tabStop: tabStop}
}

// TabStop returns the tab width used for rendering.
func (d *Document) TabStop() int {
	return d.tabStop
}

// NumRows returns the number of rows.
func (d *Document) NumRows() int {
	return len(d.rows)
}

// Row returns the row at index at, or nil if out of range.
func (d *Document) Row(at int) *Row {
	if at < 0 || at >= len(d.rows) {
		return nil
	}
	return &d.rows[at]
}

// RowLen returns the length of row at, or 0 for the virtual row past the end.
func (d *Document) RowLen(at int) int {
	if r := d.Row(at); r != nil {
		return r.Len()
	}
	return 0
}

// Dirty returns the number of mutations since the last load or save.
func (d *Document) Dirty() int {
	return d.dirty
}

// IsDirty reports whether the document has unsaved changes.
func (d *Document) IsDirty() bool {
	return d.dirty != 0
}

// ResetDirty marks the document as saved.
func (d *Document) ResetDirty() {
	d.dirty = 0
}

// Revision increases on every mutation and never resets.
func (d *Document) Revision() uint64 {
	return d.revision
}

// Filename returns the associated file name, empty until the first open or save.
func (d *Document) Filename() string {
	return d.filename
}

// SetFilename associates the document with a file name.
func (d *Document) SetFilename(name string) {
	d.filename = name
}

func (d *Document) touch() {
	d.revision++
	if d.dirty < DirtySaturated {
		d.dirty++
	}
}

// InsertRow inserts a copy of text as a new row at index at, shifting the
// following rows down. at must be within [0, NumRows].
func (d *Document) InsertRow(at int, text []byte) {
	if at < 0 || at > len(d.rows) {
		log.Debug(log.CatBuffer, "insert row out of range", "at", at, "rows", len(d.rows))
		return
	}
	row := Row{chars: slices.Clone(text)}
	if row.chars == nil {
		row.chars = []byte{}
	}
	row.update(d.tabStop)
	d.rows = slices.Insert(d.rows, at, row)
	d.touch()
}

// DeleteRow removes the row at index at, shifting the following rows up.
func (d *Document) DeleteRow(at int) {
	if at < 0 || at >= len(d.rows) {
		return
	}
	d.rows = slices.Delete(d.rows, at, at+1)
	d.touch()
}

// InsertChar inserts ch into row at column at. Columns outside
// [0, len] append at the end of the row.
func (d *Document) InsertChar(row, at int, ch byte) {
	r := d.Row(row)
	if r == nil {
		return
	}
	if at < 0 || at > len(r.chars) {
		at = len(r.chars)
	}
	r.chars = slices.Insert(r.chars, at, ch)
	r.update(d.tabStop)
	d.touch()
}

// DeleteChar removes the byte at column at of row.
func (d *Document) DeleteChar(row, at int) {
	r := d.Row(row)
	if r == nil || at < 0 || at >= len(r.chars) {
		return
	}
	r.chars = slices.Delete(r.chars, at, at+1)
	r.update(d.tabStop)
	d.touch()
}

// AppendString concatenates text onto the end of row.
func (d *Document) AppendString(row int, text []byte) {
	r := d.Row(row)
	if r == nil {
		return
	}
	r.chars = append(r.chars, text...)
	r.update(d.tabStop)
	d.touch()
}

// TruncateRow cuts row down to its first at characters.
func (d *Document) TruncateRow(row, at int) {
	r := d.Row(row)
	if r == nil || at < 0 || at >= len(r.chars) {
		return
	}
	r.chars = slices.Clip(r.chars[:at])
	r.update(d.tabStop)
	d.touch()
}

// RenderColumn maps logical column cx of row to its rendered column.
// The virtual row past the end renders at column 0.
func (d *Document) RenderColumn(row, cx int) int {
	r := d.Row(row)
	if r == nil {
		return 0
	}
	return RenderColumn(r.chars, cx, d.tabStop)
}

// LoadLines replaces the document contents with lines and marks it clean.
func (d *Document) LoadLines(lines [][]byte) {
	d.rows = make([]Row, 0, len(lines))
	for _, line := range lines {
		d.InsertRow(len(d.rows), line)
	}
	d.ResetDirty()
	log.Debug(log.CatBuffer, "loaded lines", "rows", len(d.rows))
}

// Serialize joins every row with a trailing newline, returning the bytes
// and their length.
func (d *Document) Serialize() ([]byte, int) {
	total := 0
	for i := range d.rows {
		total += len(d.rows[i].chars) + 1
	}
	buf := make([]byte, 0, total)
	for i := range d.rows {
		buf = append(buf, d.rows[i].chars...)
		buf = append(buf, '\n')
	}
	return buf, total
}

// WordCount counts maximal runs of non-whitespace bytes across all rows.
// Only whitespace bytes end a word, so a run can continue onto the next row.
func (d *Document) WordCount() int {
	count := 0
	inWord := false
	for i := range d.rows {
		for _, c := range d.rows[i].chars {
			if isSpace(c) {
				inWord = false
			} else if !inWord {
				count++
				inWord = true
			}
		}
	}
	return count
}
