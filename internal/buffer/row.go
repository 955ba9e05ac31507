package buffer

import "bytes"

// Row is one logical line of a Document.
// chars holds the raw bytes without a line terminator; render is derived from
// chars by tab expansion and is never edited directly.
type Row struct {
	chars  []byte
	render []byte
}

// Chars returns the row's raw bytes. Callers must not modify the slice.
func (r *Row) Chars() []byte {
	return r.chars
}

// Render returns the tab-expanded form of the row. Callers must not modify the slice.
func (r *Row) Render() []byte {
	return r.render
}

// Len returns the number of raw bytes in the row.
func (r *Row) Len() int {
	return len(r.chars)
}

// RenderLen returns the number of cells the row occupies after tab expansion.
func (r *Row) RenderLen() int {
	return len(r.render)
}

// String returns the raw characters as a string.
func (r *Row) String() string {
	return string(r.chars)
}

// update recomputes render from chars.
func (r *Row) update(tabStop int) {
	tabs := bytes.Count(r.chars, []byte{'\t'})
	render := make([]byte, 0, len(r.chars)+tabs*(tabStop-1))
	for _, c := range r.chars {
		if c != '\t' {
			render = append(render, c)
			continue
		}
		render = append(render, ' ')
		for len(render)%tabStop != 0 {
			render = append(render, ' ')
		}
	}
	r.render = render
}

// RenderColumn maps a logical column in chars to its column after tab
// expansion. cx beyond the end of chars is treated as len(chars).
func RenderColumn(chars []byte, cx, tabStop int) int {
	if cx > len(chars) {
		cx = len(chars)
	}
	rx := 0
	for _, c := range chars[:cx] {
		if c == '\t' {
			rx += tabStop - (rx % tabStop)
			continue
		}
		rx++
	}
	return rx
}

// isSpace matches C's isspace in the "C" locale.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
