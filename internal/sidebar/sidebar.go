// Package sidebar builds the series shortcut list shown next to the table.
package sidebar

import "github.com/poku-e/tackleindex/internal/table"

// DefaultMargin is the gap kept above a header scrolled into view.
const DefaultMargin = 20

// Toggler flips a series open or closed. filter.Controller satisfies it, so
// a shortcut goes through the same path as a header click.
type Toggler interface {
	Toggle(series string) bool
}

// Viewport scrolls the table container.
type Viewport interface {
	ScrollTo(header table.HeaderRow, margin int)
}

// Entry is one shortcut.
type Entry struct {
	Series string
	header table.HeaderRow
	index  *Index
}

// Index is the ordered shortcut list.
type Index struct {
	Entries  []*Entry
	toggler  Toggler
	viewport Viewport
	margin   int
	bySeries map[string]*Entry
}

// Build returns one entry per rendered series, or nil when there is
// nothing to list. viewport may be nil, in which case shortcuts only open
// the series.
func Build(binding *table.Binding, toggler Toggler, viewport Viewport, margin int) *Index {
	if binding.Len() == 0 {
		return nil
	}
	idx := &Index{
		toggler:  toggler,
		viewport: viewport,
		margin:   margin,
		bySeries: make(map[string]*Entry, binding.Len()),
	}
	for _, series := range binding.Order {
		e := binding.Entry(series)
		if e == nil {
			continue
		}
		entry := &Entry{Series: series, header: e.Header, index: idx}
		idx.Entries = append(idx.Entries, entry)
		idx.bySeries[series] = entry
	}
	return idx
}

// Activate opens series if its header is collapsed and scrolls to it. It
// reports false for an unknown series.
func (idx *Index) Activate(series string) bool {
	if idx == nil {
		return false
	}
	e, ok := idx.bySeries[series]
	if !ok {
		return false
	}
	e.Activate()
	return true
}

// Activate never collapses an open series.
func (e *Entry) Activate() {
	if e.header == nil {
		return
	}
	if !e.header.Expanded() {
		e.index.toggler.Toggle(e.Series)
	}
	if e.index.viewport != nil {
		e.index.viewport.ScrollTo(e.header, e.index.margin)
	}
}

// Names lists the shortcut labels in order.
func (idx *Index) Names() []string {
	if idx == nil {
		return nil
	}
	names := make([]string, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		names = append(names, e.Series)
	}
	return names
}
