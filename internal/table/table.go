// Package table renders a sorted catalog into header and item rows on a
// rendering target and records which rows belong to which series.
package table

import (
	"net/url"
	"strings"

	"github.com/poku-e/tackleindex/internal/catalog"
)

// DefaultSearchURL is the prefix item links are built from.
const DefaultSearchURL = "https://www.google.com/search?q="

// Row is one rendered table row.
type Row interface {
	Text() string
	SetVisible(bool)
	Visible() bool
}

// HeaderRow is the collapsible row that opens a series.
type HeaderRow interface {
	Row
	Series() string
	SetExpanded(bool)
	Expanded() bool
}

// Body is the table body rows are written into.
type Body interface {
	Reset()
	AppendHeader(series string) HeaderRow
	AppendItem(text, href string) Row
}

// Entry holds the rows rendered for one series.
type Entry struct {
	Series string
	Header HeaderRow
	Items  []Row
}

// Binding maps every rendered series to its rows. It is built once per
// Render and only row attributes change afterwards.
type Binding struct {
	Order   []string
	entries map[string]*Entry
}

// Entry returns the rows of series, or nil if it was not rendered.
func (b *Binding) Entry(series string) *Entry {
	if b == nil {
		return nil
	}
	return b.entries[series]
}

// Len is the number of series in the binding.
func (b *Binding) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Order)
}

// Each calls fn for every entry in render order.
func (b *Binding) Each(fn func(*Entry)) {
	if b == nil {
		return
	}
	for _, series := range b.Order {
		fn(b.entries[series])
	}
}

// LinkFunc builds the link target of an item row.
type LinkFunc func(text string) string

// SearchLink returns a LinkFunc that appends the escaped item text to base.
// An empty base uses DefaultSearchURL.
func SearchLink(base string) LinkFunc {
	if base == "" {
		base = DefaultSearchURL
	}
	return func(text string) string {
		return base + escapeComponent(text)
	}
}

// componentUnescaper restores what url.QueryEscape escapes but a URI
// component leaves alone.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent escapes text the way a URI component is escaped: spaces
// become %20 and !'()* stay literal.
func escapeComponent(text string) string {
	return componentUnescaper.Replace(url.QueryEscape(text))
}

// Render clears body and writes one collapsed header per series followed
// by its item rows. A nil link leaves item rows without a target.
func Render(body Body, c *catalog.Catalog, link LinkFunc) *Binding {
	b := &Binding{entries: map[string]*Entry{}}
	body.Reset()
	if c == nil {
		return b
	}
	for _, series := range c.Series {
		if _, dup := b.entries[series]; dup {
			continue
		}
		e := &Entry{Series: series, Header: body.AppendHeader(series)}
		e.Header.SetExpanded(false)
		for _, text := range c.Items[series] {
			href := ""
			if link != nil {
				href = link(text)
			}
			e.Items = append(e.Items, body.AppendItem(text, href))
		}
		b.entries[series] = e
		b.Order = append(b.Order, series)
	}
	return b
}
