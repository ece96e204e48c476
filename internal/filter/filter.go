// Package filter keeps the expand/collapse state of every rendered series
// and derives row and header visibility from it and the search query.
package filter

import (
	"strings"

	"github.com/poku-e/tackleindex/internal/catalog"
	"github.com/poku-e/tackleindex/internal/table"
)

// Controller owns the per-series expand state of one rendered table.
type Controller struct {
	binding  *table.Binding
	expanded map[string]bool
	query    string
}

// New starts every series collapsed and applies the initial visibility.
func New(binding *table.Binding) *Controller {
	c := &Controller{
		binding:  binding,
		expanded: make(map[string]bool, binding.Len()),
	}
	binding.Each(func(e *table.Entry) {
		c.expanded[e.Series] = false
	})
	c.Recompute()
	return c
}

// Toggle flips the state of series and recomputes visibility with the
// current query. It reports false for a series that was never rendered.
func (c *Controller) Toggle(series string) bool {
	e := c.binding.Entry(series)
	if e == nil {
		return false
	}
	c.expanded[series] = !c.expanded[series]
	e.Header.SetExpanded(c.expanded[series])
	c.Recompute()
	return true
}

// SetQuery stores the raw search text and recomputes visibility.
func (c *Controller) SetQuery(q string) {
	c.query = q
	c.Recompute()
}

// Query returns the raw search text last set.
func (c *Controller) Query() string { return c.query }

// Expanded reports the stored state of series.
func (c *Controller) Expanded(series string) bool { return c.expanded[series] }

// Recompute applies the stored query and state to every row.
func (c *Controller) Recompute() {
	c.recompute(catalog.Fold(c.query))
}

func (c *Controller) recompute(query string) {
	c.binding.Each(func(e *table.Entry) {
		expanded := c.expanded[e.Series]
		anyMatch := false
		for _, row := range e.Items {
			if query == "" {
				row.SetVisible(expanded)
				continue
			}
			match := strings.Contains(catalog.Fold(row.Text()), query)
			if match {
				anyMatch = true
			}
			row.SetVisible(match)
		}
		if query == "" {
			e.Header.SetVisible(true)
		} else {
			e.Header.SetVisible(anyMatch || strings.Contains(catalog.Fold(e.Series), query))
		}
		e.Header.SetExpanded(expanded)
	})
}

// ExpandAll opens every collapsed series.
func (c *Controller) ExpandAll() { c.setAll(true) }

// CollapseAll closes every expanded series.
func (c *Controller) CollapseAll() { c.setAll(false) }

func (c *Controller) setAll(want bool) {
	c.binding.Each(func(e *table.Entry) {
		if c.expanded[e.Series] != want {
			c.Toggle(e.Series)
		}
	})
}

// Snapshot is the visible part of the table.
type Snapshot struct {
	Query  string           `json:"query"`
	Series []SeriesSnapshot `json:"series"`
}

// SeriesSnapshot describes one series header and its visible items.
type SeriesSnapshot struct {
	Name     string   `json:"name"`
	Expanded bool     `json:"expanded"`
	Visible  bool     `json:"visible"`
	Items    []string `json:"items"`
}

// Snapshot reports current visibility. Hidden headers are included with
// Visible false so callers see the full key set.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{Query: c.query}
	c.binding.Each(func(e *table.Entry) {
		ss := SeriesSnapshot{
			Name:     e.Series,
			Expanded: c.expanded[e.Series],
			Visible:  e.Header.Visible(),
			Items:    []string{},
		}
		for _, row := range e.Items {
			if row.Visible() {
				ss.Items = append(ss.Items, row.Text())
			}
		}
		s.Series = append(s.Series, ss)
	})
	return s
}
