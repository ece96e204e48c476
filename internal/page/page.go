// Package page builds the catalog table into a parsed HTML page: it reads
// the source element, renders the grouped rows into the table body and adds
// the search box, series index and site navigation around it.
package page

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/poku-e/tackleindex/internal/catalog"
	"github.com/poku-e/tackleindex/internal/config"
	"github.com/poku-e/tackleindex/internal/filter"
	"github.com/poku-e/tackleindex/internal/sidebar"
	"github.com/poku-e/tackleindex/internal/table"
)

// Options controls how a page is built.
type Options struct {
	Selectors         config.Selectors
	Compare           catalog.Comparator
	SearchURL         string
	ScrollMargin      int
	SeriesIndexTitle  string
	SearchPlaceholder string
	NavTitle          string
	Nav               []config.NavItem
	Copyright         string
	// Path is the page's URL path; it decides the nav link prefix.
	Path string
	// Viewport receives series shortcut scrolls. Nil for static builds.
	Viewport sidebar.Viewport
	// Query pre-fills the search box and is applied after rendering.
	Query string
}

// OptionsFrom fills Options from configuration.
func OptionsFrom(cfg *config.Config) (Options, error) {
	cmp, err := catalog.CollationFor(cfg.Locale)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Selectors:         cfg.Selectors,
		Compare:           cmp,
		SearchURL:         cfg.SearchURL,
		ScrollMargin:      cfg.ScrollMargin,
		SeriesIndexTitle:  cfg.SeriesIndexTitle,
		SearchPlaceholder: cfg.SearchPlaceholder,
		NavTitle:          cfg.NavTitle,
		Nav:               cfg.Nav,
		Copyright:         cfg.Copyright,
	}, nil
}

// Result is a built page. Catalog, Binding, Controller and Index are nil
// when the page has no catalog table.
type Result struct {
	Doc        *goquery.Document
	Catalog    *catalog.Catalog
	Binding    *table.Binding
	Controller *filter.Controller
	Index      *sidebar.Index
}

// HasTable reports whether the page carried a catalog table.
func (r *Result) HasTable() bool { return r.Controller != nil }

// Parse reads an HTML document.
func Parse(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// ReadCatalog returns the sorted catalog held in the page's source element,
// or nil when the page has none.
func ReadCatalog(doc *goquery.Document, sel config.Selectors, cmp catalog.Comparator) *catalog.Catalog {
	source := doc.Find(sel.Source).First()
	if source.Length() == 0 {
		return nil
	}
	c := catalog.Parse(source.Text())
	if cmp == nil {
		cmp = catalog.JapaneseCollation()
	}
	return c.Sorted(cmp)
}

// Build renders the catalog of doc into it. Pages without a source element
// or table only get the site navigation.
func Build(doc *goquery.Document, opts Options, log *logrus.Entry) *Result {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
		log.Logger.SetOutput(io.Discard)
	}
	res := &Result{Doc: doc}

	appendSiteNav(doc, opts.Nav, opts.NavTitle, opts.Copyright, opts.Path)

	source := doc.Find(opts.Selectors.Source).First()
	tbl := doc.Find(opts.Selectors.Table).First()
	if source.Length() == 0 || tbl.Length() == 0 {
		log.WithField("path", opts.Path).Debug("no catalog table on page")
		return res
	}

	insertSearchBox(doc, opts.Selectors, opts.SearchPlaceholder, opts.Query)

	tbody := tbl.Find("tbody").First()
	if tbody.Length() == 0 {
		log.WithField("path", opts.Path).Debug("catalog table has no tbody")
		return res
	}

	res.Catalog = ReadCatalog(doc, opts.Selectors, opts.Compare)
	body := &docBody{tbody: tbody}
	res.Binding = table.Render(body, res.Catalog, table.SearchLink(opts.SearchURL))
	res.Controller = filter.New(res.Binding)

	query := opts.Query
	if input := doc.Find(opts.Selectors.Search).First(); input.Length() != 0 {
		if v, ok := input.Attr("value"); ok && query == "" {
			query = v
		}
		if query != "" {
			input.SetAttr("value", query)
		}
	}
	if query != "" {
		res.Controller.SetQuery(query)
	}

	res.Index = sidebar.Build(res.Binding, res.Controller, opts.Viewport, opts.ScrollMargin)
	appendSeriesIndex(doc, res.Index, opts.SeriesIndexTitle, nil)

	log.WithFields(logrus.Fields{
		"path":   opts.Path,
		"series": len(res.Catalog.Series),
		"items":  res.Catalog.Len(),
	}).Info("rendered catalog table")
	return res
}

// LinkSeries turns header labels into toggle links and the series index
// buttons into jump links. Hrefs are computed from the current state, so
// call it after the last command was applied.
func (r *Result) LinkSeries(indexTitle string, toggle, jump func(series string) string) {
	if !r.HasTable() {
		return
	}
	r.Binding.Each(func(e *table.Entry) {
		h, ok := e.Header.(*docHeader)
		if !ok {
			return
		}
		h.sel.Find("td").First().SetHtml(`<a class="series-toggle" href="` +
			html.EscapeString(toggle(e.Series)) + `">` + html.EscapeString(e.Series) + `</a>`)
	})
	appendSeriesIndex(r.Doc, r.Index, indexTitle, jump)
}

// Render writes the document as HTML.
func (r *Result) Render(w io.Writer) error {
	out, err := r.Doc.Html()
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// Bytes is Render into a buffer.
func (r *Result) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
