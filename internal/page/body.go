package page

import (
	"html"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/poku-e/tackleindex/internal/table"
)

const hiddenStyle = "display:none"

// HeaderID is the element id given to the header row of the n-th series.
func HeaderID(n int) string { return "series-" + strconv.Itoa(n) }

// docBody writes rows into a tbody of a parsed document.
type docBody struct {
	tbody   *goquery.Selection
	headers int
}

var _ table.Body = (*docBody)(nil)

func (b *docBody) Reset() {
	b.tbody.Empty()
	b.headers = 0
}

func (b *docBody) AppendHeader(series string) table.HeaderRow {
	label := html.EscapeString(series)
	b.tbody.AppendHtml(`<tr class="series-header collapsed" id="` + HeaderID(b.headers) +
		`" data-series="` + label + `"><td colspan="1">` + label + `</td></tr>`)
	b.headers++
	return &docHeader{docRow: docRow{sel: b.tbody.Children().Last()}, series: series}
}

func (b *docBody) AppendItem(text, href string) table.Row {
	var sb strings.Builder
	sb.WriteString(`<tr><td><a class="search-link" target="_blank"`)
	if href != "" {
		sb.WriteString(` href="` + html.EscapeString(href) + `"`)
	}
	sb.WriteString(`>` + html.EscapeString(text) + `</a></td></tr>`)
	b.tbody.AppendHtml(sb.String())
	return &docRow{sel: b.tbody.Children().Last()}
}

type docRow struct {
	sel *goquery.Selection
}

func (r *docRow) Text() string { return r.sel.Text() }

func (r *docRow) SetVisible(v bool) {
	if v {
		r.sel.RemoveAttr("style")
		return
	}
	r.sel.SetAttr("style", hiddenStyle)
}

func (r *docRow) Visible() bool {
	style, _ := r.sel.Attr("style")
	return style != hiddenStyle
}

type docHeader struct {
	docRow
	series string
}

func (h *docHeader) Series() string { return h.series }

func (h *docHeader) SetExpanded(v bool) {
	h.sel.RemoveClass("expanded", "collapsed")
	if v {
		h.sel.AddClass("expanded")
		return
	}
	h.sel.AddClass("collapsed")
}

func (h *docHeader) Expanded() bool { return h.sel.HasClass("expanded") }

// Anchor is a sidebar.Viewport for pages served without script. Scrolling
// to a header records the header's element id as a URL fragment.
type Anchor struct {
	Fragment string
}

func (a *Anchor) ScrollTo(header table.HeaderRow, _ int) {
	h, ok := header.(*docHeader)
	if !ok {
		return
	}
	a.Fragment, _ = h.sel.Attr("id")
}
