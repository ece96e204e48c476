package page

import (
	"html"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/poku-e/tackleindex/internal/config"
	"github.com/poku-e/tackleindex/internal/sidebar"
)

// insertSearchBox puts a search input in front of the table container
// unless the page already has one.
func insertSearchBox(doc *goquery.Document, sel config.Selectors, placeholder, value string) {
	container := doc.Find(sel.Container).First()
	if container.Length() == 0 {
		return
	}
	if doc.Find(sel.Search).Length() != 0 {
		return
	}
	id := strings.TrimPrefix(sel.Search, "#")
	input := `<input type="text" id="` + html.EscapeString(id) + `" name="q" placeholder="` +
		html.EscapeString(placeholder) + `"`
	if value != "" {
		input += ` value="` + html.EscapeString(value) + `"`
	}
	container.BeforeHtml(`<div class="search-box">` + input + ` /></div>`)
}

// appendSeriesIndex replaces any previous series index with one built from
// idx. Shortcuts are buttons, or links when href is set.
func appendSeriesIndex(doc *goquery.Document, idx *sidebar.Index, title string, href func(series string) string) {
	doc.Find("div.series-index").Remove()
	if idx == nil || len(idx.Entries) == 0 {
		return
	}
	var sb strings.Builder
	sb.WriteString(`<div class="series-index"><div class="series-index-title">`)
	sb.WriteString(html.EscapeString(title))
	sb.WriteString(`</div><ul>`)
	for _, name := range idx.Names() {
		esc := html.EscapeString(name)
		sb.WriteString(`<li>`)
		if href != nil {
			sb.WriteString(`<a class="series-link" data-series="` + esc + `" href="` + html.EscapeString(href(name)) + `">` + esc + `</a>`)
		} else {
			sb.WriteString(`<button type="button" data-series="` + esc + `">` + esc + `</button>`)
		}
		sb.WriteString(`</li>`)
	}
	sb.WriteString(`</ul></div>`)
	doc.Find("body").AppendHtml(sb.String())
}

// NavRoot is the prefix that leads from pagePath back to the site root:
// ".." for pages inside one of the sections the nav links into, "." for
// pages at the root.
func NavRoot(pagePath string, nav []config.NavItem) string {
	for _, item := range nav {
		dir := sectionDir(item.Href)
		if dir != "" && strings.Contains(pagePath, "/"+dir+"/") {
			return ".."
		}
	}
	return "."
}

func sectionDir(href string) string {
	parts := strings.Split(strings.TrimPrefix(href, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}

// appendSiteNav adds the page hierarchy navigation with the copyright line.
// Pages that already carry one are left alone.
func appendSiteNav(doc *goquery.Document, nav []config.NavItem, title, copyright, pagePath string) {
	if len(nav) == 0 || doc.Find("nav.site-nav").Length() != 0 {
		return
	}
	root := NavRoot(pagePath, nav)

	var sb strings.Builder
	sb.WriteString(`<nav class="site-nav"><div class="site-nav-title">` + html.EscapeString(title) + `</div><ul>`)
	for _, item := range nav {
		level := strconv.Itoa(item.Level)
		if item.Title {
			sb.WriteString(`<li data-level="` + level + `" class="nav-section">` + html.EscapeString(item.Label) + `</li>`)
			continue
		}
		lines := strings.Split(item.Label, "\n")
		for i := range lines {
			lines[i] = html.EscapeString(lines[i])
		}
		sb.WriteString(`<li data-level="` + level + `"><a href="` + html.EscapeString(root+item.Href) + `">` +
			strings.Join(lines, "<br>") + `</a></li>`)
	}
	sb.WriteString(`</ul>`)
	if copyright != "" {
		sb.WriteString(`<div class="site-nav-copyright">` + html.EscapeString(copyright) + `</div>`)
	}
	sb.WriteString(`</nav>`)
	doc.Find("body").AppendHtml(sb.String())
}
