package main

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/poku-e/tackleindex/internal/catalog"
	"github.com/poku-e/tackleindex/internal/page"
)

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// loadCatalog reads the sorted catalog and a title for src. A .txt source is
// taken as raw catalog lines; anything else as an HTML page.
func loadCatalog(cmd *cobra.Command, a *app, src string) (*catalog.Catalog, string, error) {
	raw, pagePath, err := page.Open(cmd.Context(), src)
	if err != nil {
		return nil, "", err
	}
	cmp, err := catalog.CollationFor(a.cfg.Locale)
	if err != nil {
		return nil, "", err
	}
	if strings.EqualFold(path.Ext(pagePath), ".txt") {
		return catalog.Parse(string(raw)).Sorted(cmp), path.Base(pagePath), nil
	}
	doc, err := page.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", src, err)
	}
	c := page.ReadCatalog(doc, a.cfg.Selectors, cmp)
	if c == nil {
		return nil, "", fmt.Errorf("%s: no element matches %q", src, a.cfg.Selectors.Source)
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = path.Base(pagePath)
	}
	return c, title, nil
}
