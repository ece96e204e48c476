package catalog

import "strings"

// Catalog is the grouped view of a catalog source. Series holds every
// distinct series name once; Items maps each of them to its normalized item
// texts.
type Catalog struct {
	Series []string
	Items  map[string][]string
}

// Len reports the total number of items across all series.
func (c *Catalog) Len() int {
	n := 0
	for _, items := range c.Items {
		n += len(items)
	}
	return n
}

// Parse splits raw catalog text into lines and groups them by series in
// first-seen order.
func Parse(text string) *Catalog {
	return ParseLines(strings.Split(text, "\n"))
}

// ParseLines groups already split lines. Lines are trimmed and empty ones
// are dropped.
func ParseLines(lines []string) *Catalog {
	c := &Catalog{Items: map[string][]string{}}
	for _, line := range lines {
		raw := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if raw == "" {
			continue
		}
		// The series delimiter is the ideographic space, so the name has to
		// come from the raw line before Z2H rewrites it.
		series := SeriesName(raw)
		if _, ok := c.Items[series]; !ok {
			c.Series = append(c.Series, series)
		}
		c.Items[series] = append(c.Items[series], Z2H(raw))
	}
	return c
}

// SeriesName returns the text before the first ideographic space, or the
// first whitespace-separated field when the line has none.
func SeriesName(raw string) string {
	t := strings.TrimSpace(raw)
	if idx := strings.IndexRune(t, ideographicSpace); idx != -1 {
		return strings.TrimSpace(t[:idx])
	}
	fields := strings.Fields(t)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
