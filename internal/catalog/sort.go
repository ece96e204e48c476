package catalog

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders two strings, returning a negative number, zero or a
// positive number like strings.Compare.
type Comparator func(a, b string) int

// JapaneseCollation orders strings by Japanese collation rules (kana before
// kanji, dakuten after the plain kana).
func JapaneseCollation() Comparator {
	return collation(language.Japanese)
}

// CollationFor returns the collation for a BCP 47 tag such as "ja".
func CollationFor(tag string) (Comparator, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", tag, err)
	}
	return collation(t), nil
}

// collation returns a comparator that may be shared across goroutines.
// collate.Collator keeps internal buffers, so calls are serialized.
func collation(t language.Tag) Comparator {
	c := collate.New(t)
	var mu sync.Mutex
	return func(a, b string) int {
		mu.Lock()
		defer mu.Unlock()
		return c.CompareString(a, b)
	}
}

// Sorted returns a copy of c with the series and each series' items sorted
// by cmp. Equal keys keep their input order. Membership is unchanged.
func (c *Catalog) Sorted(cmp Comparator) *Catalog {
	out := &Catalog{
		Series: slices.Clone(c.Series),
		Items:  make(map[string][]string, len(c.Items)),
	}
	slices.SortStableFunc(out.Series, cmp)
	for _, series := range out.Series {
		items := slices.Clone(c.Items[series])
		slices.SortStableFunc(items, cmp)
		out.Items[series] = items
	}
	return out
}
