package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poku-e/tackleindex/internal/catalog"
)

func sampleCatalog() *catalog.Catalog {
	return catalog.ParseLines([]string{
		"シリーズＡ　商品１",
		"シリーズＡ　商品２",
		"シリーズＢ　商品１",
	}).Sorted(catalog.JapaneseCollation())
}

func TestRender(t *testing.T) {
	body := NewMemory()

	b := Render(body, sampleCatalog(), SearchLink(""))

	require.Len(t, body.Rows, 5)
	assert.Equal(t, []string{"シリーズＡ", "シリーズＢ"}, b.Order)

	a := b.Entry("シリーズＡ")
	require.NotNil(t, a)
	assert.Same(t, body.Rows[0], a.Header)
	assert.Equal(t, "シリーズＡ", a.Header.Series())
	assert.False(t, a.Header.Expanded())
	require.Len(t, a.Items, 2)
	assert.Equal(t, "シリーズA 商品1", a.Items[0].Text())
	assert.Equal(t, "シリーズA 商品2", a.Items[1].Text())

	first := body.Rows[1]
	assert.False(t, first.Header)
	assert.Equal(t, DefaultSearchURL+"%E3%82%B7%E3%83%AA%E3%83%BC%E3%82%BAA%20%E5%95%86%E5%93%811", first.Href)

	assert.True(t, body.Rows[3].Header)
	assert.Equal(t, "シリーズＢ", body.Rows[3].Label)
}

func TestRenderResetsBody(t *testing.T) {
	body := NewMemory()
	body.AppendItem("stale", "")

	Render(body, sampleCatalog(), nil)
	Render(body, sampleCatalog(), nil)

	assert.Len(t, body.Rows, 5)
	for _, r := range body.Rows {
		assert.NotEqual(t, "stale", r.Label)
		assert.Empty(t, r.Href)
	}
}

func TestRenderEmpty(t *testing.T) {
	body := NewMemory()

	b := Render(body, catalog.Parse(""), SearchLink(""))

	assert.Empty(t, body.Rows)
	assert.Zero(t, b.Len())
	assert.Nil(t, b.Entry("anything"))
}

func TestRenderKeepsEveryItem(t *testing.T) {
	lines := []string{"ステラ　Ｃ３０００", "ステラ　２５００Ｓ", "単体商品", "ヴァンキッシュ　Ｃ２０００Ｓ"}
	c := catalog.ParseLines(lines).Sorted(catalog.JapaneseCollation())

	b := Render(NewMemory(), c, nil)

	var got []string
	b.Each(func(e *Entry) {
		for _, r := range e.Items {
			got = append(got, r.Text())
		}
	})
	var want []string
	for _, l := range lines {
		want = append(want, catalog.Z2H(l))
	}
	assert.ElementsMatch(t, want, got)
}

func TestSearchLink(t *testing.T) {
	link := SearchLink("https://example.com/?q=")

	assert.Equal(t, "https://example.com/?q=XH-610%20%2B%26", link("XH-610 +&"))
}

func TestSearchLinkKeepsComponentMarks(t *testing.T) {
	link := SearchLink("")

	tests := []struct {
		text string
		want string
	}{
		{"C3000(2024)", "C3000(2024)"},
		{"XG*'!", "XG*'!"},
		{"a~b_c.d-e", "a~b_c.d-e"},
		{"ツイン パワー", "%E3%83%84%E3%82%A4%E3%83%B3%20%E3%83%91%E3%83%AF%E3%83%BC"},
		{"100%", "100%25"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, DefaultSearchURL+tt.want, link(tt.text))
		})
	}
}
