package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poku-e/tackleindex/internal/config"
	"github.com/poku-e/tackleindex/internal/filter"
	"github.com/poku-e/tackleindex/internal/page"
)

const reelPage = `<!DOCTYPE html>
<html><head><title>ベイトリール</title></head>
<body>
<pre id="item-source" hidden>
シリーズＢ　商品１
シリーズＡ　商品２
シリーズＡ　商品１
</pre>
<div class="table-container">
<table id="item-table"><tbody></tbody></table>
</div>
</body></html>`

func newTestServer(t *testing.T) (http.Handler, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "reel"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "reel", "reel_bait.html"), []byte(reelPage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "style.css"), []byte("body{}"), 0o644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	opts, err := page.OptionsFrom(cfg)
	require.NoError(t, err)
	return New(root, opts, nil).Handler(), root
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func parseBody(t *testing.T, rr *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(t, err)
	return doc
}

func shownRows(doc *goquery.Document) []string {
	var out []string
	doc.Find("#item-table tr:not([style])").Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out
}

func TestPageInitialState(t *testing.T) {
	h, _ := newTestServer(t)

	rr := get(t, h, "/reel/reel_bait.html")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	doc := parseBody(t, rr)
	assert.Equal(t, []string{"シリーズＡ", "シリーズＢ"}, shownRows(doc))
	toggle := doc.Find("tr.series-header a.series-toggle").First().AttrOr("href", "")
	assert.Equal(t, "/reel/reel_bait.html?toggle="+url.QueryEscape("シリーズＡ"), toggle)
	assert.Equal(t, 1, doc.Find(".search-box form input[name=q]").Length())
	assert.Equal(t, "../index.html", doc.Find("nav.site-nav li a").First().AttrOr("href", ""))
}

func TestPageOpenAndQuery(t *testing.T) {
	h, _ := newTestServer(t)

	rr := get(t, h, "/reel/reel_bait.html?open="+url.QueryEscape("シリーズＢ"))
	doc := parseBody(t, rr)
	assert.Equal(t, []string{"シリーズＡ", "シリーズＢ", "シリーズB 商品1"}, shownRows(doc))
	hidden := doc.Find(".search-box input[type=hidden][name=open]")
	require.Equal(t, 1, hidden.Length())
	assert.Equal(t, "シリーズＢ", hidden.AttrOr("value", ""))

	rr = get(t, h, "/reel/reel_bait.html?q="+url.QueryEscape("商品２"))
	doc = parseBody(t, rr)
	assert.Equal(t, []string{"シリーズＡ", "シリーズA 商品2"}, shownRows(doc))
	assert.Equal(t, "商品２", doc.Find("#item-search").AttrOr("value", ""))
}

func TestToggleRedirects(t *testing.T) {
	h, _ := newTestServer(t)

	rr := get(t, h, "/reel/reel_bait.html?toggle="+url.QueryEscape("シリーズＡ"))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/reel/reel_bait.html?open="+url.QueryEscape("シリーズＡ"), rr.Header().Get("Location"))
}

func TestJumpRedirectsToAnchor(t *testing.T) {
	h, _ := newTestServer(t)

	rr := get(t, h, "/reel/reel_bait.html?open="+url.QueryEscape("シリーズＢ")+"&jump="+url.QueryEscape("シリーズＢ"))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/reel/reel_bait.html?open="+url.QueryEscape("シリーズＢ")+"#series-1", rr.Header().Get("Location"))
}

func TestJumpOpensCollapsedSeries(t *testing.T) {
	h, _ := newTestServer(t)

	rr := get(t, h, "/reel/reel_bait.html?jump="+url.QueryEscape("シリーズＡ"))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/reel/reel_bait.html?open="+url.QueryEscape("シリーズＡ")+"#series-0", rr.Header().Get("Location"))
}

func TestAPISeries(t *testing.T) {
	h, _ := newTestServer(t)

	rr := get(t, h, "/api/series?page=/reel/reel_bait.html")
	require.Equal(t, http.StatusOK, rr.Code)

	var out []seriesResp
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.Equal(t, seriesResp{Name: "シリーズＡ", Items: []string{"シリーズA 商品1", "シリーズA 商品2"}}, out[0])
}

func TestAPISeriesParallel(t *testing.T) {
	h, _ := newTestServer(t)
	want := []seriesResp{
		{Name: "シリーズＡ", Items: []string{"シリーズA 商品1", "シリーズA 商品2"}},
		{Name: "シリーズＢ", Items: []string{"シリーズB 商品1"}},
	}

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				req := httptest.NewRequest(http.MethodGet, "/api/series?page=/reel/reel_bait.html", nil)
				rr := httptest.NewRecorder()
				h.ServeHTTP(rr, req)
				var out []seriesResp
				if !assert.NoError(t, json.NewDecoder(rr.Body).Decode(&out)) {
					return
				}
				assert.Equal(t, want, out)
			}
		}()
	}
	wg.Wait()
}

func TestAPIFilter(t *testing.T) {
	h, _ := newTestServer(t)

	rr := get(t, h, "/api/filter?page=/reel/reel_bait.html&q="+url.QueryEscape("商品１"))
	require.Equal(t, http.StatusOK, rr.Code)

	var snap filter.Snapshot
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&snap))
	require.Len(t, snap.Series, 2)
	assert.True(t, snap.Series[0].Visible)
	assert.Equal(t, []string{"シリーズA 商品1"}, snap.Series[0].Items)
	assert.Equal(t, []string{"シリーズB 商品1"}, snap.Series[1].Items)
}

func TestAPIMissingPage(t *testing.T) {
	h, _ := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/series").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/series?page=/nope.html").Code)
}

func TestListingAndStatic(t *testing.T) {
	h, _ := newTestServer(t)

	rr := get(t, h, "/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `href="/reel/reel_bait.html"`)

	rr = get(t, h, "/style.css")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "body{}", rr.Body.String())

	assert.Equal(t, http.StatusNotFound, get(t, h, "/missing.html").Code)
}

func TestPathTraversal(t *testing.T) {
	h, root := newTestServer(t)
	outside := filepath.Join(filepath.Dir(root), "secret.html")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))
	defer os.Remove(outside)

	rr := get(t, h, "/../secret.html")

	assert.False(t, strings.Contains(rr.Body.String(), "secret") && rr.Code == http.StatusOK)
}

func TestOptions(t *testing.T) {
	h, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/series", nil)
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestNilLoggerDiscards(t *testing.T) {
	s := New(t.TempDir(), page.Options{}, nil)

	assert.Equal(t, io.Discard, s.log.Logger.Out)
}
