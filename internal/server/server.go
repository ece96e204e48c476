// Package server previews a catalog site. Every .html request is built
// on the fly and the table commands arrive as query parameters, so pages
// work without script.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/poku-e/tackleindex/internal/filter"
	"github.com/poku-e/tackleindex/internal/page"
)

// Server serves the pages under Root.
type Server struct {
	root string
	opts page.Options
	log  *logrus.Entry
}

// New serves root, which is either a site directory or a single page.
func New(root string, opts page.Options, log *logrus.Entry) *Server {
	if log == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		log = logrus.NewEntry(logger)
	}
	return &Server{root: root, opts: opts, log: log}
}

type seriesResp struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// Handler routes the preview UI and the JSON API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/series", func(w http.ResponseWriter, r *http.Request) {
		res, ok := s.load(w, r, r.URL.Query().Get("page"), commands{})
		if !ok {
			return
		}
		out := []seriesResp{}
		if res.HasTable() {
			for _, name := range res.Catalog.Series {
				out = append(out, seriesResp{Name: name, Items: res.Catalog.Items[name]})
			}
		}
		writeJSON(w, out)
	})

	mux.HandleFunc("/api/filter", func(w http.ResponseWriter, r *http.Request) {
		res, ok := s.load(w, r, r.URL.Query().Get("page"), parseCommands(r.URL.Query()))
		if !ok {
			return
		}
		snap := filter.Snapshot{Series: []filter.SeriesSnapshot{}}
		if res.HasTable() {
			snap = res.Controller.Snapshot()
		}
		writeJSON(w, snap)
	})

	mux.HandleFunc("/", s.handlePage)

	return withCommonHeaders(mux)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	file, err := s.resolve(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	info, err := os.Stat(file)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if info.IsDir() {
		s.handleDir(w, r, file)
		return
	}
	if !strings.EqualFold(filepath.Ext(file), ".html") {
		http.ServeFile(w, r, file)
		return
	}

	cmds := parseCommands(r.URL.Query())
	anchor := &page.Anchor{}
	res, ok := s.build(w, r, file, r.URL.Path, cmds, anchor)
	if !ok {
		return
	}

	// toggle and jump change state; redirect so the URL names the state
	// and reloading does not flip it again.
	if res.HasTable() && (cmds.toggle != "" || cmds.jump != "") {
		target := stateURL(r.URL.Path, res.Controller, res.Binding.Order, "", "")
		if anchor.Fragment != "" {
			target += "#" + anchor.Fragment
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	if res.HasTable() {
		res.LinkSeries(s.opts.SeriesIndexTitle,
			func(series string) string {
				return stateURL(r.URL.Path, res.Controller, res.Binding.Order, "toggle", series)
			},
			func(series string) string {
				return stateURL(r.URL.Path, res.Controller, res.Binding.Order, "jump", series)
			})
		if err := s.renderSearchForm(res, expandedSeries(res.Controller, res.Binding.Order)); err != nil {
			http.Error(w, "template error", http.StatusInternalServerError)
			return
		}
	}

	var buf bytes.Buffer
	if err := res.Render(&buf); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.WithError(err).Warn("error writing response")
	}
}

func (s *Server) handleDir(w http.ResponseWriter, r *http.Request, dir string) {
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err == nil {
		target := path.Join(r.URL.Path, "index.html")
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusFound)
		return
	}
	pages, err := s.listPages(dir)
	if err != nil {
		http.Error(w, "list error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := listingTmpl.Execute(&buf, listingData{Title: r.URL.Path, Pages: pages}); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.WithError(err).Warn("error writing response")
	}
}

func (s *Server) listPages(dir string) ([]string, error) {
	var pages []string
	base, err := s.resolve("/")
	if err != nil {
		return nil, err
	}
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".html") {
			return nil
		}
		rel, err := filepath.Rel(base, p)
		if err != nil {
			return err
		}
		pages = append(pages, "/"+filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(pages)
	return pages, err
}

// resolve maps a URL path into the served root. A single-file root answers
// every path with that file.
func (s *Server) resolve(urlPath string) (string, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return s.root, nil
	}
	clean := path.Clean("/" + urlPath)
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func (s *Server) load(w http.ResponseWriter, r *http.Request, pagePath string, cmds commands) (*page.Result, bool) {
	if pagePath == "" {
		http.Error(w, "missing 'page' query param", http.StatusBadRequest)
		return nil, false
	}
	file, err := s.resolve(pagePath)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return s.build(w, r, file, pagePath, cmds, nil)
}

func (s *Server) build(w http.ResponseWriter, r *http.Request, file, urlPath string, cmds commands, anchor *page.Anchor) (*page.Result, bool) {
	raw, _, err := page.Open(r.Context(), file)
	if err != nil {
		if errors.Is(err, page.ErrNotFound) {
			http.NotFound(w, r)
			return nil, false
		}
		s.log.WithError(err).WithField("file", file).Error("open page")
		http.Error(w, "read error", http.StatusInternalServerError)
		return nil, false
	}
	doc, err := page.Parse(bytes.NewReader(raw))
	if err != nil {
		http.Error(w, "parse error", http.StatusInternalServerError)
		return nil, false
	}
	opts := s.opts
	opts.Path = urlPath
	opts.Query = cmds.query
	if anchor != nil {
		opts.Viewport = anchor
	}
	res := page.Build(doc, opts, s.log)
	if res.HasTable() {
		cmds.apply(res)
	}
	return res, true
}

func (s *Server) renderSearchForm(res *page.Result, open []string) error {
	box := res.Doc.Find(".search-box").First()
	if box.Length() == 0 {
		return nil
	}
	var buf bytes.Buffer
	err := searchFormTmpl.Execute(&buf, searchFormData{
		ID:          strings.TrimPrefix(s.opts.Selectors.Search, "#"),
		Query:       res.Controller.Query(),
		Placeholder: s.opts.SearchPlaceholder,
		Open:        open,
	})
	if err != nil {
		return err
	}
	box.SetHtml(buf.String())
	return nil
}

// commands are the table operations carried in a request.
type commands struct {
	query  string
	open   []string
	toggle string
	jump   string
}

func parseCommands(v url.Values) commands {
	return commands{
		query:  v.Get("q"),
		open:   v["open"],
		toggle: v.Get("toggle"),
		jump:   v.Get("jump"),
	}
}

// apply replays the commands in the order a visitor would have issued
// them: open series first, then the single toggle or jump.
func (c commands) apply(res *page.Result) {
	for _, series := range c.open {
		if !res.Controller.Expanded(series) {
			res.Controller.Toggle(series)
		}
	}
	if c.toggle != "" {
		res.Controller.Toggle(c.toggle)
	}
	if c.jump != "" {
		res.Index.Activate(c.jump)
	}
}

func expandedSeries(ctrl *filter.Controller, order []string) []string {
	var open []string
	for _, series := range order {
		if ctrl.Expanded(series) {
			open = append(open, series)
		}
	}
	return open
}

// stateURL encodes the query and open series of ctrl, plus one extra
// command when key is set.
func stateURL(p string, ctrl *filter.Controller, order []string, key, value string) string {
	v := url.Values{}
	if q := ctrl.Query(); q != "" {
		v.Set("q", q)
	}
	for _, series := range expandedSeries(ctrl, order) {
		v.Add("open", series)
	}
	if key != "" {
		v.Set(key, value)
	}
	if len(v) == 0 {
		return p
	}
	return p + "?" + v.Encode()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}

func withCommonHeaders(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, log *logrus.Entry) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
