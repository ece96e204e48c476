package page

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned by Open when a local page does not exist.
var ErrNotFound = errors.New("page not found")

// ---------- HTTP with retry ----------

func httpClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// backoffs bounds the retries of fetch on network errors, 5xx and 429.
var backoffs = []time.Duration{0, 500 * time.Millisecond, 1 * time.Second, 2 * time.Second}

func fetch(ctx context.Context, client *http.Client, rawURL string) ([]byte, *url.URL, error) {
	var resp *http.Response
	for i, d := range backoffs {
		if d > 0 {
			select {
			case <-time.After(d):
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, nil, err
		}
		req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

		resp, err = client.Do(req)
		if err != nil {
			if i < len(backoffs)-1 && ctx.Err() == nil {
				continue
			}
			return nil, nil, err
		}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			_ = resp.Body.Close()
			if i < len(backoffs)-1 {
				continue
			}
			return nil, nil, fmt.Errorf("server error: %s", resp.Status)
		}
		break
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(b))
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return b, resp.Request.URL, nil
}

// Open reads a page from an http(s) URL or a local file. The returned path
// is the page's URL path, used to resolve relative navigation links.
func Open(ctx context.Context, src string) ([]byte, string, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		b, u, err := fetch(ctx, httpClient(25*time.Second), src)
		if err != nil {
			return nil, "", fmt.Errorf("fetch %s: %w", src, err)
		}
		return b, u.Path, nil
	}
	b, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%s: %w", src, ErrNotFound)
		}
		return nil, "", fmt.Errorf("read %s: %w", src, err)
	}
	p := filepath.ToSlash(filepath.Clean(src))
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return b, p, nil
}
