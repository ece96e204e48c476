package main

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/poku-e/tackleindex/internal/page"
)

func newBuildCmd(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "build <page.html|url>...",
		Short: "Render catalog tables into pages",
		Long: `Render the series table, search box, series index and site navigation
into each page. Pages without a catalog table only get the navigation.

Examples:
  tackleindex build reel/reel_spinning.html          # rewrite in place
  tackleindex build -o dist rod/*.html reel/*.html   # write under dist/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := page.OptionsFrom(a.cfg)
			if err != nil {
				return err
			}
			for _, src := range args {
				if err := buildOne(cmd, a, opts, src, outDir); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default rewrites local pages in place)")
	return cmd
}

func buildOne(cmd *cobra.Command, a *app, opts page.Options, src, outDir string) error {
	raw, pagePath, err := page.Open(cmd.Context(), src)
	if err != nil {
		return err
	}
	doc, err := page.Parse(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	opts.Path = pagePath
	res := page.Build(doc, opts, a.log)

	out, err := res.Bytes()
	if err != nil {
		return err
	}

	dest, err := destination(src, pagePath, outDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	if err := writeAtomic(dest, out); err != nil {
		return err
	}

	fields := logrus.Fields{"src": src, "dest": dest}
	if res.HasTable() {
		fields["series"] = len(res.Catalog.Series)
		fields["items"] = res.Catalog.Len()
	}
	a.log.WithFields(fields).Info("built page")
	fmt.Fprintf(cmd.OutOrStdout(), "OK: %s -> %s\n", src, dest)
	return nil
}

// destination is where the built src goes. Without outDir local pages are
// rewritten in place. With it the page keeps its relative path under outDir,
// or only its base name when that path would leave outDir.
func destination(src, pagePath, outDir string) (string, error) {
	switch {
	case outDir == "" && isURL(src):
		return "", fmt.Errorf("%s: remote pages need --out", src)
	case outDir == "":
		return src, nil
	case isURL(src):
		rel := strings.TrimPrefix(path.Clean("/"+pagePath), "/")
		if rel == "" {
			rel = "index.html"
		}
		return filepath.Join(outDir, filepath.FromSlash(rel)), nil
	case filepath.IsLocal(src):
		return filepath.Join(outDir, src), nil
	default:
		return filepath.Join(outDir, filepath.Base(src)), nil
	}
}

func writeAtomic(name string, data []byte) error {
	tmp := name + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, name); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
