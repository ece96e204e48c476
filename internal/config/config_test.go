package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "ja", cfg.Locale)
	assert.Equal(t, 20, cfg.ScrollMargin)
	assert.Equal(t, "#item-source", cfg.Selectors.Source)
	assert.Equal(t, "#item-table", cfg.Selectors.Table)
	assert.Equal(t, "#item-search", cfg.Selectors.Search)
	assert.Equal(t, ".table-container", cfg.Selectors.Container)
	assert.Equal(t, "シリーズ一覧", cfg.SeriesIndexTitle)
	assert.Equal(t, DefaultNav, cfg.Nav)
	assert.Equal(t, ":8080", cfg.Serve.Addr)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `locale: en
scroll_margin: 8
selectors:
  source: "#catalog"
nav:
  - label: Home
    href: /index.html
    level: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 8, cfg.ScrollMargin)
	assert.Equal(t, "#catalog", cfg.Selectors.Source)
	assert.Equal(t, "#item-table", cfg.Selectors.Table)
	assert.Equal(t, []NavItem{{Label: "Home", Href: "/index.html"}}, cfg.Nav)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TACKLEINDEX_LOCALE", "de")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "de", cfg.Locale)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	out, err := cfg.YAML()
	require.NoError(t, err)

	var back Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, *cfg, back)
}
