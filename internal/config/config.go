// Package config loads tackleindex settings from file, environment and
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Selectors locate the elements of a catalog page.
type Selectors struct {
	Source    string `mapstructure:"source" yaml:"source"`
	Table     string `mapstructure:"table" yaml:"table"`
	Search    string `mapstructure:"search" yaml:"search"`
	Container string `mapstructure:"container" yaml:"container"`
}

// NavItem is one entry of the site navigation. Title entries have no link.
type NavItem struct {
	Label string `mapstructure:"label" yaml:"label"`
	Href  string `mapstructure:"href" yaml:"href,omitempty"`
	Level int    `mapstructure:"level" yaml:"level"`
	Title bool   `mapstructure:"title" yaml:"title,omitempty"`
}

type Export struct {
	Sheet string `mapstructure:"sheet" yaml:"sheet"`
}

type Serve struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type Config struct {
	LogLevel          string    `mapstructure:"log_level" yaml:"log_level"`
	Locale            string    `mapstructure:"locale" yaml:"locale"`
	SearchURL         string    `mapstructure:"search_url" yaml:"search_url"`
	ScrollMargin      int       `mapstructure:"scroll_margin" yaml:"scroll_margin"`
	SeriesIndexTitle  string    `mapstructure:"series_index_title" yaml:"series_index_title"`
	SearchPlaceholder string    `mapstructure:"search_placeholder" yaml:"search_placeholder"`
	Selectors         Selectors `mapstructure:"selectors" yaml:"selectors"`
	NavTitle          string    `mapstructure:"nav_title" yaml:"nav_title"`
	Nav               []NavItem `mapstructure:"nav" yaml:"nav"`
	Copyright         string    `mapstructure:"copyright" yaml:"copyright"`
	Export            Export    `mapstructure:"export" yaml:"export"`
	Serve             Serve     `mapstructure:"serve" yaml:"serve"`
}

// DefaultNav mirrors the rod/reel site layout. Hrefs are relative to the
// site root and get the page's root prefix when rendered.
var DefaultNav = []NavItem{
	{Label: "トップページ", Href: "/index.html", Level: 0},
	{Label: "ロッド", Title: true, Level: 0},
	{Label: "ロッドカテゴリ一覧", Href: "/rod/rod_category.html", Level: 1},
	{Label: "ロッドメーカー一覧\n　〜スピニングロッド〜", Href: "/rod/rod_spinning.html", Level: 2},
	{Label: "ロッドメーカー一覧\n　〜ベイトロッド〜", Href: "/rod/rod_bait.html", Level: 2},
	{Label: "リール", Title: true, Level: 0},
	{Label: "リールカテゴリ一覧", Href: "/reel/reel_category.html", Level: 1},
	{Label: "リールメーカー一覧\n　〜スピニングリール〜", Href: "/reel/reel_spinning.html", Level: 2},
	{Label: "リールメーカー一覧\n　〜ベイトリール〜", Href: "/reel/reel_bait.html", Level: 2},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "warn")
	v.SetDefault("locale", "ja")
	v.SetDefault("search_url", "https://www.google.com/search?q=")
	v.SetDefault("scroll_margin", 20)
	v.SetDefault("series_index_title", "シリーズ一覧")
	v.SetDefault("search_placeholder", "キーワードで絞り込み")
	v.SetDefault("selectors.source", "#item-source")
	v.SetDefault("selectors.table", "#item-table")
	v.SetDefault("selectors.search", "#item-search")
	v.SetDefault("selectors.container", ".table-container")
	v.SetDefault("nav_title", "ページ一覧")
	v.SetDefault("copyright", "© 2025 TackleIndex〜釣具モデル検索〜 / Sho Sasaki")
	v.SetDefault("export.sheet", "Sheet1")
	v.SetDefault("serve.addr", ":8080")
}

// Load reads cfgFile, or config.yaml under $HOME/.config/tackleindex when
// cfgFile is empty. A missing default file is not an error; a missing
// explicit file is.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "tackleindex"))
		}
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TACKLEINDEX")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if !v.IsSet("nav") {
		cfg.Nav = append([]NavItem(nil), DefaultNav...)
	}
	return &cfg, nil
}

// YAML renders cfg the way it would be written to a config file.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}
