package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	CellWidth   int   `koanf:"cell_width"`   // item cell width in columns (default: 4)
	CellHeight  int   `koanf:"cell_height"`  // item cell height in rows (default: 1)
	RecentLimit int   `koanf:"recent_limit"` // recently-used list cap (default: 24)
	Animations  *bool `koanf:"animations"`   // animate custom sets (default: true)

	// Theme overrides (empty keeps defaults)
	Theme ThemeConfig `koanf:"theme"`
}

// ThemeConfig holds optional palette overrides.
type ThemeConfig struct {
	Accent string `koanf:"accent"` // active footer icon, picker border
	Hover  string `koanf:"hover"`  // hovered cell background
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/glyphdeck/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "glyphdeck", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func (c *Config) applyDefaults() {
	if c.CellWidth < 2 {
		c.CellWidth = 4
	}
	if c.CellHeight < 1 {
		c.CellHeight = 1
	}
	if c.RecentLimit <= 0 || c.RecentLimit > 200 {
		c.RecentLimit = 24
	}
}

// AnimationsEnabled reports whether custom sets should animate.
func (c *Config) AnimationsEnabled() bool {
	return c.Animations == nil || *c.Animations
}
