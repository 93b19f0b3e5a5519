// Package config loads the editor server configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/image-editor-mcp/internal/theme"
)

// Config holds the full editor server configuration.
type Config struct {
	Surface    SurfaceConfig `yaml:"surface"`
	SliceSize  int           `yaml:"slice_size"`
	Threshold  int           `yaml:"threshold"`
	ExportDir  string        `yaml:"export_dir"`
	AutoOrient bool          `yaml:"auto_orient"`
	Debug      bool          `yaml:"debug"`
	Theme      ThemeConfig   `yaml:"theme"`
	OCR        OCRConfig     `yaml:"ocr"`
}

// SurfaceConfig sizes the drawing surface.
type SurfaceConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ThemeConfig configures the starting appearance and both palettes.
type ThemeConfig struct {
	Preference string        `yaml:"preference"` // system | light | dark
	Light      PaletteConfig `yaml:"light"`
	Dark       PaletteConfig `yaml:"dark"`
}

// PaletteConfig holds "#RRGGBB" colours.
type PaletteConfig struct {
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
}

// OCRConfig configures text recognition.
type OCRConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Language string  `yaml:"language"`
	Scale    float64 `yaml:"scale"`
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	return &Config{
		Surface:    SurfaceConfig{Width: 800, Height: 600},
		SliceSize:  1_000_000,
		Threshold:  128,
		ExportDir:  ".",
		AutoOrient: true,
		Theme: ThemeConfig{
			Preference: string(theme.PreferSystem),
			Light: PaletteConfig{
				Background: theme.DefaultLight.Background.Hex(),
				Foreground: theme.DefaultLight.Foreground.Hex(),
			},
			Dark: PaletteConfig{
				Background: theme.DefaultDark.Background.Hex(),
				Foreground: theme.DefaultDark.Foreground.Hex(),
			},
		},
		OCR: OCRConfig{
			Enabled:  true,
			Language: "eng",
			Scale:    1,
		},
	}
}

// LoadConfig reads and parses a YAML config file. Returns DefaultConfig merged with the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return fmt.Errorf("surface width and height must be > 0")
	}
	if c.SliceSize <= 0 {
		return fmt.Errorf("slice_size must be > 0")
	}
	if c.Threshold < 0 || c.Threshold > 255 {
		return fmt.Errorf("threshold must be between 0 and 255")
	}
	if c.ExportDir == "" {
		return fmt.Errorf("export_dir is required")
	}
	if _, err := theme.ParsePreference(c.Theme.Preference); err != nil {
		return err
	}
	if _, err := c.Theme.Light.Palette(); err != nil {
		return fmt.Errorf("theme.light: %w", err)
	}
	if _, err := c.Theme.Dark.Palette(); err != nil {
		return fmt.Errorf("theme.dark: %w", err)
	}
	if c.OCR.Enabled && c.OCR.Language == "" {
		return fmt.Errorf("ocr.language is required when ocr is enabled")
	}
	if c.OCR.Scale < 0 {
		return fmt.Errorf("ocr.scale must be >= 0")
	}
	return nil
}

// Palette parses the configured colours.
func (p PaletteConfig) Palette() (theme.Palette, error) {
	return theme.ParsePalette(p.Background, p.Foreground)
}

// NewTheme builds the starting theme. The config must have passed Validate.
func (c *Config) NewTheme() (*theme.Theme, error) {
	pref, err := theme.ParsePreference(c.Theme.Preference)
	if err != nil {
		return nil, err
	}
	light, err := c.Theme.Light.Palette()
	if err != nil {
		return nil, fmt.Errorf("theme.light: %w", err)
	}
	dark, err := c.Theme.Dark.Palette()
	if err != nil {
		return nil, fmt.Errorf("theme.dark: %w", err)
	}
	return theme.New(pref, light, dark), nil
}
