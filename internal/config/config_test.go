package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/image-editor-mcp/internal/theme"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "editor.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfig_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
surface:
  width: 320
slice_size: 4096
theme:
  preference: dark
  dark:
    background: "#000000"
    foreground: "#ffffff"
ocr:
  language: deu
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Surface.Width != 320 {
		t.Errorf("Surface.Width = %d, want 320", cfg.Surface.Width)
	}
	if cfg.Surface.Height != 600 {
		t.Errorf("Surface.Height = %d, want default 600", cfg.Surface.Height)
	}
	if cfg.SliceSize != 4096 {
		t.Errorf("SliceSize = %d, want 4096", cfg.SliceSize)
	}
	if cfg.Threshold != 128 {
		t.Errorf("Threshold = %d, want default 128", cfg.Threshold)
	}
	if cfg.OCR.Language != "deu" || !cfg.OCR.Enabled {
		t.Errorf("OCR = %+v, want enabled deu", cfg.OCR)
	}

	th, err := cfg.NewTheme()
	if err != nil {
		t.Fatalf("NewTheme failed: %v", err)
	}
	if th.Mode() != theme.Dark {
		t.Errorf("theme mode = %s, want dark", th.Mode())
	}
	if got := th.Palette().Background.Hex(); got != "#000000" {
		t.Errorf("dark background = %s, want #000000", got)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "surface: [1, 2"))
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Surface.Width = 0 }, "surface"},
		{"zero slice", func(c *Config) { c.SliceSize = 0 }, "slice_size"},
		{"threshold too high", func(c *Config) { c.Threshold = 256 }, "threshold"},
		{"no export dir", func(c *Config) { c.ExportDir = "" }, "export_dir"},
		{"bad preference", func(c *Config) { c.Theme.Preference = "sepia" }, "preference"},
		{"bad colour", func(c *Config) { c.Theme.Light.Background = "white" }, "theme.light"},
		{"ocr without language", func(c *Config) { c.OCR.Language = "" }, "ocr.language"},
		{"negative scale", func(c *Config) { c.OCR.Scale = -1 }, "ocr.scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}

func TestValidate_OCRDisabledNeedsNoLanguage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OCR.Enabled = false
	cfg.OCR.Language = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
