package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Extraction.SampleFPS != defaultSampleFPS {
		t.Errorf("sample_fps = %v, want default %v", cfg.Extraction.SampleFPS, defaultSampleFPS)
	}
	if cfg.Extraction.SimilarityThreshold != 0.90 {
		t.Errorf("similarity_threshold = %v, want 0.90", cfg.Extraction.SimilarityThreshold)
	}
	if cfg.Format.MaxLineChars != 42 || cfg.Format.MaxLines != 2 {
		t.Errorf("unexpected format defaults: %+v", cfg.Format)
	}
	if cfg.Format.SourceLanguage != "ja" {
		t.Errorf("source_language = %q, want ja", cfg.Format.SourceLanguage)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[extraction]
sample_fps = 1.5
similarity_threshold = 0.85
min_duration_ms = 900

[format]
max_line_chars = 36
source_language = "EN"

[logging]
format = "JSON"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatal("expected config file to be found")
	}
	if cfg.Extraction.SampleFPS != 1.5 {
		t.Errorf("sample_fps = %v", cfg.Extraction.SampleFPS)
	}
	if cfg.Extraction.MinDurationMS != 900 {
		t.Errorf("min_duration_ms = %v", cfg.Extraction.MinDurationMS)
	}
	if cfg.Format.MaxLineChars != 36 {
		t.Errorf("max_line_chars = %v", cfg.Format.MaxLineChars)
	}
	if cfg.Format.SourceLanguage != "en" {
		t.Errorf("source_language not normalized: %q", cfg.Format.SourceLanguage)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("logging format not normalized: %q", cfg.Logging.Format)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad roi mode", func(c *Config) { c.Extraction.ROIMode = "everywhere" }, "roi_mode"},
		{"manual roi without rect", func(c *Config) { c.Extraction.ROIMode = "manual" }, "roi_rect"},
		{"bad engine", func(c *Config) { c.Extraction.OCREngine = "tesseract9000" }, "ocr_engine"},
		{"similarity above one", func(c *Config) { c.Extraction.SimilarityThreshold = 1.5 }, "similarity_threshold"},
		{"inverted qc window", func(c *Config) { c.QC.MinDisplaySec = 12; c.QC.MaxDisplaySec = 10 }, "min_display_sec"},
		{"bad provider", func(c *Config) { c.Translate.Provider = "carrier-pigeon" }, "provider"},
		{"static without glossary", func(c *Config) { c.Translate.Provider = "static" }, "glossary_path"},
		{"bad target language", func(c *Config) { c.Translate.TargetLanguages = []string{"english"} }, "target_languages"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/projects")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "projects") {
		t.Errorf("ExpandPath = %q", got)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample file not found after write")
	}
	defaults := Default()
	if cfg.Extraction.SimilarityThreshold != defaults.Extraction.SimilarityThreshold {
		t.Error("sample config drifts from defaults")
	}
	if cfg.Format.MaxLineChars != defaults.Format.MaxLineChars {
		t.Error("sample config drifts from defaults")
	}
}
