package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	LogDir    string `toml:"log_dir"`
	OutputDir string `toml:"output_dir"`
}

// Extraction contains frame sampling, OCR, and grouping configuration.
type Extraction struct {
	SampleFPS    float64 `toml:"sample_fps"`
	ROIMode      string  `toml:"roi_mode"` // "auto", "bottom_30", "manual"
	ROIRect      []int   `toml:"roi_rect"` // x, y, w, h when roi_mode is "manual"
	OCREngine    string  `toml:"ocr_engine"`
	OCRCommand   string  `toml:"ocr_command"`
	FFmpegBinary string  `toml:"ffmpeg_binary"`
	// ConfidenceThreshold discards detections the OCR engine scored below it.
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
	// SimilarityThreshold is the normalized edit-distance similarity at or
	// above which consecutive frame texts are treated as the same cue.
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	// MinDurationMS is the minimum cue display duration enforced after grouping.
	MinDurationMS int64 `toml:"min_duration_ms"`
}

// Format contains line wrapping and output language configuration.
type Format struct {
	MaxLineChars   int      `toml:"max_line_chars"`
	MaxLines       int      `toml:"max_lines"`
	SourceLanguage string   `toml:"source_language"`
	RTLLanguages   []string `toml:"rtl_languages"`
}

// QC contains quality-control rule thresholds. Line limits are shared with
// the Format section.
type QC struct {
	MinDisplaySec         float64 `toml:"min_display_sec"`
	MaxDisplaySec         float64 `toml:"max_display_sec"`
	MaxReadingCharsPerSec float64 `toml:"max_reading_chars_per_sec"`
}

// Translate contains translation provider configuration.
type Translate struct {
	Provider string `toml:"provider"` // "http", "static"
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api_key"`
	// GlossaryPath points the static provider at a TOML glossary file
	// mapping target language to source text to translated text.
	GlossaryPath    string   `toml:"glossary_path"`
	TimeoutSeconds  int      `toml:"timeout_seconds"`
	TargetLanguages []string `toml:"target_languages"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for subtext.
//
// Configuration sections by subsystem:
//   - Paths: data, log, and output directories
//   - Extraction: frame sampling rate, ROI, OCR engine, grouping thresholds
//   - Format: line wrap limits and language settings
//   - QC: quality-control rule thresholds
//   - Translate: translation provider selection and credentials
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Extraction Extraction `toml:"extraction"`
	Format     Format     `toml:"format"`
	QC         QC         `toml:"qc"`
	Translate  Translate  `toml:"translate"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/subtext/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. When no file exists at
// any candidate location, defaults are returned with exists=false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subtext.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		if err := os.MkdirAll(c.Paths.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", c.Paths.OutputDir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
