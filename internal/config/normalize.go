package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExtraction()
	c.normalizeFormat()
	c.normalizeQC()
	if err := c.normalizeTranslate(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeExtraction() {
	if c.Extraction.SampleFPS <= 0 {
		c.Extraction.SampleFPS = defaultSampleFPS
	}
	c.Extraction.ROIMode = strings.ToLower(strings.TrimSpace(c.Extraction.ROIMode))
	if c.Extraction.ROIMode == "" {
		c.Extraction.ROIMode = defaultROIMode
	}
	c.Extraction.OCREngine = strings.ToLower(strings.TrimSpace(c.Extraction.OCREngine))
	if c.Extraction.OCREngine == "" {
		c.Extraction.OCREngine = defaultOCREngine
	}
	c.Extraction.OCRCommand = strings.TrimSpace(c.Extraction.OCRCommand)
	if c.Extraction.OCRCommand == "" {
		c.Extraction.OCRCommand = defaultOCRCommand
	}
	c.Extraction.FFmpegBinary = strings.TrimSpace(c.Extraction.FFmpegBinary)
	if c.Extraction.FFmpegBinary == "" {
		c.Extraction.FFmpegBinary = defaultFFmpegBinary
	}
	if c.Extraction.ConfidenceThreshold <= 0 {
		c.Extraction.ConfidenceThreshold = defaultConfidenceThreshold
	}
	if c.Extraction.SimilarityThreshold <= 0 {
		c.Extraction.SimilarityThreshold = defaultSimilarityThreshold
	}
	if c.Extraction.MinDurationMS <= 0 {
		c.Extraction.MinDurationMS = defaultMinDurationMS
	}
}

func (c *Config) normalizeFormat() {
	if c.Format.MaxLineChars <= 0 {
		c.Format.MaxLineChars = defaultMaxLineChars
	}
	if c.Format.MaxLines <= 0 {
		c.Format.MaxLines = defaultMaxLines
	}
	c.Format.SourceLanguage = strings.ToLower(strings.TrimSpace(c.Format.SourceLanguage))
	if c.Format.SourceLanguage == "" {
		c.Format.SourceLanguage = defaultSourceLanguage
	}
	c.Format.RTLLanguages = normalizeLanguageList(c.Format.RTLLanguages, Default().Format.RTLLanguages)
}

func (c *Config) normalizeQC() {
	if c.QC.MinDisplaySec <= 0 {
		c.QC.MinDisplaySec = defaultMinDisplaySec
	}
	if c.QC.MaxDisplaySec <= 0 {
		c.QC.MaxDisplaySec = defaultMaxDisplaySec
	}
	if c.QC.MaxReadingCharsPerSec <= 0 {
		c.QC.MaxReadingCharsPerSec = defaultMaxReadingCharsPerSec
	}
}

func (c *Config) normalizeTranslate() error {
	c.Translate.Provider = strings.ToLower(strings.TrimSpace(c.Translate.Provider))
	if c.Translate.Provider == "" {
		c.Translate.Provider = defaultTranslateProvider
	}
	c.Translate.Endpoint = strings.TrimSpace(c.Translate.Endpoint)
	c.Translate.APIKey = strings.TrimSpace(c.Translate.APIKey)
	if c.Translate.APIKey == "" {
		if value, ok := os.LookupEnv("SUBTEXT_TRANSLATE_API_KEY"); ok {
			c.Translate.APIKey = strings.TrimSpace(value)
		}
	}
	c.Translate.GlossaryPath = strings.TrimSpace(c.Translate.GlossaryPath)
	if c.Translate.GlossaryPath != "" {
		var err error
		if c.Translate.GlossaryPath, err = expandPath(c.Translate.GlossaryPath); err != nil {
			return fmt.Errorf("translate.glossary_path: %w", err)
		}
	}
	if c.Translate.TimeoutSeconds <= 0 {
		c.Translate.TimeoutSeconds = defaultTranslateTimeoutSeconds
	}
	c.Translate.TargetLanguages = normalizeLanguageList(c.Translate.TargetLanguages, nil)
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func normalizeLanguageList(languages, fallback []string) []string {
	normalized := make([]string, 0, len(languages))
	seen := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		trimmed := strings.ToLower(strings.TrimSpace(lang))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		normalized = append(normalized, trimmed)
	}
	if len(normalized) == 0 {
		return fallback
	}
	return normalized
}
