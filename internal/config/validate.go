package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateFormat(); err != nil {
		return err
	}
	if err := c.validateQC(); err != nil {
		return err
	}
	return c.validateTranslate()
}

func (c *Config) validateExtraction() error {
	switch c.Extraction.ROIMode {
	case "auto", "bottom_30":
	case "manual":
		if len(c.Extraction.ROIRect) != 4 {
			return errors.New("extraction.roi_rect must be [x, y, w, h] when extraction.roi_mode is \"manual\"")
		}
		if c.Extraction.ROIRect[2] <= 0 || c.Extraction.ROIRect[3] <= 0 {
			return errors.New("extraction.roi_rect width and height must be positive")
		}
	default:
		return fmt.Errorf("extraction.roi_mode: unsupported value %q", c.Extraction.ROIMode)
	}
	switch c.Extraction.OCREngine {
	case "paddleocr", "scripted":
	default:
		return fmt.Errorf("extraction.ocr_engine: unsupported value %q", c.Extraction.OCREngine)
	}
	if c.Extraction.ConfidenceThreshold < 0 || c.Extraction.ConfidenceThreshold > 1 {
		return errors.New("extraction.confidence_threshold must be between 0 and 1")
	}
	if c.Extraction.SimilarityThreshold < 0 || c.Extraction.SimilarityThreshold > 1 {
		return errors.New("extraction.similarity_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateFormat() error {
	if c.Format.MaxLines > 4 {
		return errors.New("format.max_lines above 4 is not a subtitle")
	}
	if len(c.Format.SourceLanguage) != 2 {
		return fmt.Errorf("format.source_language must be a two-letter code, got %q", c.Format.SourceLanguage)
	}
	return nil
}

func (c *Config) validateQC() error {
	if c.QC.MinDisplaySec >= c.QC.MaxDisplaySec {
		return errors.New("qc.min_display_sec must be below qc.max_display_sec")
	}
	return nil
}

func (c *Config) validateTranslate() error {
	switch c.Translate.Provider {
	case "http":
	case "static":
		if c.Translate.GlossaryPath == "" {
			return errors.New("translate.glossary_path is required when translate.provider is \"static\"")
		}
	default:
		return fmt.Errorf("translate.provider: unsupported value %q", c.Translate.Provider)
	}
	for _, lang := range c.Translate.TargetLanguages {
		if len(lang) != 2 {
			return fmt.Errorf("translate.target_languages entries must be two-letter codes, got %q", lang)
		}
	}
	return nil
}
