package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"subtext/internal/config"
	"subtext/internal/srt"
	"subtext/internal/subtitle"
	"subtext/internal/textutil"
)

// writeTrackSRT serializes a track into the output directory under the
// {base}.{lang}.srt convention. It returns the written path and the
// indices of any cues whose text was truncated to fit the line limits.
func writeTrackSRT(cfg *config.Config, track *subtitle.Track, base, lang string) (string, []int, error) {
	path := filepath.Join(cfg.Paths.OutputDir, srt.FileName(base, lang))
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return "", nil, fmt.Errorf("create %s: %w", path, err)
	}
	opts := srt.WriteOptions{
		MaxLineChars: cfg.Format.MaxLineChars,
		MaxLines:     cfg.Format.MaxLines,
		RTL:          isRTLLanguage(cfg, lang),
	}
	truncated, err := srt.Write(f, track, opts)
	if err != nil {
		_ = f.Close()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		return "", nil, fmt.Errorf("close %s: %w", path, err)
	}
	return path, truncated, nil
}

// reportTruncated prints which cues lost text to the line limits during
// serialization. The stored cue text is untouched.
func reportTruncated(out io.Writer, path string, truncated []int) {
	if len(truncated) == 0 {
		return
	}
	fmt.Fprintf(out, "%s: %d cues truncated to fit line limits: %v\n", filepath.Base(path), len(truncated), truncated)
}

func isRTLLanguage(cfg *config.Config, lang string) bool {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, rtl := range cfg.Format.RTLLanguages {
		if strings.EqualFold(rtl, lang) {
			return true
		}
	}
	return false
}

// outputBase derives the file basename for a project's outputs from its
// source media path.
func outputBase(sourceMedia string) string {
	base := strings.TrimSuffix(filepath.Base(sourceMedia), filepath.Ext(sourceMedia))
	return textutil.SanitizeFileName(base)
}
