package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"subtext/internal/config"
	"subtext/internal/frames"
	"subtext/internal/grouping"
	"subtext/internal/logging"
	"subtext/internal/ocr"
	"subtext/internal/project"
	"subtext/internal/qc"
	"subtext/internal/subtitle"
)

// Result is one completed extraction run.
type Result struct {
	Track         *subtitle.Track
	Issues        []qc.Issue
	FrameCount    int
	SkippedFrames int
}

// Runner wires the sampler output through detection, grouping, and QC.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	detector ocr.FrameDetector
}

// New builds a runner. A nil logger is replaced with a no-op logger.
func New(cfg *config.Config, logger *slog.Logger, detector ocr.FrameDetector) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{cfg: cfg, logger: logger, detector: detector}
}

// BuildDetector resolves the configured OCR engine.
func BuildDetector(cfg *config.Config) (ocr.FrameDetector, error) {
	switch cfg.Extraction.OCREngine {
	case "paddleocr":
		detector, err := ocr.NewCommandDetector(cfg.Extraction.OCRCommand, nil, cfg.Extraction.ConfidenceThreshold)
		if err != nil {
			return nil, Wrap(ErrConfiguration, "detect", "build ocr command detector", err)
		}
		return detector, nil
	case "scripted":
		return ocr.NewScriptedDetector(), nil
	default:
		return nil, Wrap(ErrConfiguration, "detect", fmt.Sprintf("unknown ocr engine %q", cfg.Extraction.OCREngine), nil)
	}
}

// Extract consumes every frame from the source, reads text off each one, and
// produces the grouped, validated track. Detector failures skip the affected
// frame and are tallied in the result rather than failing the run.
func (r *Runner) Extract(ctx context.Context, sourceMedia string, source frames.Source) (*Result, error) {
	var (
		observations []grouping.Observation
		frameCount   int
		skipped      int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frame, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, Wrap(ErrInput, "sample", fmt.Sprintf("read frame %d", frameCount), err)
		}
		frameCount++

		detections, err := r.detector.Detect(ctx, frame.Image)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			skipped++
			r.logger.Warn("frame detection failed, skipping frame",
				logging.Int64("timestamp_ms", frame.TimestampMS),
				logging.Error(err))
			continue
		}
		detections = ocr.FilterConfidence(detections, r.cfg.Extraction.ConfidenceThreshold)
		composed := ocr.Compose(detections)
		observations = append(observations, grouping.Observation{
			TimestampMS: frame.TimestampMS,
			Text:        composed.Text,
			Confidence:  composed.Confidence,
			Box:         composed.Box,
		})
	}

	cues, err := grouping.Group(ctx, observations, grouping.Options{
		SimilarityThreshold: r.cfg.Extraction.SimilarityThreshold,
		MinDurationMS:       r.cfg.Extraction.MinDurationMS,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, Wrap(ErrInput, "group", "fold observations into cues", err)
	}

	track := &subtitle.Track{
		SourceMedia: sourceMedia,
		Language:    r.cfg.Format.SourceLanguage,
		Cues:        cues,
	}
	issues := qc.Run(track, QCOptions(r.cfg))
	summary := qc.Summarize(issues)
	r.logger.Info("extraction complete",
		logging.String("source", sourceMedia),
		logging.Int("frames", frameCount),
		logging.Int("skipped_frames", skipped),
		logging.Int("cues", len(cues)),
		logging.Int("qc_errors", summary.Errors),
		logging.Int("qc_warnings", summary.Warnings))

	return &Result{
		Track:         track,
		Issues:        issues,
		FrameCount:    frameCount,
		SkippedFrames: skipped,
	}, nil
}

// QCOptions maps the configured thresholds onto the rule engine.
func QCOptions(cfg *config.Config) qc.Options {
	return qc.Options{
		MaxLineChars:          cfg.Format.MaxLineChars,
		MaxLines:              cfg.Format.MaxLines,
		MinDisplaySec:         cfg.QC.MinDisplaySec,
		MaxDisplaySec:         cfg.QC.MaxDisplaySec,
		MaxReadingCharsPerSec: cfg.QC.MaxReadingCharsPerSec,
	}
}

// SnapshotSettings captures the run configuration for project persistence.
func SnapshotSettings(cfg *config.Config) project.Settings {
	return project.Settings{
		SampleFPS:             cfg.Extraction.SampleFPS,
		ROIMode:               cfg.Extraction.ROIMode,
		ROIRect:               cfg.Extraction.ROIRect,
		OCREngine:             cfg.Extraction.OCREngine,
		ConfidenceThreshold:   cfg.Extraction.ConfidenceThreshold,
		SimilarityThreshold:   cfg.Extraction.SimilarityThreshold,
		MinDurationMS:         cfg.Extraction.MinDurationMS,
		MaxLineChars:          cfg.Format.MaxLineChars,
		MaxLines:              cfg.Format.MaxLines,
		MinDisplaySec:         cfg.QC.MinDisplaySec,
		MaxDisplaySec:         cfg.QC.MaxDisplaySec,
		MaxReadingCharsPerSec: cfg.QC.MaxReadingCharsPerSec,
	}
}
