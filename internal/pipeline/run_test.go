package pipeline

import (
	"context"
	"errors"
	"testing"

	"subtext/internal/config"
	"subtext/internal/frames"
	"subtext/internal/ocr"
	"subtext/internal/subtitle"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Extraction.SimilarityThreshold = 0.9
	cfg.Extraction.MinDurationMS = 1
	cfg.Extraction.ConfidenceThreshold = 0.5
	return &cfg
}

func detection(text string, confidence float64) ocr.Detection {
	return ocr.Detection{Text: text, Confidence: confidence, Box: subtitle.Box{X: 100, Y: 900, W: 300, H: 40}}
}

func frameSource(count int) *frames.SliceSource {
	seq := make([]frames.Frame, count)
	for i := range seq {
		seq[i] = frames.Frame{TimestampMS: int64(i) * 300, Image: []byte{byte(i)}}
	}
	return frames.NewSliceSource(seq...)
}

func TestExtractGroupsFramesIntoCues(t *testing.T) {
	detector := ocr.NewScriptedDetector(
		ocr.ScriptedResponse{Detections: []ocr.Detection{detection("hello world", 0.9)}},
		ocr.ScriptedResponse{Detections: []ocr.Detection{detection("hello world", 0.9)}},
		ocr.ScriptedResponse{},
		ocr.ScriptedResponse{Detections: []ocr.Detection{detection("next line here", 0.9)}},
		ocr.ScriptedResponse{Detections: []ocr.Detection{detection("next line here", 0.9)}},
	)
	runner := New(testConfig(), nil, detector)

	result, err := runner.Extract(context.Background(), "movie.mkv", frameSource(5))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if result.FrameCount != 5 || result.SkippedFrames != 0 {
		t.Fatalf("counts = %d frames, %d skipped", result.FrameCount, result.SkippedFrames)
	}
	track := result.Track
	if track.SourceMedia != "movie.mkv" {
		t.Errorf("source = %q", track.SourceMedia)
	}
	if len(track.Cues) != 2 {
		t.Fatalf("got %d cues, want 2: %+v", len(track.Cues), track.Cues)
	}
	if track.Cues[0].Text != "hello world" || track.Cues[0].StartMS != 0 || track.Cues[0].EndMS != 300 {
		t.Errorf("cue 1 = %+v", track.Cues[0])
	}
	if track.Cues[1].Text != "next line here" || track.Cues[1].StartMS != 900 {
		t.Errorf("cue 2 = %+v", track.Cues[1])
	}
}

func TestExtractSkipsFailedDetections(t *testing.T) {
	detectErr := errors.New("inference backend crashed")
	detector := ocr.NewScriptedDetector(
		ocr.ScriptedResponse{Detections: []ocr.Detection{detection("stable text", 0.9)}},
		ocr.ScriptedResponse{Err: detectErr},
		ocr.ScriptedResponse{Detections: []ocr.Detection{detection("stable text", 0.9)}},
	)
	runner := New(testConfig(), nil, detector)

	result, err := runner.Extract(context.Background(), "movie.mkv", frameSource(3))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if result.SkippedFrames != 1 {
		t.Fatalf("skipped = %d, want 1", result.SkippedFrames)
	}
	if len(result.Track.Cues) != 1 {
		t.Fatalf("got %d cues, want 1: %+v", len(result.Track.Cues), result.Track.Cues)
	}
	// The failed frame is dropped, not treated as a blank boundary.
	if result.Track.Cues[0].StartMS != 0 || result.Track.Cues[0].EndMS != 600 {
		t.Errorf("cue = %+v, want span over the skipped frame", result.Track.Cues[0])
	}
}

func TestExtractFiltersLowConfidence(t *testing.T) {
	detector := ocr.NewScriptedDetector(
		ocr.ScriptedResponse{Detections: []ocr.Detection{detection("ghost reading", 0.2)}},
	)
	runner := New(testConfig(), nil, detector)

	result, err := runner.Extract(context.Background(), "movie.mkv", frameSource(1))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if len(result.Track.Cues) != 0 {
		t.Fatalf("got %d cues, want 0: %+v", len(result.Track.Cues), result.Track.Cues)
	}
}

func TestExtractReportsQCIssues(t *testing.T) {
	// One frame yields a single zero-length cue that the min-duration pass
	// extends; a sub-second cue still violates the display minimum.
	detector := ocr.NewScriptedDetector(
		ocr.ScriptedResponse{Detections: []ocr.Detection{detection("blink", 0.9)}},
	)
	runner := New(testConfig(), nil, detector)

	result, err := runner.Extract(context.Background(), "movie.mkv", frameSource(1))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if len(result.Track.Cues) != 1 {
		t.Fatalf("got %d cues, want 1", len(result.Track.Cues))
	}
	if len(result.Issues) == 0 {
		t.Fatal("expected QC issues for a sub-second cue")
	}
}

func TestExtractCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	detector := ocr.NewScriptedDetector()
	runner := New(testConfig(), nil, detector)

	if _, err := runner.Extract(ctx, "movie.mkv", frameSource(2)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBuildDetectorUnknownEngine(t *testing.T) {
	cfg := testConfig()
	cfg.Extraction.OCREngine = "tesseract"
	if _, err := BuildDetector(cfg); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestBuildDetectorScripted(t *testing.T) {
	cfg := testConfig()
	cfg.Extraction.OCREngine = "scripted"
	detector, err := BuildDetector(cfg)
	if err != nil {
		t.Fatalf("BuildDetector returned error: %v", err)
	}
	if detector == nil {
		t.Fatal("expected a detector")
	}
}
