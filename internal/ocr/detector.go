package ocr

import (
	"context"

	"subtext/internal/subtitle"
)

// Detection is one OCR hit inside a single frame region.
type Detection struct {
	Text       string       `json:"text"`
	Confidence float64      `json:"confidence"`
	Box        subtitle.Box `json:"box"`
}

// FrameDetector recognizes text in a cropped region image. Implementations
// may be slow; they must honor ctx cancellation. An empty result means no
// visible text.
type FrameDetector interface {
	Detect(ctx context.Context, image []byte) ([]Detection, error)
}

// FilterConfidence drops detections scored below threshold.
func FilterConfidence(detections []Detection, threshold float64) []Detection {
	if threshold <= 0 {
		return detections
	}
	kept := detections[:0]
	for _, d := range detections {
		if d.Confidence >= threshold {
			kept = append(kept, d)
		}
	}
	return kept
}
