package project

import (
	"time"

	"github.com/google/uuid"
)

// Settings is the configuration snapshot stored with a project. It is
// persisted verbatim so a reopened project reports exactly the values its
// pipeline ran with.
type Settings struct {
	SampleFPS             float64 `json:"sample_fps"`
	ROIMode               string  `json:"roi_mode"`
	ROIRect               []int   `json:"roi_rect,omitempty"`
	OCREngine             string  `json:"ocr_engine"`
	ConfidenceThreshold   float64 `json:"confidence_threshold"`
	SimilarityThreshold   float64 `json:"similarity_threshold"`
	MinDurationMS         int64   `json:"min_duration_ms"`
	MaxLineChars          int     `json:"max_line_chars"`
	MaxLines              int     `json:"max_lines"`
	MinDisplaySec         float64 `json:"min_display_sec"`
	MaxDisplaySec         float64 `json:"max_display_sec"`
	MaxReadingCharsPerSec float64 `json:"max_reading_chars_per_sec"`
}

// Project is one stored extraction run.
type Project struct {
	ID          string
	SourceMedia string
	Language    string
	Settings    Settings
	CueCount    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewID allocates a project identifier.
func NewID() string {
	return uuid.NewString()
}
