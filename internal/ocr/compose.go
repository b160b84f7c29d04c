package ocr

import (
	"sort"
	"strings"

	"subtext/internal/subtitle"
	"subtext/internal/textutil"
)

// maxComposedLines bounds how many vertical line groups are kept when
// composing a frame; broadcast subtitles use at most two.
const maxComposedLines = 2

// FrameText is the composed result of all detections on one frame: the
// subtitle text in reading order, the union bounding box, and the average
// detection confidence.
type FrameText struct {
	Text       string
	Confidence float64
	Box        *subtitle.Box
}

// Compose merges a frame's detections into a single FrameText. Detections
// are grouped into display lines by vertical center, ordered left to right
// within each line, and joined top to bottom. Returns a zero FrameText when
// there are no detections.
func Compose(detections []Detection) FrameText {
	if len(detections) == 0 {
		return FrameText{}
	}

	sorted := make([]Detection, len(detections))
	copy(sorted, detections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Box.Y < sorted[j].Box.Y
	})

	lines := groupByVerticalCenter(sorted)
	if len(lines) > maxComposedLines {
		lines = lines[:maxComposedLines]
	}

	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].Box.X < line[j].Box.X
		})
		texts := make([]string, 0, len(line))
		for _, d := range line {
			if t := strings.TrimSpace(d.Text); t != "" {
				texts = append(texts, t)
			}
		}
		if len(texts) > 0 {
			parts = append(parts, strings.Join(texts, " "))
		}
	}

	box := sorted[0].Box
	var confidence float64
	for _, d := range sorted {
		box = box.Union(d.Box)
		confidence += d.Confidence
	}
	confidence /= float64(len(sorted))

	text := textutil.CleanSubtitleText(strings.Join(parts, "\n"))
	if text == "" {
		return FrameText{}
	}
	boxCopy := box
	return FrameText{Text: text, Confidence: confidence, Box: &boxCopy}
}

// groupByVerticalCenter splits vertically sorted detections into line groups.
// A detection joins the current line when its vertical center is within half
// a text height of the line's center.
func groupByVerticalCenter(sorted []Detection) [][]Detection {
	var lines [][]Detection
	var current []Detection
	var currentCenter int

	for _, d := range sorted {
		center := d.Box.Y + d.Box.H/2
		if current == nil {
			current = []Detection{d}
			currentCenter = center
			continue
		}
		threshold := d.Box.H / 2
		if abs(center-currentCenter) <= threshold {
			current = append(current, d)
			continue
		}
		lines = append(lines, current)
		current = []Detection{d}
		currentCenter = center
	}
	if current != nil {
		lines = append(lines, current)
	}
	return lines
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
