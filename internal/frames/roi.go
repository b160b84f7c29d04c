package frames

import "fmt"

// Rect is a pixel region within a video frame.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// ComputeRegion resolves the configured ROI mode against the source video
// dimensions. "auto" and "bottom_30" both select the bottom band where
// subtitles render; "manual" uses the configured rectangle clamped to the
// frame.
func ComputeRegion(mode string, rect []int, width, height int) (Rect, error) {
	if width <= 0 || height <= 0 {
		return Rect{}, fmt.Errorf("invalid video dimensions %dx%d", width, height)
	}
	switch mode {
	case "", "auto", "bottom_30":
		band := (height * 30) / 100
		if band < 1 {
			band = 1
		}
		return Rect{X: 0, Y: height - band, W: width, H: band}, nil
	case "manual":
		if len(rect) != 4 {
			return Rect{}, fmt.Errorf("manual roi requires [x y w h], got %d values", len(rect))
		}
		r := Rect{X: rect[0], Y: rect[1], W: rect[2], H: rect[3]}
		if r.X < 0 || r.Y < 0 || r.W <= 0 || r.H <= 0 {
			return Rect{}, fmt.Errorf("manual roi %v out of range", rect)
		}
		if r.X+r.W > width {
			r.W = width - r.X
		}
		if r.Y+r.H > height {
			r.H = height - r.Y
		}
		if r.W <= 0 || r.H <= 0 {
			return Rect{}, fmt.Errorf("manual roi %v lies outside the frame", rect)
		}
		return r, nil
	default:
		return Rect{}, fmt.Errorf("unknown roi mode %q", mode)
	}
}
