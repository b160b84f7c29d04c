package subtitle

import (
	"sort"
	"strings"
)

// Box is a detected text region in frame pixel coordinates.
type Box struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Union returns the smallest box covering both b and other.
func (b Box) Union(other Box) Box {
	minX := min(b.X, other.X)
	minY := min(b.Y, other.Y)
	maxX := max(b.X+b.W, other.X+other.W)
	maxY := max(b.Y+b.H, other.Y+other.H)
	return Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Cue is one timed subtitle entry.
type Cue struct {
	Index   int    `json:"index"`
	StartMS int64  `json:"start_ms"`
	EndMS   int64  `json:"end_ms"`
	Text    string `json:"text"`
	Box     *Box   `json:"box,omitempty"`
}

// DurationMS returns the cue display duration in milliseconds.
func (c Cue) DurationMS() int64 {
	return c.EndMS - c.StartMS
}

// Lines splits the cue text on newlines, dropping blank lines.
func (c Cue) Lines() []string {
	raw := strings.Split(c.Text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Track is an ordered sequence of cues plus provenance metadata.
type Track struct {
	SourceMedia string
	Language    string
	Cues        []Cue
}

// Reindex reassigns a dense 1-based index to every cue in slice order.
func (t *Track) Reindex() {
	for i := range t.Cues {
		t.Cues[i].Index = i + 1
	}
}

// SortByTime orders cues by start time and reindexes them.
func (t *Track) SortByTime() {
	sort.SliceStable(t.Cues, func(i, j int) bool {
		return t.Cues[i].StartMS < t.Cues[j].StartMS
	})
	t.Reindex()
}

// Clone returns a deep copy of the track. QC and the merge protocol operate
// on clones so the source track is never mutated.
func (t *Track) Clone() *Track {
	if t == nil {
		return nil
	}
	out := &Track{SourceMedia: t.SourceMedia, Language: t.Language}
	out.Cues = make([]Cue, len(t.Cues))
	copy(out.Cues, t.Cues)
	for i, cue := range t.Cues {
		if cue.Box != nil {
			box := *cue.Box
			out.Cues[i].Box = &box
		}
	}
	return out
}

// CueAt returns the cue visible at the given timestamp, or nil.
func (t *Track) CueAt(timeMS int64) *Cue {
	for i := range t.Cues {
		if t.Cues[i].StartMS <= timeMS && timeMS <= t.Cues[i].EndMS {
			return &t.Cues[i]
		}
	}
	return nil
}
