package grouping

import (
	"context"
	"fmt"
	"strings"

	"subtext/internal/subtitle"
	"subtext/internal/textutil"
)

const (
	// DefaultSimilarityThreshold joins successive frames whose normalized
	// text similarity meets or exceeds this ratio.
	DefaultSimilarityThreshold = 0.90
	// DefaultMinDurationMS is the shortest cue the post-pass will let stand.
	DefaultMinDurationMS int64 = 1200
)

// Options control the grouping engine. Zero values fall back to the defaults.
type Options struct {
	SimilarityThreshold float64
	MinDurationMS       int64
}

func (o Options) withDefaults() Options {
	if o.SimilarityThreshold <= 0 {
		o.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if o.MinDurationMS <= 0 {
		o.MinDurationMS = DefaultMinDurationMS
	}
	return o
}

// Observation is one sampled frame's text reading. An empty Text marks a
// blank frame with no visible subtitle.
type Observation struct {
	TimestampMS int64
	Text        string
	Confidence  float64
	Box         *subtitle.Box
}

// Blank reports whether the observation carries no visible text.
func (o Observation) Blank() bool {
	return strings.TrimSpace(o.Text) == ""
}

// candidate tracks one observed text variant inside the open accumulator.
type candidate struct {
	text       string
	confidence float64
	order      int
}

// accumulator holds the cue currently being built.
type accumulator struct {
	startMS    int64
	lastSeenMS int64
	current    string
	candidates []candidate
	box        *subtitle.Box
}

func openAccumulator(obs Observation) *accumulator {
	acc := &accumulator{
		startMS:    obs.TimestampMS,
		lastSeenMS: obs.TimestampMS,
		current:    obs.Text,
	}
	acc.absorb(obs)
	return acc
}

func (a *accumulator) absorb(obs Observation) {
	a.lastSeenMS = obs.TimestampMS
	if obs.Box != nil {
		if a.box == nil {
			union := *obs.Box
			a.box = &union
		} else {
			union := a.box.Union(*obs.Box)
			a.box = &union
		}
	}
	for i := range a.candidates {
		if a.candidates[i].text == obs.Text {
			a.candidates[i].confidence += obs.Confidence
			return
		}
	}
	a.candidates = append(a.candidates, candidate{
		text:       obs.Text,
		confidence: obs.Confidence,
		order:      len(a.candidates),
	})
}

// close picks the representative text and emits the finished cue. Preference
// runs aggregate confidence, then length in code points, then first seen.
func (a *accumulator) close() subtitle.Cue {
	best := a.candidates[0]
	for _, c := range a.candidates[1:] {
		if c.confidence > best.confidence {
			best = c
			continue
		}
		if c.confidence == best.confidence {
			cl, bl := len([]rune(c.text)), len([]rune(best.text))
			if cl > bl || (cl == bl && c.order < best.order) {
				best = c
			}
		}
	}
	return subtitle.Cue{
		StartMS: a.startMS,
		EndMS:   a.lastSeenMS,
		Text:    best.text,
		Box:     a.box,
	}
}

// Group folds a time-ordered observation sequence into subtitle cues,
// enforces the minimum display duration, and assigns dense one-based indices.
// Cancellation is honored between observations: cues closed so far are
// returned alongside the context error and the open accumulator is dropped.
func Group(ctx context.Context, observations []Observation, opts Options) ([]subtitle.Cue, error) {
	opts = opts.withDefaults()

	var (
		cues   []subtitle.Cue
		open   *accumulator
		lastMS int64 = -1
	)
	for _, obs := range observations {
		if err := ctx.Err(); err != nil {
			reindex(cues)
			return cues, err
		}
		if lastMS >= 0 && obs.TimestampMS <= lastMS {
			return nil, fmt.Errorf("observation at %dms not after %dms: timestamps must increase", obs.TimestampMS, lastMS)
		}
		lastMS = obs.TimestampMS

		switch {
		case obs.Blank():
			if open != nil {
				cues = append(cues, open.close())
				open = nil
			}
		case open == nil:
			open = openAccumulator(obs)
		case textutil.Similarity(open.current, obs.Text) >= opts.SimilarityThreshold:
			open.absorb(obs)
		default:
			cues = append(cues, open.close())
			open = openAccumulator(obs)
		}
	}
	if open != nil {
		cues = append(cues, open.close())
	}

	cues = EnforceMinDuration(cues, opts.MinDurationMS)
	reindex(cues)
	return cues, nil
}

func reindex(cues []subtitle.Cue) {
	for i := range cues {
		cues[i].Index = i + 1
	}
}
