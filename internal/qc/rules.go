package qc

import (
	"fmt"
	"strings"

	"subtext/internal/subtitle"
	"subtext/internal/textutil"
)

const (
	// DefaultDuplicateWindowMS bounds how far apart two cues may sit and
	// still count as a duplicate-text pair.
	DefaultDuplicateWindowMS int64 = 5000

	defaultMaxLineChars          = 42
	defaultMaxLines              = 2
	defaultMinDisplaySec         = 1.2
	defaultMaxDisplaySec         = 10.0
	defaultMaxReadingCharsPerSec = 20.0
)

// Options configure the rule thresholds. Zero values fall back to defaults.
type Options struct {
	MaxLineChars          int
	MaxLines              int
	MinDisplaySec         float64
	MaxDisplaySec         float64
	MaxReadingCharsPerSec float64
	DuplicateWindowMS     int64
}

func (o Options) withDefaults() Options {
	if o.MaxLineChars <= 0 {
		o.MaxLineChars = defaultMaxLineChars
	}
	if o.MaxLines <= 0 {
		o.MaxLines = defaultMaxLines
	}
	if o.MinDisplaySec <= 0 {
		o.MinDisplaySec = defaultMinDisplaySec
	}
	if o.MaxDisplaySec <= 0 {
		o.MaxDisplaySec = defaultMaxDisplaySec
	}
	if o.MaxReadingCharsPerSec <= 0 {
		o.MaxReadingCharsPerSec = defaultMaxReadingCharsPerSec
	}
	if o.DuplicateWindowMS <= 0 {
		o.DuplicateWindowMS = DefaultDuplicateWindowMS
	}
	return o
}

// Run evaluates every rule against every cue and returns the violations in
// cue order. The track is read-only to the checker.
func Run(track *subtitle.Track, opts Options) []Issue {
	opts = opts.withDefaults()
	if track == nil {
		return nil
	}

	var issues []Issue
	cues := track.Cues
	for i, cue := range cues {
		inverted := cue.StartMS > cue.EndMS

		for n, line := range cue.Lines() {
			if count := len([]rune(line)); count > opts.MaxLineChars {
				issues = append(issues, Issue{
					Kind:     KindLineLength,
					Severity: SeverityWarning,
					CueIndex: cue.Index,
					Message:  fmt.Sprintf("line %d has %d characters, limit %d", n+1, count, opts.MaxLineChars),
				})
			}
		}
		if lines := len(cue.Lines()); lines > opts.MaxLines {
			issues = append(issues, Issue{
				Kind:     KindLineCount,
				Severity: SeverityWarning,
				CueIndex: cue.Index,
				Message:  fmt.Sprintf("%d lines, limit %d", lines, opts.MaxLines),
			})
		}

		// Duration and reading speed are meaningless on an inverted cue;
		// the TimeOrder error below covers it.
		if !inverted {
			durationSec := float64(cue.DurationMS()) / 1000.0
			if durationSec < opts.MinDisplaySec {
				issues = append(issues, Issue{
					Kind:     KindDuration,
					Severity: SeverityWarning,
					CueIndex: cue.Index,
					Message:  fmt.Sprintf("displayed %.3fs, minimum %.1fs", durationSec, opts.MinDisplaySec),
				})
			} else if durationSec > opts.MaxDisplaySec {
				issues = append(issues, Issue{
					Kind:     KindDuration,
					Severity: SeverityInfo,
					CueIndex: cue.Index,
					Message:  fmt.Sprintf("displayed %.3fs, maximum %.1fs", durationSec, opts.MaxDisplaySec),
				})
			}
		}

		if i+1 < len(cues) && cue.EndMS > cues[i+1].StartMS {
			issues = append(issues, Issue{
				Kind:     KindOverlap,
				Severity: SeverityError,
				CueIndex: cue.Index,
				Message:  fmt.Sprintf("ends at %dms after cue %d starts at %dms", cue.EndMS, cues[i+1].Index, cues[i+1].StartMS),
			})
		}

		if inverted {
			issues = append(issues, Issue{
				Kind:     KindTimeOrder,
				Severity: SeverityError,
				CueIndex: cue.Index,
				Message:  fmt.Sprintf("start %dms is after end %dms", cue.StartMS, cue.EndMS),
			})
		}

		if strings.TrimSpace(cue.Text) == "" {
			issues = append(issues, Issue{
				Kind:     KindEmptyText,
				Severity: SeverityError,
				CueIndex: cue.Index,
				Message:  "cue has no text",
			})
		}

		if dup := findDuplicate(cues, i, opts.DuplicateWindowMS); dup != nil {
			issues = append(issues, Issue{
				Kind:     KindDuplicateText,
				Severity: SeverityWarning,
				CueIndex: cue.Index,
				Message:  fmt.Sprintf("text repeats cue %d within %dms", dup.Index, opts.DuplicateWindowMS),
			})
		}

		if !inverted && cue.DurationMS() > 0 {
			chars := readableCharCount(cue.Text)
			speed := float64(chars) / (float64(cue.DurationMS()) / 1000.0)
			if speed > opts.MaxReadingCharsPerSec {
				issues = append(issues, Issue{
					Kind:     KindReadingSpeed,
					Severity: SeverityWarning,
					CueIndex: cue.Index,
					Message:  fmt.Sprintf("%.1f chars/sec, limit %.1f", speed, opts.MaxReadingCharsPerSec),
				})
			}
		}
	}
	return issues
}

// findDuplicate looks backwards from cue i for an earlier cue with equal
// normalized text inside the proximity window. The later cue carries the
// issue so the pair is reported once.
func findDuplicate(cues []subtitle.Cue, i int, windowMS int64) *subtitle.Cue {
	norm := textutil.NormalizeForCompare(cues[i].Text)
	if norm == "" {
		return nil
	}
	for j := i - 1; j >= 0; j-- {
		if cues[i].StartMS-cues[j].EndMS > windowMS {
			return nil
		}
		if textutil.NormalizeForCompare(cues[j].Text) == norm {
			return &cues[j]
		}
	}
	return nil
}

func readableCharCount(text string) int {
	count := 0
	for _, r := range text {
		if r == '\n' {
			continue
		}
		count++
	}
	return count
}
