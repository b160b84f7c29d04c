package srt

import (
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// ReorderRTL applies bidirectional visual reordering to each line of text
// independently. This is a presentation transform for right-to-left output
// languages; callers keep the logical source-order text in the cue and apply
// this only at serialization time.
func ReorderRTL(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = reorderLine(line)
	}
	return strings.Join(lines, "\n")
}

func reorderLine(line string) string {
	if line == "" {
		return line
	}
	var p bidi.Paragraph
	p.SetString(line, bidi.DefaultDirection(bidi.RightToLeft))
	ordering, err := p.Order()
	if err != nil {
		return line
	}
	var b strings.Builder
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		if run.Direction() == bidi.RightToLeft {
			b.WriteString(bidi.ReverseString(run.String()))
		} else {
			b.WriteString(run.String())
		}
	}
	return b.String()
}
