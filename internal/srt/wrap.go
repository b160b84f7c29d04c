package srt

import "strings"

// DefaultMaxLineChars and DefaultMaxLines match common broadcast layout
// limits.
const (
	DefaultMaxLineChars = 42
	DefaultMaxLines     = 2
)

// clause punctuation we prefer to break after, Latin and CJK.
const breakPunctuation = ",.;:!?、。，！？…」』）)]"

// WrapResult is the outcome of wrapping one cue's text.
type WrapResult struct {
	Lines     []string
	Truncated bool
}

// Text joins the wrapped lines back into cue text.
func (r WrapResult) Text() string {
	return strings.Join(r.Lines, "\n")
}

// Wrap splits text into at most maxLines lines of at most maxChars code
// points. Break positions prefer clause punctuation nearest the limit, then
// whitespace, then a hard break at the limit. Text that cannot fit is
// truncated and flagged. Wrapping already-conforming text is a no-op, so the
// transform is idempotent for fixed settings.
func Wrap(text string, maxChars, maxLines int) WrapResult {
	if maxChars <= 0 {
		maxChars = DefaultMaxLineChars
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	existing := splitLines(text)
	if conforming(existing, maxChars, maxLines) {
		return WrapResult{Lines: existing}
	}

	remaining := []rune(strings.Join(existing, " "))
	var lines []string
	for len(remaining) > 0 && len(lines) < maxLines {
		if len(remaining) <= maxChars {
			lines = append(lines, string(remaining))
			remaining = nil
			break
		}
		cut := breakIndex(remaining, maxChars)
		line := strings.TrimRight(string(remaining[:cut]), " \t")
		lines = append(lines, line)
		remaining = trimLeadingSpace(remaining[cut:])
	}

	return WrapResult{Lines: lines, Truncated: len(remaining) > 0}
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func conforming(lines []string, maxChars, maxLines int) bool {
	if len(lines) == 0 || len(lines) > maxLines {
		return false
	}
	for _, line := range lines {
		if len([]rune(line)) > maxChars {
			return false
		}
	}
	return true
}

// breakIndex picks where to cut runes for a line of at most maxChars code
// points. The cut index is exclusive.
func breakIndex(runes []rune, maxChars int) int {
	// Punctuation break: cut just after the last clause mark inside the
	// window, provided some text precedes it.
	for i := maxChars - 1; i > 0; i-- {
		if strings.ContainsRune(breakPunctuation, runes[i]) {
			return i + 1
		}
	}
	// Whitespace break: the space itself is dropped, so a space at the
	// limit index still yields a full-width line.
	for i := maxChars; i > 0; i-- {
		if runes[i] == ' ' || runes[i] == '\t' {
			return i
		}
	}
	return maxChars
}

func trimLeadingSpace(runes []rune) []rune {
	i := 0
	for i < len(runes) && (runes[i] == ' ' || runes[i] == '\t') {
		i++
	}
	return runes[i:]
}
