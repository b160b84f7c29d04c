package qc

import "fmt"

// Kind identifies the rule an issue was raised by.
type Kind string

const (
	KindLineLength    Kind = "LineLength"
	KindLineCount     Kind = "LineCount"
	KindDuration      Kind = "Duration"
	KindOverlap       Kind = "Overlap"
	KindTimeOrder     Kind = "TimeOrder"
	KindEmptyText     Kind = "EmptyText"
	KindDuplicateText Kind = "DuplicateText"
	KindReadingSpeed  Kind = "ReadingSpeed"
)

// Severity ranks how serious an issue is.
type Severity string

const (
	SeverityError   Severity = "Error"
	SeverityWarning Severity = "Warning"
	SeverityInfo    Severity = "Info"
)

// Issue is one rule violation on one cue.
type Issue struct {
	Kind     Kind
	Severity Severity
	CueIndex int
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("cue %d [%s/%s] %s", i.CueIndex, i.Severity, i.Kind, i.Message)
}

// Summary aggregates issue counts by severity.
type Summary struct {
	Errors   int
	Warnings int
	Infos    int
}

// Summarize tallies a run's issues.
func Summarize(issues []Issue) Summary {
	var s Summary
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Infos++
		}
	}
	return s
}

// Total reports the overall issue count.
func (s Summary) Total() int {
	return s.Errors + s.Warnings + s.Infos
}
