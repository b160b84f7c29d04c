package translate

import (
	"fmt"

	"subtext/internal/subtitle"
)

// WarningKind classifies merge warnings.
type WarningKind string

const (
	WarnUnmatchedRow     WarningKind = "UnmatchedRow"
	WarnUnmatchedCue     WarningKind = "UnmatchedCue"
	WarnDuplicateRow     WarningKind = "DuplicateRow"
	WarnEmptyTranslation WarningKind = "EmptyTranslation"
)

// Warning is one non-fatal merge finding.
type Warning struct {
	Kind     WarningKind
	Key      Key
	Language string
	Message  string
}

// MergeResult holds the translated tracks per language plus everything that
// did not line up. Warnings are data: the merge never fails on a mismatch.
type MergeResult struct {
	Tracks   map[string]*subtitle.Track
	Warnings []Warning
	Matched  int
}

// Merge reconciles an imported translation table with the track's cues.
// A row matches a cue only on exact (index, start_ms, end_ms) equality.
// Unmatched rows and unmatched cues each produce one warning and are left
// out of the translated output. When several rows share a key the first
// one wins and the rest are warned as duplicates. The source track is
// never modified.
func Merge(track *subtitle.Track, table *Table, languages []string) MergeResult {
	if len(languages) == 0 {
		languages = table.Languages
	}

	result := MergeResult{Tracks: make(map[string]*subtitle.Track, len(languages))}

	byKey := make(map[Key]*Row, len(table.Rows))
	duplicate := make([]bool, len(table.Rows))
	for i := range table.Rows {
		row := &table.Rows[i]
		key := row.RowKey()
		if _, seen := byKey[key]; seen {
			duplicate[i] = true
			result.Warnings = append(result.Warnings, Warning{
				Kind:    WarnDuplicateRow,
				Key:     key,
				Message: fmt.Sprintf("imported row %d [%d-%dms] repeats an earlier row", key.Index, key.StartMS, key.EndMS),
			})
			continue
		}
		byKey[key] = row
	}

	type match struct {
		cue subtitle.Cue
		row *Row
	}
	var matches []match
	matchedKeys := make(map[Key]bool, len(track.Cues))
	for _, cue := range track.Cues {
		key := Key{Index: cue.Index, StartMS: cue.StartMS, EndMS: cue.EndMS}
		row, ok := byKey[key]
		if !ok {
			result.Warnings = append(result.Warnings, Warning{
				Kind:    WarnUnmatchedCue,
				Key:     key,
				Message: fmt.Sprintf("cue %d [%d-%dms] has no imported row", key.Index, key.StartMS, key.EndMS),
			})
			continue
		}
		matchedKeys[key] = true
		matches = append(matches, match{cue: cue, row: row})
	}
	for i := range table.Rows {
		row := &table.Rows[i]
		if duplicate[i] || matchedKeys[row.RowKey()] {
			continue
		}
		key := row.RowKey()
		result.Warnings = append(result.Warnings, Warning{
			Kind:    WarnUnmatchedRow,
			Key:     key,
			Message: fmt.Sprintf("imported row %d [%d-%dms] matches no cue", key.Index, key.StartMS, key.EndMS),
		})
	}
	result.Matched = len(matches)

	for _, lang := range languages {
		out := &subtitle.Track{SourceMedia: track.SourceMedia, Language: lang}
		for _, m := range matches {
			text, ok := m.row.Texts[lang]
			if !ok || text == "" {
				result.Warnings = append(result.Warnings, Warning{
					Kind:     WarnEmptyTranslation,
					Key:      m.row.RowKey(),
					Language: lang,
					Message:  fmt.Sprintf("row %d has no %s text", m.row.Index, lang),
				})
				continue
			}
			cue := m.cue
			cue.Text = text
			cue.Box = nil
			out.Cues = append(out.Cues, cue)
		}
		out.Reindex()
		result.Tracks[lang] = out
	}
	return result
}
