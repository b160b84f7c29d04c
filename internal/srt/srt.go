package srt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"subtext/internal/subtitle"
)

// WriteOptions control serialization.
type WriteOptions struct {
	MaxLineChars int
	MaxLines     int
	// RTL applies right-to-left visual reordering to each wrapped line.
	// The cue text itself is never modified.
	RTL bool
}

// FileName builds the conventional output name for a track:
// {base}.{languageCode}.srt.
func FileName(base, language string) string {
	return fmt.Sprintf("%s.%s.srt", base, language)
}

// Write serializes the track as SubRip text. Output is UTF-8 with no
// byte-order mark. Cue text is wrapped under the configured limits; a cue
// whose text cannot fit is truncated in the output only, and its index is
// returned so the caller can report the loss.
func Write(w io.Writer, track *subtitle.Track, opts WriteOptions) ([]int, error) {
	bw := bufio.NewWriter(w)
	var truncated []int
	for i, cue := range track.Cues {
		index := cue.Index
		if index == 0 {
			index = i + 1
		}
		wrapped := Wrap(cue.Text, opts.MaxLineChars, opts.MaxLines)
		if wrapped.Truncated {
			truncated = append(truncated, index)
		}
		if _, err := fmt.Fprintf(bw, "%d\n%s --> %s\n", index,
			subtitle.FormatTimecode(cue.StartMS), subtitle.FormatTimecode(cue.EndMS)); err != nil {
			return nil, fmt.Errorf("write cue %d: %w", index, err)
		}
		for _, line := range wrapped.Lines {
			if opts.RTL {
				line = ReorderRTL(line)
			}
			if _, err := fmt.Fprintln(bw, line); err != nil {
				return nil, fmt.Errorf("write cue %d: %w", index, err)
			}
		}
		if _, err := fmt.Fprintln(bw); err != nil {
			return nil, fmt.Errorf("write cue %d: %w", index, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("flush subtitle output: %w", err)
	}
	return truncated, nil
}

// Parse reads SubRip text into a track. A leading byte-order mark is
// tolerated on input even though Write never emits one. Both comma and
// period millisecond separators are accepted.
func Parse(r io.Reader) (*subtitle.Track, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		track subtitle.Track
		lines []string
		first = true
	)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		if strings.TrimSpace(line) == "" {
			if len(lines) > 0 {
				cue, err := parseBlock(lines)
				if err != nil {
					return nil, err
				}
				track.Cues = append(track.Cues, cue)
				lines = lines[:0]
			}
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read subtitle input: %w", err)
	}
	if len(lines) > 0 {
		cue, err := parseBlock(lines)
		if err != nil {
			return nil, err
		}
		track.Cues = append(track.Cues, cue)
	}
	return &track, nil
}

func parseBlock(lines []string) (subtitle.Cue, error) {
	if len(lines) < 2 {
		return subtitle.Cue{}, fmt.Errorf("malformed cue block %q", strings.Join(lines, "\\n"))
	}
	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return subtitle.Cue{}, fmt.Errorf("parse cue index %q: %w", lines[0], err)
	}
	start, end, err := parseTimeLine(lines[1])
	if err != nil {
		return subtitle.Cue{}, fmt.Errorf("cue %d: %w", index, err)
	}
	return subtitle.Cue{
		Index:   index,
		StartMS: start,
		EndMS:   end,
		Text:    strings.Join(lines[2:], "\n"),
	}, nil
}

func parseTimeLine(line string) (int64, int64, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed time line %q", line)
	}
	start, err := subtitle.ParseTimecode(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err := subtitle.ParseTimecode(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
