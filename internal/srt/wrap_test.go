package srt

import (
	"strings"
	"testing"
)

func TestWrapFiftyCharsIntoTwoLines(t *testing.T) {
	// 50 Latin characters including spaces.
	text := "the quick brown fox jumps over that very lazy dogs"
	if n := len([]rune(text)); n != 50 {
		t.Fatalf("fixture length = %d, want 50", n)
	}
	result := Wrap(text, 42, 2)
	if result.Truncated {
		t.Fatal("unexpected truncation")
	}
	if len(result.Lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(result.Lines), result.Lines)
	}
	for i, line := range result.Lines {
		if line == "" {
			t.Errorf("line %d is empty", i+1)
		}
		if n := len([]rune(line)); n > 42 {
			t.Errorf("line %d has %d chars, limit 42: %q", i+1, n, line)
		}
	}
}

func TestWrapShortTextUntouched(t *testing.T) {
	result := Wrap("fits on one line", 42, 2)
	if result.Truncated || len(result.Lines) != 1 || result.Lines[0] != "fits on one line" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestWrapPrefersPunctuationBreak(t *testing.T) {
	result := Wrap("Wait for me, I come along", 20, 2)
	if result.Truncated {
		t.Fatal("unexpected truncation")
	}
	if len(result.Lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(result.Lines), result.Lines)
	}
	if result.Lines[0] != "Wait for me," {
		t.Errorf("first line = %q, want break after the comma", result.Lines[0])
	}
	if result.Lines[1] != "I come along" {
		t.Errorf("second line = %q", result.Lines[1])
	}
}

func TestWrapFallsBackToWhitespace(t *testing.T) {
	result := Wrap("several plain words with no marks at all", 25, 2)
	if result.Truncated {
		t.Fatal("unexpected truncation")
	}
	for i, line := range result.Lines {
		if n := len([]rune(line)); n > 25 {
			t.Errorf("line %d has %d chars, limit 25: %q", i+1, n, line)
		}
		if strings.HasPrefix(line, " ") || strings.HasSuffix(line, " ") {
			t.Errorf("line %d not trimmed: %q", i+1, line)
		}
	}
}

func TestWrapHardBreakWithoutWhitespace(t *testing.T) {
	text := strings.Repeat("x", 30)
	result := Wrap(text, 10, 3)
	if result.Truncated {
		t.Fatal("unexpected truncation")
	}
	if len(result.Lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(result.Lines), result.Lines)
	}
	for i, line := range result.Lines {
		if len([]rune(line)) != 10 {
			t.Errorf("line %d length = %d, want 10", i+1, len([]rune(line)))
		}
	}
}

func TestWrapTruncatesWhenOverflowing(t *testing.T) {
	text := strings.Repeat("word ", 40)
	result := Wrap(strings.TrimSpace(text), 20, 2)
	if !result.Truncated {
		t.Fatal("expected truncation flag")
	}
	if len(result.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(result.Lines))
	}
}

func TestWrapIdempotent(t *testing.T) {
	texts := []string{
		"the quick brown fox jumps over that very lazy dog",
		"Wait for me, I am coming along too",
		strings.Repeat("x", 30),
		"already\nwrapped text",
	}
	for _, text := range texts {
		first := Wrap(text, 42, 2)
		second := Wrap(first.Text(), 42, 2)
		if first.Text() != second.Text() {
			t.Errorf("wrap not idempotent for %q: %q then %q", text, first.Text(), second.Text())
		}
	}
}

func TestWrapCJKPunctuation(t *testing.T) {
	result := Wrap("こんにちは、今日はいい天気ですね", 8, 2)
	if len(result.Lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(result.Lines), result.Lines)
	}
	if result.Lines[0] != "こんにちは、" {
		t.Errorf("first line = %q, want break after the comma", result.Lines[0])
	}
}
