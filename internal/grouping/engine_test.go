package grouping

import (
	"context"
	"errors"
	"testing"

	"subtext/internal/subtitle"
)

func obs(ts int64, text string, confidence float64) Observation {
	return Observation{TimestampMS: ts, Text: text, Confidence: confidence}
}

func TestGroupShortTrailingCueAbsorbedByEarlier(t *testing.T) {
	observations := []Observation{
		obs(0, "A", 0.9),
		obs(300, "A", 0.9),
		obs(600, "B", 0.9),
		obs(900, "", 0),
	}
	cues, err := Group(context.Background(), observations, Options{SimilarityThreshold: 0.9, MinDurationMS: 1200})
	if err != nil {
		t.Fatalf("Group returned error: %v", err)
	}
	if len(cues) != 1 {
		t.Fatalf("got %d cues, want 1: %+v", len(cues), cues)
	}
	want := subtitle.Cue{Index: 1, StartMS: 0, EndMS: 600, Text: "A"}
	if cues[0] != want {
		t.Fatalf("cue = %+v, want %+v", cues[0], want)
	}
}

func TestGroupBlankClosesAtLastSeenTime(t *testing.T) {
	observations := []Observation{
		obs(0, "hello there", 0.9),
		obs(300, "hello there", 0.9),
		obs(600, "hello there", 0.9),
		obs(900, "", 0),
		obs(1200, "something else", 0.9),
		obs(1500, "something else", 0.9),
		obs(1800, "something else", 0.9),
		obs(2100, "something else", 0.9),
		obs(2400, "something else", 0.9),
	}
	cues, err := Group(context.Background(), observations, Options{MinDurationMS: 1})
	if err != nil {
		t.Fatalf("Group returned error: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("got %d cues, want 2: %+v", len(cues), cues)
	}
	if cues[0].StartMS != 0 || cues[0].EndMS != 600 {
		t.Errorf("first cue range = [%d,%d], want [0,600]", cues[0].StartMS, cues[0].EndMS)
	}
	if cues[1].StartMS != 1200 || cues[1].EndMS != 2400 {
		t.Errorf("second cue range = [%d,%d], want [1200,2400]", cues[1].StartMS, cues[1].EndMS)
	}
	if cues[0].Index != 1 || cues[1].Index != 2 {
		t.Errorf("indices = %d,%d, want 1,2", cues[0].Index, cues[1].Index)
	}
}

func TestGroupSimilarTextExtendsCue(t *testing.T) {
	// OCR flicker: one character differs out of ten, similarity 0.9.
	observations := []Observation{
		obs(0, "subtitles!", 0.9),
		obs(400, "subtitles1", 0.8),
		obs(800, "subtitles!", 0.9),
		obs(1200, "subtitles!", 0.9),
		obs(1600, "", 0),
	}
	cues, err := Group(context.Background(), observations, Options{SimilarityThreshold: 0.9})
	if err != nil {
		t.Fatalf("Group returned error: %v", err)
	}
	if len(cues) != 1 {
		t.Fatalf("got %d cues, want 1: %+v", len(cues), cues)
	}
	if cues[0].Text != "subtitles!" {
		t.Errorf("representative text = %q, want the higher aggregate confidence variant", cues[0].Text)
	}
	if cues[0].StartMS != 0 || cues[0].EndMS != 1200 {
		t.Errorf("range = [%d,%d], want [0,1200]", cues[0].StartMS, cues[0].EndMS)
	}
}

func TestGroupRepresentativeTextTieBreaks(t *testing.T) {
	tests := []struct {
		name         string
		observations []Observation
		want         string
	}{
		{
			name: "higher aggregate confidence wins",
			observations: []Observation{
				obs(0, "night fell over town", 0.5),
				obs(300, "night fel1 over town", 0.95),
			},
			want: "night fel1 over town",
		},
		{
			name: "equal confidence prefers longer text",
			observations: []Observation{
				obs(0, "wait here.", 0.8),
				obs(300, "wait here!!", 0.8),
			},
			want: "wait here!!",
		},
		{
			name: "equal confidence and length prefers first seen",
			observations: []Observation{
				obs(0, "stop that!", 0.8),
				obs(300, "stop that?", 0.8),
			},
			want: "stop that!",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cues, err := Group(context.Background(), tt.observations, Options{SimilarityThreshold: 0.9, MinDurationMS: 1})
			if err != nil {
				t.Fatalf("Group returned error: %v", err)
			}
			if len(cues) != 1 {
				t.Fatalf("got %d cues, want 1", len(cues))
			}
			if cues[0].Text != tt.want {
				t.Errorf("text = %q, want %q", cues[0].Text, tt.want)
			}
		})
	}
}

func TestGroupDissimilarTextStartsNewCue(t *testing.T) {
	observations := []Observation{
		obs(0, "first line of dialogue", 0.9),
		obs(500, "first line of dialogue", 0.9),
		obs(1000, "first line of dialogue", 0.9),
		obs(1500, "a completely new line", 0.9),
		obs(2000, "a completely new line", 0.9),
		obs(2500, "a completely new line", 0.9),
		obs(3000, "", 0),
	}
	cues, err := Group(context.Background(), observations, Options{MinDurationMS: 1})
	if err != nil {
		t.Fatalf("Group returned error: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("got %d cues, want 2: %+v", len(cues), cues)
	}
	if cues[0].Text != "first line of dialogue" || cues[0].EndMS != 1000 {
		t.Errorf("first cue %+v: want end at the last frame before the change", cues[0])
	}
	if cues[1].Text != "a completely new line" || cues[1].StartMS != 1500 {
		t.Errorf("second cue %+v: want start at the changed frame", cues[1])
	}
}

func TestGroupEndOfStreamClosesOpenCue(t *testing.T) {
	observations := []Observation{
		obs(0, "lingering text", 0.9),
		obs(700, "lingering text", 0.9),
		obs(1400, "lingering text", 0.9),
	}
	cues, err := Group(context.Background(), observations, Options{})
	if err != nil {
		t.Fatalf("Group returned error: %v", err)
	}
	if len(cues) != 1 {
		t.Fatalf("got %d cues, want 1", len(cues))
	}
	if cues[0].EndMS != 1400 {
		t.Errorf("end = %d, want 1400", cues[0].EndMS)
	}
}

func TestGroupAggregatesBoundingBox(t *testing.T) {
	box1 := &subtitle.Box{X: 100, Y: 900, W: 400, H: 50}
	box2 := &subtitle.Box{X: 90, Y: 905, W: 420, H: 50}
	observations := []Observation{
		{TimestampMS: 0, Text: "boxed", Confidence: 0.9, Box: box1},
		{TimestampMS: 400, Text: "boxed", Confidence: 0.9, Box: box2},
		obs(800, "", 0),
	}
	cues, err := Group(context.Background(), observations, Options{MinDurationMS: 1})
	if err != nil {
		t.Fatalf("Group returned error: %v", err)
	}
	if len(cues) != 1 || cues[0].Box == nil {
		t.Fatalf("expected one cue with a box, got %+v", cues)
	}
	want := subtitle.Box{X: 90, Y: 900, W: 420, H: 55}
	if *cues[0].Box != want {
		t.Errorf("box = %+v, want %+v", *cues[0].Box, want)
	}
}

func TestGroupEmptyInput(t *testing.T) {
	cues, err := Group(context.Background(), nil, Options{})
	if err != nil {
		t.Fatalf("Group returned error: %v", err)
	}
	if len(cues) != 0 {
		t.Fatalf("got %d cues, want 0", len(cues))
	}
}

func TestGroupAllBlankFrames(t *testing.T) {
	observations := []Observation{
		obs(0, "", 0),
		obs(300, "   ", 0),
		obs(600, "", 0),
	}
	cues, err := Group(context.Background(), observations, Options{})
	if err != nil {
		t.Fatalf("Group returned error: %v", err)
	}
	if len(cues) != 0 {
		t.Fatalf("got %d cues, want 0: %+v", len(cues), cues)
	}
}

func TestGroupRejectsNonIncreasingTimestamps(t *testing.T) {
	observations := []Observation{
		obs(300, "a line", 0.9),
		obs(300, "a line", 0.9),
	}
	if _, err := Group(context.Background(), observations, Options{}); err == nil {
		t.Fatal("expected error for non-increasing timestamps")
	}
}

func TestGroupCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	observations := []Observation{
		obs(0, "finished cue text", 0.9),
		obs(400, "finished cue text", 0.9),
	}
	cues, err := Group(ctx, observations, Options{MinDurationMS: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(cues) != 0 {
		t.Fatalf("got %d cues after immediate cancellation, want 0", len(cues))
	}
}

func TestGroupDeterministic(t *testing.T) {
	observations := []Observation{
		obs(0, "deterministic output", 0.9),
		obs(500, "deterministic output", 0.85),
		obs(1000, "deterministic 0utput", 0.9),
		obs(1500, "", 0),
		obs(2000, "second cue here now", 0.9),
		obs(2500, "second cue here now", 0.9),
		obs(3000, "second cue here now", 0.9),
		obs(3500, "", 0),
	}
	first, err := Group(context.Background(), observations, Options{})
	if err != nil {
		t.Fatalf("Group returned error: %v", err)
	}
	second, err := Group(context.Background(), observations, Options{})
	if err != nil {
		t.Fatalf("Group returned error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("cue %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
