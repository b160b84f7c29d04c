package subtitle

import "testing"

func TestFormatTimecode(t *testing.T) {
	tests := []struct {
		ms       int64
		expected string
	}{
		{0, "00:00:00,000"},
		{999, "00:00:00,999"},
		{1000, "00:00:01,000"},
		{61500, "00:01:01,500"},
		{3600000, "01:00:00,000"},
		{3661042, "01:01:01,042"},
		// Hours are unbounded.
		{100*3600*1000 + 1, "100:00:00,001"},
		{-5, "00:00:00,000"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatTimecode(tt.ms); got != tt.expected {
				t.Errorf("FormatTimecode(%d) = %q, want %q", tt.ms, got, tt.expected)
			}
		})
	}
}

func TestParseTimecode(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"00:00:00,000", 0, false},
		{"00:00:01,000", 1000, false},
		{"01:01:01,042", 3661042, false},
		{"100:00:00,001", 360000001, false},
		{" 00:00:02,250 ", 2250, false},
		// Period accepted in place of comma.
		{"00:00:02.250", 2250, false},
		{"", 0, true},
		{"00:00", 0, true},
		{"00:61:00,000", 0, true},
		{"00:00:00,1000", 0, true},
		{"aa:bb:cc,ddd", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimecode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTimecode(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimecode(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseTimecode(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTimecodeRoundTrip(t *testing.T) {
	for _, ms := range []int64{0, 1, 999, 1000, 59999, 3599999, 3600000, 86399999, 500000042} {
		got, err := ParseTimecode(FormatTimecode(ms))
		if err != nil {
			t.Fatalf("round trip %d: %v", ms, err)
		}
		if got != ms {
			t.Errorf("round trip %d yielded %d", ms, got)
		}
	}
}

func TestTrackReindexAndSort(t *testing.T) {
	track := &Track{Cues: []Cue{
		{Index: 7, StartMS: 5000, EndMS: 6000, Text: "c"},
		{Index: 3, StartMS: 0, EndMS: 1500, Text: "a"},
		{Index: 9, StartMS: 2000, EndMS: 3500, Text: "b"},
	}}
	track.SortByTime()
	for i, cue := range track.Cues {
		if cue.Index != i+1 {
			t.Errorf("cue %d has index %d", i, cue.Index)
		}
	}
	if track.Cues[0].Text != "a" || track.Cues[1].Text != "b" || track.Cues[2].Text != "c" {
		t.Errorf("unexpected order: %+v", track.Cues)
	}
}

func TestTrackClone(t *testing.T) {
	box := &Box{X: 1, Y: 2, W: 3, H: 4}
	track := &Track{SourceMedia: "a.mkv", Language: "ja", Cues: []Cue{{Index: 1, StartMS: 0, EndMS: 1200, Text: "x", Box: box}}}
	clone := track.Clone()
	clone.Cues[0].Text = "mutated"
	clone.Cues[0].Box.X = 99
	if track.Cues[0].Text != "x" {
		t.Error("clone shares cue slice with source")
	}
	if track.Cues[0].Box.X != 1 {
		t.Error("clone shares box pointer with source")
	}
}

func TestBoxUnion(t *testing.T) {
	got := Box{X: 10, Y: 10, W: 20, H: 10}.Union(Box{X: 5, Y: 15, W: 10, H: 20})
	want := Box{X: 5, Y: 10, W: 25, H: 25}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
}
