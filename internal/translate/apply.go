package translate

import (
	"context"
	"fmt"

	"subtext/internal/subtitle"
)

// Apply translates a track's cue text into targetLang through the provider.
// Cues the provider returns no text for are left out of the result and
// counted as skipped rather than failing the run. The source track is not
// modified.
func Apply(ctx context.Context, provider Provider, track *subtitle.Track, targetLang string) (*subtitle.Track, int, error) {
	texts := make([]string, len(track.Cues))
	for i, cue := range track.Cues {
		texts[i] = cue.Text
	}
	translated, err := provider.Translate(ctx, texts, targetLang)
	if err != nil {
		return nil, 0, fmt.Errorf("translate track to %s: %w", targetLang, err)
	}
	if len(translated) != len(texts) {
		return nil, 0, fmt.Errorf("translate track to %s: got %d texts for %d cues", targetLang, len(translated), len(texts))
	}

	out := &subtitle.Track{SourceMedia: track.SourceMedia, Language: targetLang}
	skipped := 0
	for i, cue := range track.Cues {
		if translated[i] == "" {
			skipped++
			continue
		}
		cue.Text = translated[i]
		cue.Box = nil
		out.Cues = append(out.Cues, cue)
	}
	out.Reindex()
	return out, skipped, nil
}
