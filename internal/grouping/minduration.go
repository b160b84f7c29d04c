package grouping

import "subtext/internal/subtitle"

// EnforceMinDuration absorbs cues shorter than minDurationMS into their
// temporally nearer neighbor. The neighbor's time range grows to cover the
// short cue and the neighbor's text is kept; short cues are presumed spurious
// and their text is dropped. Ties between neighbors prefer the following cue.
// A cue that results from a merge is settled and is not revisited as a merge
// subject. A lone cue with no neighbor is extended forward by its deficit.
func EnforceMinDuration(cues []subtitle.Cue, minDurationMS int64) []subtitle.Cue {
	if minDurationMS <= 0 || len(cues) == 0 {
		return cues
	}

	type entry struct {
		cue     subtitle.Cue
		settled bool
	}
	entries := make([]entry, len(cues))
	for i, c := range cues {
		entries[i] = entry{cue: c}
	}

	i := 0
	for i < len(entries) {
		cur := &entries[i]
		if cur.settled || cur.cue.DurationMS() >= minDurationMS {
			i++
			continue
		}
		if len(entries) == 1 {
			cur.cue.EndMS += minDurationMS - cur.cue.DurationMS()
			cur.settled = true
			break
		}

		preferFollowing := true
		if i == len(entries)-1 {
			preferFollowing = false
		} else if i > 0 {
			prevGap := cur.cue.StartMS - entries[i-1].cue.EndMS
			nextGap := entries[i+1].cue.StartMS - cur.cue.EndMS
			preferFollowing = nextGap <= prevGap
		}

		if preferFollowing {
			next := &entries[i+1]
			if !next.settled && next.cue.DurationMS() < minDurationMS {
				// Both short: the earlier cue absorbs the later one and
				// the earlier text survives.
				cur.cue.EndMS = next.cue.EndMS
				cur.settled = true
				entries = append(entries[:i+1], entries[i+2:]...)
				i++
				continue
			}
			next.cue.StartMS = cur.cue.StartMS
			next.settled = true
			entries = append(entries[:i], entries[i+1:]...)
			continue
		}

		prev := &entries[i-1]
		prev.cue.EndMS = cur.cue.EndMS
		prev.settled = true
		entries = append(entries[:i], entries[i+1:]...)
	}

	out := make([]subtitle.Cue, len(entries))
	for i, e := range entries {
		out[i] = e.cue
	}
	return out
}
