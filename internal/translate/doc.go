// Package translate round-trips subtitle tracks through external
// translation.
//
// The CSV codec exports cues to a fixed-header table and imports translated
// tables back. The merge protocol reconciles imported rows with the track's
// cues on an exact (index, start_ms, end_ms) key; mismatches become warnings,
// never failures. Providers translate cue text directly over HTTP or from a
// static table.
package translate
