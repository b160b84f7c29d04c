// Package subtitle defines the cue and track data model shared by the
// extraction, QC, format, and translation packages.
//
// A Track owns an ordered list of Cues. Cue indexes are a dense 1-based
// sequence reflecting temporal order; Reindex restores that invariant after
// any insertion, removal, or reordering.
package subtitle
