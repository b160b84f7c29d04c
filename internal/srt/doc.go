// Package srt formats subtitle tracks for interchange.
//
// It wraps cue text under line-length and line-count constraints, applies
// right-to-left visual reordering for RTL output languages, and reads and
// writes SubRip files. Serialization and parsing round-trip: parsing a file
// this package wrote reproduces the same cues modulo re-wrapping.
package srt
