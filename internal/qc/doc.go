// Package qc validates subtitle tracks against timing and readability rules.
//
// Every run produces a fresh, ordered list of issues. The checker never
// mutates the track; cue indices inside issues are weak references that must
// be re-resolved if the track changes afterwards.
package qc
