// Package pipeline runs the extraction flow end to end: sample frames, read
// text off each frame, group the readings into cues, validate the track, and
// persist the project.
//
// A single bad frame never fails a run; detector failures are skipped and
// the skip count reported with the result. Only structurally invalid input
// halts a run.
package pipeline
