// Package project persists extraction projects in SQLite.
//
// A project snapshot records the source media, the settings the pipeline ran
// with, and the cue list, so a run can be reopened and reproduced later. The
// store is single-writer: a file lock next to the database keeps concurrent
// processes out.
package project
