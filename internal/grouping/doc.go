// Package grouping folds noisy per-frame text observations into stable,
// time-coded subtitle cues.
//
// The engine keeps a single open accumulator while scanning the frame
// sequence: near-identical text extends the current cue, a blank frame or a
// text change closes it. A post-pass absorbs cues shorter than the configured
// minimum display duration into their nearest neighbor and reassigns dense
// one-based indices. Both stages are deterministic and free of shared state,
// so identical input always produces identical output.
package grouping
