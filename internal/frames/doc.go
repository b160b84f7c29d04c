// Package frames produces the lazy, time-ordered sequence of region images
// the extraction pipeline consumes.
//
// The ffmpeg sampler dumps cropped frames at a configured sampling rate into
// a work directory and streams them back with computed timestamps. Region
// cropping follows the configured ROI mode. A slice-backed source exists for
// tests and for callers that already hold frames in memory.
package frames
