// Package ocr adapts external text-recognition engines behind the
// FrameDetector interface.
//
// Engines receive one cropped region image per sampled frame and return zero
// or more detections. The command adapter talks to an external OCR process
// over stdin/stdout with a small JSON contract; the scripted detector replays
// canned detections for tests. Composing a frame's detections into a single
// subtitle text (top-to-bottom, left-to-right) also lives here.
package ocr
