// Package textutil provides text processing utilities for OCR noise handling:
// normalization, edit-distance similarity, cleanup, and filename sanitization.
//
// The primary use cases are:
//   - Normalizing noisy OCR text before comparison (case and width folding,
//     punctuation and whitespace removal)
//   - Computing a normalized edit-distance similarity between two strings
//   - Stripping OCR artifacts from subtitle text
//   - Sanitizing filenames for safe filesystem use
//
// Similarity operates on Unicode code points and is symmetric: identical
// strings score 1.0, maximally different strings score 0.0.
package textutil
