package frames

import (
	"context"
	"io"
)

// Frame is one sampled region image with its presentation timestamp.
type Frame struct {
	TimestampMS int64
	Image       []byte
}

// Source yields frames in strictly increasing timestamp order. Next returns
// io.EOF once the sequence is exhausted.
type Source interface {
	Next(ctx context.Context) (Frame, error)
}

// SliceSource replays an in-memory frame sequence.
type SliceSource struct {
	frames []Frame
	pos    int
}

// NewSliceSource builds a Source over the provided frames.
func NewSliceSource(frames ...Frame) *SliceSource {
	return &SliceSource{frames: frames}
}

func (s *SliceSource) Next(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	if s.pos >= len(s.frames) {
		return Frame{}, io.EOF
	}
	frame := s.frames[s.pos]
	s.pos++
	return frame, nil
}
