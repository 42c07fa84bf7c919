package verification_usecases

import (
	"context"
	"errors"

	"botosafe.io/infrastructure/biometric"
)

// NewFrameReplay adapts a pre-captured clip to the Camera port. Browsers do
// the capturing client side, so the server replays the uploaded frames in
// order. Every Acquire starts the clip over, which is what lets retry
// attempts rewind to the first frame.
func NewFrameReplay(frames []biometric.Frame) Camera {
	return &frameReplay{frames: frames}
}

type frameReplay struct {
	frames []biometric.Frame
}

func (c *frameReplay) Acquire(_ context.Context) (Stream, error) {
	if len(c.frames) == 0 {
		return nil, errors.New("no frames captured")
	}
	return &replayStream{frames: c.frames}, nil
}

type replayStream struct {
	frames []biometric.Frame
	cursor int
}

func (s *replayStream) Next(_ context.Context) (biometric.Frame, error) {
	if s.cursor >= len(s.frames) {
		return nil, errors.New("capture ended before the challenges completed")
	}
	frame := s.frames[s.cursor]
	s.cursor++
	return frame, nil
}

func (s *replayStream) Release() {}
