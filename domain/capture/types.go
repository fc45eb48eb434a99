package capture

import (
	"errors"
	"image"
)

// ErrSourceClosed is returned once a grabber has no more frames, for example
// at the end of a video file or after Close.
var ErrSourceClosed = errors.New("capture: source closed")

// ErrEmptyFrame is returned for a grab that produced no pixels.
var ErrEmptyFrame = errors.New("capture: empty frame")

// Grabber produces one frame per call. Implementations block until a frame
// is available.
type Grabber interface {
	Grab() (*image.RGBA, error)
	Close() error
}

// FrameSource provides frames to the processing loop.
type FrameSource interface {
	Next() (FrameSnapshot, error)
	Stats() CaptureStats
}
