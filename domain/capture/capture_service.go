package capture

import (
	"errors"
	"image"
	"log/slog"
	"time"

	"golang.org/x/image/draw"
)

const captureStatsLogInterval = 5 * time.Second

// Service pulls frames from a Grabber on demand and normalises them to a
// fixed frame size. It is driven synchronously by the processing loop and is
// not safe for concurrent use.
type Service struct {
	grabber      Grabber
	logger       *slog.Logger
	size         image.Point
	now          func() time.Time
	captures     uint64
	skipped      uint64
	resized      uint64
	captureNanos uint64
	sequence     uint64
	lastCapture  time.Time
	lastLog      time.Time
}

// NewService wraps g. Frames whose size differs from width x height are
// scaled; a non-positive size disables scaling.
func NewService(logger *slog.Logger, g Grabber, width, height int) *Service {
	return &Service{grabber: g, logger: logger, size: image.Pt(width, height), now: time.Now}
}

// Next grabs one frame. Failed grabs are counted as skipped and the error
// returned; the caller decides whether to retry on the next tick.
func (s *Service) Next() (FrameSnapshot, error) {
	if s.grabber == nil {
		return FrameSnapshot{}, ErrSourceClosed
	}
	start := s.now()
	img, err := s.grabber.Grab()
	if err == nil && (img == nil || img.Bounds().Empty()) {
		err = ErrEmptyFrame
	}
	if err != nil {
		s.skipped++
		if s.logger != nil && !errors.Is(err, ErrSourceClosed) {
			s.logger.Debug("capture skipped", "error", err, "skipped", s.skipped)
		}
		return FrameSnapshot{}, err
	}
	img = s.normalise(img)

	end := s.now()
	s.captureNanos += uint64(end.Sub(start).Nanoseconds())
	s.captures++
	s.sequence++
	s.lastCapture = end
	if end.Sub(s.lastLog) >= captureStatsLogInterval {
		s.lastLog = end
		s.logStats()
	}
	return FrameSnapshot{Image: img, CapturedAt: end, Sequence: s.sequence}, nil
}

// normalise rebases img to the origin and scales it to the configured size.
// Scaled frames come from the frame pool.
func (s *Service) normalise(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	if s.size.X <= 0 || s.size.Y <= 0 || b.Size() == s.size {
		if b.Min == (image.Point{}) {
			return img
		}
		out := AcquireFrame(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Copy(out, image.Point{}, img, b, draw.Src, nil)
		return out
	}
	out := AcquireFrame(image.Rectangle{Max: s.size})
	draw.ApproxBiLinear.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	s.resized++
	return out
}

// Stats returns a snapshot of the counters.
func (s *Service) Stats() CaptureStats {
	var avg time.Duration
	if s.captures > 0 {
		avg = time.Duration(s.captureNanos / s.captures)
	}
	return CaptureStats{
		Captures:    s.captures,
		Skipped:     s.skipped,
		Resized:     s.resized,
		AvgCapture:  avg,
		LastCapture: s.lastCapture,
		Sequence:    s.sequence,
	}
}

// Close releases the grabber.
func (s *Service) Close() error {
	if s.grabber == nil {
		return nil
	}
	g := s.grabber
	s.grabber = nil
	return g.Close()
}

func (s *Service) logStats() {
	if s.logger != nil {
		s.logger.Debug("capture.stats", s.Stats().LogAttrs()...)
	}
}

var _ FrameSource = (*Service)(nil)
