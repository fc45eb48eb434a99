package capture

import (
	"image"
	"time"
)

// FrameSnapshot is one normalised frame. Sequence starts at 1 and counts
// successful grabs only.
type FrameSnapshot struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// CaptureStats are the Service counters.
type CaptureStats struct {
	Captures    uint64
	Skipped     uint64
	Resized     uint64
	AvgCapture  time.Duration
	LastCapture time.Time
	Sequence    uint64
}

// SkipRatio is the share of grabs that failed, 0 when nothing was grabbed.
func (s CaptureStats) SkipRatio() float64 {
	total := s.Captures + s.Skipped
	if total == 0 {
		return 0
	}
	return float64(s.Skipped) / float64(total)
}

// LogAttrs returns the counters as slog key/value pairs.
func (s CaptureStats) LogAttrs() []any {
	return []any{
		"captures", s.Captures,
		"skipped", s.Skipped,
		"skip_ratio", s.SkipRatio(),
		"resized", s.Resized,
		"avg_capture", s.AvgCapture,
	}
}
