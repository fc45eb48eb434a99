package presenter

import (
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/blob-follower/domain/capture"
	"github.com/soocke/blob-follower/domain/flight"
	"github.com/soocke/blob-follower/domain/pipeline"
	"github.com/soocke/blob-follower/ui/images"
	"github.com/soocke/blob-follower/ui/model"
)

// FrameSource supplies the next captured frame.
type FrameSource interface {
	Next() (capture.FrameSnapshot, error)
}

// FrameProcessor runs detection and steering on one frame.
type FrameProcessor interface {
	Process(*image.RGBA) pipeline.Result
}

// PreviewEnabled reports whether the preview should be rendered.
type PreviewEnabled interface{ Enabled() bool }

// PreviewView shows the annotated camera frame and the segmentation mask.
type PreviewView interface {
	UpdateFrame(img image.Image)
	UpdateMask(img image.Image)
}

// HUDView shows the heads-up display.
type HUDView interface {
	ShowHUD(model.HUDSnapshot)
}

// FramePresenter pulls one frame per tick, runs it through the pipeline and
// renders the results. Views and the battery reporter are optional.
type FramePresenter struct {
	Source    FrameSource
	Processor FrameProcessor
	HUD       *model.HUDModel
	Battery   flight.BatteryReporter
	Preview   PreviewEnabled
	HUDView   HUDView
	View      PreviewView
	logger    *slog.Logger

	lastErr string
	frames  uint64
}

func NewFramePresenter(source FrameSource, processor FrameProcessor, hud *model.HUDModel, battery flight.BatteryReporter, preview PreviewEnabled, hudView HUDView, view PreviewView, logger *slog.Logger) *FramePresenter {
	return &FramePresenter{
		Source:    source,
		Processor: processor,
		HUD:       hud,
		Battery:   battery,
		Preview:   preview,
		HUDView:   hudView,
		View:      view,
		logger:    logger,
	}
}

// ProcessFrame handles one tick. A failed grab still runs the pipeline with
// no frame so the vehicle keeps receiving a command every tick.
func (p *FramePresenter) ProcessFrame(now time.Time) {
	if p == nil || p.Source == nil || p.Processor == nil {
		return
	}
	snap, err := p.Source.Next()
	p.noteError(err)
	frame := snap.Image
	if err != nil {
		frame = nil
	}
	res := p.Processor.Process(frame)
	p.frames++

	battery, hasBattery := 0, false
	if p.Battery != nil {
		battery, hasBattery = p.Battery.Battery()
	}
	if p.HUD.Observe(res.Detection, res.Status, res.Command, battery, hasBattery, now) && p.HUDView != nil {
		p.HUDView.ShowHUD(p.HUD.Snapshot())
	}

	if frame == nil {
		return
	}
	if p.View != nil && p.Preview != nil && p.Preview.Enabled() {
		p.View.UpdateFrame(images.Annotate(frame, images.Overlay{
			Deadzone: res.Deadzone,
			Blob:     res.Blob,
			Centroid: image.Pt(res.Detection.CentroidX, res.Detection.CentroidY),
			Detected: res.Detection.Detected,
		}))
		if res.Mask != nil {
			p.View.UpdateMask(res.Mask)
		}
	}
	capture.RecycleFrame(frame)
}

// Frames returns the number of ticks processed.
func (p *FramePresenter) Frames() uint64 {
	if p == nil {
		return 0
	}
	return p.frames
}

// noteError logs a grab error once per distinct message, and logs recovery.
func (p *FramePresenter) noteError(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == p.lastErr {
		return
	}
	p.lastErr = msg
	if p.logger == nil {
		return
	}
	switch {
	case err == nil:
		p.logger.Info("frame source recovered")
	case errors.Is(err, capture.ErrSourceClosed):
		p.logger.Warn("frame source closed", "error", err)
	default:
		p.logger.Warn("frame grab failed", "error", err)
	}
}
