// Package pipeline runs the per-frame detect, steer and dispatch sequence.
package pipeline

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/blob-follower/domain/control"
	"github.com/soocke/blob-follower/domain/flight"
	"github.com/soocke/blob-follower/domain/vision"
)

// Controller is the slice of flight.Controller the pipeline drives.
type Controller interface {
	flight.StatusSource
	flight.TunablesSource
	Velocity() control.VelocityCommand
	SetVelocity(control.VelocityCommand)
	ShouldSteer(detected bool) bool
	RequestLand()
}

// VelocitySink receives the command chosen for each frame.
type VelocitySink interface {
	SetVelocity(control.VelocityCommand) error
}

// Result describes one processed frame.
type Result struct {
	Detection vision.DetectionResult
	Mask      *image.Gray // segmented mask
	Blob      *image.Gray // filled selected blob, nil when none
	Deadzone  image.Rectangle
	Command   control.VelocityCommand
	Status    flight.Status
	Steered   bool
	Landing   bool
	Elapsed   time.Duration
}

// Options tune the per-frame policy.
type Options struct {
	// LatchAxes keeps axis values from earlier frames when the steering law
	// does not drive them, and keeps the last command when follow mode loses
	// the object. When false each steered frame starts from hover and a
	// follow frame without a detection commands hover.
	LatchAxes bool
}

// Pipeline is not safe for concurrent use; it runs on the loop goroutine.
type Pipeline struct {
	logger *slog.Logger
	ctrl   Controller
	sink   VelocitySink
	opts   Options
	now    func() time.Time
}

// New returns a pipeline dispatching to sink.
func New(logger *slog.Logger, ctrl Controller, sink VelocitySink, opts Options) *Pipeline {
	return &Pipeline{logger: logger, ctrl: ctrl, sink: sink, opts: opts, now: time.Now}
}

// Process runs one frame through segmentation, blob extraction and, when
// follow mode is on and the object is detected, the steering law. The
// resulting command is sent to the sink every frame. When the bottom camera
// triggers auto land, the steered descent is sent first and the land request
// follows.
func (p *Pipeline) Process(frame *image.RGBA) Result {
	start := p.now()
	t := p.ctrl.Tunables()
	status := p.ctrl.Status()

	var res Result
	var w, h int
	if frame != nil {
		w, h = frame.Bounds().Dx(), frame.Bounds().Dy()
		out, err := vision.Analyze(frame, t.ColorBand, t.MinArea)
		if err != nil && p.logger != nil {
			p.logger.Warn("frame analysis failed", "error", err)
		}
		res.Detection, res.Mask, res.Blob = out.Detection, out.Mask, out.Blob
	}
	res.Deadzone = control.Bounds(w, h, t.Deadzone.Width, t.Deadzone.Height)

	switch {
	case p.ctrl.ShouldSteer(res.Detection.Detected):
		base := p.ctrl.Velocity()
		if !p.opts.LatchAxes {
			base = control.VelocityCommand{}
		}
		cmd, land := control.Steer(base, control.SteerInput{
			Detection:   res.Detection,
			FrameWidth:  w,
			FrameHeight: h,
			Deadzone:    t.Deadzone,
			Area:        t.AreaThresholds,
			Profile:     status.Profile,
			AutoLand:    status.AutoLand,
		})
		p.ctrl.SetVelocity(cmd)
		res.Steered = true
		res.Landing = land
	case status.Follow && !p.opts.LatchAxes:
		p.ctrl.SetVelocity(control.VelocityCommand{})
	}

	res.Command = p.ctrl.Velocity()
	if p.sink != nil {
		if err := p.sink.SetVelocity(res.Command); err != nil && p.logger != nil {
			p.logger.Warn("velocity dispatch failed", "error", err)
		}
	}
	// The descent command goes out before the land request clears it.
	if res.Landing {
		p.ctrl.RequestLand()
	}
	res.Status = p.ctrl.Status()
	res.Elapsed = p.now().Sub(start)
	return res
}
