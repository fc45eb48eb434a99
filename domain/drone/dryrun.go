package drone

import (
	"log/slog"

	"github.com/soocke/blob-follower/config"
	"github.com/soocke/blob-follower/domain/control"
	"github.com/soocke/blob-follower/domain/flight"
)

// DryRun is an actuator that only logs. It keeps an on-ground flag so the
// arm toggle behaves as it would with a vehicle attached.
type DryRun struct {
	logger   *slog.Logger
	onGround bool
	last     control.VelocityCommand
	camera   config.CameraProfile
}

// NewDryRun returns a DryRun that starts on the ground.
func NewDryRun(logger *slog.Logger) *DryRun {
	return &DryRun{logger: logger, onGround: true}
}

// SetVelocity logs only changes, so a steady command does not flood the log.
func (d *DryRun) SetVelocity(cmd control.VelocityCommand) error {
	if cmd == d.last {
		return nil
	}
	d.last = cmd
	d.log("velocity", "command", cmd.String())
	return nil
}

func (d *DryRun) TakeOff() error {
	d.onGround = false
	d.log("takeoff")
	return nil
}

func (d *DryRun) Land() error {
	d.onGround = true
	d.log("land")
	return nil
}

func (d *DryRun) Calibrate() error { d.log("calibrate"); return nil }

func (d *DryRun) FlatTrim() error { d.log("flat trim"); return nil }

func (d *DryRun) Emergency() error {
	d.onGround = true
	d.log("emergency")
	return nil
}

func (d *DryRun) OnGround() bool { return d.onGround }

// SelectCamera records the requested feed.
func (d *DryRun) SelectCamera(p config.CameraProfile) error {
	d.camera = p
	d.log("camera", "profile", p.String())
	return nil
}

// LastVelocity returns the most recent command.
func (d *DryRun) LastVelocity() control.VelocityCommand { return d.last }

func (d *DryRun) log(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Info("dryrun "+msg, args...)
	}
}

var (
	_ flight.Actuator       = (*DryRun)(nil)
	_ flight.CameraSelector = (*DryRun)(nil)
)
