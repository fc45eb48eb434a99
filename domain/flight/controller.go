package flight

import (
	"fmt"
	"log/slog"

	"github.com/soocke/blob-follower/config"
	"github.com/soocke/blob-follower/domain/control"
)

// NudgeSpeed is the magnitude a manual command sets on its axis.
const NudgeSpeed = 1.0

var nudges = map[Command]struct {
	axis control.Axis
	sign float64
}{
	CmdForward:     {control.AxisVX, 1},
	CmdBackward:    {control.AxisVX, -1},
	CmdYawLeft:     {control.AxisYaw, 1},
	CmdYawRight:    {control.AxisYaw, -1},
	CmdStrafeLeft:  {control.AxisVY, 1},
	CmdStrafeRight: {control.AxisVY, -1},
	CmdUp:          {control.AxisVZ, 1},
	CmdDown:        {control.AxisVZ, -1},
}

// Controller owns the flight mode, the active camera profile with its
// tunables snapshot, and the current velocity command. It is driven from a
// single loop goroutine and is not safe for concurrent use.
type Controller struct {
	logger   *slog.Logger
	act      Actuator
	store    TunablesStore
	frameW   int
	frameH   int
	status   Status
	tunables config.Tunables
	velocity control.VelocityCommand
	quit     bool

	listeners         []StatusListener
	tunablesListeners []TunablesListener
}

// NewController loads the tunables of profile from store and starts landed
// with follow and auto-land off.
func NewController(logger *slog.Logger, act Actuator, store TunablesStore, frameW, frameH int, profile config.CameraProfile) *Controller {
	c := &Controller{logger: logger, act: act, store: store, frameW: frameW, frameH: frameH}
	c.status.Profile = profile
	c.tunables = c.load(profile)
	if act != nil && !act.OnGround() {
		c.status.State = StateAirborne
	}
	return c
}

func (c *Controller) load(p config.CameraProfile) config.Tunables {
	t := config.DefaultTunables()
	if c.store != nil {
		t = c.store.Load(p)
	}
	return t.Clamp(c.frameW, c.frameH)
}

// Status returns the current mode.
func (c *Controller) Status() Status { return c.status }

// Tunables returns the active snapshot.
func (c *Controller) Tunables() config.Tunables { return c.tunables }

// Velocity returns the current velocity command.
func (c *Controller) Velocity() control.VelocityCommand { return c.velocity }

// SetVelocity replaces the current velocity command.
func (c *Controller) SetVelocity(v control.VelocityCommand) { c.velocity = v }

// ShouldSteer reports whether the steering law runs this frame.
func (c *Controller) ShouldSteer(detected bool) bool { return detected && c.status.Follow }

// QuitRequested reports whether a quit command was handled.
func (c *Controller) QuitRequested() bool { return c.quit }

// AddListener registers a status listener.
func (c *Controller) AddListener(l StatusListener) {
	if l != nil {
		c.listeners = append(c.listeners, l)
	}
}

// AddTunablesListener registers a tunables listener.
func (c *Controller) AddTunablesListener(l TunablesListener) {
	if l != nil {
		c.tunablesListeners = append(c.tunablesListeners, l)
	}
}

// SetTunable applies one edit from the control surface. The value is clamped
// and takes effect on the next frame.
func (c *Controller) SetTunable(id config.TunableID, v int) {
	next := c.tunables.With(id, v)
	if next == c.tunables {
		return
	}
	c.tunables = next
	c.notifyTunables()
}

// Handle executes one discrete command. Actuator failures are returned
// wrapped; the mode change still happens where it does not depend on the
// actuator.
func (c *Controller) Handle(cmd Command) error {
	if n, ok := nudges[cmd]; ok {
		c.velocity = c.velocity.WithAxis(n.axis, n.sign*NudgeSpeed)
		return nil
	}
	switch cmd {
	case CmdToggleArm:
		return c.toggleArm()
	case CmdHover:
		c.velocity = control.VelocityCommand{}
	case CmdCalibrate:
		return c.forward(cmd, c.actuatorCall(func(a Actuator) error { return a.Calibrate() }))
	case CmdFlatTrim:
		return c.forward(cmd, c.actuatorCall(func(a Actuator) error { return a.FlatTrim() }))
	case CmdEmergency:
		c.velocity = control.VelocityCommand{}
		err := c.actuatorCall(func(a Actuator) error { return a.Emergency() })
		c.setStatus(func(s *Status) { s.State = StateLanded })
		return c.forward(cmd, err)
	case CmdToggleFollow:
		c.setStatus(func(s *Status) { s.Follow = !s.Follow })
	case CmdToggleAutoLand:
		c.setStatus(func(s *Status) { s.AutoLand = !s.AutoLand })
	case CmdSwitchCamera:
		return c.switchCamera()
	case CmdQuit:
		c.quit = true
	case CmdNone:
	default:
		return fmt.Errorf("flight: unhandled command %s", cmd)
	}
	return nil
}

// RequestLand lands the vehicle on behalf of the steering law. It is a no-op
// once the actuator reports the vehicle on the ground.
func (c *Controller) RequestLand() {
	if c.act == nil || c.act.OnGround() {
		return
	}
	if err := c.act.Land(); err != nil {
		c.logWarn("auto land failed", err)
		return
	}
	c.velocity = control.VelocityCommand{}
	if c.logger != nil {
		c.logger.Info("auto land", "profile", c.status.Profile.String())
	}
	c.setStatus(func(s *Status) { s.State = StateLanded })
}

// Shutdown persists the active profile's tunables.
func (c *Controller) Shutdown() error {
	if c.store == nil {
		return nil
	}
	return c.store.Save(c.status.Profile, c.tunables)
}

func (c *Controller) toggleArm() error {
	if c.act == nil {
		return fmt.Errorf("flight: arm: no actuator")
	}
	if c.act.OnGround() {
		if err := c.act.TakeOff(); err != nil {
			return fmt.Errorf("flight: take off: %w", err)
		}
		c.setStatus(func(s *Status) { s.State = StateAirborne })
		return nil
	}
	c.velocity = control.VelocityCommand{}
	if err := c.act.Land(); err != nil {
		return fmt.Errorf("flight: land: %w", err)
	}
	c.setStatus(func(s *Status) { s.State = StateLanded })
	return nil
}

func (c *Controller) switchCamera() error {
	prev := c.status.Profile
	next := prev.Other()
	var saveErr error
	if c.store != nil {
		saveErr = c.store.Save(prev, c.tunables)
		if saveErr != nil {
			c.logWarn("profile save failed", saveErr)
		}
	}
	if sel, ok := c.act.(CameraSelector); ok {
		if err := sel.SelectCamera(next); err != nil {
			c.logWarn("camera select failed", err)
		}
	}
	c.tunables = c.load(next)
	c.setStatus(func(s *Status) { s.Profile = next })
	c.notifyTunables()
	if saveErr != nil {
		return fmt.Errorf("flight: switch camera: %w", saveErr)
	}
	return nil
}

func (c *Controller) actuatorCall(fn func(Actuator) error) error {
	if c.act == nil {
		return ErrUnsupported
	}
	return fn(c.act)
}

func (c *Controller) forward(cmd Command, err error) error {
	if err != nil {
		return fmt.Errorf("flight: %s: %w", cmd, err)
	}
	return nil
}

func (c *Controller) setStatus(mut func(*Status)) {
	prev := c.status
	mut(&c.status)
	next := c.status
	if prev == next {
		return
	}
	if c.logger != nil {
		c.logger.Debug("mode transition",
			"state", next.State.String(), "follow", next.Follow,
			"autoland", next.AutoLand, "profile", next.Profile.String())
	}
	for _, l := range c.listeners {
		l(prev, next)
	}
}

func (c *Controller) notifyTunables() {
	for _, l := range c.tunablesListeners {
		l(c.status.Profile, c.tunables)
	}
}

func (c *Controller) logWarn(msg string, err error) {
	if c.logger != nil {
		c.logger.Warn(msg, "profile", c.status.Profile.String(), "error", err)
	}
}

// Ensure contract satisfaction
var _ ControllerContract = (*Controller)(nil)
