package flight

import (
	"errors"

	"github.com/soocke/blob-follower/config"
	"github.com/soocke/blob-follower/domain/control"
)

// ErrUnsupported is returned by actuators that have no equivalent for a
// pass-through command.
var ErrUnsupported = errors.New("flight: command not supported by actuator")

// State is the armed state of the vehicle as last commanded.
type State int

const (
	StateLanded State = iota
	StateAirborne
)

func (s State) String() string {
	switch s {
	case StateLanded:
		return "landed"
	case StateAirborne:
		return "airborne"
	default:
		return "unknown"
	}
}

// Status is the observable mode of the controller.
type Status struct {
	State    State
	Follow   bool
	AutoLand bool
	Profile  config.CameraProfile
}

// StatusListener is called on each status change.
type StatusListener func(prev, next Status)

// TunablesListener is called whenever the active tunables snapshot changes,
// including after a camera switch.
type TunablesListener func(profile config.CameraProfile, t config.Tunables)

// Actuator drives the vehicle. Velocity is sent once per frame.
type Actuator interface {
	SetVelocity(control.VelocityCommand) error
	TakeOff() error
	Land() error
	Calibrate() error
	FlatTrim() error
	Emergency() error
	OnGround() bool
}

// CameraSelector is implemented by actuators that can switch the video feed.
type CameraSelector interface {
	SelectCamera(config.CameraProfile) error
}

// BatteryReporter is implemented by actuators that report charge level.
type BatteryReporter interface {
	Battery() (percent int, ok bool)
}

// TunablesStore persists calibration per profile.
type TunablesStore interface {
	Load(config.CameraProfile) config.Tunables
	Save(config.CameraProfile, config.Tunables) error
}

// Interface slices for consumers (presenters, pipeline).
type StatusSource interface{ Status() Status }
type TunablesSource interface{ Tunables() config.Tunables }
type CommandHandler interface{ Handle(Command) error }
type TunablesEditor interface {
	SetTunable(config.TunableID, int)
	Tunables() config.Tunables
}

// ControllerContract aggregate for DI.
type ControllerContract interface {
	StatusSource
	CommandHandler
	TunablesEditor
	Velocity() control.VelocityCommand
	SetVelocity(control.VelocityCommand)
	ShouldSteer(detected bool) bool
	RequestLand()
	QuitRequested() bool
	Shutdown() error
	AddListener(StatusListener)
	AddTunablesListener(TunablesListener)
}
