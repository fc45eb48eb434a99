package control

import (
	"github.com/soocke/blob-follower/config"
	"github.com/soocke/blob-follower/domain/vision"
)

// Front profile gains. Pixel errors are divided by the gain, so a negative
// gain steers towards the object.
const (
	FrontVerticalGain  = -250.0
	FrontYawGain       = -200.0
	FrontApproachSpeed = 0.3
	// FrontRetreatMargin widens the band above MaxArea before the vehicle
	// backs off, in config.AreaScale units.
	FrontRetreatMargin = 10
)

// Bottom profile gains.
const (
	BottomForwardGain = -400.0
	BottomStrafeGain  = -800.0
	AutoLandDescent   = -0.1
)

// SteerInput carries everything Steer reads for one frame.
type SteerInput struct {
	Detection   vision.DetectionResult
	FrameWidth  int
	FrameHeight int
	Deadzone    config.Deadzone
	Area        config.AreaThresholds
	Profile     config.CameraProfile
	AutoLand    bool
}

// Steer applies the proportional law of the active profile on top of base.
// Axes the law does not drive keep their value from base. The second result
// requests a landing (bottom profile with auto-land once the object is
// larger than MaxArea). An undetected object or unknown profile returns base
// untouched.
func Steer(base VelocityCommand, in SteerInput) (VelocityCommand, bool) {
	if !in.Detection.Detected {
		return base, false
	}
	switch in.Profile {
	case config.ProfileFront:
		return steerFront(base, in), false
	case config.ProfileBottom:
		return steerBottom(base, in)
	default:
		return base, false
	}
}

func steerFront(cmd VelocityCommand, in SteerInput) VelocityCommand {
	d := in.Detection
	w, h := in.FrameWidth, in.FrameHeight
	if outsideBand(d.CentroidY, h, in.Deadzone.Height) {
		cmd.VZ = float64(d.CentroidY-h/2) / FrontVerticalGain
	}
	if outsideBand(d.CentroidX, w, in.Deadzone.Width) {
		cmd.YawRate = float64(d.CentroidX-w/2) / FrontYawGain
	}
	switch {
	case d.Area < float64(in.Area.MaxArea)*config.AreaScale:
		cmd.VX = FrontApproachSpeed
	case d.Area > float64(in.Area.MaxArea+FrontRetreatMargin)*config.AreaScale:
		cmd.VX = -FrontApproachSpeed
	}
	return cmd
}

func steerBottom(cmd VelocityCommand, in SteerInput) (VelocityCommand, bool) {
	d := in.Detection
	w, h := in.FrameWidth, in.FrameHeight
	if outsideBand(d.CentroidY, h, in.Deadzone.Height) {
		cmd.VX = float64(d.CentroidY-h/2) / BottomForwardGain
	}
	if outsideBand(d.CentroidX, w, in.Deadzone.Width) {
		cmd.VY = float64(d.CentroidX-w/2) / BottomStrafeGain
	}
	if !in.AutoLand {
		return cmd, false
	}
	cmd.VZ = AutoLandDescent
	return cmd, d.Area > float64(in.Area.MaxArea)*config.AreaScale
}
