package control

import "fmt"

// VelocityCommand is a 4-axis motion demand. Positive VX is forward, VY
// left, VZ up and YawRate counter-clockwise. Actuators scale and clamp to
// their own ranges.
type VelocityCommand struct {
	VX      float64
	VY      float64
	VZ      float64
	YawRate float64
}

// IsZero reports whether every axis is zero (hover).
func (c VelocityCommand) IsZero() bool { return c == VelocityCommand{} }

// Clamp bounds every axis to [-limit, limit].
func (c VelocityCommand) Clamp(limit float64) VelocityCommand {
	return VelocityCommand{
		VX:      clamp(c.VX, limit),
		VY:      clamp(c.VY, limit),
		VZ:      clamp(c.VZ, limit),
		YawRate: clamp(c.YawRate, limit),
	}
}

func (c VelocityCommand) String() string {
	return fmt.Sprintf("vx=%.2f vy=%.2f vz=%.2f vr=%.2f", c.VX, c.VY, c.VZ, c.YawRate)
}

// Axis identifies one component of a VelocityCommand.
type Axis int

const (
	AxisVX Axis = iota
	AxisVY
	AxisVZ
	AxisYaw
)

func (a Axis) String() string {
	switch a {
	case AxisVX:
		return "vx"
	case AxisVY:
		return "vy"
	case AxisVZ:
		return "vz"
	case AxisYaw:
		return "yaw"
	default:
		return "unknown"
	}
}

// WithAxis returns c with axis a set to v.
func (c VelocityCommand) WithAxis(a Axis, v float64) VelocityCommand {
	switch a {
	case AxisVX:
		c.VX = v
	case AxisVY:
		c.VY = v
	case AxisVZ:
		c.VZ = v
	case AxisYaw:
		c.YawRate = v
	}
	return c
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
