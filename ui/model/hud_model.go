package model

import (
	"fmt"
	"time"

	"github.com/soocke/blob-follower/config"
	"github.com/soocke/blob-follower/domain/control"
	"github.com/soocke/blob-follower/domain/flight"
	"github.com/soocke/blob-follower/domain/vision"
)

// HUD labels.
const (
	TextDetected    = "OBJECT DETECTED"
	TextNotDetected = "NO OBJECT DETECTED"
	TextFollowOn    = "FOLLOWING ON"
	TextFollowOff   = "FOLLOWING OFF"
	TextAutoLandOn  = "AUTO LANDING ON"
	TextAutoLandOff = "AUTO LANDING OFF"
)

// HUDSnapshot is what the heads-up display shows.
type HUDSnapshot struct {
	Detected   bool
	Follow     bool
	AutoLand   bool
	Area       float64 // in tunable units (pixel moments / config.AreaScale)
	Battery    int
	HasBattery bool
	Profile    config.CameraProfile
	State      flight.State
	Command    control.VelocityCommand
	FPS        float64
}

func (s HUDSnapshot) DetectionText() string {
	if s.Detected {
		return TextDetected
	}
	return TextNotDetected
}

func (s HUDSnapshot) FollowText() string {
	if s.Follow {
		return TextFollowOn
	}
	return TextFollowOff
}

func (s HUDSnapshot) AutoLandText() string {
	if s.AutoLand {
		return TextAutoLandOn
	}
	return TextAutoLandOff
}

func (s HUDSnapshot) AreaText() string { return fmt.Sprintf("Object area: %.2f", s.Area) }

// BatteryText returns "Battery: n/a" until the vehicle reports a level.
func (s HUDSnapshot) BatteryText() string {
	if !s.HasBattery {
		return "Battery: n/a"
	}
	return fmt.Sprintf("Battery: %d %%", s.Battery)
}

func (s HUDSnapshot) ProfileText() string { return "Camera: " + s.Profile.String() }

// HUDModel throttles HUD refreshes to one every N frames and averages the
// frame rate over each window. No synchronization: it is fed from the loop.
type HUDModel struct {
	every   int
	frames  int
	start   time.Time
	current HUDSnapshot
}

// NewHUDModel refreshes every n frames; n < 1 refreshes every frame.
func NewHUDModel(n int) *HUDModel {
	return &HUDModel{every: max(n, 1)}
}

// Observe records one processed frame. It returns true when the snapshot was
// refreshed and the view should be redrawn.
func (m *HUDModel) Observe(det vision.DetectionResult, status flight.Status, cmd control.VelocityCommand, battery int, hasBattery bool, now time.Time) bool {
	if m == nil {
		return false
	}
	if m.frames == 0 {
		m.start = now
	}
	m.frames++
	if m.frames < m.every {
		return false
	}
	fps := 0.0
	if el := now.Sub(m.start); el > 0 && m.frames > 1 {
		fps = float64(m.frames-1) / el.Seconds()
	}
	m.current = HUDSnapshot{
		Detected:   det.Detected,
		Follow:     status.Follow,
		AutoLand:   status.AutoLand,
		Area:       det.Area / config.AreaScale,
		Battery:    battery,
		HasBattery: hasBattery,
		Profile:    status.Profile,
		State:      status.State,
		Command:    cmd,
		FPS:        fps,
	}
	m.frames = 0
	return true
}

// Snapshot returns the last refreshed snapshot.
func (m *HUDModel) Snapshot() HUDSnapshot {
	if m == nil {
		return HUDSnapshot{}
	}
	return m.current
}
