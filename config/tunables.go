package config

import (
	"fmt"
	"strings"
)

// AreaScale converts the area thresholds shown on the control surface into
// raw moment area.
const AreaScale = 100000

// Slider ranges of the live-adjustable values.
const (
	HueMax  = 179
	SatMax  = 255
	ValMax  = 255
	AreaMax = 500
)

// CameraProfile selects which camera feeds the follower and which steering
// law applies. Each profile persists its own Tunables.
type CameraProfile int

const (
	ProfileFront CameraProfile = iota
	ProfileBottom
)

func (p CameraProfile) String() string {
	switch p {
	case ProfileFront:
		return "front"
	case ProfileBottom:
		return "bottom"
	default:
		return fmt.Sprintf("profile(%d)", int(p))
	}
}

// Other returns the profile a camera switch moves to.
func (p CameraProfile) Other() CameraProfile {
	if p == ProfileFront {
		return ProfileBottom
	}
	return ProfileFront
}

// ParseCameraProfile accepts "front" or "bottom" (case-insensitive).
func ParseCameraProfile(s string) (CameraProfile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "front":
		return ProfileFront, nil
	case "bottom":
		return ProfileBottom, nil
	}
	return ProfileFront, fmt.Errorf("config: unknown camera profile %q", s)
}

// ColorBand is an inclusive HSV band. A low bound above its high bound is
// valid and matches nothing.
type ColorBand struct {
	HueLow  int `json:"hue_low"`
	HueHigh int `json:"hue_high"`
	SatLow  int `json:"saturation_low"`
	SatHigh int `json:"saturation_high"`
	ValLow  int `json:"value_low"`
	ValHigh int `json:"value_high"`
}

// AreaThresholds are expressed in AreaScale units.
type AreaThresholds struct {
	MinArea int `json:"area_min"`
	MaxArea int `json:"area_max"`
}

// Deadzone is the size in pixels of the centred tolerance rectangle.
type Deadzone struct {
	Width  int `json:"deadzone_x"`
	Height int `json:"deadzone_y"`
}

// Tunables is the per-profile calibration record. Values are treated as an
// immutable snapshot; edits go through With.
type Tunables struct {
	ColorBand
	AreaThresholds
	Deadzone
}

// DefaultTunables matches everything and centres a half-frame deadzone on a
// 640x360 frame.
func DefaultTunables() Tunables {
	return Tunables{
		ColorBand:      ColorBand{HueLow: 0, HueHigh: HueMax, SatLow: 0, SatHigh: SatMax, ValLow: 0, ValHigh: ValMax},
		AreaThresholds: AreaThresholds{MinArea: 0, MaxArea: AreaMax},
		Deadzone:       Deadzone{Width: 320, Height: 180},
	}
}

// Clamp bounds every value to its range and the deadzone to the frame size.
func (t Tunables) Clamp(frameW, frameH int) Tunables {
	for _, s := range TunableSpecs {
		t = t.With(s.ID, t.Get(s.ID))
	}
	t.Deadzone.Width = clampInt(t.Deadzone.Width, 0, frameW)
	t.Deadzone.Height = clampInt(t.Deadzone.Height, 0, frameH)
	return t
}

// TunableID names one of the live-adjustable values.
type TunableID int

const (
	TunableHueLow TunableID = iota
	TunableHueHigh
	TunableSatLow
	TunableSatHigh
	TunableValLow
	TunableValHigh
	TunableAreaMin
	TunableAreaMax
)

// TunableSpec describes a live-adjustable value for the control surface.
type TunableSpec struct {
	ID    TunableID
	Label string
	Max   int
}

// TunableSpecs lists the adjustable values in display order.
var TunableSpecs = []TunableSpec{
	{TunableHueLow, "Hue low", HueMax},
	{TunableHueHigh, "Hue high", HueMax},
	{TunableSatLow, "Saturation low", SatMax},
	{TunableSatHigh, "Saturation high", SatMax},
	{TunableValLow, "Value low", ValMax},
	{TunableValHigh, "Value high", ValMax},
	{TunableAreaMin, "Area min", AreaMax},
	{TunableAreaMax, "Area max", AreaMax},
}

// SpecFor returns the spec of id.
func SpecFor(id TunableID) (TunableSpec, bool) {
	for _, s := range TunableSpecs {
		if s.ID == id {
			return s, true
		}
	}
	return TunableSpec{}, false
}

// Get returns the current value of id.
func (t Tunables) Get(id TunableID) int {
	switch id {
	case TunableHueLow:
		return t.HueLow
	case TunableHueHigh:
		return t.HueHigh
	case TunableSatLow:
		return t.SatLow
	case TunableSatHigh:
		return t.SatHigh
	case TunableValLow:
		return t.ValLow
	case TunableValHigh:
		return t.ValHigh
	case TunableAreaMin:
		return t.MinArea
	case TunableAreaMax:
		return t.MaxArea
	}
	return 0
}

// With returns a copy of t with id set to v clamped to [0, spec.Max].
// Unknown ids return t unchanged.
func (t Tunables) With(id TunableID, v int) Tunables {
	spec, ok := SpecFor(id)
	if !ok {
		return t
	}
	v = clampInt(v, 0, spec.Max)
	switch id {
	case TunableHueLow:
		t.HueLow = v
	case TunableHueHigh:
		t.HueHigh = v
	case TunableSatLow:
		t.SatLow = v
	case TunableSatHigh:
		t.SatHigh = v
	case TunableValLow:
		t.ValLow = v
	case TunableValHigh:
		t.ValHigh = v
	case TunableAreaMin:
		t.MinArea = v
	case TunableAreaMax:
		t.MaxArea = v
	}
	return t
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
