package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileStoreMissingUsesDefaults(t *testing.T) {
	s := NewProfileStore(t.TempDir(), nil)
	assert.Equal(t, DefaultTunables(), s.Load(ProfileFront))
	assert.Equal(t, DefaultTunables(), s.Load(ProfileBottom))
}

func TestProfileStoreMalformedUsesDefaults(t *testing.T) {
	s := NewProfileStore(t.TempDir(), nil)
	require.NoError(t, os.WriteFile(s.Path(ProfileFront), []byte("<xml/>"), 0o644))
	assert.Equal(t, DefaultTunables(), s.Load(ProfileFront))
}

func TestProfileStoreProfilesAreIndependent(t *testing.T) {
	s := NewProfileStore(t.TempDir(), nil)
	front := DefaultTunables().With(TunableHueLow, 10).With(TunableAreaMax, 42)
	bottom := DefaultTunables().With(TunableHueHigh, 20)
	require.NoError(t, s.Save(ProfileFront, front))
	require.NoError(t, s.Save(ProfileBottom, bottom))

	assert.Equal(t, front, s.Load(ProfileFront))
	assert.Equal(t, bottom, s.Load(ProfileBottom))
}

func TestProfileStorePartialDocumentKeepsDefaults(t *testing.T) {
	s := NewProfileStore(t.TempDir(), nil)
	require.NoError(t, os.WriteFile(s.Path(ProfileBottom), []byte(`{"hue_low": 30, "deadzone_x": 100}`), 0o644))
	got := s.Load(ProfileBottom)
	assert.Equal(t, 30, got.HueLow)
	assert.Equal(t, 100, got.Deadzone.Width)
	assert.Equal(t, HueMax, got.HueHigh)
	assert.Equal(t, 180, got.Deadzone.Height)
}

func TestTunablesWithClamps(t *testing.T) {
	tn := DefaultTunables()
	assert.Equal(t, HueMax, tn.With(TunableHueLow, 400).HueLow)
	assert.Equal(t, 0, tn.With(TunableSatHigh, -3).SatHigh)
	assert.Equal(t, tn, tn.With(TunableID(99), 7))
}

func TestTunablesClampDeadzoneToFrame(t *testing.T) {
	tn := DefaultTunables()
	tn.Deadzone = Deadzone{Width: 1000, Height: -5}
	got := tn.Clamp(640, 360)
	assert.Equal(t, Deadzone{Width: 640, Height: 0}, got.Deadzone)
}

func TestCameraProfileParseAndOther(t *testing.T) {
	p, err := ParseCameraProfile(" Bottom ")
	require.NoError(t, err)
	assert.Equal(t, ProfileBottom, p)
	assert.Equal(t, ProfileFront, p.Other())
	_, err = ParseCameraProfile("side")
	assert.Error(t, err)
	assert.Equal(t, "front_camera_config.json", FileName(ProfileFront))
}
