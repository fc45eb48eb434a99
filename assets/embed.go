package assets

import (
	"embed"
	"fmt"
)

//go:embed profiles/*.json
var profiles embed.FS

// DefaultProfile returns the shipped calibration document for the given
// profile file name (for example "front_camera_config.json").
func DefaultProfile(name string) ([]byte, error) {
	b, err := profiles.ReadFile("profiles/" + name)
	if err != nil {
		return nil, fmt.Errorf("embedded profile %s: %w", name, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("embedded profile %s is empty", name)
	}
	return b, nil
}
