package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// Source kinds accepted by Config.Source.
const (
	SourceCamera = "camera"
	SourceScreen = "screen"
)

// Actuator kinds accepted by Config.Actuator.
const (
	ActuatorTello  = "tello"
	ActuatorDryRun = "dryrun"
)

// Config holds runtime configuration for the follower process.
// Fields may be loaded from a JSON file, overridden by FOLLOWER_* environment
// variables and finally by command-line flags.
type Config struct {
	Debug    bool `json:"debug"`
	Headless bool `json:"headless"`

	// Frame source
	Source       string `json:"source"`
	CameraDevice string `json:"camera_device"`
	FrameWidth   int    `json:"frame_width"`
	FrameHeight  int    `json:"frame_height"`

	// Screen region used when Source is "screen". A zero size captures the
	// primary display.
	ScreenX int `json:"screen_x"`
	ScreenY int `json:"screen_y"`
	ScreenW int `json:"screen_w"`
	ScreenH int `json:"screen_h"`

	// Actuator
	Actuator  string `json:"actuator"`
	TelloPort string `json:"tello_port"`
	// TelloVideoRelay is a host:port the Tello video stream is forwarded to
	// over UDP; set CameraDevice to "udp://<same address>" to follow with it.
	TelloVideoRelay string `json:"tello_video_relay"`

	// Camera is the profile active at startup ("front" or "bottom").
	Camera string `json:"camera"`

	// Loop
	TickMillis        int  `json:"tick_ms"`
	StatRefreshFrames int  `json:"stat_refresh_frames"`
	LatchAxes         bool `json:"latch_axes"`

	ProfileDir string `json:"profile_dir"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Source:            SourceCamera,
		CameraDevice:      "0",
		FrameWidth:        640,
		FrameHeight:       360,
		Actuator:          ActuatorDryRun,
		TelloPort:         "8888",
		TickMillis:        33,
		StatRefreshFrames: 15,
		ProfileDir:        "config",
		Camera:            ProfileFront.String(),
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	if c.Source != SourceCamera && c.Source != SourceScreen {
		c.Source = SourceCamera
	}
	if c.CameraDevice == "" {
		c.CameraDevice = "0"
	}
	if c.FrameWidth <= 0 {
		c.FrameWidth = 640
	}
	if c.FrameHeight <= 0 {
		c.FrameHeight = 360
	}
	if c.ScreenW < 0 || c.ScreenH < 0 {
		c.ScreenW, c.ScreenH = 0, 0
	}
	c.Actuator = strings.ToLower(strings.TrimSpace(c.Actuator))
	if c.Actuator != ActuatorTello && c.Actuator != ActuatorDryRun {
		c.Actuator = ActuatorDryRun
	}
	if c.TelloPort == "" {
		c.TelloPort = "8888"
	}
	if c.TickMillis <= 0 {
		c.TickMillis = 33
	}
	if c.TickMillis > 1000 {
		c.TickMillis = 1000
	}
	if c.StatRefreshFrames <= 0 {
		c.StatRefreshFrames = 15
	}
	if p, err := ParseCameraProfile(c.Camera); err == nil {
		c.Camera = p.String()
	} else {
		c.Camera = ProfileFront.String()
	}
	if c.ProfileDir == "" {
		c.ProfileDir = "config"
	}
	return nil
}

// ApplyEnv overrides fields from FOLLOWER_* variables found through lookup
// (normally os.LookupEnv). Unparseable values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		return
	}
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				*dst = b
			}
		}
	}
	flag("FOLLOWER_DEBUG", &c.Debug)
	flag("FOLLOWER_HEADLESS", &c.Headless)
	str("FOLLOWER_SOURCE", &c.Source)
	str("FOLLOWER_CAMERA_DEVICE", &c.CameraDevice)
	num("FOLLOWER_FRAME_WIDTH", &c.FrameWidth)
	num("FOLLOWER_FRAME_HEIGHT", &c.FrameHeight)
	str("FOLLOWER_ACTUATOR", &c.Actuator)
	str("FOLLOWER_TELLO_PORT", &c.TelloPort)
	str("FOLLOWER_TELLO_VIDEO_RELAY", &c.TelloVideoRelay)
	num("FOLLOWER_TICK_MS", &c.TickMillis)
	flag("FOLLOWER_LATCH_AXES", &c.LatchAxes)
	str("FOLLOWER_PROFILE_DIR", &c.ProfileDir)
	str("FOLLOWER_CAMERA", &c.Camera)
	_ = c.Validate()
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
