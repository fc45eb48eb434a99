package app

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/blob-follower/config"
	"github.com/soocke/blob-follower/domain/capture"
	"github.com/soocke/blob-follower/domain/capture/camera"
	"github.com/soocke/blob-follower/domain/drone"
	"github.com/soocke/blob-follower/domain/flight"
	"github.com/soocke/blob-follower/domain/pipeline"
	"github.com/soocke/blob-follower/ui/model"
	"github.com/soocke/blob-follower/ui/presenter"
)

// Views are the presenter-facing surfaces. Any of them may be nil.
type Views struct {
	Status   presenter.StatusView
	Flight   presenter.FlightView
	HUD      presenter.HUDView
	Preview  presenter.PreviewView
	Command  presenter.CommandView
	Tunables presenter.TunablesView
}

// AppContainer assembles collaborators, models and presenters.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Screen     *capture.ScreenGrabber // nil unless the screen source is used
	Capture    *capture.Service
	Actuator   flight.Actuator
	Store      *config.ProfileStore
	Controller *flight.Controller
	Pipeline   *pipeline.Pipeline

	FlightTimer *model.FlightTimer
	HUD         *model.HUDModel
	Preview     *model.PreviewModel

	// Presenters
	StatusPresenter   *presenter.StatusPresenter
	FlightPresenter   *presenter.FlightPresenter
	FramePresenter    *presenter.FramePresenter
	CommandPresenter  *presenter.CommandPresenter
	TunablesPresenter *presenter.TunablesPresenter
	Loop              *presenter.Loop

	stops []func() error
}

// BuildContainer opens the actuator and the frame source and constructs the
// controller and pipeline. A failure here is fatal for the process; anything
// opened before the failure is closed again.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}

	act, err := c.openActuator()
	if err != nil {
		return nil, err
	}
	c.Actuator = act

	g, err := c.openGrabber()
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Capture = capture.NewService(logger, g, cfg.FrameWidth, cfg.FrameHeight)
	c.stops = append(c.stops, c.Capture.Close)

	c.Store = config.NewProfileStore(cfg.ProfileDir, logger)
	profile, err := config.ParseCameraProfile(cfg.Camera)
	if err != nil {
		profile = config.ProfileFront
	}
	c.Controller = flight.NewController(logger, act, c.Store, cfg.FrameWidth, cfg.FrameHeight, profile)
	c.Pipeline = pipeline.New(logger, c.Controller, act, pipeline.Options{LatchAxes: cfg.LatchAxes})

	c.FlightTimer = model.NewFlightTimer()
	c.HUD = model.NewHUDModel(cfg.StatRefreshFrames)
	c.Preview = model.NewPreviewModel(!cfg.Headless)
	return c, nil
}

func (c *AppContainer) openActuator() (flight.Actuator, error) {
	switch c.Config.Actuator {
	case config.ActuatorTello:
		t := drone.NewTello(c.Logger, c.Config.TelloPort, c.Config.TelloVideoRelay)
		if err := t.Start(); err != nil {
			return nil, err
		}
		c.stops = append(c.stops, t.Stop)
		return t, nil
	default:
		return drone.NewDryRun(c.Logger), nil
	}
}

func (c *AppContainer) openGrabber() (capture.Grabber, error) {
	cfg := c.Config
	switch cfg.Source {
	case config.SourceScreen:
		c.Screen = capture.NewScreenGrabber(image.Rect(cfg.ScreenX, cfg.ScreenY, cfg.ScreenX+cfg.ScreenW, cfg.ScreenY+cfg.ScreenH))
		if _, err := c.Screen.Grab(); err != nil {
			return nil, fmt.Errorf("app: screen source: %w", err)
		}
		return c.Screen, nil
	default:
		g, err := camera.Open(cfg.CameraDevice, cfg.FrameWidth, cfg.FrameHeight)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}

// WirePresenters builds the presenters around views and registers them as
// controller listeners. schedule re-arms the loop; onQuit runs on CmdQuit.
func (c *AppContainer) WirePresenters(v Views, schedule, onQuit func()) {
	var battery flight.BatteryReporter
	if b, ok := c.Actuator.(flight.BatteryReporter); ok {
		battery = b
	}
	c.StatusPresenter = presenter.NewStatusPresenter(c.Controller.Status(), v.Status)
	c.FlightPresenter = presenter.NewFlightPresenter(c.FlightTimer, c.Controller, v.Flight)
	c.FramePresenter = presenter.NewFramePresenter(c.Capture, c.Pipeline, c.HUD, battery, c.Preview, v.HUD, v.Preview, c.Logger)
	c.CommandPresenter = presenter.NewCommandPresenter(c.Controller, c.Preview, v.Command, c.Logger, onQuit)
	c.TunablesPresenter = presenter.NewTunablesPresenter(c.Controller, v.Tunables, c.Logger)
	c.Loop = presenter.NewLoop(c.FramePresenter, c.StatusPresenter, c.FlightPresenter, schedule)

	c.Controller.AddListener(c.StatusPresenter.OnStatus)
	c.Controller.AddTunablesListener(c.TunablesPresenter.OnTunables)
	c.TunablesPresenter.OnTunables(c.Controller.Status().Profile, c.Controller.Tunables())
}

// SetScreenRegion retargets the screen source; a no-op for other sources.
func (c *AppContainer) SetScreenRegion(r image.Rectangle) {
	if c.Screen != nil {
		c.Screen.SetRegion(r)
	}
}

// Shutdown persists the active tunables, lands if still airborne and
// stops collaborators in reverse order of opening.
func (c *AppContainer) Shutdown() error {
	var err error
	if c.Controller != nil {
		if serr := c.Controller.Shutdown(); serr != nil {
			err = fmt.Errorf("app: save tunables: %w", serr)
		}
		c.Controller.RequestLand()
	}
	if cerr := c.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Close stops every opened collaborator once.
func (c *AppContainer) Close() error {
	var first error
	for i := len(c.stops) - 1; i >= 0; i-- {
		if err := c.stops[i](); err != nil && first == nil {
			first = err
		}
	}
	c.stops = nil
	return first
}
