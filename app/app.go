package app

import (
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/blob-follower/config"
	"github.com/soocke/blob-follower/domain/capture"
	"github.com/soocke/blob-follower/domain/flight"
	"github.com/soocke/blob-follower/ui/theme"
	"github.com/soocke/blob-follower/ui/view"
)

const windowTitle = "Blob Follower"

// Desktop runs the follower on the Tk event loop. Every tick is scheduled
// with TclAfter, so frame processing and UI callbacks share one thread.
type Desktop struct {
	c       *AppContainer
	logger  *slog.Logger
	width   int
	height  int
	tick    time.Duration
	root    *view.RootView
	overlay view.RegionOverlay
	afterID string
	exiting bool
	exitErr error
}

func NewDesktop(c *AppContainer, width, height int) *Desktop {
	return &Desktop{
		c:      c,
		logger: c.Logger,
		width:  width,
		height: height,
		tick:   time.Duration(c.Config.TickMillis) * time.Millisecond,
	}
}

// Run builds the window and blocks until it is closed. The returned error
// comes from shutdown.
func (d *Desktop) Run() error {
	App.WmTitle(windowTitle)
	WmProtocol(App, "WM_DELETE_WINDOW", d.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", d.width, d.height))
	theme.InitStyles()

	d.root = view.NewRootView(d.logger)
	h := view.Handlers{
		OnCommand:       func(cmd flight.Command) { d.c.CommandPresenter.Handle(cmd) },
		OnStep:          func(id config.TunableID, delta int) { d.c.TunablesPresenter.Step(id, delta) },
		OnApply:         func(v map[config.TunableID]string) error { return d.c.TunablesPresenter.Apply(v) },
		OnTogglePreview: func() { d.c.CommandPresenter.TogglePreview() },
		OnExit:          d.exitHandler,
	}
	if d.c.Screen != nil {
		screen, err := capture.ScreenBounds()
		if err != nil && d.logger != nil {
			d.logger.Warn("screen bounds unavailable", "error", err)
		}
		d.overlay = view.NewRegionOverlay(d.c.Config, d.c.ConfigPath, screen, d.c.SetScreenRegion, d.logger)
		h.OnSelectRegion = d.overlay.OpenOrFocus
	}
	d.root.Build(h)

	d.c.WirePresenters(Views{
		Status:   d.root,
		Flight:   d.root,
		HUD:      d.root,
		Preview:  d.root,
		Command:  d.root,
		Tunables: d.root,
	}, d.scheduleUpdate, d.exitHandler)

	d.scheduleUpdate()
	App.Wait()
	return d.exitErr
}

// scheduleUpdate queues the next loop tick on Tk's event loop thread.
func (d *Desktop) scheduleUpdate() {
	if d.exiting {
		return
	}
	d.afterID = TclAfter(d.tick, d.c.Loop.Tick)
}

// exitHandler persists tunables, lands and stops collaborators before
// destroying the window. Safe to call more than once.
func (d *Desktop) exitHandler() {
	if d.exiting {
		return
	}
	d.exiting = true
	if d.afterID != "" {
		TclAfterCancel(d.afterID)
	}
	d.exitErr = d.c.Shutdown()
	Destroy(App)
}
