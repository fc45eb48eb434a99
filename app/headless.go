package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/blob-follower/config"
	"github.com/soocke/blob-follower/domain/drone"
	"github.com/soocke/blob-follower/ui/model"
)

// keyBuffer bounds the keyboard command queue between ticks.
const keyBuffer = 16

// RunHeadless drives the loop from a ticker without a window. Commands come
// from the terminal through the gobot keyboard driver and are drained at the
// top of each iteration; the HUD and status go to the log.
func RunHeadless(ctx context.Context, c *AppContainer) error {
	keys := drone.NewKeyboard(c.Logger, keyBuffer)
	if err := keys.Start(); err != nil {
		return fmt.Errorf("app: keyboard: %w", err)
	}
	defer func() { _ = keys.Stop() }()

	quit := false
	lv := logViews{logger: c.Logger}
	c.WirePresenters(Views{Status: lv, HUD: lv, Command: lv, Tunables: lv}, nil, func() { quit = true })

	tick := time.Duration(c.Config.TickMillis) * time.Millisecond
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for !quit {
		select {
		case <-ctx.Done():
			quit = true
			continue
		case <-ticker.C:
		}
		c.CommandPresenter.Drain(keys.Commands())
		if quit || c.Controller.QuitRequested() {
			break
		}
		c.Loop.Tick()
	}
	return c.Shutdown()
}

// logViews renders presenter output as log records.
type logViews struct{ logger *slog.Logger }

func (v logViews) SetStateLabel(s string) {
	if v.logger != nil {
		v.logger.Info("status", "state", s)
	}
}

func (v logViews) ShowHUD(s model.HUDSnapshot) {
	if v.logger == nil {
		return
	}
	v.logger.Info("hud",
		"detection", s.DetectionText(),
		"follow", s.FollowText(),
		"auto_land", s.AutoLandText(),
		"area", fmt.Sprintf("%.2f", s.Area),
		"battery", s.BatteryText(),
		"camera", s.Profile.String(),
		"command", s.Command.String(),
		"fps", fmt.Sprintf("%.1f", s.FPS),
	)
}

func (v logViews) PreviewReset() {}

func (v logViews) SetMessage(s string) {
	if v.logger != nil && s != "" {
		v.logger.Warn("command", "message", s)
	}
}

func (v logViews) ShowTunables(profile config.CameraProfile, t config.Tunables) {
	if v.logger != nil {
		v.logger.Info("tunables", "profile", profile.String(), "values", t)
	}
}
