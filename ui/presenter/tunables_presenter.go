package presenter

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/blob-follower/config"
	"github.com/soocke/blob-follower/domain/flight"
)

// TunablesView shows the active calibration.
type TunablesView interface {
	ShowTunables(profile config.CameraProfile, t config.Tunables)
}

// TunablesPresenter applies edits from the control surface and keeps the
// view in sync with the controller.
type TunablesPresenter struct {
	editor flight.TunablesEditor
	view   TunablesView
	logger *slog.Logger
}

func NewTunablesPresenter(editor flight.TunablesEditor, view TunablesView, logger *slog.Logger) *TunablesPresenter {
	return &TunablesPresenter{editor: editor, view: view, logger: logger}
}

// OnTunables matches flight.TunablesListener.
func (p *TunablesPresenter) OnTunables(profile config.CameraProfile, t config.Tunables) {
	if p == nil || p.view == nil {
		return
	}
	p.view.ShowTunables(profile, t)
}

// Step nudges one value by delta.
func (p *TunablesPresenter) Step(id config.TunableID, delta int) {
	if p == nil || p.editor == nil {
		return
	}
	p.editor.SetTunable(id, p.editor.Tunables().Get(id)+delta)
}

// Apply parses the entered values. Valid fields are applied even when others
// fail; the returned error lists the rejected ones.
func (p *TunablesPresenter) Apply(values map[config.TunableID]string) error {
	if p == nil || p.editor == nil {
		return nil
	}
	var errs []error
	for _, spec := range config.TunableSpecs {
		raw, ok := values[spec.ID]
		if !ok {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not a number", spec.Label, raw))
			continue
		}
		p.editor.SetTunable(spec.ID, v)
	}
	err := errors.Join(errs...)
	if err != nil && p.logger != nil {
		p.logger.Warn("tunables rejected", "error", err)
	}
	return err
}
