package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/blob-follower/config"
	"github.com/soocke/blob-follower/domain/flight"
	"github.com/soocke/blob-follower/ui/model"
	"github.com/soocke/blob-follower/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the callbacks the root view invokes on user actions. Nil
// handlers hide the matching control.
type Handlers struct {
	OnCommand       func(flight.Command)
	OnStep          func(config.TunableID, int)
	OnApply         func(map[config.TunableID]string) error
	OnTogglePreview func()
	OnSelectRegion  func()
	OnExit          func()
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	logger *slog.Logger

	// Subviews
	HUD         HUDPanel
	Tunables    TunablesPanel
	CapturePrev CapturePreview

	// Widgets
	StateLabel *LabelWidget
}

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{logger: logger}
}

// commandButtons are shown top to bottom in the button frame.
var commandButtons = []struct {
	label string
	cmd   flight.Command
	style string
}{
	{"Take Off / Land [space]", flight.CmdToggleArm, theme.StylePrimaryButton},
	{"Follow [f]", flight.CmdToggleFollow, ""},
	{"Auto Land [l]", flight.CmdToggleAutoLand, ""},
	{"Switch Camera [c]", flight.CmdSwitchCamera, ""},
	{"Hover [h]", flight.CmdHover, ""},
	{"Emergency [p]", flight.CmdEmergency, theme.StyleDangerButton},
}

// Build constructs the layout and binds the flight keys on the root window.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: HUD, state label, buttons frame
	hudFrame := Frame()
	Grid(hudFrame, Row(0), Column(0), Columnspan(2), Sticky("nw"), Padx("0.4m"), Pady("0.3m"))
	rv.HUD = NewHUDPanel(hudFrame, 0)

	rv.StateLabel = Label(Txt("State: <none>"), Borderwidth(1), Relief("ridge"))
	Grid(rv.StateLabel, Row(0), Column(2), Sticky("nwe"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	btnRow := 0
	addButton := func(label, style string, fn func()) {
		if style != "" {
			b := TButton(Txt(label), Style(style), Command(fn))
			Grid(b, In(btnFrame), Row(btnRow), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		} else {
			b := Button(Txt(label), Command(fn))
			Grid(b, In(btnFrame), Row(btnRow), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		}
		btnRow++
	}
	if h.OnCommand != nil {
		for _, b := range commandButtons {
			cmd := b.cmd
			addButton(b.label, b.style, func() { h.OnCommand(cmd) })
		}
	}
	if h.OnTogglePreview != nil {
		addButton("Toggle Preview", "", h.OnTogglePreview)
	}
	if h.OnSelectRegion != nil {
		addButton("Capture Region", "", h.OnSelectRegion)
	}
	if h.OnExit != nil {
		addButton("Exit [esc]", "", h.OnExit)
	}

	rv.Tunables = NewTunablesPanel(h.OnStep, h.OnApply)
	endRow := rv.Tunables.Build(1)
	rv.CapturePrev = NewCapturePreview(endRow)

	if h.OnCommand != nil {
		bindKeys(h.OnCommand)
	}
}

// bindKeys binds every entry of flight.KeyMap on the root window. Letters
// are bound in both cases.
func bindKeys(onCommand func(flight.Command)) {
	for r, cmd := range flight.KeyMap {
		cmd := cmd
		fn := Command(func() { onCommand(cmd) })
		for _, seq := range keySequences(r) {
			Bind(App, seq, fn)
		}
	}
}

// keySequences returns the Tk event patterns for r.
func keySequences(r rune) []string {
	switch {
	case r == ' ':
		return []string{"<space>"}
	case r == flight.KeyEscape:
		return []string{"<Escape>"}
	case r >= 'a' && r <= 'z':
		return []string{"<KeyPress-" + string(r) + ">", "<KeyPress-" + string(r-'a'+'A') + ">"}
	}
	return []string{"<KeyPress-" + string(r) + ">"}
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// ShowHUD proxies to the HUD panel.
func (rv *RootView) ShowHUD(s model.HUDSnapshot) {
	if rv != nil && rv.HUD != nil {
		rv.HUD.ShowHUD(s)
	}
}

// SetFlightTime proxies to the HUD panel.
func (rv *RootView) SetFlightTime(current, total time.Duration) {
	if rv != nil && rv.HUD != nil {
		rv.HUD.SetFlightTime(current, total)
	}
}

// ShowTunables proxies to the calibration form.
func (rv *RootView) ShowTunables(profile config.CameraProfile, t config.Tunables) {
	if rv != nil && rv.Tunables != nil {
		rv.Tunables.ShowTunables(profile, t)
	}
}

// UpdateFrame proxies to the capture preview.
func (rv *RootView) UpdateFrame(img image.Image) {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.UpdateFrame(img)
	}
}

// UpdateMask proxies to the capture preview.
func (rv *RootView) UpdateMask(img image.Image) {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.UpdateMask(img)
	}
}

// --- CommandPresenter view contract methods ---
// PreviewReset clears the capture preview.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.Reset()
	}
}

// SetMessage shows the last command error below the calibration form.
func (rv *RootView) SetMessage(s string) {
	if rv != nil && rv.Tunables != nil {
		rv.Tunables.SetMessage(s)
	}
}
