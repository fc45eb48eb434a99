package view

import (
	"image"
	"log/slog"

	"github.com/soocke/blob-follower/config"
	"github.com/soocke/blob-follower/ui/model"
	"github.com/soocke/blob-follower/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// RegionOverlay is a see-through window placed over the part of the desktop
// the screen source should capture.
type RegionOverlay interface {
	OpenOrFocus()
	Clear()
	Region() image.Rectangle
}

type regionOverlay struct {
	logger   *slog.Logger
	cfg      *config.Config
	cfgPath  string
	model    *model.RegionModel
	onChange func(image.Rectangle)
	win      *ToplevelWidget
}

// NewRegionOverlay starts from the region stored in cfg. onChange receives
// every confirmed or cleared region.
func NewRegionOverlay(cfg *config.Config, cfgPath string, screen image.Rectangle, onChange func(image.Rectangle), logger *slog.Logger) RegionOverlay {
	return &regionOverlay{
		logger:   logger,
		cfg:      cfg,
		cfgPath:  cfgPath,
		model:    model.NewRegionModel(cfg, screen),
		onChange: onChange,
	}
}

func (v *regionOverlay) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window, v.model.Geometry())
		return
	}
	v.win = App.Toplevel(Borderwidth(2), Background(theme.ColorKeyed))
	v.win.WmTitle("Capture Region")
	WmGeometry(v.win.Window, v.model.Geometry())
	WmAttributes(v.win.Window, "-topmost", 1)
	WmAttributes(v.win.Window, "-transparentcolor", theme.ColorKeyed)
	GridRowConfigure(v.win.Window, 0, Weight(1))
	GridColumnConfigure(v.win.Window, 0, Weight(1))
	Grid(v.win.Frame(Background(theme.ColorKeyed)), Row(0), Column(0), Sticky("nsew"))

	bar := v.win.Frame()
	Grid(bar, Row(1), Column(0), Sticky("we"))
	actions := []struct {
		label string
		fn    func()
	}{
		{"Use region [Enter]", v.confirm},
		{"Whole screen", v.Clear},
		{"Close [Esc]", v.destroy},
	}
	for i, a := range actions {
		Grid(v.win.TButton(Txt(a.label), Command(a.fn)), In(bar), Row(0), Column(i), Sticky("we"), Padx("1p"), Pady("1p"))
	}
	Bind(v.win, "<Return>", Command(v.confirm))
	Bind(v.win, "<Escape>", Command(v.destroy))
}

// Clear switches back to the whole screen.
func (v *regionOverlay) Clear() {
	v.apply(image.Rectangle{})
	v.destroy()
}

func (v *regionOverlay) Region() image.Rectangle { return v.model.Region() }

func (v *regionOverlay) confirm() {
	if v.win == nil {
		return
	}
	if r, ok := model.ParseGeometry(WmGeometry(v.win.Window)); ok {
		v.apply(r)
	}
	v.destroy()
}

func (v *regionOverlay) apply(r image.Rectangle) {
	v.model.Set(r, v.cfg)
	if v.cfg != nil {
		if err := v.cfg.Save(v.cfgPath); err != nil && v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	}
	if v.logger != nil {
		v.logger.Info("capture region", "region", v.model.Region().String())
	}
	if v.onChange != nil {
		v.onChange(v.model.Region())
	}
}

func (v *regionOverlay) destroy() {
	if v.win == nil {
		return
	}
	Destroy(v.win)
	v.win = nil
}
