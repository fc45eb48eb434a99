package view

import (
	"strconv"
	"strings"

	"github.com/soocke/blob-follower/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// TunablesPanel is the calibration form: one row per tunable with step
// buttons and an entry, plus an apply button for typed values.
type TunablesPanel interface {
	Build(startRow int) (endRow int)
	ShowTunables(profile config.CameraProfile, t config.Tunables)
	SetMessage(string)
}

type tunablesPanel struct {
	onStep  func(id config.TunableID, delta int)
	onApply func(map[config.TunableID]string) error

	header  *LabelWidget
	message *LabelWidget
	entries map[config.TunableID]*TextWidget
}

// NewTunablesPanel creates the view; handlers may be nil.
func NewTunablesPanel(onStep func(config.TunableID, int), onApply func(map[config.TunableID]string) error) TunablesPanel {
	return &tunablesPanel{onStep: onStep, onApply: onApply, entries: make(map[config.TunableID]*TextWidget)}
}

func (v *tunablesPanel) Build(startRow int) (row int) {
	row = startRow
	v.header = Label(Txt("Calibration"), Anchor("w"))
	Grid(v.header, Row(row), Column(0), Columnspan(4), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	row++
	for _, spec := range config.TunableSpecs {
		id := spec.ID
		lbl := Label(Txt(spec.Label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		dec := Button(Txt("-"), Width(2), Command(func() { v.step(id, -1) }))
		Grid(dec, Row(row), Column(1), Padx("0.2m"), Pady("0.15m"))
		w := Text(Height(1), Width(8))
		Grid(w, Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.15m"))
		v.entries[id] = w
		inc := Button(Txt("+"), Width(2), Command(func() { v.step(id, 1) }))
		Grid(inc, Row(row), Column(3), Padx("0.2m"), Pady("0.15m"))
		row++
	}
	apply := Button(Txt("Apply Changes"), Command(v.apply))
	Grid(apply, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	v.message = Label(Txt(""), Anchor("w"))
	Grid(v.message, Row(row), Column(0), Columnspan(4), Sticky("w"), Padx("0.4m"))
	row++
	return row
}

func (v *tunablesPanel) ShowTunables(profile config.CameraProfile, t config.Tunables) {
	if v.header != nil {
		v.header.Configure(Txt("Calibration (" + profile.String() + " camera)"))
	}
	for id, w := range v.entries {
		w.Delete("1.0", END)
		w.Insert("1.0", strconv.Itoa(t.Get(id)))
	}
}

func (v *tunablesPanel) SetMessage(s string) {
	if v.message != nil {
		v.message.Configure(Txt(s))
	}
}

func (v *tunablesPanel) step(id config.TunableID, delta int) {
	if v.onStep != nil {
		v.onStep(id, delta)
	}
}

func (v *tunablesPanel) apply() {
	if v.onApply == nil {
		return
	}
	values := make(map[config.TunableID]string, len(v.entries))
	for id, w := range v.entries {
		values[id] = strings.Join(w.Get("1.0", END), "")
	}
	if err := v.onApply(values); err != nil {
		v.SetMessage(err.Error())
		return
	}
	v.SetMessage("")
}
