package view

import (
	"fmt"
	"time"

	"github.com/soocke/blob-follower/ui/model"
	"github.com/soocke/blob-follower/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// HUDPanel shows detection, mode flags, object area, battery and flight time.
type HUDPanel interface {
	ShowHUD(s model.HUDSnapshot)
	SetFlightTime(current, total time.Duration)
}

type hudPanel struct {
	detectLbl   *LabelWidget
	followLbl   *LabelWidget
	autoLandLbl *LabelWidget
	areaLbl     *LabelWidget
	batteryLbl  *LabelWidget
	cameraLbl   *LabelWidget
	rateLbl     *LabelWidget
	flightLbl   *LabelWidget
}

// NewHUDPanel grids the HUD labels as one column inside parent, starting at row.
func NewHUDPanel(parent *FrameWidget, row int) HUDPanel {
	h := &hudPanel{}
	labels := []**LabelWidget{
		&h.detectLbl, &h.followLbl, &h.autoLandLbl, &h.areaLbl,
		&h.batteryLbl, &h.cameraLbl, &h.rateLbl, &h.flightLbl,
	}
	for i, dst := range labels {
		*dst = Label(Width(24), Anchor("w"))
		Grid(*dst, In(parent), Row(row+i), Column(0), Sticky("w"), Padx("0.2m"))
	}
	h.ShowHUD(model.HUDSnapshot{})
	h.SetFlightTime(0, 0)
	return h
}

func (h *hudPanel) ShowHUD(s model.HUDSnapshot) {
	if h == nil || h.detectLbl == nil {
		return
	}
	h.detectLbl.Configure(Txt(s.DetectionText()), Foreground(theme.FlagColor(s.Detected)))
	h.followLbl.Configure(Txt(s.FollowText()), Foreground(theme.FlagColor(s.Follow)))
	h.autoLandLbl.Configure(Txt(s.AutoLandText()), Foreground(theme.FlagColor(s.AutoLand)))
	h.areaLbl.Configure(Txt(s.AreaText()))
	h.batteryLbl.Configure(Txt(s.BatteryText()))
	h.cameraLbl.Configure(Txt(s.ProfileText()))
	h.rateLbl.Configure(Txt(fmt.Sprintf("Rate: %.1f fps", s.FPS)))
}

// SetFlightTime updates the flight duration display.
func (h *hudPanel) SetFlightTime(current, total time.Duration) {
	if h == nil || h.flightLbl == nil {
		return
	}
	h.flightLbl.Configure(Txt(fmt.Sprintf("Flight: %s  Total: %s", mmss(current), mmss(total))))
}

func mmss(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
