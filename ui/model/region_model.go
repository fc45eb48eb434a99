package model

import (
	"fmt"
	"image"
	"strings"

	"github.com/soocke/blob-follower/config"
)

// fallbackScreen sizes the picker window when the screen bounds are unknown.
var fallbackScreen = image.Rect(0, 0, 1920, 1080)

// RegionModel holds the desktop rectangle the screen source captures. The
// zero rectangle selects the whole screen.
type RegionModel struct {
	region image.Rectangle
	screen image.Rectangle
}

// NewRegionModel starts from the region stored in cfg.
func NewRegionModel(cfg *config.Config, screen image.Rectangle) *RegionModel {
	m := &RegionModel{screen: screen}
	if m.screen.Empty() {
		m.screen = fallbackScreen
	}
	if cfg != nil && cfg.ScreenW > 0 && cfg.ScreenH > 0 {
		m.region = image.Rect(cfg.ScreenX, cfg.ScreenY, cfg.ScreenX+cfg.ScreenW, cfg.ScreenY+cfg.ScreenH)
	}
	return m
}

// Region returns the selected rectangle.
func (m *RegionModel) Region() image.Rectangle { return m.region }

// Set stores r and mirrors it into cfg when cfg is non-nil.
func (m *RegionModel) Set(r image.Rectangle, cfg *config.Config) {
	if r.Empty() {
		r = image.Rectangle{}
	}
	m.region = r
	if cfg == nil {
		return
	}
	cfg.ScreenX, cfg.ScreenY = r.Min.X, r.Min.Y
	cfg.ScreenW, cfg.ScreenH = r.Dx(), r.Dy()
}

// Geometry is the Tk geometry for the picker window: the current region, or
// a centred window two thirds of the screen wide when none is set.
func (m *RegionModel) Geometry() string {
	if !m.region.Empty() {
		return FormatGeometry(m.region)
	}
	s := m.screen
	w, h := max(s.Dx()*2/3, 1), max(s.Dy()*5/9, 1)
	x, y := s.Min.X+(s.Dx()-w)/2, s.Min.Y+(s.Dy()-h)/2
	return FormatGeometry(image.Rect(x, y, x+w, y+h))
}

// FormatGeometry renders r as "WxH+X+Y".
func FormatGeometry(r image.Rectangle) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
}

// ParseGeometry reads a "WxH+X+Y" string as reported by wm geometry.
func ParseGeometry(g string) (image.Rectangle, bool) {
	var w, h, x, y int
	var rest string
	n, _ := fmt.Sscanf(strings.TrimSpace(g)+" end", "%dx%d+%d+%d %s", &w, &h, &x, &y, &rest)
	if n != 5 || rest != "end" || w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}
