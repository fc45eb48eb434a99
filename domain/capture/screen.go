package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// ScreenGrabber captures a region of the desktop, or the whole primary
// screen when the region is empty. Useful for following an object in a
// simulator or a video player window.
type ScreenGrabber struct {
	region image.Rectangle
}

// NewScreenGrabber returns a grabber for region.
func NewScreenGrabber(region image.Rectangle) *ScreenGrabber {
	return &ScreenGrabber{region: region.Canon()}
}

// SetRegion replaces the captured region. An empty rectangle selects the
// full screen.
func (g *ScreenGrabber) SetRegion(r image.Rectangle) { g.region = r.Canon() }

// Region returns the captured region.
func (g *ScreenGrabber) Region() image.Rectangle { return g.region }

func (g *ScreenGrabber) Grab() (*image.RGBA, error) {
	if g.region.Empty() {
		img, err := screenshot.CaptureScreen()
		if err != nil {
			return nil, fmt.Errorf("capture: screen: %w", err)
		}
		return img, nil
	}
	img, err := screenshot.CaptureRect(g.region)
	if err != nil {
		return nil, fmt.Errorf("capture: screen region %v: %w", g.region, err)
	}
	return img, nil
}

func (g *ScreenGrabber) Close() error { return nil }

// ScreenBounds returns the primary screen rectangle.
func ScreenBounds() (image.Rectangle, error) {
	return screenshot.ScreenRect()
}

var _ Grabber = (*ScreenGrabber)(nil)
