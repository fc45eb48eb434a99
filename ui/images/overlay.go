package images

import (
	"image"
	"image/color"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
)

// Overlay colours.
var (
	DeadzoneColor = colornames.Yellow
	OutlineColor  = colornames.Lime
	MarkerColor   = colornames.Red
)

// markerArm is the half length of the centroid cross in pixels.
const markerArm = 6

// Overlay describes what Annotate draws on a frame.
type Overlay struct {
	Deadzone image.Rectangle
	Blob     *image.Gray // filled selected blob, may be nil
	Centroid image.Point
	Detected bool
}

// Annotate returns a copy of frame with the deadzone rectangle, the outline
// of the selected blob and, when detected, a cross on the centroid.
func Annotate(frame image.Image, ov Overlay) *image.RGBA {
	if frame == nil {
		return nil
	}
	b := frame.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(out, image.Point{}, frame, b, draw.Src, nil)
	if ov.Blob != nil {
		drawOutline(out, ov.Blob, OutlineColor)
	}
	if !ov.Deadzone.Empty() {
		drawRect(out, ov.Deadzone, DeadzoneColor)
	}
	if ov.Detected {
		c := ov.Centroid
		hLine(out, c.X-markerArm, c.X+markerArm, c.Y, MarkerColor)
		vLine(out, c.X, c.Y-markerArm, c.Y+markerArm, MarkerColor)
	}
	return out
}

// drawOutline colours foreground pixels of mask that touch background or the
// frame edge (4-neighbourhood).
func drawOutline(dst *image.RGBA, mask *image.Gray, c color.RGBA) {
	mb := mask.Bounds()
	w, h := mb.Dx(), mb.Dy()
	fg := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return mask.Pix[y*mask.Stride+x] != 0
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !fg(x, y) {
				continue
			}
			if !fg(x-1, y) || !fg(x+1, y) || !fg(x, y-1) || !fg(x, y+1) {
				dst.SetRGBA(x, y, c)
			}
		}
	}
}

// drawRect draws the border of r, last row and column inclusive.
func drawRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	hLine(dst, r.Min.X, r.Max.X, r.Min.Y, c)
	hLine(dst, r.Min.X, r.Max.X, r.Max.Y, c)
	vLine(dst, r.Min.X, r.Min.Y, r.Max.Y, c)
	vLine(dst, r.Max.X, r.Min.Y, r.Max.Y, c)
}

// hLine and vLine clip to dst; SetRGBA ignores out-of-bounds points.
func hLine(dst *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x <= x1; x++ {
		dst.SetRGBA(x, y, c)
	}
}

func vLine(dst *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y <= y1; y++ {
		dst.SetRGBA(x, y, c)
	}
}
