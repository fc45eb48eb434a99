package vision

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/soocke/blob-follower/config"
)

// Mask values.
const (
	Background uint8 = 0
	Foreground uint8 = 255
)

// Segment classifies every pixel of a BGR frame against band and closes the
// resulting mask with a 3x3 square element. An empty or inverted band yields
// an all-background mask. The caller closes the result.
func Segment(bgr gocv.Mat, band config.ColorBand) gocv.Mat {
	hsv := ToHSV(bgr)
	defer hsv.Close()
	mask := InRange(hsv, band)
	defer mask.Close()
	return Close(mask)
}

// InRange returns a 0/255 mask of the pixels of an HSV Mat whose H, S and V
// all fall inside band (bounds inclusive).
func InRange(hsv gocv.Mat, band config.ColorBand) gocv.Mat {
	mask := gocv.NewMat()
	if hsv.Empty() {
		return mask
	}
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(float64(band.HueLow), float64(band.SatLow), float64(band.ValLow), 0),
		gocv.NewScalar(float64(band.HueHigh), float64(band.SatHigh), float64(band.ValHigh), 0),
		&mask)
	return mask
}

// Close applies dilation followed by erosion with a 3x3 square element.
// Pixels outside the frame never influence the result.
func Close(mask gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	if mask.Empty() {
		return out
	}
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()
	gocv.MorphologyEx(mask, &out, gocv.MorphClose, kernel)
	return out
}
