package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// FrameToBGR copies an RGBA frame into a new 8-bit BGR Mat. The result is
// indexed from (0,0) regardless of src.Bounds().Min. The caller closes it.
func FrameToBGR(src *image.RGBA) (gocv.Mat, error) {
	if src == nil || src.Bounds().Empty() {
		return gocv.NewMat(), nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, 4*w*h)
	for y := 0; y < h; y++ {
		off := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pix[4*w*y:4*w*(y+1)], src.Pix[off:off+4*w])
	}
	rgba, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC4, pix)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("vision: frame to mat: %w", err)
	}
	defer rgba.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(rgba, &bgr, gocv.ColorRGBAToBGR)
	return bgr, nil
}

// ToHSV converts a BGR Mat to 8-bit HSV: H is degrees/2 in [0,179], S and V
// in [0,255]. The caller closes the result.
func ToHSV(bgr gocv.Mat) gocv.Mat {
	hsv := gocv.NewMat()
	if bgr.Empty() {
		return hsv
	}
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)
	return hsv
}

// GrayToMat copies a single-channel image into a CV_8U Mat. The caller closes
// it.
func GrayToMat(src *image.Gray) (gocv.Mat, error) {
	if src == nil || src.Bounds().Empty() {
		return gocv.NewMat(), nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h)
	for y := 0; y < h; y++ {
		off := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pix[w*y:w*(y+1)], src.Pix[off:off+w])
	}
	m, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8U, pix)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("vision: gray to mat: %w", err)
	}
	defer m.Close()
	return m.Clone(), nil
}

// MatToGray copies a CV_8U Mat into an image.Gray. An empty Mat gives a
// zero-sized image.
func MatToGray(m gocv.Mat) *image.Gray {
	if m.Empty() {
		return image.NewGray(image.Rect(0, 0, 0, 0))
	}
	img := image.NewGray(image.Rect(0, 0, m.Cols(), m.Rows()))
	copy(img.Pix, m.ToBytes())
	return img
}
