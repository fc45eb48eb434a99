package vision

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/soocke/blob-follower/config"
)

// DetectionResult is the per-frame output of blob extraction. Area is the
// zeroth moment of the 0/255 mask, i.e. 255 times the filled pixel count.
type DetectionResult struct {
	Detected  bool
	CentroidX int
	CentroidY int
	Area      float64
}

var fillColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// LargestContour returns the index of the contour with the greatest
// ContourArea. Ties keep the lowest index. It returns -1 when contours is
// empty.
func LargestContour(contours gocv.PointsVector) int {
	best, bestArea := -1, 0.0
	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if best < 0 || area > bestArea {
			best, bestArea = i, area
		}
	}
	return best
}

// ExtractMat selects the largest external contour of a CV_8U mask, fills it
// (holes and anything nested included) and reports the moments of the filled
// region. minArea is in config.AreaScale units; the blob counts as detected
// only when its area is strictly greater than minArea*AreaScale. The filled
// mask is empty when there is no blob. The caller closes it.
func ExtractMat(mask gocv.Mat, minArea int) (DetectionResult, gocv.Mat) {
	if mask.Empty() {
		return DetectionResult{}, gocv.NewMat()
	}
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	idx := LargestContour(contours)
	if idx < 0 {
		return DetectionResult{}, gocv.NewMat()
	}

	filled := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), mask.Rows(), mask.Cols(), gocv.MatTypeCV8U)
	gocv.DrawContours(&filled, contours, idx, fillColor, -1)

	m := gocv.Moments(filled, false)
	m00 := m["m00"]
	if m00 == 0 {
		filled.Close()
		return DetectionResult{}, gocv.NewMat()
	}
	res := DetectionResult{
		CentroidX: int(m["m10"] / m00),
		CentroidY: int(m["m01"] / m00),
		Area:      m00,
	}
	res.Detected = res.Area > float64(minArea)*config.AreaScale
	return res, filled
}

// Extract is ExtractMat over an image.Gray mask.
func Extract(mask *image.Gray, minArea int) DetectionResult {
	res, _ := ExtractBlob(mask, minArea)
	return res
}

// ExtractBlob is Extract that also returns the filled mask of the selected
// blob, or nil when there is none.
func ExtractBlob(mask *image.Gray, minArea int) (DetectionResult, *image.Gray) {
	m, err := GrayToMat(mask)
	if err != nil {
		return DetectionResult{}, nil
	}
	defer m.Close()
	res, filled := ExtractMat(m, minArea)
	defer filled.Close()
	if filled.Empty() {
		return res, nil
	}
	return res, MatToGray(filled)
}

// Analysis is the vision output for one frame.
type Analysis struct {
	Detection DetectionResult
	Mask      *image.Gray // segmented mask
	Blob      *image.Gray // filled selected blob, nil when none
}

// Analyze segments an RGBA frame against band and extracts its largest blob.
func Analyze(frame *image.RGBA, band config.ColorBand, minArea int) (Analysis, error) {
	bgr, err := FrameToBGR(frame)
	if err != nil {
		return Analysis{}, err
	}
	defer bgr.Close()
	mask := Segment(bgr, band)
	defer mask.Close()
	res, filled := ExtractMat(mask, minArea)
	defer filled.Close()

	out := Analysis{Detection: res, Mask: MatToGray(mask)}
	if !filled.Empty() {
		out.Blob = MatToGray(filled)
	}
	return out, nil
}
