package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/soocke/blob-follower/config"
)

func fullBand() config.ColorBand { return config.DefaultTunables().ColorBand }

func newMask(w, h int) *image.Gray { return image.NewGray(image.Rect(0, 0, w, h)) }

func fillRect(m *image.Gray, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetGray(x, y, color.Gray{Y: Foreground})
		}
	}
}

func countForeground(m *image.Gray) int {
	n := 0
	for _, p := range m.Pix {
		if p == Foreground {
			n++
		}
	}
	return n
}

func toMat(t *testing.T, m *image.Gray) gocv.Mat {
	t.Helper()
	mat, err := GrayToMat(m)
	require.NoError(t, err)
	t.Cleanup(func() { mat.Close() })
	return mat
}

func hsvMat(t *testing.T, w, h int, pix []byte) gocv.Mat {
	t.Helper()
	m, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC3, pix)
	require.NoError(t, err)
	clone := m.Clone()
	m.Close()
	t.Cleanup(func() { clone.Close() })
	return clone
}

func closeGray(t *testing.T, m *image.Gray) *image.Gray {
	t.Helper()
	out := Close(toMat(t, m))
	defer out.Close()
	return MatToGray(out)
}

func TestToHSVPrimaries(t *testing.T) {
	cases := []struct {
		name    string
		r, g, b uint8
		h, s, v uint8
	}{
		{"black", 0, 0, 0, 0, 0, 0},
		{"white", 255, 255, 255, 0, 0, 255},
		{"red", 255, 0, 0, 0, 255, 255},
		{"green", 0, 255, 0, 60, 255, 255},
		{"blue", 0, 0, 255, 120, 255, 255},
		{"yellow", 255, 255, 0, 30, 255, 255},
		{"half grey", 128, 128, 128, 0, 0, 128},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, 1, 1))
			src.Set(0, 0, color.RGBA{R: tc.r, G: tc.g, B: tc.b, A: 255})
			bgr, err := FrameToBGR(src)
			require.NoError(t, err)
			defer bgr.Close()
			hsv := ToHSV(bgr)
			defer hsv.Close()
			assert.Equal(t, []uint8{tc.h, tc.s, tc.v}, hsv.ToBytes())
		})
	}
}

func TestFrameToBGRHonoursSubImageOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Set(2, 2, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	sub := src.SubImage(image.Rect(2, 2, 4, 4)).(*image.RGBA)
	bgr, err := FrameToBGR(sub)
	require.NoError(t, err)
	defer bgr.Close()
	require.Equal(t, 2, bgr.Cols())
	require.Equal(t, 2, bgr.Rows())
	v := bgr.GetVecbAt(0, 0)
	assert.Equal(t, []uint8{255, 0, 0}, []uint8{v[0], v[1], v[2]})
}

func TestSegmentInvertedBandIsEmpty(t *testing.T) {
	pix := make([]byte, 3*8*8)
	for i := range pix {
		pix[i] = 100
	}
	frame := hsvMat(t, 8, 8, pix)
	bands := []config.ColorBand{
		{HueLow: 50, HueHigh: 10, SatHigh: 255, ValHigh: 255},
		{HueHigh: 179, SatLow: 200, SatHigh: 100, ValHigh: 255},
		{HueHigh: 179, SatHigh: 255, ValLow: 255, ValHigh: 0},
	}
	for _, b := range bands {
		mask := InRange(frame, b)
		assert.Zero(t, countForeground(MatToGray(mask)))
		mask.Close()
	}
}

func TestSegmentFullBandSelectsEverything(t *testing.T) {
	bgr, err := FrameToBGR(image.NewRGBA(image.Rect(0, 0, 5, 3)))
	require.NoError(t, err)
	defer bgr.Close()
	mask := Segment(bgr, fullBand())
	defer mask.Close()
	assert.Equal(t, 15, countForeground(MatToGray(mask)))
}

func TestInRangeBoundsInclusive(t *testing.T) {
	frame := hsvMat(t, 3, 1, []byte{9, 100, 100, 10, 100, 100, 20, 100, 100})
	band := config.ColorBand{HueLow: 10, HueHigh: 20, SatLow: 100, SatHigh: 100, ValLow: 0, ValHigh: 255}
	m := InRange(frame, band)
	defer m.Close()
	assert.Equal(t, []uint8{0, 255, 255}, MatToGray(m).Pix)
}

func TestCloseFillsSinglePixelGap(t *testing.T) {
	m := newMask(11, 9)
	fillRect(m, image.Rect(3, 3, 5, 6))
	fillRect(m, image.Rect(6, 3, 8, 6))
	got := closeGray(t, m)
	for y := 3; y < 6; y++ {
		assert.Equal(t, Foreground, got.GrayAt(5, y).Y, "gap column row %d", y)
	}
	assert.Equal(t, Background, got.GrayAt(2, 4).Y)
	assert.Equal(t, Background, got.GrayAt(5, 2).Y)
	assert.Equal(t, 15, countForeground(got))
}

func TestCloseKeepsBorderTouchingRegion(t *testing.T) {
	m := newMask(4, 4)
	fillRect(m, image.Rect(0, 0, 2, 2))
	got := closeGray(t, m)
	assert.Equal(t, m.Pix, got.Pix)
}

func TestGrayRoundTripCompactsStride(t *testing.T) {
	m := newMask(6, 6)
	fillRect(m, image.Rect(3, 3, 5, 5))
	sub := m.SubImage(image.Rect(2, 2, 6, 6)).(*image.Gray)
	got := MatToGray(toMat(t, sub))
	require.Equal(t, image.Rect(0, 0, 4, 4), got.Bounds())
	assert.Equal(t, Foreground, got.GrayAt(1, 1).Y)
	assert.Equal(t, 4, countForeground(got))
}

func TestExtractSingleBlobTruncatesCentroid(t *testing.T) {
	m := newMask(10, 10)
	fillRect(m, image.Rect(2, 3, 5, 5)) // 3x2 at x=2..4, y=3..4
	res := Extract(m, 0)
	assert.True(t, res.Detected)
	assert.Equal(t, 6*255.0, res.Area)
	assert.Equal(t, 3, res.CentroidX)
	assert.Equal(t, 3, res.CentroidY) // 3.5 truncated
}

func TestExtractEmptyMaskNotDetected(t *testing.T) {
	res := Extract(newMask(6, 6), 0)
	assert.Equal(t, DetectionResult{}, res)
	res = Extract(newMask(0, 0), 0)
	assert.False(t, res.Detected)
	assert.False(t, Extract(nil, 0).Detected)

	_, blob := ExtractBlob(newMask(6, 6), 0)
	assert.Nil(t, blob)
}

func TestExtractPicksLargestBlob(t *testing.T) {
	m := newMask(20, 10)
	fillRect(m, image.Rect(0, 0, 2, 2))   // 4 px
	fillRect(m, image.Rect(10, 4, 14, 8)) // 16 px
	res := Extract(m, 0)
	assert.Equal(t, 16*255.0, res.Area)
	assert.Equal(t, 11, res.CentroidX)
	assert.Equal(t, 5, res.CentroidY)
}

func TestLargestContourTieKeepsLowestIndex(t *testing.T) {
	square := func(x, y int) []image.Point {
		return []image.Point{{x, y}, {x + 2, y}, {x + 2, y + 2}, {x, y + 2}}
	}
	pv := gocv.NewPointsVectorFromPoints([][]image.Point{
		{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		square(10, 1),
		square(2, 5),
	})
	defer pv.Close()
	assert.Equal(t, 1, LargestContour(pv))

	empty := gocv.NewPointsVector()
	defer empty.Close()
	assert.Equal(t, -1, LargestContour(empty))
}

func TestExtractEqualBlobsPickOne(t *testing.T) {
	m := newMask(20, 10)
	fillRect(m, image.Rect(12, 1, 14, 3))
	fillRect(m, image.Rect(2, 5, 4, 7))
	res, blob := ExtractBlob(m, 0)
	require.NotNil(t, blob)
	assert.Equal(t, 4*255.0, res.Area)
	assert.Equal(t, 4, countForeground(blob))
	assert.Equal(t, Foreground, blob.GrayAt(res.CentroidX, res.CentroidY).Y)
	again := Extract(m, 0)
	assert.Equal(t, res, again)
}

func TestExtractDiagonalPixelsFormOneBlob(t *testing.T) {
	m := newMask(5, 5)
	m.SetGray(1, 1, color.Gray{Y: Foreground})
	m.SetGray(2, 2, color.Gray{Y: Foreground})
	m.SetGray(3, 3, color.Gray{Y: Foreground})
	res, blob := ExtractBlob(m, 0)
	require.NotNil(t, blob)
	assert.Equal(t, 3*255.0, res.Area)
	assert.Equal(t, 2, res.CentroidX)
	assert.Equal(t, 2, res.CentroidY)
}

func TestExtractFillsHolesAndSwallowsNestedBlobs(t *testing.T) {
	m := newMask(9, 9)
	fillRect(m, image.Rect(1, 1, 8, 8))
	hole := image.Rect(2, 2, 7, 7)
	for y := hole.Min.Y; y < hole.Max.Y; y++ {
		for x := hole.Min.X; x < hole.Max.X; x++ {
			m.SetGray(x, y, color.Gray{Y: Background})
		}
	}
	m.SetGray(4, 4, color.Gray{Y: Foreground}) // island inside the hole

	res, filled := ExtractBlob(m, 0)
	assert.Equal(t, 49*255.0, res.Area)
	assert.Equal(t, 4, res.CentroidX)
	assert.Equal(t, 4, res.CentroidY)
	require.NotNil(t, filled)
	assert.Equal(t, 49, countForeground(filled))
	assert.Equal(t, Foreground, filled.GrayAt(3, 3).Y)
	assert.Equal(t, Background, filled.GrayAt(0, 0).Y)
}

func TestExtractMinAreaIsStrict(t *testing.T) {
	big := newMask(40, 40)
	fillRect(big, image.Rect(0, 0, 20, 20)) // 400 px -> 102000
	assert.True(t, Extract(big, 1).Detected)

	small := newMask(40, 40)
	fillRect(small, image.Rect(0, 0, 14, 28)) // 392 px -> 99960
	res := Extract(small, 1)
	assert.False(t, res.Detected)
	assert.Equal(t, 392*255.0, res.Area)
}

func TestAnalyzeFindsColouredSquare(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 36))
	for y := 10; y < 20; y++ {
		for x := 30; x < 40; x++ {
			src.Set(x, y, color.RGBA{R: 250, G: 10, B: 10, A: 255})
		}
	}
	band := config.ColorBand{HueLow: 0, HueHigh: 10, SatLow: 150, SatHigh: 255, ValLow: 100, ValHigh: 255}
	out, err := Analyze(src, band, 0)
	require.NoError(t, err)
	res := out.Detection
	require.True(t, res.Detected)
	assert.Equal(t, 100*255.0, res.Area)
	assert.Equal(t, 34, res.CentroidX)
	assert.Equal(t, 14, res.CentroidY)
	assert.Equal(t, 100, countForeground(out.Mask))
	require.NotNil(t, out.Blob)
	assert.Equal(t, 100, countForeground(out.Blob))
}

func TestAnalyzeNilFrame(t *testing.T) {
	out, err := Analyze(nil, fullBand(), 0)
	require.NoError(t, err)
	assert.False(t, out.Detection.Detected)
	assert.Nil(t, out.Blob)
}
