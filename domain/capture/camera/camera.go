// Package camera grabs frames from a webcam, video file or network stream
// through OpenCV.
package camera

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"gocv.io/x/gocv"

	"github.com/soocke/blob-follower/domain/capture"
)

// Grabber reads BGR frames from a gocv VideoCapture and converts them to
// pooled RGBA frames of the requested size.
type Grabber struct {
	device  string
	vc      *gocv.VideoCapture
	size    image.Point
	frame   gocv.Mat
	resized gocv.Mat
	rgba    gocv.Mat
}

// Open opens device, which is either a numeric camera index or anything
// OpenCV accepts as a file name or stream URL (e.g. "udp://0.0.0.0:11111").
func Open(device string, width, height int) (*Grabber, error) {
	var src interface{} = device
	if n, err := strconv.Atoi(strings.TrimSpace(device)); err == nil {
		src = n
	}
	vc, err := gocv.OpenVideoCapture(src)
	if err != nil {
		return nil, fmt.Errorf("camera: open %q: %w", device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("camera: open %q: %w", device, capture.ErrSourceClosed)
	}
	if width > 0 && height > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
		vc.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}
	return &Grabber{
		device:  device,
		vc:      vc,
		size:    image.Pt(width, height),
		frame:   gocv.NewMat(),
		resized: gocv.NewMat(),
		rgba:    gocv.NewMat(),
	}, nil
}

// Grab blocks until the next frame is decoded.
func (g *Grabber) Grab() (*image.RGBA, error) {
	if g.vc == nil {
		return nil, capture.ErrSourceClosed
	}
	if ok := g.vc.Read(&g.frame); !ok {
		return nil, fmt.Errorf("camera: read %q: %w", g.device, capture.ErrSourceClosed)
	}
	if g.frame.Empty() {
		return nil, capture.ErrEmptyFrame
	}
	src := g.frame
	if g.size.X > 0 && g.size.Y > 0 && (src.Cols() != g.size.X || src.Rows() != g.size.Y) {
		gocv.Resize(src, &g.resized, g.size, 0, 0, gocv.InterpolationLinear)
		src = g.resized
	}
	switch src.Channels() {
	case 1:
		gocv.CvtColor(src, &g.rgba, gocv.ColorGrayToBGRA)
	case 3:
		gocv.CvtColor(src, &g.rgba, gocv.ColorBGRToRGBA)
	case 4:
		gocv.CvtColor(src, &g.rgba, gocv.ColorBGRAToRGBA)
	default:
		return nil, fmt.Errorf("camera: unsupported channel count %d", src.Channels())
	}
	w, h := g.rgba.Cols(), g.rgba.Rows()
	img := capture.AcquireFrame(image.Rect(0, 0, w, h))
	copy(img.Pix, g.rgba.ToBytes())
	return img, nil
}

// Close releases the capture device and buffers.
func (g *Grabber) Close() error {
	if g.vc == nil {
		return nil
	}
	err := g.vc.Close()
	g.vc = nil
	g.frame.Close()
	g.resized.Close()
	g.rgba.Close()
	return err
}

var _ capture.Grabber = (*Grabber)(nil)
