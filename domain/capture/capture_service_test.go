package capture

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"
)

type fakeGrabber struct {
	frames []*image.RGBA
	errs   []error
	closed int
}

func (g *fakeGrabber) Grab() (*image.RGBA, error) {
	if len(g.errs) > 0 {
		err := g.errs[0]
		g.errs = g.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	if len(g.frames) == 0 {
		return nil, ErrSourceClosed
	}
	f := g.frames[0]
	g.frames = g.frames[1:]
	return f, nil
}

func (g *fakeGrabber) Close() error { g.closed++; return nil }

func solid(r image.Rectangle, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func fixedClock(start time.Time, step time.Duration) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestServiceCountsCapturesAndSkips(t *testing.T) {
	g := &fakeGrabber{
		frames: []*image.RGBA{solid(image.Rect(0, 0, 4, 2), color.RGBA{A: 255})},
		errs:   []error{errors.New("usb hiccup"), nil},
	}
	s := NewService(nil, g, 4, 2)
	s.now = fixedClock(time.Unix(100, 0), time.Millisecond)

	if _, err := s.Next(); err == nil {
		t.Fatalf("expected grab error")
	}
	snap, err := s.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if snap.Sequence != 1 || snap.Image == nil {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if _, err := s.Next(); !errors.Is(err, ErrSourceClosed) {
		t.Fatalf("expected ErrSourceClosed, got %v", err)
	}
	st := s.Stats()
	if st.Captures != 1 || st.Skipped != 2 || st.Sequence != 1 || st.Resized != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if st.AvgCapture != time.Millisecond {
		t.Fatalf("avg capture %v", st.AvgCapture)
	}
}

func TestServiceScalesToFrameSize(t *testing.T) {
	red := color.RGBA{R: 200, A: 255}
	g := &fakeGrabber{frames: []*image.RGBA{solid(image.Rect(0, 0, 16, 8), red)}}
	s := NewService(nil, g, 8, 4)
	snap, err := s.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if got := snap.Image.Bounds(); got != image.Rect(0, 0, 8, 4) {
		t.Fatalf("bounds %v", got)
	}
	if c := snap.Image.RGBAAt(3, 2); c != red {
		t.Fatalf("scaled pixel %v", c)
	}
	if s.Stats().Resized != 1 {
		t.Fatalf("resize not counted")
	}
}

func TestServiceRebasesOffsetFrames(t *testing.T) {
	src := solid(image.Rect(10, 20, 14, 22), color.RGBA{G: 90, A: 255})
	g := &fakeGrabber{frames: []*image.RGBA{src}}
	s := NewService(nil, g, 4, 2)
	snap, err := s.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if snap.Image.Bounds().Min != (image.Point{}) || snap.Image.RGBAAt(0, 0).G != 90 {
		t.Fatalf("frame not rebased: %v", snap.Image.Bounds())
	}
}

func TestServiceEmptyFrameIsSkipped(t *testing.T) {
	g := &fakeGrabber{frames: []*image.RGBA{image.NewRGBA(image.Rect(0, 0, 0, 0))}}
	s := NewService(nil, g, 0, 0)
	if _, err := s.Next(); !errors.Is(err, ErrEmptyFrame) {
		t.Fatalf("expected ErrEmptyFrame, got %v", err)
	}
}

func TestServiceCloseIsIdempotent(t *testing.T) {
	g := &fakeGrabber{}
	s := NewService(nil, g, 0, 0)
	_ = s.Close()
	_ = s.Close()
	if g.closed != 1 {
		t.Fatalf("grabber closed %d times", g.closed)
	}
	if _, err := s.Next(); !errors.Is(err, ErrSourceClosed) {
		t.Fatalf("expected ErrSourceClosed after close, got %v", err)
	}
}

func TestFramePoolReusesBuffers(t *testing.T) {
	a := AcquireFrame(image.Rect(0, 0, 4, 4))
	if len(a.Pix) != 64 || a.Stride != 16 {
		t.Fatalf("unexpected frame layout len=%d stride=%d", len(a.Pix), a.Stride)
	}
	RecycleFrame(a)
	b := AcquireFrame(image.Rect(0, 0, 2, 2))
	if len(b.Pix) != 16 || b.Stride != 8 {
		t.Fatalf("unexpected reused layout len=%d stride=%d", len(b.Pix), b.Stride)
	}
	if e := AcquireFrame(image.Rect(0, 0, 0, 3)); e.Pix != nil {
		t.Fatalf("empty rect should not allocate")
	}
}

func TestCaptureStatsSkipRatio(t *testing.T) {
	if (CaptureStats{}).SkipRatio() != 0 {
		t.Fatalf("empty stats should have zero skip ratio")
	}
	st := CaptureStats{Captures: 3, Skipped: 1}
	if st.SkipRatio() != 0.25 {
		t.Fatalf("skip ratio %v", st.SkipRatio())
	}
	if len(st.LogAttrs())%2 != 0 {
		t.Fatalf("log attrs must be key/value pairs")
	}
}
