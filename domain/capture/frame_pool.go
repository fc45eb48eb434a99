package capture

import (
	"image"
	"sync"
)

// frames holds RGBA buffers handed back through RecycleFrame. Grabbers and
// the scaling step fill pooled frames; the loop recycles each frame after
// the preview has been rendered. Unrecycled frames are garbage collected.
var frames sync.Pool

// AcquireFrame returns an RGBA image covering rect whose Pix is exactly
// 4*w*h bytes with Stride 4*w. Pixel contents are undefined. Empty
// rectangles get an image without a buffer.
func AcquireFrame(rect image.Rectangle) *image.RGBA {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: rect}
	}
	size := 4 * w * h
	if img, ok := frames.Get().(*image.RGBA); ok && cap(img.Pix) >= size {
		img.Pix = img.Pix[:size]
		img.Stride, img.Rect = 4*w, rect
		return img
	}
	return &image.RGBA{Pix: make([]byte, size), Stride: 4 * w, Rect: rect}
}

// RecycleFrame hands img back for reuse; the caller must not touch it after.
func RecycleFrame(img *image.RGBA) {
	if img != nil && img.Pix != nil {
		frames.Put(img)
	}
}
