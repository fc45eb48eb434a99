package view

import (
	"image"

	"github.com/soocke/blob-follower/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CapturePreview shows the annotated camera frame next to the segmentation
// mask. It owns two LabelWidgets and provides methods to update or reset them.
type CapturePreview interface {
	UpdateFrame(img image.Image)
	UpdateMask(img image.Image)
	Reset()
}

type capturePreview struct {
	frameLabel *LabelWidget
	maskLabel  *LabelWidget
	framePhoto *Img // last Tk photo shown in frameLabel
	maskPhoto  *Img
}

const (
	maxFrameW = 480
	maxFrameH = 270
	maxMaskW  = 240
	maxMaskH  = 135
)

// NewCapturePreview grids the frame preview across columns 0-3 of row and
// the mask preview at column 4.
func NewCapturePreview(row int) CapturePreview {
	v := &capturePreview{}
	v.framePhoto = placeholder(maxFrameW, maxFrameH)
	v.maskPhoto = placeholder(maxMaskW, maxMaskH)
	v.frameLabel = Label(Image(v.framePhoto), Borderwidth(1), Relief("sunken"))
	v.maskLabel = Label(Image(v.maskPhoto), Borderwidth(1), Relief("sunken"))
	Grid(v.frameLabel, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Grid(v.maskLabel, Row(row), Column(4), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	return v
}

func placeholder(w, h int) *Img {
	return NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, w, h)))))
}

func (v *capturePreview) UpdateFrame(img image.Image) {
	v.framePhoto = replacePhoto(v.frameLabel, v.framePhoto, img, maxFrameW, maxFrameH)
}

func (v *capturePreview) UpdateMask(img image.Image) {
	v.maskPhoto = replacePhoto(v.maskLabel, v.maskPhoto, img, maxMaskW, maxMaskH)
}

// replacePhoto scales img, shows it on lbl and deletes the previous photo so
// off-screen pixel data does not accumulate.
func replacePhoto(lbl *LabelWidget, prev *Img, img image.Image, maxW, maxH int) *Img {
	if lbl == nil || img == nil {
		return prev
	}
	png := images.EncodePNG(images.ScaleToFit(img, maxW, maxH))
	if prev != nil {
		prev.Delete()
	}
	next := NewPhoto(Data(png))
	lbl.Configure(Image(next))
	return next
}

func (v *capturePreview) Reset() {
	if v.frameLabel != nil {
		v.framePhoto = replacePhoto(v.frameLabel, v.framePhoto, image.NewRGBA(image.Rect(0, 0, maxFrameW, maxFrameH)), maxFrameW, maxFrameH)
	}
	if v.maskLabel != nil {
		v.maskPhoto = replacePhoto(v.maskLabel, v.maskPhoto, image.NewGray(image.Rect(0, 0, maxMaskW, maxMaskH)), maxMaskW, maxMaskH)
	}
}
