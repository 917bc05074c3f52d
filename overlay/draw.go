package overlay

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

const (
	cornerRadius  = 5
	arrowBaseSize = 10
	boxThickness  = 2
	labelScale    = 0.6
	labelWeight   = 2
)

// Label corner offsets, cycled by tracker index so overlapping labels from
// different trackers land on different corners of the box.
var (
	labelDX = [4]int{0, 1, 0, 1}
	labelDY = [4]int{0, 0, 1, 1}
)

// Corners draws a filled circle at each detected feature point. An empty
// point set draws nothing.
func Corners(img *gocv.Mat, pts []gocv.Point2f) {
	for _, p := range pts {
		gocv.Circle(img, image.Pt(int(p.X), int(p.Y)), cornerRadius, cornerColor, -1)
	}
}

// FlowArrows draws a motion arrow from each source point to its matched
// destination, plus a filled circle at the source. src and dst must be the
// same length.
func FlowArrows(img *gocv.Mat, src, dst []gocv.Point2f) {
	for i := range src {
		clr := FlowColor(i)
		from := image.Pt(int(src[i].X), int(src[i].Y))
		to := image.Pt(int(dst[i].X), int(dst[i].Y))
		gocv.ArrowedLine(img, from, to, clr, 2)
		gocv.Circle(img, from, arrowBaseSize, clr, -1)
	}
}

// LabelAnchor returns the label origin for the tracker at index i: one of the
// four box corners, cycling as (i mod 4).
func LabelAnchor(box image.Rectangle, i int) image.Point {
	n := i % 4
	if n < 0 {
		n += 4
	}
	return image.Pt(box.Min.X+labelDX[n]*box.Dx(), box.Min.Y+labelDY[n]*box.Dy())
}

// TrackerBox draws a tracker's bounding box and its name label. The label
// corner cycles with the tracker index.
func TrackerBox(img *gocv.Mat, box image.Rectangle, clr color.RGBA, label string, i int) {
	gocv.Rectangle(img, box, clr, boxThickness)
	gocv.PutText(img, label, LabelAnchor(box, i), gocv.FontHersheySimplex, labelScale, clr, labelWeight)
}

// ClipRect computes the destination rectangle for pasting a srcW x srcH image
// onto a dstW x dstH image at offset (x, y), truncated to the destination
// bounds. Returns the empty rectangle when nothing fits.
func ClipRect(dstW, dstH, srcW, srcH, x, y int) image.Rectangle {
	if x < 0 || y < 0 || x >= dstW || y >= dstH {
		return image.Rectangle{}
	}
	w := srcW
	if dstW-x < w {
		w = dstW - x
	}
	h := srcH
	if dstH-y < h {
		h = dstH - y
	}
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(x, y, x+w, y+h)
}

// Paste copies src onto dst at offset (x, y), truncating src so the copy
// never writes outside dst.
func Paste(dst *gocv.Mat, src gocv.Mat, x, y int) {
	target := ClipRect(dst.Cols(), dst.Rows(), src.Cols(), src.Rows(), x, y)
	if target.Empty() {
		return
	}
	region := dst.Region(target)
	defer region.Close()
	clipped := src.Region(image.Rect(0, 0, target.Dx(), target.Dy()))
	defer clipped.Close()
	clipped.CopyTo(&region)
}

// StatusLine draws a single status text line in the lower-left corner.
func StatusLine(img *gocv.Mat, text string) {
	pos := image.Pt(10, img.Rows()-15)
	gocv.PutText(img, text, pos, gocv.FontHersheySimplex, labelScale, statusColor, labelWeight)
}
