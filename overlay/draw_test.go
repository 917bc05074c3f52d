package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocv.io/x/gocv"
)

func TestClipRect(t *testing.T) {
	tests := []struct {
		name                   string
		dstW, dstH, srcW, srcH int
		x, y                   int
		want                   image.Rectangle
	}{
		{"fits entirely", 100, 100, 20, 10, 0, 0, image.Rect(0, 0, 20, 10)},
		{"fits at offset", 100, 100, 20, 10, 50, 60, image.Rect(50, 60, 70, 70)},
		{"clipped right", 100, 100, 30, 10, 90, 0, image.Rect(90, 0, 100, 10)},
		{"clipped bottom", 100, 100, 10, 30, 0, 90, image.Rect(0, 90, 10, 100)},
		{"clipped both", 100, 100, 50, 50, 80, 70, image.Rect(80, 70, 100, 100)},
		{"source larger than destination", 10, 10, 50, 50, 0, 0, image.Rect(0, 0, 10, 10)},
		{"offset outside destination", 100, 100, 10, 10, 100, 0, image.Rectangle{}},
		{"negative offset", 100, 100, 10, 10, -1, 0, image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClipRect(tt.dstW, tt.dstH, tt.srcW, tt.srcH, tt.x, tt.y)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaste(t *testing.T) {
	t.Run("oversized foreground is truncated to fit", func(t *testing.T) {
		dst := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC3)
		defer dst.Close()
		src := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 8, 8, gocv.MatTypeCV8UC3)
		defer src.Close()

		Paste(&dst, src, 0, 0)

		// destination keeps its size and is fully painted
		require.Equal(t, 4, dst.Cols())
		require.Equal(t, 4, dst.Rows())
		assert.Equal(t, uint8(255), dst.GetUCharAt(3, 3*3))
	})

	t.Run("paste at offset leaves pixels outside the region untouched", func(t *testing.T) {
		dst := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
		defer dst.Close()
		src := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(200, 200, 200, 0), 4, 4, gocv.MatTypeCV8UC3)
		defer src.Close()

		Paste(&dst, src, 8, 8)

		assert.Equal(t, uint8(200), dst.GetUCharAt(9, 9*3))
		assert.Equal(t, uint8(0), dst.GetUCharAt(7, 7*3))
	})

	t.Run("offset past the destination is a no-op", func(t *testing.T) {
		dst := gocv.NewMatWithSize(5, 5, gocv.MatTypeCV8UC3)
		defer dst.Close()
		src := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(90, 90, 90, 0), 2, 2, gocv.MatTypeCV8UC3)
		defer src.Close()

		Paste(&dst, src, 7, 7)

		assert.Equal(t, uint8(0), dst.GetUCharAt(4, 4*3))
	})
}

func TestLabelAnchor(t *testing.T) {
	box := image.Rect(10, 20, 40, 60) // 30 wide, 40 tall

	tests := []struct {
		index int
		want  image.Point
	}{
		{0, image.Pt(10, 20)}, // top-left
		{1, image.Pt(40, 20)}, // top-right
		{2, image.Pt(10, 60)}, // bottom-left
		{3, image.Pt(40, 60)}, // bottom-right
		{4, image.Pt(10, 20)}, // cycles back to top-left
		{5, image.Pt(40, 20)},
		{7, image.Pt(40, 60)},
	}

	for _, tt := range tests {
		got := LabelAnchor(box, tt.index)
		assert.Equal(t, tt.want, got, "index %d", tt.index)
	}
}

func TestCornersEmptyInput(t *testing.T) {
	img := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
	defer img.Close()

	before := img.Sum()
	Corners(&img, nil)
	after := img.Sum()

	assert.Equal(t, before.Val1, after.Val1)
}

func TestFlowColorCycles(t *testing.T) {
	assert.Equal(t, FlowColor(0), FlowColor(len(flowColors)))
	assert.NotEqual(t, color.RGBA{}, FlowColor(3))
}
