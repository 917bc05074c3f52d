package flow

import (
	"image"
	"math"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// FlowParams configures Lucas-Kanade pyramidal optical flow.
type FlowParams struct {
	WinSize         int     // search window side length
	MaxLevel        int     // pyramid depth
	MaxIter         int     // termination criteria iteration cap
	Epsilon         float64 // termination criteria accuracy
	MinEigThreshold float64 // minimal eigenvalue to keep a point trackable
}

// DefaultFlowParams returns the flow parameters used by the demo.
func DefaultFlowParams() FlowParams {
	return FlowParams{
		WinSize:         15,
		MaxLevel:        2,
		MaxIter:         10,
		Epsilon:         0.03,
		MinEigThreshold: 0.001,
	}
}

// Compute runs Lucas-Kanade flow for pts between cur and ref. The frames are
// passed current-first, matching the comparison direction of the original
// demo (see DESIGN.md on the reference-frame ordering). Returns the matched
// positions and a per-point success mask of the same length as pts.
func Compute(cur, ref gocv.Mat, pts []gocv.Point2f, p FlowParams) ([]gocv.Point2f, []bool) {
	if len(pts) == 0 {
		return nil, nil
	}

	prevPts := matFromPoints(pts)
	defer prevPts.Close()
	nextPts := gocv.NewMat()
	defer nextPts.Close()
	status := gocv.NewMat()
	defer status.Close()
	errs := gocv.NewMat()
	defer errs.Close()

	criteria := gocv.NewTermCriteria(gocv.Count|gocv.EPS, p.MaxIter, p.Epsilon)
	gocv.CalcOpticalFlowPyrLKWithParams(cur, ref, prevPts, nextPts, &status, &errs,
		image.Pt(p.WinSize, p.WinSize), p.MaxLevel, criteria, 0, p.MinEigThreshold)

	dst := pointsFromMat(nextPts)
	mask := make([]bool, len(pts))
	for i := 0; i < status.Rows() && i < len(mask); i++ {
		mask[i] = status.GetUCharAt(i, 0) == 1
	}
	return dst, mask
}

// FilterByStatus keeps the source and destination points whose mask entry is
// true, in lock-step so index correspondence is preserved. Entries beyond the
// shortest input are dropped.
func FilterByStatus(src, dst []gocv.Point2f, mask []bool) ([]gocv.Point2f, []gocv.Point2f) {
	n := len(mask)
	if len(src) < n {
		n = len(src)
	}
	if len(dst) < n {
		n = len(dst)
	}

	fsrc := make([]gocv.Point2f, 0, n)
	fdst := make([]gocv.Point2f, 0, n)
	for i := 0; i < n; i++ {
		if !mask[i] {
			continue
		}
		fsrc = append(fsrc, src[i])
		fdst = append(fdst, dst[i])
	}
	return fsrc, fdst
}

// MotionStats summarizes the displacement magnitudes of matched points.
type MotionStats struct {
	Matched int
	Mean    float64
	StdDev  float64
}

// Summarize computes displacement statistics for matched point pairs. src and
// dst must be the same length.
func Summarize(src, dst []gocv.Point2f) MotionStats {
	if len(src) == 0 {
		return MotionStats{}
	}
	mags := make([]float64, len(src))
	for i := range src {
		dx := float64(dst[i].X - src[i].X)
		dy := float64(dst[i].Y - src[i].Y)
		mags[i] = math.Hypot(dx, dy)
	}
	ms := MotionStats{
		Matched: len(src),
		Mean:    stat.Mean(mags, nil),
	}
	if len(mags) > 1 {
		ms.StdDev = stat.StdDev(mags, nil)
	}
	return ms
}
