package flow

import (
	"gocv.io/x/gocv"
)

// CornerParams configures Shi-Tomasi corner detection.
type CornerParams struct {
	MaxCorners  int     // upper bound on returned corners
	Quality     float64 // minimal accepted corner quality (fraction of the best)
	MinDistance float64 // minimum euclidean distance between corners
}

// DefaultCornerParams returns detection parameters tuned for tracking.
func DefaultCornerParams() CornerParams {
	return CornerParams{
		MaxCorners:  200,
		Quality:     0.1,
		MinDistance: 10,
	}
}

// DetectCorners finds up to MaxCorners strong feature points in a grayscale
// frame. Returns an empty set when none qualify.
func DetectCorners(gray gocv.Mat, p CornerParams) []gocv.Point2f {
	corners := gocv.NewMat()
	defer corners.Close()

	gocv.GoodFeaturesToTrack(gray, &corners, p.MaxCorners, p.Quality, p.MinDistance)

	return pointsFromMat(corners)
}

// matFromPoints packs a point set into an Nx2 CV32F Mat as expected by the
// optical flow call. Caller owns the returned Mat.
func matFromPoints(pts []gocv.Point2f) gocv.Mat {
	m := gocv.NewMatWithSize(len(pts), 2, gocv.MatTypeCV32F)
	for i, p := range pts {
		m.SetFloatAt(i, 0, p.X)
		m.SetFloatAt(i, 1, p.Y)
	}
	return m
}

// pointsFromMat unpacks a point Mat in either of the layouts OpenCV produces:
// Nx1 two-channel or Nx2 single-channel.
func pointsFromMat(m gocv.Mat) []gocv.Point2f {
	if m.Empty() {
		return nil
	}
	pts := make([]gocv.Point2f, m.Rows())
	for i := range pts {
		if m.Channels() == 2 {
			v := m.GetVecfAt(i, 0)
			pts[i] = gocv.Point2f{X: v[0], Y: v[1]}
		} else {
			pts[i] = gocv.Point2f{X: m.GetFloatAt(i, 0), Y: m.GetFloatAt(i, 1)}
		}
	}
	return pts
}
