package flow

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"trackcam/overlay"
	"trackcam/video"
)

const escKey = 27

// Config carries every parameter of the flow visualization pipeline.
type Config struct {
	Corners      CornerParams
	Flow         FlowParams
	HistoryDepth int           // frames kept between a frame and its flow reference
	FrameDelay   time.Duration // artificial pacing between iterations
	SnapshotDir  string        // save annotated frames as JPEGs when set
	ShowStatus   bool          // draw the status overlay line
}

// DefaultConfig returns the demo defaults.
func DefaultConfig() Config {
	return Config{
		Corners:      DefaultCornerParams(),
		Flow:         DefaultFlowParams(),
		HistoryDepth: 5,
		FrameDelay:   100 * time.Millisecond,
	}
}

// Deps are the external collaborators of the pipeline, injectable for tests.
type Deps struct {
	Source  video.Source
	Display video.Display
	Log     zerolog.Logger
}

// Run executes the optical flow visualization loop: read a frame, detect
// corners, compute flow against the reference frame HistoryDepth steps in the
// past, annotate and display. Terminates cleanly on end of stream or ESC.
func Run(cfg Config, deps Deps) error {
	history := video.NewHistory(cfg.HistoryDepth)
	defer history.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	frameCount := 0
	for {
		if ok := deps.Source.Read(&frame); !ok || frame.Empty() {
			fmt.Println("End of video.")
			break
		}
		frameCount++

		gray := gocv.NewMat()
		gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

		corners := DetectCorners(gray, cfg.Corners)
		deps.Log.Debug().Int("frame", frameCount).Int("corners", len(corners)).Msg("detected features")

		annotated := frame.Clone()
		drawPts := corners

		// The reference is the oldest buffered frame, popped only once the
		// buffer is full, so flow spans HistoryDepth frames rather than one.
		if history.Full() {
			ref, _ := history.PopOldest()
			dst, mask := Compute(gray, ref, corners, cfg.Flow)
			ref.Close()

			fsrc, fdst := FilterByStatus(corners, dst, mask)
			// with no matches at all, fall back to the raw corners so the
			// feature circles still render
			if len(fsrc) > 0 {
				drawPts = fsrc
				overlay.FlowArrows(&annotated, fsrc, fdst)
				ms := Summarize(fsrc, fdst)
				deps.Log.Debug().Int("frame", frameCount).Int("matched", ms.Matched).
					Float64("mean_mag", ms.Mean).Float64("stddev_mag", ms.StdDev).
					Msg("flow computed")
			}
		}

		overlay.Corners(&annotated, drawPts)
		if cfg.ShowStatus {
			overlay.StatusLine(&annotated, fmt.Sprintf("frame %d | corners %d | tracked %d",
				frameCount, len(corners), len(drawPts)))
		}

		deps.Display.Show(annotated)
		if cfg.SnapshotDir != "" {
			saveSnapshot(cfg.SnapshotDir, frameCount, annotated, deps.Log)
		}
		annotated.Close()

		key := deps.Display.WaitKey(1)
		if key == escKey {
			gray.Close()
			break
		}

		history.Push(gray)
		time.Sleep(cfg.FrameDelay)
	}

	fmt.Println("Tracking ended.")
	return nil
}

// saveSnapshot writes the annotated frame as a JPEG. Failures are logged, not
// fatal.
func saveSnapshot(dir string, frameCount int, img gocv.Mat, log zerolog.Logger) {
	path := filepath.Join(dir, fmt.Sprintf("frame_%06d.jpg", frameCount))
	if ok := gocv.IMWrite(path, img); !ok {
		log.Warn().Str("path", path).Msg("failed to save snapshot")
	}
}
