package compare

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"trackcam/overlay"
	"trackcam/video"
)

const escKey = 27

// Config carries every parameter of the tracker comparison pipeline.
type Config struct {
	Entries    []Entry
	OutputFPS  float64       // frame rate of the output video file
	FrameDelay time.Duration // artificial pacing between iterations
}

// DefaultConfig returns the demo defaults with all three trackers.
func DefaultConfig() Config {
	return Config{
		Entries:    DefaultEntries(),
		OutputFPS:  30,
		FrameDelay: 100 * time.Millisecond,
	}
}

// Deps are the external collaborators of the pipeline, injectable for tests.
// OpenWriter receives the input frame size, known only after the first read.
type Deps struct {
	Source     video.Source
	Display    video.Display
	OpenWriter func(width, height int) (video.Writer, error)
	Log        zerolog.Logger
}

// Run executes the tracker comparison loop: select an ROI on the first frame,
// initialize every tracker against it, then per frame draw each successful
// tracker's box over a composite carrying the original ROI thumbnail, and
// append the composite to the output video. Terminates on end of stream or
// ESC; an unreadable first frame is fatal.
func Run(cfg Config, deps Deps) error {
	defer closeEntries(cfg.Entries)

	frame := gocv.NewMat()
	defer frame.Close()

	if ok := deps.Source.Read(&frame); !ok || frame.Empty() {
		return fmt.Errorf("could not read initial frame from video source")
	}

	roi := deps.Display.SelectROI(frame)
	if roi.Empty() {
		return fmt.Errorf("empty region selected")
	}
	deps.Log.Info().Int("x", roi.Min.X).Int("y", roi.Min.Y).
		Int("w", roi.Dx()).Int("h", roi.Dy()).Msg("region selected")

	roiRegion := frame.Region(roi)
	thumbnail := roiRegion.Clone()
	roiRegion.Close()
	defer thumbnail.Close()

	for _, e := range cfg.Entries {
		if !e.Tracker.Init(frame, roi) {
			deps.Log.Warn().Str("tracker", e.Name).Msg("tracker failed to initialize")
		}
	}

	writer, err := deps.OpenWriter(frame.Cols(), frame.Rows())
	if err != nil {
		return fmt.Errorf("opening output sink: %w", err)
	}
	defer writer.Close()

	frameCount := 0
	for {
		if ok := deps.Source.Read(&frame); !ok || frame.Empty() {
			fmt.Println("End of video.")
			break
		}
		frameCount++

		results := updateAll(cfg.Entries, frame)
		deps.Log.Debug().Int("frame", frameCount).Int("tracking", len(results)).
			Int("total", len(cfg.Entries)).Msg("trackers updated")

		composite := frame.Clone()
		overlay.Paste(&composite, thumbnail, 0, 0)
		for i, r := range results {
			overlay.TrackerBox(&composite, r.Box, r.Color, r.Name, i)
		}

		deps.Display.Show(composite)
		err := writer.Write(composite)
		composite.Close()
		if err != nil {
			return fmt.Errorf("writing frame %d: %w", frameCount, err)
		}

		if deps.Display.WaitKey(1) == escKey {
			break
		}
		time.Sleep(cfg.FrameDelay)
	}

	fmt.Println("Tracking ended.")
	return nil
}
