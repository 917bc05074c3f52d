package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"trackcam/flow"
	"trackcam/video"
)

var (
	input         = flag.String("input", "", "Path to the input video file (required)")
	maxCorners    = flag.Int("max-corners", 200, "Maximum number of corners to detect per frame")
	quality       = flag.Float64("quality", 0.1, "Minimal accepted corner quality relative to the best corner")
	minDistance   = flag.Float64("min-distance", 10, "Minimum distance between detected corners in pixels")
	winSize       = flag.Int("win-size", 15, "Optical flow search window size in pixels")
	maxLevel      = flag.Int("max-level", 2, "Optical flow pyramid depth")
	historyDepth  = flag.Int("history-depth", 5, "Number of frames between the current frame and its flow reference")
	frameDelay    = flag.Duration("frame-delay", 100*time.Millisecond, "Pacing delay between frames")
	snapshotDir   = flag.String("snapshot-dir", "", "Directory for saving annotated JPEG frames (optional)")
	statusOverlay = flag.Bool("status-overlay", false, "Show frame counter and flow statistics in the lower-left corner")
	debugMode     = flag.Bool("debug", false, "Enable per-frame debug logging")
)

func main() {
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -input flag is required")
		fmt.Fprintln(os.Stderr, "Example: opticalflow -input testfile.mp4")
		os.Exit(1)
	}

	logger := newLogger(*debugMode)

	if *snapshotDir != "" {
		if err := os.MkdirAll(*snapshotDir, 0755); err != nil {
			logger.Fatal().Err(err).Str("dir", *snapshotDir).Msg("could not create snapshot directory")
		}
	}

	cfg := flow.Config{
		Corners: flow.CornerParams{
			MaxCorners:  *maxCorners,
			Quality:     *quality,
			MinDistance: *minDistance,
		},
		Flow:         flow.DefaultFlowParams(),
		HistoryDepth: *historyDepth,
		FrameDelay:   *frameDelay,
		SnapshotDir:  *snapshotDir,
		ShowStatus:   *statusOverlay,
	}
	cfg.Flow.WinSize = *winSize
	cfg.Flow.MaxLevel = *maxLevel

	source, err := video.OpenFile(*input)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not open video source")
	}
	defer source.Close()

	window := video.NewWindow("Tracking " + *input)
	defer window.Close()

	logger.Info().Str("input", *input).Int("history_depth", cfg.HistoryDepth).Msg("starting optical flow visualization")

	if err := flow.Run(cfg, flow.Deps{Source: source, Display: window, Log: logger}); err != nil {
		logger.Fatal().Err(err).Msg("flow pipeline failed")
	}
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("component", "opticalflow").
		Logger()
}
