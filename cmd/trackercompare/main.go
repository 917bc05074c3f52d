package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"trackcam/compare"
	"trackcam/video"
)

var (
	input      = flag.String("input", "", "Path to the input video file (required)")
	output     = flag.String("output", "output.mp4", "Path to the annotated output video file")
	outputFPS  = flag.Float64("fps", 30, "Frame rate of the output video")
	trackers   = flag.String("trackers", "kcf,csrt,mil", "Comma-separated trackers to compare (kcf, csrt, mil)")
	frameDelay = flag.Duration("frame-delay", 100*time.Millisecond, "Pacing delay between frames")
	debugMode  = flag.Bool("debug", false, "Enable per-frame debug logging")
)

func main() {
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -input flag is required")
		fmt.Fprintln(os.Stderr, "Example: trackercompare -input testfile.mp4 -output output.mp4")
		os.Exit(1)
	}

	logger := newLogger(*debugMode)

	entries, err := compare.EntriesFromNames(*trackers)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid tracker selection")
	}

	cfg := compare.Config{
		Entries:    entries,
		OutputFPS:  *outputFPS,
		FrameDelay: *frameDelay,
	}

	source, err := video.OpenFile(*input)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not open video source")
	}
	defer source.Close()

	window := video.NewWindow("Tracking " + *input)
	defer window.Close()

	deps := compare.Deps{
		Source:  source,
		Display: window,
		OpenWriter: func(width, height int) (video.Writer, error) {
			return video.NewFileWriter(*output, cfg.OutputFPS, width, height)
		},
		Log: logger,
	}

	logger.Info().Str("input", *input).Str("output", *output).
		Str("trackers", *trackers).Msg("starting tracker comparison")

	if err := compare.Run(cfg, deps); err != nil {
		logger.Fatal().Err(err).Msg("tracker comparison failed")
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
		Str("component", "trackercompare").
		Logger()
}
