package video

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Source supplies sequential frames from a video stream. Read reports false
// at end of stream.
type Source interface {
	Read(dst *gocv.Mat) bool
	Close() error
}

// FileSource reads frames from a local video file.
type FileSource struct {
	capture *gocv.VideoCapture
	path    string
}

// OpenFile opens a video file for sequential frame reads.
func OpenFile(path string) (*FileSource, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening video %s: %w", path, err)
	}
	return &FileSource{capture: capture, path: path}, nil
}

// Read pulls the next frame into dst. Returns false at end of stream.
func (s *FileSource) Read(dst *gocv.Mat) bool {
	return s.capture.Read(dst)
}

// Path returns the file path the source was opened from.
func (s *FileSource) Path() string {
	return s.path
}

// Close releases the underlying capture handle.
func (s *FileSource) Close() error {
	return s.capture.Close()
}

// Display renders frames and polls for key input. WaitKey doubles as the
// cancel-key poll every iteration.
type Display interface {
	Show(img gocv.Mat)
	WaitKey(delay int) int
	SelectROI(img gocv.Mat) image.Rectangle
	Close() error
}

// Window is a Display backed by an OpenCV highgui window.
type Window struct {
	win *gocv.Window
}

// NewWindow creates a named display window.
func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

// Show renders the frame in the window.
func (w *Window) Show(img gocv.Mat) {
	w.win.IMShow(img)
}

// WaitKey refreshes the window and polls for a key press for delay
// milliseconds. Returns the pressed key code or -1.
func (w *Window) WaitKey(delay int) int {
	return w.win.WaitKey(delay)
}

// SelectROI blocks for an interactive rectangle selection on img.
func (w *Window) SelectROI(img gocv.Mat) image.Rectangle {
	return w.win.SelectROI(img)
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}

// Writer appends frames to an output video sink.
type Writer interface {
	Write(img gocv.Mat) error
	Close() error
}

// FileWriter writes frames to an MPEG-4 video file.
type FileWriter struct {
	writer *gocv.VideoWriter
}

// NewFileWriter opens an mp4v output file at the given frame rate and size.
func NewFileWriter(path string, fps float64, width, height int) (*FileWriter, error) {
	writer, err := gocv.VideoWriterFile(path, "mp4v", fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("opening video writer %s: %w", path, err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("video writer %s failed to open", path)
	}
	return &FileWriter{writer: writer}, nil
}

// Write appends one frame to the output file.
func (w *FileWriter) Write(img gocv.Mat) error {
	return w.writer.Write(img)
}

// Close finalizes the output file.
func (w *FileWriter) Close() error {
	return w.writer.Close()
}
