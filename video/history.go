package video

import "gocv.io/x/gocv"

// History is a bounded FIFO ring of grayscale frames. It owns the Mats it
// holds: frames evicted by Push are closed, frames handed out by PopOldest
// transfer ownership to the caller.
type History struct {
	frames []gocv.Mat
	head   int // index of the oldest frame
	size   int
}

// NewHistory creates a history buffer holding at most capacity frames.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{frames: make([]gocv.Mat, capacity)}
}

// Push appends a frame, taking ownership of it. When the buffer is at
// capacity the oldest frame is evicted and closed.
func (h *History) Push(m gocv.Mat) {
	if h.size == len(h.frames) {
		h.frames[h.head].Close()
		h.frames[h.head] = m
		h.head = (h.head + 1) % len(h.frames)
		return
	}
	h.frames[(h.head+h.size)%len(h.frames)] = m
	h.size++
}

// PopOldest removes and returns the oldest frame, transferring ownership to
// the caller. The second return is false when the buffer is empty.
func (h *History) PopOldest() (gocv.Mat, bool) {
	if h.size == 0 {
		return gocv.Mat{}, false
	}
	m := h.frames[h.head]
	h.frames[h.head] = gocv.Mat{}
	h.head = (h.head + 1) % len(h.frames)
	h.size--
	return m, true
}

// Len returns the number of buffered frames.
func (h *History) Len() int {
	return h.size
}

// Cap returns the buffer capacity.
func (h *History) Cap() int {
	return len(h.frames)
}

// Full reports whether the buffer is at capacity.
func (h *History) Full() bool {
	return h.size == len(h.frames)
}

// Close releases all frames still held by the buffer.
func (h *History) Close() {
	for h.size > 0 {
		m, _ := h.PopOldest()
		m.Close()
	}
}
