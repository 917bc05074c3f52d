package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocv.io/x/gocv"
)

// frameOfHeight builds a tiny grayscale Mat whose row count identifies it.
func frameOfHeight(rows int) gocv.Mat {
	return gocv.NewMatWithSize(rows, 1, gocv.MatTypeCV8U)
}

func TestHistoryCapacity(t *testing.T) {
	t.Run("length never exceeds capacity", func(t *testing.T) {
		h := NewHistory(3)
		defer h.Close()

		for i := 1; i <= 10; i++ {
			h.Push(frameOfHeight(i))
			assert.LessOrEqual(t, h.Len(), h.Cap())
		}
		assert.Equal(t, 3, h.Len())
	})

	t.Run("push beyond capacity evicts the oldest", func(t *testing.T) {
		h := NewHistory(3)
		defer h.Close()

		for i := 1; i <= 4; i++ {
			h.Push(frameOfHeight(i))
		}

		// frame 1 was evicted; frame 2 is now the oldest
		m, ok := h.PopOldest()
		require.True(t, ok)
		assert.Equal(t, 2, m.Rows())
		m.Close()
	})

	t.Run("capacity below one is clamped", func(t *testing.T) {
		h := NewHistory(0)
		defer h.Close()
		assert.Equal(t, 1, h.Cap())
	})
}

func TestHistoryPopOldest(t *testing.T) {
	t.Run("empty buffer reports no frame", func(t *testing.T) {
		h := NewHistory(3)
		defer h.Close()

		_, ok := h.PopOldest()
		assert.False(t, ok)
	})

	t.Run("frames come out in push order", func(t *testing.T) {
		h := NewHistory(4)
		defer h.Close()

		for i := 1; i <= 4; i++ {
			h.Push(frameOfHeight(i))
		}
		for i := 1; i <= 4; i++ {
			m, ok := h.PopOldest()
			require.True(t, ok)
			assert.Equal(t, i, m.Rows())
			m.Close()
		}
		assert.Equal(t, 0, h.Len())
	})

	t.Run("pop then push reuses freed capacity", func(t *testing.T) {
		h := NewHistory(2)
		defer h.Close()

		h.Push(frameOfHeight(1))
		h.Push(frameOfHeight(2))
		require.True(t, h.Full())

		m, ok := h.PopOldest()
		require.True(t, ok)
		m.Close()
		assert.False(t, h.Full())

		h.Push(frameOfHeight(3))
		require.True(t, h.Full())

		m, ok = h.PopOldest()
		require.True(t, ok)
		assert.Equal(t, 2, m.Rows())
		m.Close()
	})
}

// TestHistoryReferenceSelection mirrors the pipeline's use of the buffer: the
// reference popped on the step after K appends is the first of the original K.
func TestHistoryReferenceSelection(t *testing.T) {
	const k = 5
	h := NewHistory(k)
	defer h.Close()

	for i := 1; i <= k; i++ {
		require.False(t, h.Full())
		h.Push(frameOfHeight(i))
	}

	// step K+1: buffer is full, so the reference is popped before the push
	require.True(t, h.Full())
	ref, ok := h.PopOldest()
	require.True(t, ok)
	assert.Equal(t, 1, ref.Rows())
	ref.Close()

	h.Push(frameOfHeight(k + 1))
	assert.Equal(t, k, h.Len())
}
