package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBufferPartialFill(t *testing.T) {
	buf := NewRingBuffer(100)

	buf.Push([]float64{1, 2, 3})

	assert.Equal(t, 3, buf.Len())
	assert.Equal(t, 100, buf.Cap())
	assert.Equal(t, []float64{1, 2, 3}, buf.LastN(10),
		"should report only the samples ever written")
}

func TestRingBufferWraparound(t *testing.T) {
	const capacity = 64
	buf := NewRingBuffer(capacity)

	// Push 2N samples of known content in small uneven batches
	content := make([]float64, 2*capacity)
	for i := range content {
		content[i] = float64(i)
	}
	for start := 0; start < len(content); start += 7 {
		end := start + 7
		if end > len(content) {
			end = len(content)
		}
		buf.Push(content[start:end])
	}

	got := buf.LastN(capacity)
	require.Len(t, got, capacity)
	assert.Equal(t, content[capacity:], got,
		"full read after wraparound should return exactly the last N samples in order")
}

func TestRingBufferLastSeconds(t *testing.T) {
	buf := NewRingBuffer(1000)
	samples := make([]float64, 500)
	for i := range samples {
		samples[i] = float64(i)
	}
	buf.Push(samples)

	got := buf.LastSeconds(0.02, 10000) // 200 samples
	require.Len(t, got, 200)
	assert.Equal(t, 300.0, got[0])
	assert.Equal(t, 499.0, got[199])

	// Requesting more than was ever written clamps
	assert.Len(t, buf.LastSeconds(1.0, 10000), 500)

	assert.Empty(t, buf.LastSeconds(-1.0, 10000))
	assert.Empty(t, buf.LastSeconds(0.1, 0))
}

func TestRingBufferOversizedPush(t *testing.T) {
	buf := NewRingBuffer(4)

	buf.Push([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	assert.Equal(t, []float64{7, 8, 9, 10}, buf.LastN(4))
}

func TestRingBufferClear(t *testing.T) {
	buf := NewRingBuffer(8)
	buf.Push([]float64{1, 2, 3})

	buf.Clear()

	assert.Equal(t, 0, buf.Len())
	assert.Empty(t, buf.LastN(8))
}
