package pitch

import (
	"sync/atomic"
)

// RingBuffer is a fixed-capacity sample buffer for one producer and one
// consumer. The audio callback pushes batches without blocking and the
// analysis loop reads recent windows; when full, the oldest samples are
// overwritten. The total-written counter is published after the slot
// writes, so the consumer never observes a slot the producer has not
// finished.
type RingBuffer struct {
	data    []float64
	written atomic.Int64
}

// NewRingBuffer creates a ring buffer holding capacity samples.
// Capacity must be positive.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &RingBuffer{
		data: make([]float64, capacity),
	}
}

// Push appends a batch of samples, overwriting the oldest when the
// buffer is full. Safe against a single concurrent reader.
func (b *RingBuffer) Push(samples []float64) {
	if len(samples) == 0 {
		return
	}

	// Only the tail that still fits matters once the batch exceeds
	// capacity; earlier samples would be overwritten within this call.
	if len(samples) > len(b.data) {
		samples = samples[len(samples)-len(b.data):]
	}

	written := b.written.Load()
	pos := int(written % int64(len(b.data)))
	n := copy(b.data[pos:], samples)
	if n < len(samples) {
		copy(b.data, samples[n:])
	}

	b.written.Store(written + int64(len(samples)))
}

// LastSeconds copies the most recent seconds of audio into a new slice,
// oldest sample first. The span is clamped to what the buffer holds.
func (b *RingBuffer) LastSeconds(seconds float64, sampleRate int) []float64 {
	if seconds <= 0 || sampleRate <= 0 {
		return []float64{}
	}

	want := int(seconds * float64(sampleRate))
	return b.LastN(want)
}

// LastN copies the most recent n samples into a new slice, oldest
// sample first.
func (b *RingBuffer) LastN(n int) []float64 {
	written := b.written.Load()
	if n > len(b.data) {
		n = len(b.data)
	}
	if int64(n) > written {
		n = int(written)
	}
	if n <= 0 {
		return []float64{}
	}

	out := make([]float64, n)
	start := int((written - int64(n)) % int64(len(b.data)))
	m := copy(out, b.data[start:])
	if m < n {
		copy(out[m:], b.data)
	}
	return out
}

// Len returns the number of valid samples currently held
func (b *RingBuffer) Len() int {
	written := b.written.Load()
	if written > int64(len(b.data)) {
		return len(b.data)
	}
	return int(written)
}

// Cap returns the buffer capacity in samples
func (b *RingBuffer) Cap() int {
	return len(b.data)
}

// TotalWritten returns the number of samples ever pushed
func (b *RingBuffer) TotalWritten() int64 {
	return b.written.Load()
}

// Clear discards all buffered samples
func (b *RingBuffer) Clear() {
	b.written.Store(0)
}
