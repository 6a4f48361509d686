package pitch

import (
	"github.com/RyanBlaney/prosodia/algorithms/filters"
	"github.com/RyanBlaney/prosodia/logging"
)

// Tracker ties the ring buffer, extractor, and noise gate together for
// one live session. The audio callback calls PushSamples; a timer on
// the analysis side calls Step once per interval and collects the
// resulting series. The Tracker never runs its own goroutine.
type Tracker struct {
	config     Config
	gateConfig GateConfig
	buffer     *RingBuffer
	extractor  *Extractor
	gate       *NoiseGate
	dc         *filters.DCRemoval
	series     Series
	logger     logging.Logger
}

// NewTracker creates a session tracker. The ring buffer is sized to
// hold a few analysis frames of headroom.
func NewTracker(config Config, gateConfig GateConfig) (*Tracker, error) {
	extractor, err := NewExtractor(config)
	if err != nil {
		return nil, err
	}

	gate, err := NewNoiseGate(gateConfig)
	if err != nil {
		return nil, err
	}

	return &Tracker{
		config:     config,
		gateConfig: gateConfig,
		buffer:     NewRingBuffer(config.FrameSize * 4),
		extractor:  extractor,
		gate:       gate,
		dc:         filters.NewDCRemoval(),
		logger: logging.WithFields(logging.Fields{
			"component": "pitch_tracker",
		}),
	}, nil
}

// PushSamples feeds mono samples from the capture callback, removing
// any DC offset before they are buffered. Safe to call from a
// different goroutine than Step.
func (t *Tracker) PushSamples(samples []float64) {
	filtered := make([]float64, len(samples))
	copy(filtered, samples)
	t.buffer.Push(t.dc.ProcessBuffer(filtered))
}

// Step analyzes the most recent frame and, once the gate is active,
// appends a DataPoint at the given timestamp. Frames the gate blocks
// still produce a point so downstream rhythm analysis sees the pauses,
// but with frequency and confidence zeroed. Returns the point and
// whether one was recorded.
func (t *Tracker) Step(timestamp float64) (DataPoint, bool) {
	frame := t.buffer.LastN(t.config.FrameSize)
	if len(frame) == 0 {
		return DataPoint{}, false
	}

	est := t.extractor.Analyze(frame)

	// The frame that completes calibration is itself an ambient sample,
	// so readiness is checked before it is observed.
	calibrating := !t.gate.IsReady()
	open := t.gate.ShouldPass(est.Energy)
	if calibrating {
		return DataPoint{}, false
	}

	point := DataPoint{
		Timestamp: timestamp,
		Energy:    est.Energy,
	}
	if open {
		point.Frequency = est.Frequency
		point.Confidence = est.Confidence
	}

	if !t.series.Append(point) {
		t.logger.Warn("dropped non-monotonic data point", logging.Fields{
			"timestamp": timestamp,
		})
		return DataPoint{}, false
	}

	return point, true
}

// Gate exposes the underlying noise gate for state queries
func (t *Tracker) Gate() *NoiseGate {
	return t.gate
}

// Series returns the points recorded so far
func (t *Tracker) Series() *Series {
	return &t.series
}

// Reset clears the recorded series and buffered audio and restarts
// gate calibration for a fresh session.
func (t *Tracker) Reset() {
	t.buffer.Clear()
	t.series = Series{}
	t.gate.Recalibrate()
	t.dc.Reset()
}
