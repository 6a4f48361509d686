package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()

	gateConfig := DefaultGateConfig()
	gateConfig.CalibrationDuration = 0.2
	gateConfig.MinCalibrationSamples = 2

	tracker, err := NewTracker(DefaultConfig(), gateConfig)
	require.NoError(t, err)
	return tracker
}

func TestTrackerSession(t *testing.T) {
	tracker := newTestTracker(t)
	config := DefaultConfig()

	// Quiet room during calibration
	tracker.PushSamples(make([]float64, config.FrameSize))
	_, ok := tracker.Step(0.0)
	assert.False(t, ok, "no points during calibration")
	_, ok = tracker.Step(0.1)
	assert.False(t, ok)
	require.True(t, tracker.Gate().IsReady())

	// Speaker starts: a strong 220 Hz tone
	tracker.PushSamples(sineFrame(220.0, config.SampleRate, config.FrameSize, 0.5))
	point, ok := tracker.Step(0.2)

	require.True(t, ok)
	assert.InEpsilon(t, 220.0, point.Frequency, 0.02)
	assert.Greater(t, point.Energy, 0.0)
	assert.Equal(t, 0.2, point.Timestamp)
	assert.Equal(t, 1, tracker.Series().Len())
}

func TestTrackerBlockedFramesKeepEnergy(t *testing.T) {
	tracker := newTestTracker(t)
	config := DefaultConfig()

	tracker.PushSamples(make([]float64, config.FrameSize))
	tracker.Step(0.0)
	tracker.Step(0.1)
	require.True(t, tracker.Gate().IsReady())

	// Very quiet hum: below the gate but not digital silence. The point
	// is still recorded so rhythm analysis can see the pause.
	tracker.PushSamples(sineFrame(220.0, config.SampleRate, config.FrameSize, 0.005))
	point, ok := tracker.Step(0.2)

	require.True(t, ok)
	assert.Equal(t, 0.0, point.Frequency)
	assert.Equal(t, 0.0, point.Confidence)
	assert.Greater(t, point.Energy, 0.0)
}

func TestTrackerRejectsNonMonotonicTimestamps(t *testing.T) {
	tracker := newTestTracker(t)
	config := DefaultConfig()

	tracker.PushSamples(make([]float64, config.FrameSize))
	tracker.Step(0.0)
	tracker.Step(0.1)

	tracker.PushSamples(sineFrame(220.0, config.SampleRate, config.FrameSize, 0.5))
	_, ok := tracker.Step(0.2)
	require.True(t, ok)

	_, ok = tracker.Step(0.2)
	assert.False(t, ok, "repeated timestamp must not append")
	assert.Equal(t, 1, tracker.Series().Len())
}

func TestTrackerReset(t *testing.T) {
	tracker := newTestTracker(t)
	config := DefaultConfig()

	tracker.PushSamples(make([]float64, config.FrameSize))
	tracker.Step(0.0)
	tracker.Step(0.1)
	tracker.PushSamples(sineFrame(220.0, config.SampleRate, config.FrameSize, 0.5))
	tracker.Step(0.2)
	require.Equal(t, 1, tracker.Series().Len())

	tracker.Reset()

	assert.Equal(t, 0, tracker.Series().Len())
	assert.Equal(t, GateCalibrating, tracker.Gate().State())
	_, ok := tracker.Step(0.0)
	assert.False(t, ok, "no frame available after reset")
}

func TestAnalyzeRecording(t *testing.T) {
	config := DefaultConfig()

	// One second of 150 Hz
	samples := sineFrame(150.0, config.SampleRate, config.SampleRate, 0.5)

	series, err := AnalyzeRecording(samples, config, 0.1)
	require.NoError(t, err)

	assert.Equal(t, 10, series.Len())
	stats := series.Stats(config.ConfidenceThreshold)
	assert.Greater(t, stats.VoicedFraction, 0.5)
	assert.InEpsilon(t, 150.0, stats.MeanFrequency, 0.02)
}

func TestSeriesAppendMonotonic(t *testing.T) {
	series := &Series{}

	assert.True(t, series.Append(DataPoint{Timestamp: 0.0}))
	assert.True(t, series.Append(DataPoint{Timestamp: 0.1}))
	assert.False(t, series.Append(DataPoint{Timestamp: 0.1}))
	assert.False(t, series.Append(DataPoint{Timestamp: 0.05}))
	assert.Equal(t, 2, series.Len())
}

func TestSeriesStatsEmpty(t *testing.T) {
	series := &Series{}

	stats := series.Stats(0.5)

	assert.Equal(t, 0, stats.PointCount)
	assert.Equal(t, 0.0, stats.VoicedFraction)
	assert.Equal(t, 0.0, stats.MeanFrequency)
}
