package pitch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sineFrame(frequency float64, sampleRate, length int, amplitude float64) []float64 {
	frame := make([]float64, length)
	for i := range frame {
		frame[i] = amplitude * math.Sin(2.0*math.Pi*frequency*float64(i)/float64(sampleRate))
	}
	return frame
}

func TestExtractorKnownFrequencies(t *testing.T) {
	config := DefaultConfig()
	extractor, err := NewExtractor(config)
	require.NoError(t, err)

	for _, freq := range []float64{80.0, 100.0, 150.0, 220.0, 300.0, 440.0} {
		frame := sineFrame(freq, config.SampleRate, config.FrameSize, 0.5)

		est := extractor.Analyze(frame)

		require.Greater(t, est.Frequency, 0.0, "no pitch found for %.0f Hz", freq)
		assert.InEpsilon(t, freq, est.Frequency, 0.02,
			"detected %.2f Hz for a %.0f Hz sine", est.Frequency, freq)
		assert.GreaterOrEqual(t, est.Confidence, config.CorrelationThreshold)
		assert.Greater(t, est.Energy, 0.0)
	}
}

func TestExtractorSilence(t *testing.T) {
	extractor, err := NewExtractor(DefaultConfig())
	require.NoError(t, err)

	est := extractor.Analyze(make([]float64, 4096))

	assert.Equal(t, 0.0, est.Frequency)
	assert.Equal(t, 0.0, est.Confidence)
	assert.Equal(t, 0.0, est.Energy)
}

func TestExtractorNoiseFloorReject(t *testing.T) {
	config := DefaultConfig()
	extractor, err := NewExtractor(config)
	require.NoError(t, err)

	// A sine well below the noise floor still reports energy but no pitch
	frame := sineFrame(200.0, config.SampleRate, config.FrameSize, config.NoiseFloor/10)

	est := extractor.Analyze(frame)

	assert.Equal(t, 0.0, est.Frequency)
	assert.Equal(t, 0.0, est.Confidence)
	assert.Greater(t, est.Energy, 0.0)
}

func TestExtractorShortFrame(t *testing.T) {
	config := DefaultConfig()
	extractor, err := NewExtractor(config)
	require.NoError(t, err)

	// Shorter than two full periods of the lowest searchable frequency
	frame := sineFrame(200.0, config.SampleRate, 1000, 0.5)

	est := extractor.Analyze(frame)

	assert.Equal(t, 0.0, est.Frequency)
	assert.Greater(t, est.Energy, 0.0)
}

func TestExtractorPartialTrailingFrame(t *testing.T) {
	config := DefaultConfig()
	extractor, err := NewExtractor(config)
	require.NoError(t, err)

	// Long enough to analyze but well short of a full frame, like the
	// last hop of an offline recording. The taper must fit the actual
	// frame length or the unwindowed far edge skews the peak.
	frame := sineFrame(220.0, config.SampleRate, 2000, 0.5)

	est := extractor.Analyze(frame)

	require.Greater(t, est.Frequency, 0.0)
	assert.InEpsilon(t, 220.0, est.Frequency, 0.02,
		"detected %.2f Hz for a 220 Hz sine", est.Frequency)
	assert.GreaterOrEqual(t, est.Confidence, config.CorrelationThreshold)
}

func TestExtractorAboveRangeNotDetected(t *testing.T) {
	config := DefaultConfig()
	config.MaxFrequency = 300.0
	extractor, err := NewExtractor(config)
	require.NoError(t, err)

	frame := sineFrame(800.0, config.SampleRate, config.FrameSize, 0.5)

	est := extractor.Analyze(frame)

	if est.Frequency > 0 {
		assert.LessOrEqual(t, est.Frequency, config.MaxFrequency*1.02)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"frame size not power of two", func(c *Config) { c.FrameSize = 4000 }},
		{"negative min frequency", func(c *Config) { c.MinFrequency = -10 }},
		{"inverted range", func(c *Config) { c.MinFrequency = 500; c.MaxFrequency = 100 }},
		{"period exceeds half frame", func(c *Config) { c.MinFrequency = 5 }},
		{"correlation threshold out of range", func(c *Config) { c.CorrelationThreshold = 1.5 }},
		{"unknown window", func(c *Config) { c.WindowType = "kaiser" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			_, err := NewExtractor(config)

			assert.Error(t, err)
		})
	}
}

func TestConfigErrorMessage(t *testing.T) {
	config := DefaultConfig()
	config.FrameSize = 1000

	err := config.Validate()

	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "frame_size", cfgErr.Field)
}
