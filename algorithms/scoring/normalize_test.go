package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/prosodia/algorithms/pitch"
)

func seriesFromFrequencies(frequencies ...float64) *pitch.Series {
	series := &pitch.Series{}
	for i, f := range frequencies {
		confidence := 0.0
		if f > 0 {
			confidence = 1.0
		}
		series.Append(pitch.DataPoint{
			Timestamp:  float64(i) * 0.1,
			Frequency:  f,
			Confidence: confidence,
			Energy:     0.5,
		})
	}
	return series
}

func TestNormalizeRemovesSpeakerPitch(t *testing.T) {
	normalizer, err := NewNormalizer(DefaultNormalizerConfig())
	require.NoError(t, err)

	low := seriesFromFrequencies(100, 150, 200, 150, 100, 100)
	high := seriesFromFrequencies(200, 300, 400, 300, 200, 200)

	lowCurve, err := normalizer.Normalize(low)
	require.NoError(t, err)
	highCurve, err := normalizer.Normalize(high)
	require.NoError(t, err)

	require.Len(t, highCurve, len(lowCurve))
	for i := range lowCurve {
		assert.InDelta(t, lowCurve[i], highCurve[i], 1e-9,
			"an octave shift must normalize away at index %d", i)
	}
}

func TestNormalizeZScoreProperties(t *testing.T) {
	normalizer, err := NewNormalizer(DefaultNormalizerConfig())
	require.NoError(t, err)

	curve, err := normalizer.Normalize(seriesFromFrequencies(100, 150, 200, 150, 100, 100))
	require.NoError(t, err)

	mean := 0.0
	for _, v := range curve {
		mean += v
	}
	mean /= float64(len(curve))
	assert.InDelta(t, 0.0, mean, 1e-9)
}

func TestNormalizeFiltersUnvoicedPoints(t *testing.T) {
	normalizer, err := NewNormalizer(DefaultNormalizerConfig())
	require.NoError(t, err)

	curve, err := normalizer.Normalize(seriesFromFrequencies(100, 0, 150, 0, 200))
	require.NoError(t, err)

	assert.Len(t, curve, 3)
}

func TestNormalizeInsufficientData(t *testing.T) {
	normalizer, err := NewNormalizer(DefaultNormalizerConfig())
	require.NoError(t, err)

	_, err = normalizer.Normalize(seriesFromFrequencies(100))
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = normalizer.Normalize(seriesFromFrequencies(0, 0, 0, 0))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestNormalizeDegenerateFlatSeries(t *testing.T) {
	normalizer, err := NewNormalizer(DefaultNormalizerConfig())
	require.NoError(t, err)

	_, err = normalizer.Normalize(seriesFromFrequencies(150, 150, 150, 150))

	assert.ErrorIs(t, err, ErrDegenerateSeries)
}

func TestNormalizeHzMode(t *testing.T) {
	config := DefaultNormalizerConfig()
	config.UseSemitones = false
	normalizer, err := NewNormalizer(config)
	require.NoError(t, err)

	// Linear scaling is removed by the z-score even without the
	// semitone conversion
	a, err := normalizer.Normalize(seriesFromFrequencies(100, 200, 300))
	require.NoError(t, err)
	b, err := normalizer.Normalize(seriesFromFrequencies(200, 400, 600))
	require.NoError(t, err)

	for i := range a {
		assert.InDelta(t, a[i], b[i], 1e-9)
	}
}

func TestNormalizerConfigValidation(t *testing.T) {
	config := DefaultNormalizerConfig()
	config.ReferenceFrequency = 0

	_, err := NewNormalizer(config)

	assert.Error(t, err)
}
