package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanAndVariance(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	assert.InDelta(t, 5.0, Mean(data), 1e-12)
	assert.InDelta(t, 4.571428571, Variance(data), 1e-6)

	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Variance([]float64{1.0}))
}

func TestRMSAndMeanAbs(t *testing.T) {
	assert.InDelta(t, 1.0, RMS([]float64{1, -1, 1, -1}), 1e-12)
	assert.InDelta(t, 5.0, RMS([]float64{3, 4, -3, -4, 5, -5}), 1.2)
	assert.InDelta(t, 0.5, MeanAbs([]float64{0.5, -0.5, 0.5, -0.5}), 1e-12)
	assert.Equal(t, 0.0, RMS(nil))
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}
	inverted := []float64{5, 4, 3, 2, 1}

	assert.InDelta(t, 1.0, Correlation(x, y), 1e-12)
	assert.InDelta(t, -1.0, Correlation(x, inverted), 1e-12)

	// Degenerate inputs yield 0, never NaN
	assert.Equal(t, 0.0, Correlation(x, []float64{1, 2}))
	assert.Equal(t, 0.0, Correlation(x, []float64{3, 3, 3, 3, 3}))
}

func TestResample(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4}

	up := Resample(data, 9)
	assert.Len(t, up, 9)
	assert.Equal(t, 0.0, up[0])
	assert.Equal(t, 4.0, up[8])
	assert.InDelta(t, 0.5, up[1], 1e-12)

	down := Resample(data, 3)
	assert.Equal(t, []float64{0, 2, 4}, down)

	assert.Equal(t, []float64{7, 7}, Resample([]float64{7}, 2))
	assert.Empty(t, Resample(nil, 3))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, 0.0, Clamp01(-2.0))
	assert.Equal(t, 1.0, Clamp01(1.5))
}

func TestPowerOfTwoHelpers(t *testing.T) {
	assert.True(t, IsPowerOfTwo(4096))
	assert.False(t, IsPowerOfTwo(4000))
	assert.False(t, IsPowerOfTwo(0))
	assert.Equal(t, 8192, NextPowerOfTwo(4097))
	assert.Equal(t, 1, NextPowerOfTwo(0))
}
