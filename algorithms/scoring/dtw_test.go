package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightsMustSumToOne(t *testing.T) {
	_, err := NewWeights(0.5, 0.3, 0.3, 0.0)
	assert.Error(t, err, "sum of 1.1 must fail construction")

	_, err = NewWeights(0.5, 0.3, 0.1, 0.0)
	assert.Error(t, err, "sum of 0.9 must fail construction")

	_, err = NewWeights(0.6, 0.3, 0.2, -0.1)
	assert.Error(t, err, "negative component must fail construction")

	w, err := NewWeights(0.25, 0.25, 0.25, 0.25)
	require.NoError(t, err)
	assert.NoError(t, w.Validate())

	assert.NoError(t, DefaultWeights().Validate())
}

func TestCompareIdentity(t *testing.T) {
	comparator, err := NewComparator(DefaultComparatorConfig())
	require.NoError(t, err)

	curve := []float64{-1.2, -0.4, 0.8, 1.4, 0.8, -0.4, -1.0}

	result := comparator.Compare(curve, curve)

	assert.InDelta(t, 1.0, result.Alignment, 1e-9)
	assert.InDelta(t, 1.0, result.PitchCloseness, 1e-9)
	assert.InDelta(t, 1.0, result.Contour, 1e-9)
	assert.InDelta(t, 1.0, result.Range, 1e-9)
	assert.InDelta(t, 100.0, result.Score, 1e-6)
	assert.Equal(t, len(curve), result.PathLength)
}

func TestCompareShortInputsScoreZero(t *testing.T) {
	comparator, err := NewComparator(DefaultComparatorConfig())
	require.NoError(t, err)

	assert.Equal(t, Result{}, comparator.Compare([]float64{1.0}, []float64{1.0, 2.0}))
	assert.Equal(t, Result{}, comparator.Compare([]float64{1.0, 2.0}, []float64{}))
	assert.Equal(t, Result{}, comparator.Compare(nil, nil))
}

func TestCompareDissimilarCurvesScoreLower(t *testing.T) {
	comparator, err := NewComparator(DefaultComparatorConfig())
	require.NoError(t, err)

	rising := []float64{-1.5, -0.9, -0.3, 0.3, 0.9, 1.5}
	falling := []float64{1.5, 0.9, 0.3, -0.3, -0.9, -1.5}

	same := comparator.Compare(rising, rising)
	opposite := comparator.Compare(rising, falling)

	assert.Greater(t, same.Score, opposite.Score+20.0,
		"opposite contours should score far below identity")
	assert.Less(t, opposite.Contour, 0.2)
}

func TestCompareDifferentLengths(t *testing.T) {
	comparator, err := NewComparator(DefaultComparatorConfig())
	require.NoError(t, err)

	// Same shape at different speaking rates
	slow := []float64{-1.0, -0.5, 0.0, 0.5, 1.0, 0.5, 0.0, -0.5, -1.0}
	fast := []float64{-1.0, 0.0, 1.0, 0.0, -1.0}

	result := comparator.Compare(slow, fast)

	assert.Greater(t, result.Score, 50.0)
	assert.GreaterOrEqual(t, result.Contour, 0.4)
	assert.InDelta(t, 1.0, result.Range, 1e-9)
}

func TestCompareFlatRangeHandling(t *testing.T) {
	comparator, err := NewComparator(DefaultComparatorConfig())
	require.NoError(t, err)

	flat := []float64{0.0, 0.0, 0.0, 0.0}
	varied := []float64{-1.0, 0.5, 1.0, -0.5}

	bothFlat := comparator.Compare(flat, flat)
	assert.InDelta(t, 1.0, bothFlat.Range, 1e-9)

	oneFlat := comparator.Compare(flat, varied)
	assert.InDelta(t, 0.0, oneFlat.Range, 1e-9)
}

func TestComparatorConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ComparatorConfig)
	}{
		{"zero tolerance", func(c *ComparatorConfig) { c.PitchTolerance = 0 }},
		{"negative step penalty", func(c *ComparatorConfig) { c.StepPenalty = -1 }},
		{"zero strictness", func(c *ComparatorConfig) { c.Strictness = 0 }},
		{"bad weights", func(c *ComparatorConfig) { c.Weights.Alignment = 0.9 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultComparatorConfig()
			tt.mutate(&config)

			_, err := NewComparator(config)

			assert.Error(t, err)
		})
	}
}

func TestScorerEndToEnd(t *testing.T) {
	scorer, err := NewScorer(DefaultScorerConfig())
	require.NoError(t, err)

	reference := seriesFromFrequencies(100, 150, 200, 150, 100, 100)
	user := seriesFromFrequencies(200, 300, 400, 300, 200, 200)

	score := scorer.Score(reference, user)

	require.False(t, score.InsufficientData)
	assert.Greater(t, score.Pitch.PitchCloseness, 0.9)
	assert.Greater(t, score.Pitch.Contour, 0.9)
	assert.Greater(t, score.Pitch.Range, 0.9)
	assert.Greater(t, score.Total, 80.0,
		"same intonation an octave apart should score highly")
}

func TestScorerInsufficientData(t *testing.T) {
	scorer, err := NewScorer(DefaultScorerConfig())
	require.NoError(t, err)

	reference := seriesFromFrequencies(100, 150, 200, 150, 100, 100)
	tooShort := seriesFromFrequencies(120)

	score := scorer.Score(reference, tooShort)

	assert.True(t, score.InsufficientData)
	assert.Equal(t, 0.0, score.Total)
}

func TestScorerConfigWeightValidation(t *testing.T) {
	config := DefaultScorerConfig()
	config.PitchWeight = 0.8
	config.RhythmWeight = 0.5

	_, err := NewScorer(config)

	assert.Error(t, err)
}
