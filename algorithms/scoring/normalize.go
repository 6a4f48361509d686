package scoring

import (
	"math"

	"github.com/RyanBlaney/prosodia/algorithms/common"
	"github.com/RyanBlaney/prosodia/algorithms/pitch"
)

// NormalizerConfig controls how a pitch series is reduced to a
// speaker-independent curve.
type NormalizerConfig struct {
	UseSemitones       bool    `json:"use_semitones"`
	ReferenceFrequency float64 `json:"reference_frequency"` // Hz basis for the semitone scale
	ConfidenceFloor    float64 `json:"confidence_floor"`    // Points below this are discarded
}

// DefaultNormalizerConfig returns the standard normalization settings
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		UseSemitones:       true,
		ReferenceFrequency: 100.0,
		ConfidenceFloor:    0.5,
	}
}

// Validate checks the normalizer configuration
func (c NormalizerConfig) Validate() error {
	if c.UseSemitones && c.ReferenceFrequency <= 0 {
		return &pitch.ConfigError{Field: "reference_frequency", Reason: "must be positive"}
	}
	if c.ConfidenceFloor < 0 || c.ConfidenceFloor > 1 {
		return &pitch.ConfigError{Field: "confidence_floor", Reason: "must be in [0, 1]"}
	}
	return nil
}

// Normalizer converts pitch series into comparable shape curves:
// voiced points only, optionally on a semitone scale, then z-scored so
// two speakers with different absolute pitch produce the same curve
// for the same intonation.
type Normalizer struct {
	config NormalizerConfig
}

// NewNormalizer creates a curve normalizer
func NewNormalizer(config NormalizerConfig) (*Normalizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Normalizer{config: config}, nil
}

// Normalize reduces a series to a z-scored curve of its voiced points.
// Returns ErrInsufficientData when fewer than 2 points survive the
// confidence filter, and ErrDegenerateSeries for a flat curve whose
// standard deviation is zero.
func (n *Normalizer) Normalize(series *pitch.Series) ([]float64, error) {
	values := make([]float64, 0, series.Len())
	for _, p := range series.Points {
		if !p.HasPitch(n.config.ConfidenceFloor) {
			continue
		}
		v := p.Frequency
		if n.config.UseSemitones {
			v = 12.0 * math.Log2(v/n.config.ReferenceFrequency)
		}
		values = append(values, v)
	}

	if len(values) < 2 {
		return nil, ErrInsufficientData
	}

	mean := common.Mean(values)
	stddev := common.StandardDeviation(values)
	if stddev < 1e-12 {
		return nil, ErrDegenerateSeries
	}

	for i := range values {
		values[i] = (values[i] - mean) / stddev
	}

	return values, nil
}
