package scoring

import (
	"errors"
	"math"

	"github.com/RyanBlaney/prosodia/algorithms/pitch"
	"github.com/RyanBlaney/prosodia/logging"
)

// ScorerConfig combines the full comparison pipeline settings
type ScorerConfig struct {
	Normalizer   NormalizerConfig `json:"normalizer"`
	Comparator   ComparatorConfig `json:"comparator"`
	Segmenter    SegmenterConfig  `json:"segmenter"`
	PitchWeight  float64          `json:"pitch_weight"`  // Share of the final score from the pitch curve
	RhythmWeight float64          `json:"rhythm_weight"` // Share of the final score from timing
}

// DefaultScorerConfig returns the standard scoring pipeline settings
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		Normalizer:   DefaultNormalizerConfig(),
		Comparator:   DefaultComparatorConfig(),
		Segmenter:    DefaultSegmenterConfig(),
		PitchWeight:  0.7,
		RhythmWeight: 0.3,
	}
}

// Validate checks the combined configuration, including that the two
// top-level weights sum to 1.0.
func (c ScorerConfig) Validate() error {
	if err := c.Normalizer.Validate(); err != nil {
		return err
	}
	if err := c.Comparator.Validate(); err != nil {
		return err
	}
	if err := c.Segmenter.Validate(); err != nil {
		return err
	}
	if c.PitchWeight < 0 || c.RhythmWeight < 0 {
		return &pitch.ConfigError{Field: "pitch_weight", Reason: "weights must be non-negative"}
	}
	if math.Abs(c.PitchWeight+c.RhythmWeight-1.0) > 1e-9 {
		return &pitch.ConfigError{Field: "pitch_weight", Reason: "pitch and rhythm weights must sum to 1.0"}
	}
	return nil
}

// SessionScore is the complete comparison of a user recording against
// a reference.
type SessionScore struct {
	Total            float64 `json:"total"` // 0-100
	Pitch            Result  `json:"pitch"`
	Rhythm           float64 `json:"rhythm"` // 0-1
	InsufficientData bool    `json:"insufficient_data"`
}

// Scorer runs the full comparison: normalize both series, align the
// pitch curves, segment and compare rhythm, and blend the results.
type Scorer struct {
	config     ScorerConfig
	normalizer *Normalizer
	comparator *Comparator
	segmenter  *Segmenter
	logger     logging.Logger
}

// NewScorer creates the combined scorer
func NewScorer(config ScorerConfig) (*Scorer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	normalizer, err := NewNormalizer(config.Normalizer)
	if err != nil {
		return nil, err
	}
	comparator, err := NewComparator(config.Comparator)
	if err != nil {
		return nil, err
	}
	segmenter, err := NewSegmenter(config.Segmenter)
	if err != nil {
		return nil, err
	}

	return &Scorer{
		config:     config,
		normalizer: normalizer,
		comparator: comparator,
		segmenter:  segmenter,
		logger: logging.WithFields(logging.Fields{
			"component": "scorer",
		}),
	}, nil
}

// Score compares a user series against a reference. A series too
// short or too flat to normalize produces a zero score with the
// InsufficientData flag set, never an error: unscorable recordings
// are a session outcome, not a failure.
func (s *Scorer) Score(reference, user *pitch.Series) SessionScore {
	refCurve, refErr := s.normalizer.Normalize(reference)
	userCurve, userErr := s.normalizer.Normalize(user)

	if refErr != nil || userErr != nil {
		err := refErr
		if err == nil {
			err = userErr
		}
		s.logger.Warn("series not scorable", logging.Fields{
			"reason": err.Error(),
		})
		return SessionScore{
			InsufficientData: errors.Is(err, ErrInsufficientData) ||
				errors.Is(err, ErrDegenerateSeries),
		}
	}

	pitchResult := s.comparator.Compare(refCurve, userCurve)
	rhythm := s.segmenter.CompareRhythm(
		s.segmenter.Segment(reference),
		s.segmenter.Segment(user),
	)

	total := s.config.PitchWeight*pitchResult.Score + s.config.RhythmWeight*rhythm*100.0

	s.logger.Info("session scored", logging.Fields{
		"total":  total,
		"pitch":  pitchResult.Score,
		"rhythm": rhythm,
	})

	return SessionScore{
		Total:  total,
		Pitch:  pitchResult,
		Rhythm: rhythm,
	}
}
