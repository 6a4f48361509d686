package configs

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/prosodia/algorithms/pitch"
	"github.com/RyanBlaney/prosodia/algorithms/scoring"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Pitch extraction settings
	Extractor ExtractorConfig `mapstructure:"extractor"`

	// Noise gate settings
	Gate GateConfig `mapstructure:"gate"`

	// Scoring pipeline settings
	Scoring ScoringConfig `mapstructure:"scoring"`
}

// ExtractorConfig contains pitch extraction settings
type ExtractorConfig struct {
	SampleRate           int     `mapstructure:"sample_rate"`
	FrameSize            int     `mapstructure:"frame_size"`
	MinFrequency         float64 `mapstructure:"min_frequency"`
	MaxFrequency         float64 `mapstructure:"max_frequency"`
	CorrelationThreshold float64 `mapstructure:"correlation_threshold"`
	ConfidenceThreshold  float64 `mapstructure:"confidence_threshold"`
	NoiseFloor           float64 `mapstructure:"noise_floor"`
	WindowType           string  `mapstructure:"window_type"`
	AnalysisInterval     float64 `mapstructure:"analysis_interval"`
}

// GateConfig contains noise gate settings
type GateConfig struct {
	CalibrationDuration   float64 `mapstructure:"calibration_duration"`
	QuietPercentile       float64 `mapstructure:"quiet_percentile"`
	ThresholdMultiplier   float64 `mapstructure:"threshold_multiplier"`
	AttackTime            float64 `mapstructure:"attack_time"`
	ReleaseTime           float64 `mapstructure:"release_time"`
	AmbientDrift          float64 `mapstructure:"ambient_drift"`
	MinCalibrationSamples int     `mapstructure:"min_calibration_samples"`
	FallbackThreshold     float64 `mapstructure:"fallback_threshold"`
}

// ScoringConfig contains comparison and scoring settings
type ScoringConfig struct {
	UseSemitones       bool          `mapstructure:"use_semitones"`
	ReferenceFrequency float64       `mapstructure:"reference_frequency"`
	ConfidenceFloor    float64       `mapstructure:"confidence_floor"`
	PitchTolerance     float64       `mapstructure:"pitch_tolerance"`
	StepPenalty        float64       `mapstructure:"step_penalty"`
	Strictness         float64       `mapstructure:"strictness"`
	DirectionEpsilon   float64       `mapstructure:"direction_epsilon"`
	Weights            WeightsConfig `mapstructure:"weights"`
	SilenceThreshold   float64       `mapstructure:"silence_threshold"`
	MinSegmentDuration float64       `mapstructure:"min_segment_duration"`
	MaxPhraseDuration  float64       `mapstructure:"max_phrase_duration"`
	PitchResetJump     float64       `mapstructure:"pitch_reset_jump"`
	PitchWeight        float64       `mapstructure:"pitch_weight"`
	RhythmWeight       float64       `mapstructure:"rhythm_weight"`
}

// WeightsConfig contains the curve score weighting
type WeightsConfig struct {
	Alignment      float64 `mapstructure:"alignment"`
	PitchCloseness float64 `mapstructure:"pitch_closeness"`
	Contour        float64 `mapstructure:"contour"`
	Range          float64 `mapstructure:"range"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration by constructing the
// engine configs it maps to.
func ValidateConfig(config *Config) error {
	if config.Extractor.AnalysisInterval <= 0 {
		return fmt.Errorf("analysis interval must be positive")
	}
	if err := config.ToPitchConfig().Validate(); err != nil {
		return fmt.Errorf("extractor: %w", err)
	}
	if err := config.ToGateConfig().Validate(); err != nil {
		return fmt.Errorf("gate: %w", err)
	}
	if err := config.ToScorerConfig().Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	return nil
}

// ToPitchConfig maps the file configuration onto the extractor config
func (c *Config) ToPitchConfig() pitch.Config {
	return pitch.Config{
		SampleRate:           c.Extractor.SampleRate,
		FrameSize:            c.Extractor.FrameSize,
		MinFrequency:         c.Extractor.MinFrequency,
		MaxFrequency:         c.Extractor.MaxFrequency,
		CorrelationThreshold: c.Extractor.CorrelationThreshold,
		ConfidenceThreshold:  c.Extractor.ConfidenceThreshold,
		NoiseFloor:           c.Extractor.NoiseFloor,
		WindowType:           c.Extractor.WindowType,
	}
}

// ToGateConfig maps the file configuration onto the noise gate config
func (c *Config) ToGateConfig() pitch.GateConfig {
	return pitch.GateConfig{
		CalibrationDuration:   c.Gate.CalibrationDuration,
		AnalysisInterval:      c.Extractor.AnalysisInterval,
		QuietPercentile:       c.Gate.QuietPercentile,
		ThresholdMultiplier:   c.Gate.ThresholdMultiplier,
		AttackTime:            c.Gate.AttackTime,
		ReleaseTime:           c.Gate.ReleaseTime,
		AmbientDrift:          c.Gate.AmbientDrift,
		MinCalibrationSamples: c.Gate.MinCalibrationSamples,
		FallbackThreshold:     c.Gate.FallbackThreshold,
	}
}

// ToScorerConfig maps the file configuration onto the scoring config
func (c *Config) ToScorerConfig() scoring.ScorerConfig {
	return scoring.ScorerConfig{
		Normalizer: scoring.NormalizerConfig{
			UseSemitones:       c.Scoring.UseSemitones,
			ReferenceFrequency: c.Scoring.ReferenceFrequency,
			ConfidenceFloor:    c.Scoring.ConfidenceFloor,
		},
		Comparator: scoring.ComparatorConfig{
			PitchTolerance:   c.Scoring.PitchTolerance,
			StepPenalty:      c.Scoring.StepPenalty,
			Strictness:       c.Scoring.Strictness,
			DirectionEpsilon: c.Scoring.DirectionEpsilon,
			Weights: scoring.Weights{
				Alignment:      c.Scoring.Weights.Alignment,
				PitchCloseness: c.Scoring.Weights.PitchCloseness,
				Contour:        c.Scoring.Weights.Contour,
				Range:          c.Scoring.Weights.Range,
			},
		},
		Segmenter: scoring.SegmenterConfig{
			SilenceThreshold:   c.Scoring.SilenceThreshold,
			MinSegmentDuration: c.Scoring.MinSegmentDuration,
			MaxPhraseDuration:  c.Scoring.MaxPhraseDuration,
			PitchResetJump:     c.Scoring.PitchResetJump,
		},
		PitchWeight:  c.Scoring.PitchWeight,
		RhythmWeight: c.Scoring.RhythmWeight,
	}
}
