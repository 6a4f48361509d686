package configs

import (
	"github.com/spf13/viper"

	"github.com/RyanBlaney/prosodia/algorithms/pitch"
	"github.com/RyanBlaney/prosodia/algorithms/scoring"
)

// SetDefaults installs the engine defaults into viper so a missing or
// partial config file still yields a valid configuration.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("output_format", "text")

	p := pitch.DefaultConfig()
	v.SetDefault("extractor.sample_rate", p.SampleRate)
	v.SetDefault("extractor.frame_size", p.FrameSize)
	v.SetDefault("extractor.min_frequency", p.MinFrequency)
	v.SetDefault("extractor.max_frequency", p.MaxFrequency)
	v.SetDefault("extractor.correlation_threshold", p.CorrelationThreshold)
	v.SetDefault("extractor.confidence_threshold", p.ConfidenceThreshold)
	v.SetDefault("extractor.noise_floor", p.NoiseFloor)
	v.SetDefault("extractor.window_type", p.WindowType)
	v.SetDefault("extractor.analysis_interval", 0.1)

	g := pitch.DefaultGateConfig()
	v.SetDefault("gate.calibration_duration", g.CalibrationDuration)
	v.SetDefault("gate.quiet_percentile", g.QuietPercentile)
	v.SetDefault("gate.threshold_multiplier", g.ThresholdMultiplier)
	v.SetDefault("gate.attack_time", g.AttackTime)
	v.SetDefault("gate.release_time", g.ReleaseTime)
	v.SetDefault("gate.ambient_drift", g.AmbientDrift)
	v.SetDefault("gate.min_calibration_samples", g.MinCalibrationSamples)
	v.SetDefault("gate.fallback_threshold", g.FallbackThreshold)

	s := scoring.DefaultScorerConfig()
	v.SetDefault("scoring.use_semitones", s.Normalizer.UseSemitones)
	v.SetDefault("scoring.reference_frequency", s.Normalizer.ReferenceFrequency)
	v.SetDefault("scoring.confidence_floor", s.Normalizer.ConfidenceFloor)
	v.SetDefault("scoring.pitch_tolerance", s.Comparator.PitchTolerance)
	v.SetDefault("scoring.step_penalty", s.Comparator.StepPenalty)
	v.SetDefault("scoring.strictness", s.Comparator.Strictness)
	v.SetDefault("scoring.direction_epsilon", s.Comparator.DirectionEpsilon)
	v.SetDefault("scoring.weights.alignment", s.Comparator.Weights.Alignment)
	v.SetDefault("scoring.weights.pitch_closeness", s.Comparator.Weights.PitchCloseness)
	v.SetDefault("scoring.weights.contour", s.Comparator.Weights.Contour)
	v.SetDefault("scoring.weights.range", s.Comparator.Weights.Range)
	v.SetDefault("scoring.silence_threshold", s.Segmenter.SilenceThreshold)
	v.SetDefault("scoring.min_segment_duration", s.Segmenter.MinSegmentDuration)
	v.SetDefault("scoring.max_phrase_duration", s.Segmenter.MaxPhraseDuration)
	v.SetDefault("scoring.pitch_reset_jump", s.Segmenter.PitchResetJump)
	v.SetDefault("scoring.pitch_weight", s.PitchWeight)
	v.SetDefault("scoring.rhythm_weight", s.RhythmWeight)
}
