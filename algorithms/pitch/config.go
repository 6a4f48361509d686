package pitch

import (
	"fmt"

	"github.com/RyanBlaney/prosodia/algorithms/common"
)

// ConfigError reports an invalid configuration value. Configuration
// problems are constructor-time failures, never silently clamped at
// analysis time.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// Config holds the pitch extractor configuration. Instances are
// immutable after construction; build one per extractor.
type Config struct {
	SampleRate           int     `json:"sample_rate"`
	FrameSize            int     `json:"frame_size"`            // Power of two, e.g. 4096
	MinFrequency         float64 `json:"min_frequency"`         // Hz, lower bound of the search range
	MaxFrequency         float64 `json:"max_frequency"`         // Hz, upper bound of the search range
	CorrelationThreshold float64 `json:"correlation_threshold"` // Minimum normalized peak to accept
	ConfidenceThreshold  float64 `json:"confidence_threshold"`  // HasPitch predicate floor
	NoiseFloor           float64 `json:"noise_floor"`           // Absolute RMS fast-reject floor
	WindowType           string  `json:"window_type"`
}

// DefaultConfig returns an extractor configuration tuned for speech
func DefaultConfig() Config {
	return Config{
		SampleRate:           44100,
		FrameSize:            4096,
		MinFrequency:         60.0,
		MaxFrequency:         500.0,
		CorrelationThreshold: 0.55,
		ConfidenceThreshold:  0.6,
		NoiseFloor:           0.001,
		WindowType:           "hann",
	}
}

// Validate checks the configuration. The period bounds derived from the
// frequency range must satisfy minPeriod < maxPeriod < FrameSize/2.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return &ConfigError{Field: "sample_rate", Reason: "must be positive"}
	}
	if !common.IsPowerOfTwo(c.FrameSize) {
		return &ConfigError{Field: "frame_size", Reason: fmt.Sprintf("must be a power of two, got %d", c.FrameSize)}
	}
	if c.MinFrequency <= 0 {
		return &ConfigError{Field: "min_frequency", Reason: "must be positive"}
	}
	if c.MaxFrequency <= c.MinFrequency {
		return &ConfigError{Field: "max_frequency", Reason: "must exceed min_frequency"}
	}
	if c.CorrelationThreshold <= 0 || c.CorrelationThreshold >= 1 {
		return &ConfigError{Field: "correlation_threshold", Reason: "must be in (0, 1)"}
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return &ConfigError{Field: "confidence_threshold", Reason: "must be in [0, 1]"}
	}
	if c.NoiseFloor < 0 {
		return &ConfigError{Field: "noise_floor", Reason: "must be non-negative"}
	}

	minPeriod := c.minPeriod()
	maxPeriod := c.maxPeriod()
	if minPeriod < 2 {
		return &ConfigError{Field: "max_frequency", Reason: fmt.Sprintf("period %d below resolvable minimum at %d Hz", minPeriod, c.SampleRate)}
	}
	if maxPeriod >= c.FrameSize/2 {
		return &ConfigError{Field: "min_frequency", Reason: fmt.Sprintf("period %d does not fit twice into frame of %d", maxPeriod, c.FrameSize)}
	}

	return nil
}

func (c Config) minPeriod() int {
	return int(float64(c.SampleRate) / c.MaxFrequency)
}

func (c Config) maxPeriod() int {
	return int(float64(c.SampleRate) / c.MinFrequency)
}
