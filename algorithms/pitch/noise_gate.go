package pitch

import (
	"fmt"
	"math"
	"sort"

	"github.com/RyanBlaney/prosodia/algorithms/common"
	"github.com/RyanBlaney/prosodia/logging"
)

// GateState identifies the noise gate phase
type GateState int

const (
	// GateCalibrating means ambient samples are still being collected
	GateCalibrating GateState = iota
	// GateActive means the threshold is set and frames are being gated
	GateActive
)

func (s GateState) String() string {
	switch s {
	case GateCalibrating:
		return "calibrating"
	case GateActive:
		return "active"
	default:
		return "unknown"
	}
}

// GateConfig holds the adaptive noise gate configuration
type GateConfig struct {
	CalibrationDuration   float64 `json:"calibration_duration"`    // Seconds of ambient listening
	AnalysisInterval      float64 `json:"analysis_interval"`       // Seconds between Observe calls
	QuietPercentile       float64 `json:"quiet_percentile"`        // Fraction of lowest energies used for ambient
	ThresholdMultiplier   float64 `json:"threshold_multiplier"`    // Threshold = ambient * multiplier
	AttackTime            float64 `json:"attack_time"`             // Seconds for the envelope to rise
	ReleaseTime           float64 `json:"release_time"`            // Seconds for the envelope to fall
	AmbientDrift          float64 `json:"ambient_drift"`           // EMA rate for ambient tracking while closed
	MinCalibrationSamples int     `json:"min_calibration_samples"` // Below this, the fallback threshold applies
	FallbackThreshold     float64 `json:"fallback_threshold"`
}

// DefaultGateConfig returns gate settings suited to a quiet room
func DefaultGateConfig() GateConfig {
	return GateConfig{
		CalibrationDuration:   2.5,
		AnalysisInterval:      0.1,
		QuietPercentile:       0.7,
		ThresholdMultiplier:   3.0,
		AttackTime:            0.1,
		ReleaseTime:           0.4,
		AmbientDrift:          0.02,
		MinCalibrationSamples: 5,
		FallbackThreshold:     0.02,
	}
}

// Validate checks the gate configuration
func (c GateConfig) Validate() error {
	if c.CalibrationDuration <= 0 {
		return &ConfigError{Field: "calibration_duration", Reason: "must be positive"}
	}
	if c.AnalysisInterval <= 0 {
		return &ConfigError{Field: "analysis_interval", Reason: "must be positive"}
	}
	if c.QuietPercentile <= 0 || c.QuietPercentile > 1 {
		return &ConfigError{Field: "quiet_percentile", Reason: "must be in (0, 1]"}
	}
	if c.ThresholdMultiplier <= 1 {
		return &ConfigError{Field: "threshold_multiplier", Reason: "must exceed 1"}
	}
	if c.AttackTime <= 0 || c.ReleaseTime <= 0 {
		return &ConfigError{Field: "attack_time", Reason: "attack and release times must be positive"}
	}
	if c.AmbientDrift < 0 || c.AmbientDrift > 1 {
		return &ConfigError{Field: "ambient_drift", Reason: "must be in [0, 1]"}
	}
	if c.MinCalibrationSamples < 1 {
		return &ConfigError{Field: "min_calibration_samples", Reason: "must be at least 1"}
	}
	if c.FallbackThreshold <= 0 {
		return &ConfigError{Field: "fallback_threshold", Reason: "must be positive"}
	}
	return nil
}

// NoiseGate decides per frame whether the signal is loud enough above
// ambient noise to be treated as speech. It calibrates against room
// noise on startup, smooths its decision with asymmetric attack and
// release envelopes, and slowly re-tracks ambient level while closed.
type NoiseGate struct {
	config GateConfig
	state  GateState

	calibrationEnergies []float64
	calibrationTarget   int

	ambient      float64
	threshold    float64
	level        float64
	uncalibrated bool

	attackAlpha  float64
	releaseAlpha float64

	logger logging.Logger
}

// NewNoiseGate creates a noise gate in the calibrating state
func NewNoiseGate(config GateConfig) (*NoiseGate, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	target := int(math.Ceil(config.CalibrationDuration / config.AnalysisInterval))
	if target < 1 {
		target = 1
	}

	return &NoiseGate{
		config:              config,
		state:               GateCalibrating,
		calibrationEnergies: make([]float64, 0, target),
		calibrationTarget:   target,
		attackAlpha:         1.0 - math.Exp(-config.AnalysisInterval/config.AttackTime),
		releaseAlpha:        1.0 - math.Exp(-config.AnalysisInterval/config.ReleaseTime),
		logger: logging.WithFields(logging.Fields{
			"component": "noise_gate",
		}),
	}, nil
}

// State returns the current gate phase
func (g *NoiseGate) State() GateState {
	return g.state
}

// IsReady reports whether calibration has finished
func (g *NoiseGate) IsReady() bool {
	return g.state == GateActive
}

// IsCalibrated reports whether the threshold came from a real ambient
// measurement rather than the fallback.
func (g *NoiseGate) IsCalibrated() bool {
	return g.state == GateActive && !g.uncalibrated
}

// Threshold returns the current energy threshold, 0 while calibrating
func (g *NoiseGate) Threshold() float64 {
	return g.threshold
}

// Ambient returns the tracked ambient noise level
func (g *NoiseGate) Ambient() float64 {
	return g.ambient
}

// ShouldPass feeds one frame energy to the gate and reports whether
// the frame should pass. During calibration nothing passes; the energy
// is recorded as an ambient sample instead. Call once per analysis
// interval.
func (g *NoiseGate) ShouldPass(energy float64) bool {
	if g.state == GateCalibrating {
		g.calibrationEnergies = append(g.calibrationEnergies, energy)
		if len(g.calibrationEnergies) >= g.calibrationTarget {
			g.finishCalibration()
		}
		return false
	}

	// Asymmetric envelope: rise fast toward loud frames, fall slowly,
	// so brief dips inside a phrase do not flutter the gate.
	if energy > g.level {
		g.level += g.attackAlpha * (energy - g.level)
	} else {
		g.level += g.releaseAlpha * (energy - g.level)
	}

	open := g.level >= g.threshold

	if !open && energy < g.threshold {
		g.ambient += g.config.AmbientDrift * (energy - g.ambient)
		g.threshold = g.ambient * g.config.ThresholdMultiplier
		if g.threshold < g.config.FallbackThreshold && g.uncalibrated {
			g.threshold = g.config.FallbackThreshold
		}
	}

	return open
}

// CompleteCalibration ends calibration early with whatever ambient
// samples were collected so far.
func (g *NoiseGate) CompleteCalibration() {
	if g.state == GateCalibrating {
		g.finishCalibration()
	}
}

// StartCalibration discards any learned threshold and begins ambient
// collection from scratch.
func (g *NoiseGate) StartCalibration() {
	g.state = GateCalibrating
	g.calibrationEnergies = g.calibrationEnergies[:0]
	g.ambient = 0.0
	g.threshold = 0.0
	g.level = 0.0
	g.uncalibrated = false
}

// Recalibrate restarts ambient collection, for use after the
// environment changes.
func (g *NoiseGate) Recalibrate() {
	g.StartCalibration()
}

func (g *NoiseGate) finishCalibration() {
	if len(g.calibrationEnergies) < g.config.MinCalibrationSamples {
		g.uncalibrated = true
		g.threshold = g.config.FallbackThreshold
		g.ambient = g.threshold / g.config.ThresholdMultiplier
		g.state = GateActive
		g.logger.Warn(fmt.Sprintf("calibration ended with %d samples, using fallback threshold",
			len(g.calibrationEnergies)))
		return
	}

	// Ambient is the mean of the quietest energies so a cough or chair
	// scrape during calibration cannot inflate the threshold.
	sorted := make([]float64, len(g.calibrationEnergies))
	copy(sorted, g.calibrationEnergies)
	sort.Float64s(sorted)

	quiet := int(math.Ceil(g.config.QuietPercentile * float64(len(sorted))))
	if quiet < 1 {
		quiet = 1
	}
	g.ambient = common.Mean(sorted[:quiet])
	g.threshold = g.ambient * g.config.ThresholdMultiplier
	if g.threshold <= 0 {
		g.uncalibrated = true
		g.threshold = g.config.FallbackThreshold
	}
	g.state = GateActive

	g.logger.Info("noise gate calibrated", logging.Fields{
		"ambient":   g.ambient,
		"threshold": g.threshold,
		"samples":   len(g.calibrationEnergies),
	})
}
