package scoring

import (
	"math"

	"github.com/RyanBlaney/prosodia/algorithms/common"
	"github.com/RyanBlaney/prosodia/algorithms/pitch"
	"github.com/RyanBlaney/prosodia/logging"
)

// SegmentKind distinguishes speech spans from the pauses between them
type SegmentKind int

const (
	// SegmentSpeech is a run of frames at or above the silence threshold
	SegmentSpeech SegmentKind = iota
	// SegmentPause is the gap between two speech segments
	SegmentPause
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentSpeech:
		return "speech"
	case SegmentPause:
		return "pause"
	default:
		return "unknown"
	}
}

// Segment is one contiguous span of a recording, either speech or the
// pause separating two speech spans. Leading and trailing silence is
// not emitted: a pause needs speech on both sides.
type Segment struct {
	Kind           SegmentKind `json:"kind"`
	Start          float64     `json:"start"`    // Seconds
	Duration       float64     `json:"duration"` // Seconds
	AverageEnergy  float64     `json:"average_energy"`
	AveragePitch   float64     `json:"average_pitch"` // Mean over voiced frames, 0 if none
	PitchVariation float64     `json:"pitch_variation"`
}

// End returns the segment end time in seconds
func (s Segment) End() float64 {
	return s.Start + s.Duration
}

// SegmenterConfig controls speech/pause segmentation
type SegmenterConfig struct {
	SilenceThreshold   float64 `json:"silence_threshold"`    // Energy at/above this counts as speech
	MinSegmentDuration float64 `json:"min_segment_duration"` // Shorter runs are discarded as spikes
	MaxPhraseDuration  float64 `json:"max_phrase_duration"`  // Longer segments are split at pitch resets, 0 disables
	PitchResetJump     float64 `json:"pitch_reset_jump"`     // Hz jump treated as a phrase boundary
}

// DefaultSegmenterConfig returns standard segmentation settings
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		SilenceThreshold:   0.01,
		MinSegmentDuration: 0.2,
		MaxPhraseDuration:  5.0,
		PitchResetJump:     50.0,
	}
}

// Validate checks the segmenter configuration
func (c SegmenterConfig) Validate() error {
	if c.SilenceThreshold < 0 {
		return &pitch.ConfigError{Field: "silence_threshold", Reason: "must be non-negative"}
	}
	if c.MinSegmentDuration < 0 {
		return &pitch.ConfigError{Field: "min_segment_duration", Reason: "must be non-negative"}
	}
	if c.MaxPhraseDuration < 0 {
		return &pitch.ConfigError{Field: "max_phrase_duration", Reason: "must be non-negative"}
	}
	if c.PitchResetJump <= 0 {
		return &pitch.ConfigError{Field: "pitch_reset_jump", Reason: "must be positive"}
	}
	return nil
}

// Segmenter splits a pitch series into speech segments by energy and
// compares the timing patterns of two segmentations.
type Segmenter struct {
	config SegmenterConfig
	logger logging.Logger
}

// NewSegmenter creates a rhythm segmenter
func NewSegmenter(config SegmenterConfig) (*Segmenter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Segmenter{
		config: config,
		logger: logging.WithFields(logging.Fields{
			"component": "rhythm_segmenter",
		}),
	}, nil
}

// Segment sweeps the series energies and returns speech segments
// interleaved with the pauses between them. Speech runs shorter than
// the minimum duration are treated as noise spikes and dropped; long
// runs are split at pitch-reset points to approximate phrase
// boundaries.
func (s *Segmenter) Segment(series *pitch.Series) []Segment {
	points := series.Points
	if len(points) == 0 {
		return nil
	}

	interval := analysisInterval(points)
	var speech []Segment

	runStart := -1
	for i := 0; i <= len(points); i++ {
		loud := i < len(points) && points[i].Energy >= s.config.SilenceThreshold
		if loud {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart < 0 {
			continue
		}

		run := points[runStart:i]
		runStart = -1
		duration := float64(len(run)) * interval
		if duration < s.config.MinSegmentDuration {
			continue
		}

		if s.config.MaxPhraseDuration > 0 && duration > s.config.MaxPhraseDuration {
			speech = append(speech, s.splitAtPitchResets(run, interval)...)
		} else {
			speech = append(speech, buildSegment(run, interval))
		}
	}

	segments := withPauses(speech, points)

	s.logger.Debug("series segmented", logging.Fields{
		"points":   len(points),
		"speech":   len(speech),
		"segments": len(segments),
	})

	return segments
}

// withPauses interleaves pause segments into the gaps between
// consecutive speech segments.
func withPauses(speech []Segment, points []pitch.DataPoint) []Segment {
	if len(speech) < 2 {
		return speech
	}

	out := make([]Segment, 0, 2*len(speech)-1)
	for i, seg := range speech {
		if i > 0 {
			gap := seg.Start - speech[i-1].End()
			if gap > 0 {
				out = append(out, pauseSegment(speech[i-1].End(), gap, points))
			}
		}
		out = append(out, seg)
	}
	return out
}

func pauseSegment(start, duration float64, points []pitch.DataPoint) Segment {
	seg := Segment{Kind: SegmentPause, Start: start, Duration: duration}

	sum := 0.0
	count := 0
	for _, p := range points {
		if p.Timestamp >= start && p.Timestamp < start+duration {
			sum += p.Energy
			count++
		}
	}
	if count > 0 {
		seg.AverageEnergy = sum / float64(count)
	}
	return seg
}

// splitAtPitchResets breaks an over-long run at adjacent-frame pitch
// jumps. If no jump is large enough the run stays whole.
func (s *Segmenter) splitAtPitchResets(run []pitch.DataPoint, interval float64) []Segment {
	var segments []Segment
	start := 0
	for i := 1; i < len(run); i++ {
		if run[i-1].Frequency <= 0 || run[i].Frequency <= 0 {
			continue
		}
		if math.Abs(run[i].Frequency-run[i-1].Frequency) < s.config.PitchResetJump {
			continue
		}
		if float64(i-start)*interval >= s.config.MinSegmentDuration {
			segments = append(segments, buildSegment(run[start:i], interval))
			start = i
		}
	}
	if len(run)-start > 0 {
		segments = append(segments, buildSegment(run[start:], interval))
	}
	return segments
}

func buildSegment(run []pitch.DataPoint, interval float64) Segment {
	seg := Segment{
		Kind:     SegmentSpeech,
		Start:    run[0].Timestamp,
		Duration: float64(len(run)) * interval,
	}

	energySum := 0.0
	voiced := make([]float64, 0, len(run))
	for _, p := range run {
		energySum += p.Energy
		if p.Frequency > 0 {
			voiced = append(voiced, p.Frequency)
		}
	}

	seg.AverageEnergy = energySum / float64(len(run))
	if len(voiced) > 0 {
		seg.AveragePitch = common.Mean(voiced)
		seg.PitchVariation = common.StandardDeviation(voiced)
	}

	return seg
}

// analysisInterval estimates the frame spacing from the timestamps
func analysisInterval(points []pitch.DataPoint) float64 {
	if len(points) < 2 {
		return 0.1
	}
	span := points[len(points)-1].Timestamp - points[0].Timestamp
	if span <= 0 {
		return 0.1
	}
	return span / float64(len(points)-1)
}

// Rhythm comparison weights, fixed by design
const (
	durationPatternWeight = 0.5
	pauseRatioWeight      = 0.3
	regularityWeight      = 0.2
)

// CompareRhythm scores how similar two segmentations are in timing,
// returning a value in [0, 1]. The duration pattern and regularity are
// carried by the speech segments; pauses contribute through the gaps
// they span. Either side having zero speech segments yields 0: there
// is no rhythm to compare.
func (s *Segmenter) CompareRhythm(reference, user []Segment) float64 {
	refSpeech := speechOnly(reference)
	userSpeech := speechOnly(user)
	if len(refSpeech) == 0 || len(userSpeech) == 0 {
		return 0.0
	}

	score := durationPatternWeight*durationPatternCorrelation(refSpeech, userSpeech) +
		pauseRatioWeight*pauseRatioSimilarity(refSpeech, userSpeech) +
		regularityWeight*regularitySimilarity(refSpeech, userSpeech)

	return common.Clamp01(score)
}

func speechOnly(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.Kind == SegmentSpeech {
			out = append(out, seg)
		}
	}
	return out
}

// durationPatternCorrelation correlates each segment's share of total
// speech time, resampled onto a common length.
func durationPatternCorrelation(a, b []Segment) float64 {
	sharesA := durationShares(a)
	sharesB := durationShares(b)

	if len(sharesA) == 1 && len(sharesB) == 1 {
		return 1.0
	}

	n := len(sharesA)
	if len(sharesB) > n {
		n = len(sharesB)
	}
	sharesA = common.Resample(sharesA, n)
	sharesB = common.Resample(sharesB, n)

	// Evenly sized segments make the share vector constant, which has
	// no defined correlation. Two flat patterns agree perfectly; a flat
	// pattern against a varied one does not.
	flatA := common.StandardDeviation(sharesA) < 1e-9
	flatB := common.StandardDeviation(sharesB) < 1e-9
	if flatA && flatB {
		return 1.0
	}
	if flatA || flatB {
		return 0.0
	}

	return common.Clamp01(common.Correlation(sharesA, sharesB))
}

func durationShares(segments []Segment) []float64 {
	total := 0.0
	for _, seg := range segments {
		total += seg.Duration
	}

	shares := make([]float64, len(segments))
	if total <= 0 {
		return shares
	}
	for i, seg := range segments {
		shares[i] = seg.Duration / total
	}
	return shares
}

// pauseRatioSimilarity compares the pause-to-speech time ratios
func pauseRatioSimilarity(a, b []Segment) float64 {
	ratioA := pauseRatio(a)
	ratioB := pauseRatio(b)

	if ratioA < 1e-9 && ratioB < 1e-9 {
		return 1.0
	}

	if ratioA < ratioB {
		return ratioA / ratioB
	}
	return ratioB / ratioA
}

// pauseRatio measures paused time against speaking time. It takes
// speech segments only; the gaps between them are the pauses.
func pauseRatio(segments []Segment) float64 {
	speech := 0.0
	for _, seg := range segments {
		speech += seg.Duration
	}
	if speech <= 0 {
		return 0.0
	}

	pause := 0.0
	for i := 1; i < len(segments); i++ {
		gap := segments[i].Start - segments[i-1].End()
		if gap > 0 {
			pause += gap
		}
	}

	return pause / speech
}

// regularitySimilarity compares how evenly each speaker's segments are
// sized, via the coefficient of variation of segment durations.
func regularitySimilarity(a, b []Segment) float64 {
	return 1.0 - math.Abs(regularity(a)-regularity(b))
}

func regularity(segments []Segment) float64 {
	durations := make([]float64, len(segments))
	for i, seg := range segments {
		durations[i] = seg.Duration
	}

	mean := common.Mean(durations)
	if mean <= 0 {
		return 0.0
	}

	cv := common.StandardDeviation(durations) / mean
	return common.Clamp01(1.0 - cv)
}
