package pitch

// DataPoint is one analysis frame of a recording: the fundamental
// frequency estimate with its periodicity confidence and the frame's
// normalized energy level. A DataPoint is immutable once created.
type DataPoint struct {
	Timestamp  float64 `json:"timestamp"`  // Seconds, monotonic within one recording
	Frequency  float64 `json:"frequency"`  // Hz, 0 if unvoiced or unreliable
	Confidence float64 `json:"confidence"` // 0-1, strength of periodicity
	Energy     float64 `json:"energy"`     // 0-1, mean absolute amplitude of the frame
}

// HasPitch reports whether the point carries a usable pitch estimate
// at the given confidence threshold.
func (p DataPoint) HasPitch(confidenceThreshold float64) bool {
	return p.Frequency > 0 && p.Confidence >= confidenceThreshold
}

// Series is an ordered sequence of DataPoints covering one recording.
// Timestamps are strictly increasing.
type Series struct {
	Points []DataPoint `json:"points"`
}

// Append adds a point to the series. Points whose timestamp does not
// advance past the last one are rejected.
func (s *Series) Append(point DataPoint) bool {
	if n := len(s.Points); n > 0 && point.Timestamp <= s.Points[n-1].Timestamp {
		return false
	}
	s.Points = append(s.Points, point)
	return true
}

// Len returns the number of points in the series
func (s *Series) Len() int {
	return len(s.Points)
}

// Duration returns the time span covered by the series in seconds
func (s *Series) Duration() float64 {
	if len(s.Points) < 2 {
		return 0.0
	}
	return s.Points[len(s.Points)-1].Timestamp - s.Points[0].Timestamp
}

// Frequencies returns the frequency column of the series
func (s *Series) Frequencies() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Frequency
	}
	return out
}

// Energies returns the energy column of the series
func (s *Series) Energies() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Energy
	}
	return out
}

// Stats summarizes a series for caller-side policy decisions such as
// "recording too short" or "no speech detected". The engine itself
// never enforces these.
type Stats struct {
	Duration       float64 `json:"duration"`
	SpeechDuration float64 `json:"speech_duration"`
	PointCount     int     `json:"point_count"`
	VoicedFraction float64 `json:"voiced_fraction"`
	MeanFrequency  float64 `json:"mean_frequency"`
	MinFrequency   float64 `json:"min_frequency"`
	MaxFrequency   float64 `json:"max_frequency"`
	MeanEnergy     float64 `json:"mean_energy"`
}

// Stats computes summary statistics over the series using the given
// confidence threshold for the voiced predicate.
func (s *Series) Stats(confidenceThreshold float64) Stats {
	stats := Stats{
		Duration:   s.Duration(),
		PointCount: len(s.Points),
	}
	if len(s.Points) == 0 {
		return stats
	}

	voiced := 0
	freqSum := 0.0
	energySum := 0.0
	for _, p := range s.Points {
		energySum += p.Energy
		if !p.HasPitch(confidenceThreshold) {
			continue
		}
		voiced++
		freqSum += p.Frequency
		if stats.MinFrequency == 0 || p.Frequency < stats.MinFrequency {
			stats.MinFrequency = p.Frequency
		}
		if p.Frequency > stats.MaxFrequency {
			stats.MaxFrequency = p.Frequency
		}
	}

	stats.VoicedFraction = float64(voiced) / float64(len(s.Points))
	stats.MeanEnergy = energySum / float64(len(s.Points))
	if voiced > 0 {
		stats.MeanFrequency = freqSum / float64(voiced)
	}
	if len(s.Points) > 1 {
		interval := stats.Duration / float64(len(s.Points)-1)
		stats.SpeechDuration = float64(voiced) * interval
	}

	return stats
}
