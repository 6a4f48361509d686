package pitch

import (
	"github.com/RyanBlaney/prosodia/algorithms/filters"
)

// AnalyzeRecording runs the extractor over a complete recording and
// returns the resulting series. Frames are taken every analysis
// interval with the gate pre-activated, since a finished recording has
// no calibration phase. Frames are FrameSize long; the trailing partial
// frame is analyzed as-is so short recordings still yield energy data.
func AnalyzeRecording(samples []float64, config Config, interval float64) (*Series, error) {
	extractor, err := NewExtractor(config)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = 0.1
	}

	hop := int(interval * float64(config.SampleRate))
	if hop < 1 {
		hop = 1
	}

	filtered := make([]float64, len(samples))
	copy(filtered, samples)
	samples = filters.NewDCRemoval().ProcessBuffer(filtered)

	series := &Series{}
	for start := 0; start < len(samples); start += hop {
		end := start + config.FrameSize
		if end > len(samples) {
			end = len(samples)
		}

		est := extractor.Analyze(samples[start:end])
		series.Append(DataPoint{
			Timestamp:  float64(start) / float64(config.SampleRate),
			Frequency:  est.Frequency,
			Confidence: est.Confidence,
			Energy:     est.Energy,
		})
	}

	return series, nil
}
