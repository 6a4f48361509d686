package pitch

import (
	"math"

	"github.com/RyanBlaney/prosodia/algorithms/common"
	"github.com/RyanBlaney/prosodia/algorithms/spectral"
	"github.com/RyanBlaney/prosodia/algorithms/windowing"
	"github.com/RyanBlaney/prosodia/logging"
)

// Estimate is the outcome of analyzing one frame. Energy is always
// populated; Frequency and Confidence are zero when no reliable pitch
// was found.
type Estimate struct {
	Frequency  float64 `json:"frequency"`
	Confidence float64 `json:"confidence"`
	Energy     float64 `json:"energy"`
}

// Extractor estimates the fundamental frequency of audio frames using
// normalized time-domain autocorrelation. An Extractor owns scratch
// buffers and is not safe for concurrent use; create one per goroutine.
type Extractor struct {
	config    Config
	coeffs    []float64
	fft       *spectral.FFT
	minPeriod int
	maxPeriod int

	windowed     []float64
	energyPrefix []float64
	normalized   []float64
	tailCoeffs   []float64
	autocorr     spectral.AutocorrScratch
	logger       logging.Logger
}

// NewExtractor creates a pitch extractor with the given configuration
func NewExtractor(config Config) (*Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	window, err := windowing.New(config.WindowType, config.FrameSize)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		config:       config,
		coeffs:       window.Coefficients(),
		fft:          spectral.NewFFT(),
		minPeriod:    config.minPeriod(),
		maxPeriod:    config.maxPeriod(),
		windowed:     make([]float64, config.FrameSize),
		energyPrefix: make([]float64, config.FrameSize+1),
		normalized:   make([]float64, config.maxPeriod()+1),
		logger: logging.WithFields(logging.Fields{
			"component": "pitch_extractor",
		}),
	}, nil
}

// Config returns the extractor's configuration
func (e *Extractor) Config() Config {
	return e.config
}

// Analyze estimates the pitch of one frame of mono samples. Frames
// shorter than twice the longest searchable period yield no pitch.
// Energy is reported for every frame regardless of voicing.
func (e *Extractor) Analyze(frame []float64) Estimate {
	est := Estimate{Energy: common.MeanAbs(frame)}

	if len(frame) < 2*e.maxPeriod {
		return est
	}
	if common.RMS(frame) < e.config.NoiseFloor {
		return est
	}

	n := len(frame)
	if n > e.config.FrameSize {
		frame = frame[n-e.config.FrameSize:]
		n = e.config.FrameSize
	}

	coeffs := e.coeffs
	if n < e.config.FrameSize {
		if coeffs = e.tailWindow(n); coeffs == nil {
			return est
		}
	}

	windowed := e.windowed[:n]
	for i := range windowed {
		windowed[i] = frame[i] * coeffs[i]
	}

	raw := e.fft.Autocorrelation(windowed, e.maxPeriod, &e.autocorr)

	// Prefix sums of squared samples give the energies of both
	// lag-shifted segments in O(1) per lag.
	prefix := e.energyPrefix[:n+1]
	prefix[0] = 0.0
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i] + windowed[i]*windowed[i]
	}

	normalized := e.normalized[:e.maxPeriod+1]
	for lag := 0; lag <= e.maxPeriod; lag++ {
		head := prefix[n-lag]
		tail := prefix[n] - prefix[lag]
		denom := math.Sqrt(head * tail)
		if denom < 1e-12 {
			normalized[lag] = 0.0
			continue
		}
		normalized[lag] = common.Clamp(raw[lag]/denom, -1.0, 1.0)
	}

	bestLag, bestValue := e.findBestPeak(normalized)
	if bestLag < 0 || bestValue < e.config.CorrelationThreshold {
		return est
	}

	refinedLag := parabolicInterpolation(normalized, bestLag)

	est.Frequency = float64(e.config.SampleRate) / refinedLag
	est.Confidence = common.Clamp01(bestValue)

	e.logger.Debug("pitch estimate", logging.Fields{
		"frequency":  est.Frequency,
		"confidence": est.Confidence,
	})

	return est
}

// tailWindow returns coefficients sized to a frame shorter than the
// configured frame size, keeping the taper symmetric. Short frames
// only occur at the end of a recording, so the last size generated is
// cached rather than precomputed for every possible length.
func (e *Extractor) tailWindow(n int) []float64 {
	if len(e.tailCoeffs) != n {
		// The window type was validated at construction and
		// n >= 2*maxPeriod, so New cannot fail here.
		window, err := windowing.New(e.config.WindowType, n)
		if err != nil {
			return nil
		}
		e.tailCoeffs = window.Coefficients()
	}
	return e.tailCoeffs
}

// findBestPeak scans the search range for the strongest local maximum
// of the normalized autocorrelation. Local maxima only: endpoints and
// monotonic slopes are not periods.
func (e *Extractor) findBestPeak(normalized []float64) (int, float64) {
	bestLag := -1
	bestValue := 0.0

	lo := e.minPeriod
	if lo < 1 {
		lo = 1
	}
	hi := e.maxPeriod
	if hi > len(normalized)-2 {
		hi = len(normalized) - 2
	}

	for lag := lo; lag <= hi; lag++ {
		value := normalized[lag]
		if value <= normalized[lag-1] || value < normalized[lag+1] {
			continue
		}
		if value > bestValue {
			bestValue = value
			bestLag = lag
		}
	}

	return bestLag, bestValue
}

// parabolicInterpolation refines an integer peak lag to sub-sample
// precision by fitting a parabola through the peak and its neighbors.
func parabolicInterpolation(values []float64, peak int) float64 {
	if peak <= 0 || peak >= len(values)-1 {
		return float64(peak)
	}

	y1 := values[peak-1]
	y2 := values[peak]
	y3 := values[peak+1]

	denom := 2.0 * (2.0*y2 - y1 - y3)
	if math.Abs(denom) < 1e-12 {
		return float64(peak)
	}

	offset := (y3 - y1) / denom
	if offset < -0.5 || offset > 0.5 {
		return float64(peak)
	}

	return float64(peak) + offset
}
