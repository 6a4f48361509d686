package filters

// DCRemoval is a first-order DC blocking filter:
//
//	y[n] = x[n] - x[n-1] + R * y[n-1]
//
// A microphone's DC offset inflates every frame's mean-amplitude
// energy, which corrupts noise gate calibration, so captured samples
// are run through this before analysis. R close to 1 keeps the cutoff
// well below any voice fundamental.
type DCRemoval struct {
	pole float64
	x1   float64
	y1   float64
}

// NewDCRemoval creates a DC blocking filter. A pole of 0.995 puts the
// -3 dB point near 35 Hz at 44.1 kHz, below the 60 Hz search floor.
func NewDCRemoval() *DCRemoval {
	return &DCRemoval{pole: 0.995}
}

// Process filters one sample, carrying state across calls
func (f *DCRemoval) Process(x float64) float64 {
	y := x - f.x1 + f.pole*f.y1
	f.x1 = x
	f.y1 = y
	return y
}

// ProcessBuffer filters a buffer in place and returns it
func (f *DCRemoval) ProcessBuffer(samples []float64) []float64 {
	for i, x := range samples {
		samples[i] = f.Process(x)
	}
	return samples
}

// Reset clears the filter state
func (f *DCRemoval) Reset() {
	f.x1 = 0.0
	f.y1 = 0.0
}
