package spectral

// AutocorrScratch holds reusable buffers for repeated autocorrelation
// calls so the per-frame analysis loop stays allocation-free.
type AutocorrScratch struct {
	padded []float64
	power  []complex128
	out    []float64
}

// Autocorrelation computes the raw linear autocorrelation
// r[p] = sum(x[i] * x[i+p]) for lags 0..maxLag via the Wiener-Khinchin
// theorem: IFFT of the power spectrum of the zero-padded signal. Zero
// padding to at least 2*len(x) keeps the circular convolution from
// wrapping, so the result matches the direct time-domain sum.
// The returned slice is owned by scratch and valid until the next call.
func (f *FFT) Autocorrelation(x []float64, maxLag int, scratch *AutocorrScratch) []float64 {
	if len(x) == 0 || maxLag < 0 {
		return []float64{}
	}
	if maxLag >= len(x) {
		maxLag = len(x) - 1
	}

	padLen := nextPow2(2 * len(x))
	if len(scratch.padded) < padLen {
		scratch.padded = make([]float64, padLen)
	}
	padded := scratch.padded[:padLen]
	copy(padded, x)
	for i := len(x); i < padLen; i++ {
		padded[i] = 0.0
	}

	spectrum := f.Compute(padded)

	if len(scratch.power) < len(spectrum) {
		scratch.power = make([]complex128, len(spectrum))
	}
	power := scratch.power[:len(spectrum)]
	for i, c := range spectrum {
		re := real(c)
		im := imag(c)
		power[i] = complex(re*re+im*im, 0)
	}

	corr := f.ComputeInverseReal(power)

	if len(scratch.out) < maxLag+1 {
		scratch.out = make([]float64, maxLag+1)
	}
	out := scratch.out[:maxLag+1]
	copy(out, corr[:maxLag+1])
	return out
}

func nextPow2(n int) int {
	power := 1
	for power < n {
		power <<= 1
	}
	return power
}
