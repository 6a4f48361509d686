package windowing

// Rectangular represents a rectangular (boxcar) window function
type Rectangular struct {
	size         int
	coefficients []float64
}

// NewRectangular creates a new rectangular window
func NewRectangular(size int) *Rectangular {
	r := &Rectangular{size: size}
	r.coefficients = make([]float64, size)
	for i := range r.coefficients {
		r.coefficients[i] = 1.0
	}
	return r
}

// Apply applies the window to a signal (creates new array)
func (r *Rectangular) Apply(signal []float64) []float64 {
	return apply(signal, r.coefficients)
}

// ApplyInPlace applies the window to a signal in-place
func (r *Rectangular) ApplyInPlace(signal []float64) error {
	return applyInPlace(signal, r.coefficients)
}

// Coefficients returns a copy of the window coefficients
func (r *Rectangular) Coefficients() []float64 {
	coeffs := make([]float64, len(r.coefficients))
	copy(coeffs, r.coefficients)
	return coeffs
}

// Size returns the window size
func (r *Rectangular) Size() int {
	return r.size
}

// Type returns the window type
func (r *Rectangular) Type() string {
	return "rectangular"
}
