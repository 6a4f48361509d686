package windowing

import (
	"fmt"
)

// Window is a precomputed window function applied to fixed-size analysis frames.
type Window interface {
	// Apply applies the window to a signal (creates new array)
	Apply(signal []float64) []float64

	// ApplyInPlace applies the window to a signal in-place
	ApplyInPlace(signal []float64) error

	// Coefficients returns a copy of the window coefficients
	Coefficients() []float64

	// Size returns the window size
	Size() int

	// Type returns the window type name
	Type() string
}

// New creates a window of the given type and size.
// Supported types: "hann", "hamming", "rectangular".
func New(windowType string, size int) (Window, error) {
	if size < 2 {
		return nil, fmt.Errorf("window size must be at least 2, got %d", size)
	}

	switch windowType {
	case "hann", "":
		return NewHann(size), nil
	case "hamming":
		return NewHamming(size), nil
	case "rectangular":
		return NewRectangular(size), nil
	default:
		return nil, fmt.Errorf("unknown window type: %s", windowType)
	}
}

// apply multiplies signal by coefficients into a new slice.
func apply(signal, coefficients []float64) []float64 {
	if len(signal) != len(coefficients) {
		return nil
	}

	windowed := make([]float64, len(signal))
	for i := range signal {
		windowed[i] = signal[i] * coefficients[i]
	}

	return windowed
}

// applyInPlace multiplies signal by coefficients in-place.
func applyInPlace(signal, coefficients []float64) error {
	if len(signal) != len(coefficients) {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), len(coefficients))
	}

	for i := range signal {
		signal[i] *= coefficients[i]
	}

	return nil
}
