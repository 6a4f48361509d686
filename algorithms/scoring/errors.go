package scoring

import (
	"errors"
)

var (
	// ErrInsufficientData indicates fewer than two usable points, which
	// is not enough to normalize or compare. Callers should treat the
	// recording as unscorable rather than failing the session.
	ErrInsufficientData = errors.New("insufficient data points")

	// ErrDegenerateSeries indicates a zero-variance series that cannot
	// be z-scored without dividing by zero.
	ErrDegenerateSeries = errors.New("series has zero variance")
)
