package transform

import "errors"

var (
	// ErrInvalidParameter is returned for out-of-range quality, levels,
	// threshold methods, shrinkage modes and block sizes
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnknownWavelet is returned when a wavelet family is not registered
	ErrUnknownWavelet = errors.New("unknown wavelet")

	// ErrShapeMismatch is returned when two grids must share a shape and do not
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInsufficientData is returned when a grid is too small for the
	// requested decomposition levels or estimator
	ErrInsufficientData = errors.New("insufficient data")
)
