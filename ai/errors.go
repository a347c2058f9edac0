package ai

import "errors"

var (
	// ErrUnavailable indicates the embedding provider could not serve the
	// request. Callers treat this as a signal to fall back to lexical scoring.
	ErrUnavailable = errors.New("embedding provider unavailable")

	// ErrDimensionMismatch indicates a returned vector did not match the
	// configured embedding dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
