package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData is returned when an account has no synced data yet.
	// Engine components never surface this; it exists for the orchestration
	// layer, which turns it into an empty summary response.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrUpstreamUnavailable is returned when the music platform API
	// cannot be reached
	ErrUpstreamUnavailable = errors.New("upstream platform unavailable")
)
