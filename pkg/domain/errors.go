package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrMalformedEvent is returned when a handler receives an event it cannot decode
	ErrMalformedEvent = errors.New("malformed event")
	// ErrTimeout is returned when polling an external job exceeds its budget
	ErrTimeout = errors.New("timed out waiting for job")
)
