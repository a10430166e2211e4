package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrMalformedMessage is returned when a message body cannot be parsed
	// as the expected queue envelope schema.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrMissingField is returned when a required job field (bucket, object
	// key, or document id) is absent or empty after parsing.
	ErrMissingField = errors.New("missing required field")
)
