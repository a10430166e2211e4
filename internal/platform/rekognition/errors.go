package rekognition

import "errors"

// Error definitions for the rekognition package.
var (
	// ErrBackend is returned when a detection call fails for any backend
	// reason (unreachable, quota, internal error). Callers rely on queue
	// redelivery for retry, so the categories are not distinguished further.
	ErrBackend = errors.New("detection backend call failed")

	// ErrDescribeFailed is returned when the model status query fails.
	ErrDescribeFailed = errors.New("model status query failed")

	// ErrInvalidVersionARN is returned when the configured model version ARN
	// does not contain a version name segment.
	ErrInvalidVersionARN = errors.New("invalid model version ARN")
)
