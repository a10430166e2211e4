package nuxeo

import "errors"

// Error definitions for the nuxeo package.
var (
	// ErrPublish is returned when a document property update fails, whether
	// from a non-success HTTP status or a network/timeout error.
	ErrPublish = errors.New("document store update failed")

	// ErrUnexpectedStatus is returned when the automation API answers with a
	// non-2xx status code.
	ErrUnexpectedStatus = errors.New("unexpected response status from document store")
)
