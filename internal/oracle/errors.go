package oracle

import "errors"

// Common oracle errors
var (
	// ErrMissingAPIKey is returned when the selected provider's API key
	// environment variable is not set.
	ErrMissingAPIKey = errors.New("missing oracle API key")

	// ErrUnknownProvider is returned for an ORACLE_PROVIDER value that does
	// not name a supported backend.
	ErrUnknownProvider = errors.New("unknown oracle provider")

	// ErrEmptyReply is returned when the backend responded successfully but
	// produced no usable text.
	ErrEmptyReply = errors.New("oracle returned an empty reply")
)
