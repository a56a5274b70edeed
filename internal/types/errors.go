package types

import (
	"errors"
	"fmt"
)

// Fetcher-origin failures are surfaced to the caller verbatim; the core
// performs no retries on any of them.
var (
	ErrNotFound = errors.New("pull request or repository not found")
	ErrAuth     = errors.New("missing or invalid credentials")
	ErrUpstream = errors.New("upstream api failure")
)

// ValidationError reports a malformed request field. It is the caller's
// fault and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
