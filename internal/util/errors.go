// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrEmptyQuery     = errors.New("query is empty")
	ErrUnknownFormat  = errors.New("unknown output format")
	ErrNotInitialized = errors.New("application is not initialized")
)
