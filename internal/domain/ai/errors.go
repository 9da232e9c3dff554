package ai

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrEmptyCorpus indicates no usable feedback rows were left after cleaning.
	ErrEmptyCorpus = errors.New("no valid feedback")
	// ErrInvalidFocus indicates a focus value outside the supported set.
	ErrInvalidFocus = errors.New("invalid analysis focus")
	// ErrMissingCredential indicates the provider API key was not configured.
	ErrMissingCredential = errors.New("ai credential not configured")
	// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
	ErrQuotaExceeded = errors.New("ai quota exceeded")
)

// ServiceError wraps any failure of the model call itself.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	if e.Provider == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// IsTimeout reports whether err came from a deadline on the model call.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
