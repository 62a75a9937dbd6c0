package websearch

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrInvalidProviderID = errors.New("invalid provider ID")
	ErrInvalidAPIHost    = errors.New("invalid API host")
	ErrMissingAPIKey     = errors.New("missing API key")
	ErrProviderNotFound  = errors.New("provider not found")

	// Request errors
	ErrEmptyQuery = errors.New("empty search query")

	// Response errors
	ErrInvalidResponse = errors.New("invalid response from provider")
)

// ProviderError wraps a failed upstream call.
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Provider, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Provider, e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
