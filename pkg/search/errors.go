package search

import (
	"errors"
	"fmt"
)

// DefaultFailureMessage is used when the backend reports failure without a message.
const DefaultFailureMessage = "search failed"

// TransportError reports a non-2xx HTTP status.
type TransportError struct {
	StatusCode int
	StatusText string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("http request failed: %d %s", e.StatusCode, e.StatusText)
}

// ApplicationError reports success=false inside an otherwise well-formed response.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	return e.Message
}

func newApplicationError(msg string) *ApplicationError {
	if msg == "" {
		msg = DefaultFailureMessage
	}
	return &ApplicationError{Message: msg}
}

// IsTransportError reports whether err wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsApplicationError reports whether err wraps an *ApplicationError.
func IsApplicationError(err error) bool {
	var ae *ApplicationError
	return errors.As(err, &ae)
}
