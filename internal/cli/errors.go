package cli

import (
	"errors"

	"github.com/samvad-hq/answer-search/pkg/search"
)

// Exit codes
const (
	ExitSuccess          = 0
	ExitGeneral          = 1
	ExitUsageError       = 2
	ExitTransportError   = 3
	ExitApplicationError = 4
	ExitConfigError      = 5
)

// CLIError is a structured error with user-facing context.
type CLIError struct {
	Summary    string
	Detail     string
	Suggestion string
	ExitCode   int
}

func (e *CLIError) Error() string {
	return e.Summary
}

// searchError maps a search client error onto an exit code.
func searchError(err error) *CLIError {
	var te *search.TransportError
	var ae *search.ApplicationError
	switch {
	case errors.As(err, &te):
		return &CLIError{
			Summary:    "search backend returned an HTTP error",
			Detail:     te.Error(),
			Suggestion: "check the backend logs or --base-url",
			ExitCode:   ExitTransportError,
		}
	case errors.As(err, &ae):
		return &CLIError{
			Summary:  "search failed",
			Detail:   ae.Message,
			ExitCode: ExitApplicationError,
		}
	default:
		return &CLIError{Summary: "search request failed", Detail: err.Error(), ExitCode: ExitGeneral}
	}
}
