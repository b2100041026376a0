package client

import (
	"errors"
	"fmt"

	"dealflow_backend/platform/apperr"
)

// Code is the closed set of upstream failure classifications. Callers switch
// on it to decide retry vs. abort vs. surface-to-operator; there are no
// free-text codes.
type Code string

const (
	// CodeNotConfigured means the API key is missing; surface a
	// configuration error, do not retry.
	CodeNotConfigured Code = "NOT_CONFIGURED"
	// CodeRateLimitExceeded means the upstream throttled us; retry later.
	// The client never retries on its own.
	CodeRateLimitExceeded Code = "RATE_LIMIT_EXCEEDED"
	// CodeCreditsExhausted means the metered quota is spent; terminal for
	// the current workflow.
	CodeCreditsExhausted Code = "CREDITS_EXHAUSTED"
	// CodeAPIError is any other non-2xx upstream response.
	CodeAPIError Code = "API_ERROR"
	// CodeUnknown wraps transport failures and unexpected errors; safe to
	// retry with backoff at the caller's discretion.
	CodeUnknown Code = "UNKNOWN_ERROR"
)

// Error is a classified upstream failure. A 404 is never an Error; it is a
// defined empty result.
type Error struct {
	Code    Code
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("property data api: %s (%s)", e.Message, e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Unknown wraps an unexpected error as CodeUnknown.
func Unknown(err error) *Error {
	return &Error{
		Code:    CodeUnknown,
		Status:  500,
		Message: err.Error(),
		Err:     err,
	}
}

// CodeOf extracts the classification from an error chain, or CodeUnknown.
func CodeOf(err error) Code {
	var upstreamErr *Error
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Code
	}
	return CodeUnknown
}

// AsAppError maps a classified upstream failure onto the application error
// kinds so the HTTP layer reports "not set up" and "out of quota"
// distinctly.
func AsAppError(err error) *apperr.Error {
	var upstreamErr *Error
	if !errors.As(err, &upstreamErr) {
		return apperr.Wrap(apperr.KindInternal, err.Error(), err)
	}

	switch upstreamErr.Code {
	case CodeNotConfigured:
		return apperr.Wrap(apperr.KindNotConfigured, "property data API key is not configured", err)
	case CodeRateLimitExceeded:
		return apperr.Wrap(apperr.KindRateLimited, "property data API rate limit exceeded, retry later", err)
	case CodeCreditsExhausted:
		return apperr.Wrap(apperr.KindQuotaExhausted, "property data credits exhausted", err)
	case CodeAPIError:
		return apperr.Wrap(apperr.KindUpstream, upstreamErr.Message, err)
	default:
		return apperr.Wrap(apperr.KindUpstream, upstreamErr.Message, err)
	}
}
