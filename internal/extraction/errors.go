// Package extraction holds the error taxonomy and list normalization shared by
// the rule-based and remote extraction paths.
package extraction

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput      = errors.New("INVALID_INPUT")
	ErrAuth              = errors.New("AUTH_ERROR")
	ErrRateLimited       = errors.New("RATE_LIMITED")
	ErrRemoteUnavailable = errors.New("REMOTE_UNAVAILABLE")
	ErrMalformedResponse = errors.New("MALFORMED_RESPONSE")
)

// ErrorCode returns the taxonomy code for err, or "UNKNOWN_ERROR".
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_INPUT"
	case errors.Is(err, ErrAuth):
		return "AUTH_ERROR"
	case errors.Is(err, ErrRateLimited):
		return "RATE_LIMITED"
	case errors.Is(err, ErrMalformedResponse):
		return "MALFORMED_RESPONSE"
	case errors.Is(err, ErrRemoteUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return "REMOTE_UNAVAILABLE"
	}
	return "UNKNOWN_ERROR"
}

// IsRemoteFailure reports whether err belongs to the recoverable remote-path taxonomy.
func IsRemoteFailure(err error) bool {
	return errors.Is(err, ErrAuth) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrRemoteUnavailable) ||
		errors.Is(err, ErrMalformedResponse)
}
