package newsai

import (
	"errors"
	"net/http"
)

// Kind classifies proxy failures. Each kind maps to one HTTP status.
type Kind int

const (
	ValidationError Kind = iota + 1
	ConfigurationError
	UpstreamError
	RateLimited
	QuotaExhausted
	ExtractionError
)

func (k Kind) String() string {
	switch k {
	case ValidationError:
		return "ValidationError"
	case ConfigurationError:
		return "ConfigurationError"
	case UpstreamError:
		return "UpstreamError"
	case RateLimited:
		return "RateLimited"
	case QuotaExhausted:
		return "QuotaExhausted"
	case ExtractionError:
		return "ExtractionError"
	default:
		return "UnknownError"
	}
}

// Status is the HTTP status surfaced to the caller.
func (k Kind) Status() int {
	switch k {
	case ValidationError:
		return http.StatusBadRequest
	case RateLimited:
		return http.StatusTooManyRequests
	case QuotaExhausted:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified proxy failure. Message is safe to show to callers,
// Err is the cause and stays server-side.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf returns the kind of a classified error, or UpstreamError for
// anything unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return UpstreamError
}

// PublicMessage returns the caller-facing message for err.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Unknown error occurred"
}
