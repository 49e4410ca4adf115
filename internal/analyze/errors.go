package analyze

import "errors"

// Kind classifies a failed search. Every failure is terminal for the current
// query; callers map kinds onto their own surface (exit codes, HTTP status).
type Kind string

const (
	KindInvalidQuery       Kind = "invalid_query"
	KindProviderFailure    Kind = "provider_failure"
	KindMalformedResponse  Kind = "malformed_response"
	KindNoMatchingListings Kind = "no_matching_listings"
)

// Error is the single caller-facing failure type. Message is safe to show to
// the user; provider internals stay in the wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// KindOf extracts the failure kind, or "" for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func failf(kind Kind, cause error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}
