package domain

import "fmt"

// The three error kinds a status query can end in. Each carries the
// offending token so callers can match with errors.As and report it.

// InvalidTokenError means the token is empty or was explicitly rejected
// by the backing query mechanism. Not retryable; a different token is needed.
type InvalidTokenError struct {
	Token string
}

func (e *InvalidTokenError) Error() string {
	return "invalid contract token"
}

// ExpiredTokenError means the token was accepted but its contract expiry
// is not in the future. Expires keeps the raw timestamp string as reported.
type ExpiredTokenError struct {
	Token   string
	Expires string
}

func (e *ExpiredTokenError) Error() string {
	return fmt.Sprintf("contract token expired on %s", e.Expires)
}

// CheckSubscriptionError is the catch-all for being unable to determine
// subscription status: execution failure, unparsable output, or an
// unrecognized exit code. May be transient, but no retry happens here.
type CheckSubscriptionError struct {
	Token   string
	Message string
}

func (e *CheckSubscriptionError) Error() string {
	if e.Message == "" {
		return "unable to check subscription status"
	}
	return e.Message
}
