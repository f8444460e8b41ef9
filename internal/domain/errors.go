package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrRateLimited  = errors.New("rate limited")
	ErrSpam         = errors.New("spam rejected")
	ErrUnconfigured = errors.New("server not configured")
	ErrUpstream     = errors.New("email provider error")
	ErrUnavailable  = errors.New("service unavailable")
	ErrInvalidCode  = errors.New("invalid verification code")
	ErrCodeExpired  = errors.New("verification code expired")
)

// RequestError carries a user-facing message on top of a sentinel, so the
// transport edge can surface field-specific reasons verbatim while still
// matching the sentinel with errors.Is.
type RequestError struct {
	Sentinel error
	Msg      string
}

func (e *RequestError) Error() string { return e.Msg }
func (e *RequestError) Unwrap() error { return e.Sentinel }

// Invalid builds a validation failure carrying a human-readable reason.
func Invalid(msg string) error { return &RequestError{Sentinel: ErrBadRequest, Msg: msg} }

// Spam builds a spam rejection carrying the heuristic's reason.
func Spam(msg string) error { return &RequestError{Sentinel: ErrSpam, Msg: msg} }
