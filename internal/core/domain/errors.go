package domain

import (
	"errors"
	"sort"
	"strings"
)

// Default messages used when the remote API does not supply one.
const (
	MsgLoginFailed        = "Login failed"
	MsgRegistrationFailed = "Registration failed"
)

// Session errors.
var (
	ErrNoSession         = errors.New("no session")
	ErrStorageCorrupt    = errors.New("stored session is corrupt")
	ErrSessionSuperseded = errors.New("session changed while the request was in flight")
	ErrTokenExpired      = errors.New("token expired")
)

// Remote payload errors.
var (
	ErrMalformedToken    = errors.New("malformed token")
	ErrMalformedResponse = errors.New("malformed response")
)

// AuthError is a failed credential exchange. Message is safe to show to the user.
type AuthError struct {
	Message    string
	StatusCode int // 0 when the request never got an HTTP answer
	Err        error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ValidationError is a client-side form check that failed before any network call.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

// NewValidationError builds a ValidationError with a single message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
