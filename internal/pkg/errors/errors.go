package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
)

// Kind groups error codes by how a caller should react to them.
type Kind string

const (
	// KindInput is a bad request. Never retried.
	KindInput Kind = "input"
	// KindLookup is a routing provider failure. The caller may retry.
	KindLookup Kind = "lookup"
	// KindInternal covers storage and programming failures.
	KindInternal Kind = "internal"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Retryable  bool                   `json:"retryable,omitempty"`
	StatusCode int                    `json:"-"`
	Kind       Kind                   `json:"-"`

	cause error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches any *AppError carrying the same code, so wrapped copies
// produced by WithDetails and Wrap still compare equal to the sentinels.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Kind:       kindFor(statusCode),
	}
}

func kindFor(statusCode int) Kind {
	switch {
	case statusCode >= 400 && statusCode < 500:
		return KindInput
	case statusCode == 503:
		return KindLookup
	default:
		return KindInternal
	}
}

func (e *AppError) clone() *AppError {
	c := *e
	c.Details = maps.Clone(e.Details)
	return &c
}

// WithDetails returns a copy of e with details merged in. Sentinels are
// never mutated.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	c := e.clone()
	if c.Details == nil {
		c.Details = make(map[string]interface{}, len(details))
	}
	for k, v := range details {
		c.Details[k] = v
	}
	return c
}

// WithField is shorthand for the common field/value detail pair.
func (e *AppError) WithField(field string, value interface{}) *AppError {
	return e.WithDetails(map[string]interface{}{
		"field": field,
		"value": value,
	})
}

// Wrap returns a copy of e that unwraps to cause.
func (e *AppError) Wrap(cause error) *AppError {
	c := e.clone()
	c.cause = cause
	return c
}

// As extracts the *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an *AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
