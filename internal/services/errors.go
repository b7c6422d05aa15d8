// internal/services/errors.go
package services

import (
	"errors"
)

var (
	// ErrInvalidRequest marks input that was well-formed but cannot be
	// fulfilled, such as an empty order or an unknown product.
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("not found")
)

// RequestError carries a client-facing detail message for one of the
// sentinel kinds above.
type RequestError struct {
	Kind   error
	Detail string
}

func (e *RequestError) Error() string {
	return e.Detail
}

func (e *RequestError) Unwrap() error {
	return e.Kind
}

func invalidRequest(detail string) error {
	return &RequestError{Kind: ErrInvalidRequest, Detail: detail}
}

func notFound(detail string) error {
	return &RequestError{Kind: ErrNotFound, Detail: detail}
}
