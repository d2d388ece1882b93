package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. Controllers translate these
// into HTTP statuses; the distinction between unauthenticated, forbidden and
// not found matters to callers (login prompt vs hidden action vs 404).
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrWrongPostType   = errors.New("wrong post type")
)

// ValidationError reports an input that failed a length, emptiness or
// enum-membership check, carrying the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// AsValidation unwraps err into a ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
