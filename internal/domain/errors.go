package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("access denied")
	ErrForbidden       = errors.New("insufficient permissions")
)

// ValidationError marks malformed input: missing table id, empty items,
// negative price, zero quantity.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
