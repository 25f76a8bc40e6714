// Package apperr holds the error taxonomy shared by the storefront services.
//
// Validation problems are reported as *ValidationError before any store or
// storage call happens. Failures coming back from the relational store are
// wrapped with ErrStore, failures from object storage with ErrStorage, and
// either may additionally carry ErrTransient when the cause looks like a
// connectivity problem.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrAmbiguous    = errors.New("more than one record matched")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStore        = errors.New("store error")
	ErrStorage      = errors.New("storage error")
	ErrTransient    = errors.New("transient network error")
	ErrInvalidType  = errors.New("file is not an image")
	ErrTooLarge     = errors.New("file is too large")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Store wraps a relational store failure for the named operation.
func Store(op string, err error) error {
	if isTransient(err) {
		return fmt.Errorf("%s: %w: %w: %w", op, ErrStore, ErrTransient, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}

// Storage wraps an object storage failure for the named operation.
func Storage(op string, err error) error {
	if isTransient(err) {
		return fmt.Errorf("%s: %w: %w: %w", op, ErrStorage, ErrTransient, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
