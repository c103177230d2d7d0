// Package service implements the reservation core: party resolution,
// conflict checking, availability generation and the reservation lifecycle
// state machine. It depends only on the narrow store interfaces declared in
// ports.go, which the repository package implements over MySQL.
package service

import (
	"errors"
	"fmt"
)

// The error taxonomy exposed to transport. Every expected failure wraps one
// of these three sentinels so handlers can translate with errors.Is:
// ErrValidation -> 400, ErrNotFound -> 404, ErrConflict -> 409. None of them
// is a system failure; store unavailability propagates as-is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
