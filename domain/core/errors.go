package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Construction and evaluation errors
	ErrInvalidParameter     = errors.New("invalid distribution parameter")
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// Fitting errors
	ErrInvalidObservation = errors.New("invalid observations")
	ErrFitConvergence     = errors.New("fit did not converge")

	// Data selection errors
	ErrInvalidSelection = errors.New("invalid selection")

	// Test input errors
	ErrSampleSizeMismatch = errors.New("sample sizes do not match")
)

// Error constructors with context
func NewInvalidParameterError(family, param, constraint string, value float64) error {
	return fmt.Errorf("%w: %s %s = %v violates %s", ErrInvalidParameter, family, param, value, constraint)
}

func NewUnsupportedOperationError(op, reason string) error {
	return fmt.Errorf("%w: %s (%s)", ErrUnsupportedOperation, op, reason)
}

func NewInvalidObservationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidObservation, reason)
}

func NewFitConvergenceError(family, reason string) error {
	return fmt.Errorf("%w: %s (%s)", ErrFitConvergence, family, reason)
}

func NewInvalidSelectionError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSelection, reason)
}

func NewSampleSizeMismatchError(n1, n2 int) error {
	return fmt.Errorf("%w: %d vs %d", ErrSampleSizeMismatch, n1, n2)
}

// Error checking helpers
func IsInvalidParameterError(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsInvalidObservationError(err error) bool {
	return errors.Is(err, ErrInvalidObservation)
}

func IsFitConvergenceError(err error) bool {
	return errors.Is(err, ErrFitConvergence)
}

func IsInvalidSelectionError(err error) bool {
	return errors.Is(err, ErrInvalidSelection)
}

func IsSampleSizeMismatchError(err error) bool {
	return errors.Is(err, ErrSampleSizeMismatch)
}

func IsUnsupportedOperationError(err error) bool {
	return errors.Is(err, ErrUnsupportedOperation)
}
