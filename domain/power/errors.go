package power

import (
	"errors"
	"fmt"
)

// Engine errors - centralized error definitions. Every failure path of
// Compute converges to one of these kinds; all are recoverable at the call
// boundary and never terminate the caller.
var (
	ErrUnsupportedFamily = errors.New("unsupported test family")
	ErrMissingField      = errors.New("required field missing")
	ErrOutOfDomain       = errors.New("field out of domain")
	ErrInvalidEffectSize = errors.New("invalid effect size")
	ErrInvalidDomain     = errors.New("derived quantity out of domain")
	ErrNonFiniteResult   = errors.New("non-finite result")
	ErrNoSolutionInRange = errors.New("no solution within search bounds")
)

// Error constructors with context
func NewMissingFieldError(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

func NewOutOfDomainError(field, reason string) error {
	return fmt.Errorf("%w: %s (%s)", ErrOutOfDomain, field, reason)
}

func NewInvalidDomainError(quantity string, value float64) error {
	return fmt.Errorf("%w: %s = %g", ErrInvalidDomain, quantity, value)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrOutOfDomain) ||
		errors.Is(err, ErrUnsupportedFamily)
}

func IsNumericError(err error) bool {
	return errors.Is(err, ErrInvalidEffectSize) ||
		errors.Is(err, ErrInvalidDomain) ||
		errors.Is(err, ErrNonFiniteResult)
}

func IsNoSolutionError(err error) bool {
	return errors.Is(err, ErrNoSolutionInRange)
}
