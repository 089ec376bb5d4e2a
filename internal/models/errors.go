// ABOUTME: Validation error taxonomy for measurement input.
// ABOUTME: Errors compare by kind so callers can use errors.Is against the sentinels.
package models

import "fmt"

// ValidationKind identifies why input was rejected.
type ValidationKind string

const (
	MissingName    ValidationKind = "missing_name"
	InvalidNumber  ValidationKind = "invalid_number"
	DivisionByZero ValidationKind = "division_by_zero"
	InvalidPhase   ValidationKind = "invalid_phase"
)

// ValidationError reports rejected measurement input.
type ValidationError struct {
	Kind  ValidationKind
	Field string
	Value string
}

// Sentinels for errors.Is. Only Kind is compared.
var (
	ErrMissingName    = &ValidationError{Kind: MissingName}
	ErrInvalidNumber  = &ValidationError{Kind: InvalidNumber}
	ErrDivisionByZero = &ValidationError{Kind: DivisionByZero}
	ErrInvalidPhase   = &ValidationError{Kind: InvalidPhase}
)

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingName:
		return "patient name is required"
	case InvalidNumber:
		return fmt.Sprintf("invalid number for %s: %q", e.Field, e.Value)
	case DivisionByZero:
		return "arm pressure cannot be zero"
	case InvalidPhase:
		return fmt.Sprintf("unknown phase: %q (use pre or post)", e.Value)
	default:
		return fmt.Sprintf("invalid %s", e.Field)
	}
}

// Is matches any *ValidationError with the same Kind.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}
