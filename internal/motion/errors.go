package motion

import (
	"errors"
	"fmt"
)

// Domain errors for engine operations.
var (
	// ErrConfiguration indicates malformed breakpoints, easing or spring
	// parameters, or an invalid timeline/composition definition.
	ErrConfiguration = errors.New("motion: invalid configuration")

	// ErrOutOfRange indicates a frame outside a composition's duration.
	ErrOutOfRange = errors.New("motion: frame out of range")

	// ErrDuplicateID indicates a composition id registered twice.
	ErrDuplicateID = errors.New("motion: duplicate composition id")

	// ErrNotFound indicates an unknown composition id.
	ErrNotFound = errors.New("motion: composition not found")
)

// ConfigError wraps ErrConfiguration with the offending operation and field.
type ConfigError struct {
	Op     string
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s %s", ErrConfiguration, e.Op, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// Configf builds a ConfigError with a formatted reason.
func Configf(op, field, format string, args ...any) error {
	return &ConfigError{Op: op, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// RangeError wraps ErrOutOfRange with the requested frame and valid window.
type RangeError struct {
	ID       string
	Frame    int
	Duration int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %q frame %d not in [0, %d)", ErrOutOfRange, e.ID, e.Frame, e.Duration)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// IDError wraps ErrDuplicateID or ErrNotFound with the composition id.
type IDError struct {
	ID      string
	Wrapped error
}

func (e *IDError) Error() string {
	return fmt.Sprintf("%s: %q", e.Wrapped, e.ID)
}

func (e *IDError) Unwrap() error {
	return e.Wrapped
}
