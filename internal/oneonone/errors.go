package oneonone

import (
	"errors"
	"fmt"

	"github.com/teemow/cadence/internal/config"
)

// Kinds used by NotFoundError and MappingError.
const (
	KindPerson   = "person"
	KindSnapshot = "snapshot"

	KindTimezone = "timezone"
	KindCadence  = "cadence"
)

// NotFoundError reports that a person or snapshot is absent.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// MappingError reports that no timezone or cadence could be derived for a
// person. Table names the lookup table that missed and Key the value that
// had no entry.
type MappingError struct {
	Kind  string
	Table string
	Key   string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("no %s mapping in %s table for %q", e.Kind, e.Table, e.Key)
}

// ValidationError reports malformed caller input.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TransportError reports a failed calendar backend call.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("calendar %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is or wraps a NotFoundError, or reports a
// missing frequency config.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target) || errors.Is(err, config.ErrNotFound)
}

// IsMapping reports whether err is or wraps a MappingError.
func IsMapping(err error) bool {
	var target *MappingError
	return errors.As(err, &target)
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsTransport reports whether err is or wraps a TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

func personNotFound(email string) error {
	return &NotFoundError{Kind: KindPerson, Key: email}
}

func transport(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Op: op, Err: err}
}
