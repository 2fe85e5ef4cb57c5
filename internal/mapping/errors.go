package mapping

import (
	"errors"
	"fmt"

	"github.com/ajitpratap0/meds2rdf/internal/models"
)

var (
	// ErrMissingField is matched by every MissingFieldError.
	ErrMissingField = errors.New("missing mandatory field")

	// ErrInvalidValue is matched by errors for values outside a fixed set.
	ErrInvalidValue = errors.New("invalid enumerated value")

	// ErrUnknownPrefix is matched by UnknownPrefixError.
	ErrUnknownPrefix = errors.New("unknown ontology prefix")
)

// MissingFieldError reports a row that lacks a field its entity kind requires.
type MissingFieldError struct {
	Entity string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s must have field '%s'", e.Entity, e.Field)
}

// Is makes the error match ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// InvalidValueError reports a value that is not one of the recognized
// categories for Kind.
type InvalidValueError struct {
	Kind  string
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("the given %s '%s' is not valid", e.Kind, e.Value)
}

// Is makes the error match ErrInvalidValue.
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// UnknownPrefixError reports a short-code reference whose prefix is not in
// the ontology table.
type UnknownPrefixError struct {
	Prefix string
	Code   string
}

func (e *UnknownPrefixError) Error() string {
	return fmt.Sprintf("unknown prefix: %s (code %q)", e.Prefix, e.Code)
}

// Is makes the error match both ErrUnknownPrefix and ErrInvalidValue.
func (e *UnknownPrefixError) Is(target error) bool {
	return target == ErrUnknownPrefix || target == ErrInvalidValue
}

// RowError locates a mapping failure within a table.
type RowError struct {
	Table models.TableKind
	Index int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.Table, e.Index, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
