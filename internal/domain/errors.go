package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedStatement = errors.New("malformed statement")
	ErrEmptyClause        = errors.New("empty clause")
	ErrUnknownType        = errors.New("unknown type")
	ErrUnparsableIntWidth = errors.New("unparsable int width")
	ErrIOFailure          = errors.New("io failure")
	ErrInvalidRowCount    = errors.New("invalid row count")
)

// ColumnError ties a resolution failure to the column that caused it.
type ColumnError struct {
	Kind       error
	Column     string
	TypeClause string
}

func (e *ColumnError) Error() string {
	if e.TypeClause == "" {
		return fmt.Sprintf("%v: column '%s'", e.Kind, e.Column)
	}
	return fmt.Sprintf("%v: column '%s' (type '%s')", e.Kind, e.Column, e.TypeClause)
}

func (e *ColumnError) Unwrap() error { return e.Kind }

// ClauseError ties a parse failure to the clause text that caused it.
type ClauseError struct {
	Kind   error
	Clause string
	Reason string
}

func (e *ClauseError) Error() string {
	msg := e.Kind.Error()
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Clause != "" {
		msg += fmt.Sprintf(" (clause '%s')", e.Clause)
	}
	return msg
}

func (e *ClauseError) Unwrap() error { return e.Kind }

// IOError wraps a filesystem failure with the path involved.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%v: %s %s: %v", ErrIOFailure, e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error { return []error{ErrIOFailure, e.Err} }
