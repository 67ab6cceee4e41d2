package cursor

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotSupported is returned by operations a forward-only, read-only
	// cursor cannot perform.
	ErrNotSupported = errors.New("cursor: operation not supported")
	// ErrColumnIndex is returned for a column index outside the row.
	ErrColumnIndex = errors.New("cursor: column index out of range")
	// ErrColumnNotFound is returned when a column name does not resolve.
	ErrColumnNotFound = errors.New("cursor: column not found")
)

// DataAccessError reports a failure to fetch a row or to produce a value.
type DataAccessError struct {
	Op     string
	Row    int
	Column int
	Err    error
}

func (e *DataAccessError) Error() string {
	switch {
	case e.Column > 0:
		return fmt.Sprintf("cursor: %s row %d column %d: %v", e.Op, e.Row, e.Column, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("cursor: %s row %d: %v", e.Op, e.Row, e.Err)
	}
	return fmt.Sprintf("cursor: %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// Cause returns the underlying error for github.com/pkg/errors users.
func (e *DataAccessError) Cause() error {
	return e.Err
}

// CastError reports that a raw value cannot be presented as the requested
// target.
type CastError struct {
	Value  any
	Target Target
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cannot convert %v (%s) to %s", e.Value, typeName(e.Value), e.Target)
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
