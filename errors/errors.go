// Package errors defines the engine's error taxonomy: a closed set of small
// structs, one per semantic kind, each implementing the error interface.
// This mirrors the teacher's errors package (NilValueError, MissingKeyError,
// IncompatibleRowError, ...): no error wrapping framework, just concrete
// types callers can type-switch or errors.As on.
package errors

import "fmt"

// ColumnNotFound occurs when an operator references a column that does not
// exist in a DataFrame's schema.
type ColumnNotFound struct{ Name string }

// Error returns a textual representation of this ColumnNotFound.
func (e ColumnNotFound) Error() string {
	return fmt.Sprintf("column %q not found", e.Name)
}

// DuplicateColumn occurs when a DataFrame construction or rename would
// produce two columns sharing the same name.
type DuplicateColumn struct{ Name string }

// Error returns a textual representation of this DuplicateColumn.
func (e DuplicateColumn) Error() string {
	return fmt.Sprintf("duplicate column %q", e.Name)
}

// LengthMismatch occurs when Series destined for the same DataFrame
// disagree on length.
type LengthMismatch struct {
	Name     string
	Expected int
	Actual   int
}

// Error returns a textual representation of this LengthMismatch.
func (e LengthMismatch) Error() string {
	return fmt.Sprintf("column %q has length %d, expected %d", e.Name, e.Actual, e.Expected)
}

// TypeMismatch occurs when an operation is attempted against a dtype it
// does not support, or when two operands' dtypes are incompatible.
type TypeMismatch struct{ Message string }

// Error returns a textual representation of this TypeMismatch.
func (e TypeMismatch) Error() string {
	return e.Message
}

// OutOfBounds occurs when an index exceeds a Series or DataFrame's length.
type OutOfBounds struct {
	Index  int
	Length int
}

// Error returns a textual representation of this OutOfBounds.
func (e OutOfBounds) Error() string {
	return fmt.Sprintf("index %d out of bounds for length %d", e.Index, e.Length)
}

// SchemaMismatch occurs when DataFrame.Append is called with a frame whose
// column set or dtypes differ from the receiver's.
type SchemaMismatch struct{ Message string }

// Error returns a textual representation of this SchemaMismatch.
func (e SchemaMismatch) Error() string {
	return e.Message
}

// EmptyArgument occurs when an operator that requires a non-empty list
// (sort keys, group-by keys) is given none.
type EmptyArgument struct{ Argument string }

// Error returns a textual representation of this EmptyArgument.
func (e EmptyArgument) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Argument)
}

// EmptyColumnName occurs when a Series is constructed, or a DataFrame
// column added, with an empty name.
type EmptyColumnName struct{}

// Error returns a textual representation of this EmptyColumnName.
func (EmptyColumnName) Error() string {
	return "column name must not be empty"
}

// InvalidCast occurs when Series.Cast is asked to perform an unsupported
// dtype conversion.
type InvalidCast struct {
	From string
	To   string
}

// Error returns a textual representation of this InvalidCast.
func (e InvalidCast) Error() string {
	return fmt.Sprintf("cannot cast %s to %s", e.From, e.To)
}
