// SPDX-License-Identifier: MPL-2.0

package shlit

import (
	"errors"
	"fmt"

	"github.com/invowk/shlit/pkg/shvalue"
)

var (
	// ErrUnsupportedValue is returned for values without a shell representation.
	ErrUnsupportedValue = errors.New("unsupported value")
	// ErrNestedComposite is returned when a sequence or mapping contains a composite.
	ErrNestedComposite = errors.New("nested composite not supported")
	// ErrEncodingFailure is returned when the literal cannot be written to the sink.
	ErrEncodingFailure = errors.New("encoding failure")
	// ErrInvalidDialect is returned for unknown dialects.
	ErrInvalidDialect = errors.New("invalid dialect")
	// ErrEmptyKey is returned when a bash mapping has an empty key.
	ErrEmptyKey = errors.New("empty mapping key")
)

type (
	// UnsupportedValueError reports an Absent or Bool value.
	// It wraps ErrUnsupportedValue for errors.Is() compatibility.
	UnsupportedValueError struct {
		Value  shvalue.Value
		Reason string
	}

	// NestedCompositeError reports a composite found in an element or value slot.
	// Index is the position in the container; Key is set when Container is a mapping.
	// It wraps ErrNestedComposite for errors.Is() compatibility.
	NestedCompositeError struct {
		Container shvalue.Kind
		Element   shvalue.Kind
		Index     int
		Key       string
	}

	// EncodingFailureError wraps a failure to write to the output sink.
	// It unwraps to both ErrEncodingFailure and the underlying error.
	EncodingFailureError struct {
		Err error
	}

	// EmptyKeyError reports an empty mapping key in the bash dialect, where
	// an empty subscript is rejected at run time and the pair is dropped.
	// It wraps both ErrUnsupportedValue and ErrEmptyKey.
	EmptyKeyError struct {
		Index int
	}

	// InvalidDialectError is returned when a Dialect value is not recognized.
	// It wraps ErrInvalidDialect for errors.Is() compatibility.
	InvalidDialectError struct {
		Value Dialect
	}
)

// Error implements the error interface for UnsupportedValueError.
func (e *UnsupportedValueError) Error() string {
	if e.Value.Kind() == shvalue.KindAbsent {
		return fmt.Sprintf("unsupported value: %s", e.Reason)
	}
	return fmt.Sprintf("unsupported value %s(%s): %s", e.Value.Kind(), e.Value, e.Reason)
}

// Unwrap returns ErrUnsupportedValue for errors.Is() compatibility.
func (e *UnsupportedValueError) Unwrap() error { return ErrUnsupportedValue }

// Error implements the error interface for NestedCompositeError.
func (e *NestedCompositeError) Error() string {
	if e.Container == shvalue.KindMapping {
		return fmt.Sprintf("nested %s as value of mapping key %q is not supported", e.Element, e.Key)
	}
	return fmt.Sprintf("nested %s at sequence index %d is not supported", e.Element, e.Index)
}

// Unwrap returns ErrNestedComposite for errors.Is() compatibility.
func (e *NestedCompositeError) Unwrap() error { return ErrNestedComposite }

// Error implements the error interface for EncodingFailureError.
func (e *EncodingFailureError) Error() string {
	return fmt.Sprintf("encoding failure: %v", e.Err)
}

// Unwrap returns ErrEncodingFailure and the underlying error.
func (e *EncodingFailureError) Unwrap() []error { return []error{ErrEncodingFailure, e.Err} }

// Error implements the error interface for EmptyKeyError.
func (e *EmptyKeyError) Error() string {
	return fmt.Sprintf("mapping key at index %d is empty; bash associative arrays reject empty subscripts", e.Index)
}

// Unwrap returns ErrUnsupportedValue and ErrEmptyKey.
func (e *EmptyKeyError) Unwrap() []error { return []error{ErrUnsupportedValue, ErrEmptyKey} }

// Error implements the error interface for InvalidDialectError.
func (e *InvalidDialectError) Error() string {
	return fmt.Sprintf("invalid dialect %q (valid: %s, %s)", e.Value, DialectZsh, DialectBash)
}

// Unwrap returns ErrInvalidDialect for errors.Is() compatibility.
func (e *InvalidDialectError) Unwrap() error { return ErrInvalidDialect }
