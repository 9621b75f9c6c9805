// SPDX-License-Identifier: MPL-2.0

package shvalue

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrDuplicateKey is returned when a mapping is built with a repeated key.
	ErrDuplicateKey = errors.New("duplicate mapping key")
	// ErrInvalidShape is the sentinel error wrapped by InvalidShapeError.
	ErrInvalidShape = errors.New("invalid value shape")
)

type (
	// Value is an immutable tagged union over the supported shapes.
	// The zero Value is Absent.
	Value struct {
		kind  Kind
		b     bool
		i     int64
		f     float64
		s     string
		items []Value
		pairs []Pair
	}

	// Pair is one key/value entry of a mapping.
	Pair struct {
		Key   string
		Value Value
	}

	// DuplicateKeyError is returned when a mapping is built with a repeated key.
	// It wraps ErrDuplicateKey for errors.Is() compatibility.
	DuplicateKeyError struct {
		Key string
	}

	// InvalidShapeError reports a composite nested inside another composite.
	// Index is the element position for sequences; Key is set for mappings.
	InvalidShapeError struct {
		Container Kind
		Element   Kind
		Index     int
		Key       string
	}
)

// Absent returns the value representing "no value".
func Absent() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Sequence returns an ordered list of values. The items are copied.
// Nesting is not checked here; see IsValid.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: slices.Clone(items)}
}

// Texts is a shorthand for a sequence of text values.
func Texts(items ...string) Value {
	vals := make([]Value, len(items))
	for i, s := range items {
		vals[i] = Text(s)
	}
	return Value{kind: KindSequence, items: vals}
}

// NewMapping returns a mapping with the given pairs in order.
// Keys must be unique.
func NewMapping(pairs ...Pair) (Value, error) {
	seen := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		if _, dup := seen[p.Key]; dup {
			return Value{}, &DuplicateKeyError{Key: p.Key}
		}
		seen[p.Key] = struct{}{}
	}
	return Value{kind: KindMapping, pairs: slices.Clone(pairs)}, nil
}

// MustMapping is like NewMapping but panics on duplicate keys.
// It is intended for literals whose keys are known to be unique.
func MustMapping(pairs ...Pair) Value {
	v, err := NewMapping(pairs...)
	if err != nil {
		panic(err)
	}
	return v
}

// Kind returns the discriminator of the value.
func (v Value) Kind() Kind { return v.kind }

// IsComposite reports whether v is a Sequence or Mapping.
func (v Value) IsComposite() bool { return v.kind.IsComposite() }

// Bool returns the boolean payload, or false for other kinds.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload, or 0 for other kinds.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload, or 0 for other kinds.
func (v Value) Float() float64 { return v.f }

// Text returns the text payload, or "" for other kinds.
func (v Value) Text() string { return v.s }

// Items returns a copy of the sequence elements.
func (v Value) Items() []Value { return slices.Clone(v.items) }

// Pairs returns a copy of the mapping pairs.
func (v Value) Pairs() []Pair { return slices.Clone(v.pairs) }

// Len returns the number of elements of a composite, or 0.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.pairs)
	default:
		return 0
	}
}

// String returns the canonical textual form of the value: what a shell prints
// for it after a round trip. Integers are decimal, floats use the shortest
// representation that parses back to the same float64, text is verbatim.
// Composites get a bracketed diagnostic rendering.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return FormatFloat(v.f)
	case KindText:
		return v.s
	case KindSequence:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(item.debugString())
		}
		sb.WriteByte(']')
		return sb.String()
	case KindMapping:
		var sb strings.Builder
		sb.WriteByte('{')
		for i, p := range v.pairs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(p.Key))
			sb.WriteString(": ")
			sb.WriteString(p.Value.debugString())
		}
		sb.WriteByte('}')
		return sb.String()
	default:
		return v.kind.String()
	}
}

func (v Value) debugString() string {
	switch v.kind {
	case KindText:
		return strconv.Quote(v.s)
	case KindAbsent:
		return "<absent>"
	default:
		return v.String()
	}
}

// FormatFloat renders f in its shortest round-trip form.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// IsValid reports whether v respects the one-level composition rule and,
// for mappings, key uniqueness. Scalars, Absent and Bool are always valid
// here; whether they can be encoded is decided by the encoder.
func (v Value) IsValid() (bool, []error) {
	var errs []error
	switch v.kind {
	case KindSequence:
		for i, item := range v.items {
			if item.IsComposite() {
				errs = append(errs, &InvalidShapeError{Container: KindSequence, Element: item.kind, Index: i})
			}
		}
	case KindMapping:
		seen := make(map[string]struct{}, len(v.pairs))
		for i, p := range v.pairs {
			if _, dup := seen[p.Key]; dup {
				errs = append(errs, &DuplicateKeyError{Key: p.Key})
			}
			seen[p.Key] = struct{}{}
			if p.Value.IsComposite() {
				errs = append(errs, &InvalidShapeError{Container: KindMapping, Element: p.Value.kind, Index: i, Key: p.Key})
			}
		}
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// Equal reports whether v and o have the same kind and payload.
// Mapping pairs are compared in order. Float comparison is by value,
// so NaN is never equal to itself.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindAbsent:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindText:
		return v.s == o.s
	case KindSequence:
		return slices.EqualFunc(v.items, o.items, Value.Equal)
	case KindMapping:
		return slices.EqualFunc(v.pairs, o.pairs, func(a, b Pair) bool {
			return a.Key == b.Key && a.Value.Equal(b.Value)
		})
	default:
		return false
	}
}

// Error implements the error interface for DuplicateKeyError.
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate mapping key %q", e.Key)
}

// Unwrap returns ErrDuplicateKey for errors.Is() compatibility.
func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// Error implements the error interface for InvalidShapeError.
func (e *InvalidShapeError) Error() string {
	if e.Container == KindMapping {
		return fmt.Sprintf("mapping value for key %q is a %s; composites cannot be nested", e.Key, e.Element)
	}
	return fmt.Sprintf("sequence element %d is a %s; composites cannot be nested", e.Index, e.Element)
}

// Unwrap returns ErrInvalidShape for errors.Is() compatibility.
func (e *InvalidShapeError) Unwrap() error { return ErrInvalidShape }
