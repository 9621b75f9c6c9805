// SPDX-License-Identifier: MPL-2.0

package shvalue

import (
	"cmp"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"

	"golang.org/x/exp/maps"
)

// ErrUnconvertible is the sentinel error wrapped by UnconvertibleError.
var ErrUnconvertible = errors.New("value cannot be converted")

// UnconvertibleError is returned by FromAny for Go data with no Value shape.
type UnconvertibleError struct {
	Type   string
	Reason string
}

// Error implements the error interface for UnconvertibleError.
func (e *UnconvertibleError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot convert %s to a shell value: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("cannot convert %s to a shell value", e.Type)
}

// Unwrap returns ErrUnconvertible for errors.Is() compatibility.
func (e *UnconvertibleError) Unwrap() error { return ErrUnconvertible }

// FromAny converts decoded Go data into a Value.
//
// nil and nil pointers become Absent, bools become Bool, every integer kind
// becomes Int, floats become Float, strings, byte slices and
// encoding.TextMarshaler implementations become Text. Slices and arrays become
// sequences and maps become mappings. Map keys may be any scalar kind and are
// stored as their canonical text; pairs are sorted by that text so conversion
// is deterministic.
//
// Nesting is converted as-is; the encoder decides whether it is legal.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Absent(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return Text(t), nil
	case []byte:
		return Text(string(t)), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float64:
		return Float(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, &UnconvertibleError{Type: "json.Number", Reason: err.Error()}
		}
		return Float(f), nil
	case []any:
		return sequenceFrom(len(t), func(i int) any { return t[i] })
	case map[string]any:
		keys := maps.Keys(t)
		slices.Sort(keys)
		pairs := make([]Pair, 0, len(t))
		for _, k := range keys {
			v, err := FromAny(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			pairs = append(pairs, Pair{Key: k, Value: v})
		}
		return NewMapping(pairs...)
	case encoding.TextMarshaler:
		text, err := t.MarshalText()
		if err != nil {
			return Value{}, &UnconvertibleError{Type: fmt.Sprintf("%T", x), Reason: err.Error()}
		}
		return Text(string(text)), nil
	}
	return fromReflect(reflect.ValueOf(x))
}

func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Absent(), nil
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{}, &UnconvertibleError{Type: rv.Type().String(), Reason: fmt.Sprintf("%d overflows int64", u)}
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return Text(rv.String()), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Text(string(rv.Bytes())), nil
		}
		return sequenceFrom(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Array:
		return sequenceFrom(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Map:
		return mappingFrom(rv)
	default:
		return Value{}, &UnconvertibleError{Type: rv.Type().String()}
	}
}

func sequenceFrom(n int, at func(int) any) (Value, error) {
	items := make([]Value, n)
	for i := range n {
		v, err := FromAny(at(i))
		if err != nil {
			return Value{}, fmt.Errorf("index %d: %w", i, err)
		}
		items[i] = v
	}
	return Value{kind: KindSequence, items: items}, nil
}

func mappingFrom(rv reflect.Value) (Value, error) {
	pairs := make([]Pair, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := FromAny(iter.Key().Interface())
		if err != nil {
			return Value{}, fmt.Errorf("map key: %w", err)
		}
		if !key.kind.IsScalar() {
			return Value{}, &UnconvertibleError{
				Type:   rv.Type().String(),
				Reason: fmt.Sprintf("map key of kind %s is not representable as text", key.kind),
			}
		}
		val, err := FromAny(iter.Value().Interface())
		if err != nil {
			return Value{}, fmt.Errorf("key %q: %w", key.String(), err)
		}
		pairs = append(pairs, Pair{Key: key.String(), Value: val})
	}
	slices.SortFunc(pairs, func(a, b Pair) int { return cmp.Compare(a.Key, b.Key) })
	return NewMapping(pairs...)
}
