// SPDX-License-Identifier: MPL-2.0

package input

import (
	"fmt"

	"github.com/invowk/shlit/pkg/cueutil"
	"github.com/invowk/shlit/pkg/shvalue"

	"cuelang.org/go/cue"
)

func decodeCUE(data []byte, filename string) (shvalue.Value, error) {
	root, err := cueutil.Compile(data,
		cueutil.WithFilename(filename),
		cueutil.WithConcrete(true),
		cueutil.WithMaxFileSize(MaxInputSize),
	)
	if err != nil {
		return shvalue.Value{}, err
	}
	return cueValue(root)
}

// cueValue converts a concrete CUE value. Struct fields come back in
// declaration order; definitions, hidden and optional fields are skipped.
func cueValue(v cue.Value) (shvalue.Value, error) {
	switch k := v.IncompleteKind(); k {
	case cue.NullKind:
		return shvalue.Absent(), nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return shvalue.Value{}, err
		}
		return shvalue.Bool(b), nil
	case cue.IntKind:
		i, err := v.Int64()
		if err != nil {
			return shvalue.Value{}, fmt.Errorf("%s: %w", v.Path(), err)
		}
		return shvalue.Int(i), nil
	case cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		if err != nil {
			return shvalue.Value{}, fmt.Errorf("%s: %w", v.Path(), err)
		}
		return shvalue.Float(f), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return shvalue.Value{}, err
		}
		return shvalue.Text(s), nil
	case cue.BytesKind:
		b, err := v.Bytes()
		if err != nil {
			return shvalue.Value{}, err
		}
		return shvalue.Text(string(b)), nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return shvalue.Value{}, err
		}
		var items []shvalue.Value
		for iter.Next() {
			item, err := cueValue(iter.Value())
			if err != nil {
				return shvalue.Value{}, err
			}
			items = append(items, item)
		}
		return shvalue.Sequence(items...), nil
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return shvalue.Value{}, err
		}
		var pairs []shvalue.Pair
		for iter.Next() {
			item, err := cueValue(iter.Value())
			if err != nil {
				return shvalue.Value{}, err
			}
			pairs = append(pairs, shvalue.Pair{Key: iter.Selector().Unquoted(), Value: item})
		}
		return shvalue.NewMapping(pairs...)
	default:
		return shvalue.Value{}, fmt.Errorf("%s: unsupported CUE kind %s", v.Path(), k)
	}
}
