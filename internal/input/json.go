// SPDX-License-Identifier: MPL-2.0

package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/invowk/shlit/pkg/shvalue"
)

// decodeJSON streams tokens so that object keys keep document order, which
// unmarshaling into map[string]any would lose.
func decodeJSON(data []byte) (shvalue.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return shvalue.Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return shvalue.Value{}, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (shvalue.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return shvalue.Value{}, io.ErrUnexpectedEOF
		}
		return shvalue.Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			return decodeJSONArray(dec)
		case '{':
			return decodeJSONObject(dec)
		default:
			return shvalue.Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	case nil:
		return shvalue.Absent(), nil
	case bool:
		return shvalue.Bool(t), nil
	case string:
		return shvalue.Text(t), nil
	case json.Number:
		return shvalue.FromAny(t)
	default:
		return shvalue.Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeJSONArray(dec *json.Decoder) (shvalue.Value, error) {
	var items []shvalue.Value
	for dec.More() {
		item, err := decodeJSONValue(dec)
		if err != nil {
			return shvalue.Value{}, fmt.Errorf("index %d: %w", len(items), err)
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil {
		return shvalue.Value{}, err
	}
	return shvalue.Sequence(items...), nil
}

func decodeJSONObject(dec *json.Decoder) (shvalue.Value, error) {
	var pairs []shvalue.Pair
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return shvalue.Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return shvalue.Value{}, fmt.Errorf("object key must be a string, got %v", tok)
		}
		v, err := decodeJSONValue(dec)
		if err != nil {
			return shvalue.Value{}, fmt.Errorf("key %q: %w", key, err)
		}
		pairs = append(pairs, shvalue.Pair{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return shvalue.Value{}, err
	}
	return shvalue.NewMapping(pairs...)
}
