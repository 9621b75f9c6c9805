// SPDX-License-Identifier: MPL-2.0

package shlit

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/invowk/shlit/pkg/shvalue"

	"mvdan.cc/sh/v3/syntax"
)

const (
	reasonAbsent = "none values cannot be represented"
	reasonBool   = "boolean meaning is syntax-context-dependent"
)

type (
	// Option configures an encoding.
	Option func(*encState)

	encState struct {
		w       io.Writer
		dialect Dialect
	}
)

// WithDialect selects the target shell grammar.
func WithDialect(d Dialect) Option {
	return func(es *encState) { es.dialect = d }
}

// Encode writes the shell literal for v to w.
//
// The walk fails on the first illegal shape. Content written to w before the
// failure is left there; callers that need all-or-nothing output should use
// Marshal or encode into a buffer.
func Encode(v shvalue.Value, w io.Writer, opts ...Option) error {
	es := &encState{w: w}
	for _, opt := range opts {
		opt(es)
	}
	if valid, errs := es.dialect.IsValid(); !valid {
		return errs[0]
	}
	es.dialect = es.dialect.orDefault()
	return encode(v, es)
}

// Marshal returns the shell literal for v. On failure the returned string is
// empty.
func Marshal(v shvalue.Value, opts ...Option) (string, error) {
	var sb strings.Builder
	if err := Encode(v, &sb, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Validate reports the error Encode would return for v without producing
// any output.
func Validate(v shvalue.Value, opts ...Option) error {
	return Encode(v, io.Discard, opts...)
}

// Quote returns s as a POSIX single-quoted word. Every single quote inside s
// is written as '\'' (close, escaped quote, reopen).
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func encode(v shvalue.Value, es *encState) error {
	switch v.Kind() {
	case shvalue.KindAbsent:
		return &UnsupportedValueError{Value: v, Reason: reasonAbsent}
	case shvalue.KindBool:
		return &UnsupportedValueError{Value: v, Reason: reasonBool}
	case shvalue.KindInt:
		return writeString(es.w, strconv.FormatInt(v.Int(), 10))
	case shvalue.KindFloat:
		return writeString(es.w, shvalue.FormatFloat(v.Float()))
	case shvalue.KindText:
		return encodeText(v.Text(), es)
	case shvalue.KindSequence:
		return encodeSequence(v, es)
	case shvalue.KindMapping:
		return encodeMapping(v, es)
	default:
		return &UnsupportedValueError{Value: v, Reason: fmt.Sprintf("unknown kind %s", v.Kind())}
	}
}

func encodeText(s string, es *encState) error {
	if es.dialect != DialectBash {
		return writeString(es.w, Quote(s))
	}
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return &EncodingFailureError{Err: err}
	}
	return writeString(es.w, q)
}

func encodeSequence(v shvalue.Value, es *encState) error {
	if err := writeString(es.w, "("); err != nil {
		return err
	}
	for i, item := range v.Items() {
		if item.IsComposite() {
			return &NestedCompositeError{Container: shvalue.KindSequence, Element: item.Kind(), Index: i}
		}
		if err := encode(item, es); err != nil {
			return err
		}
		if err := writeString(es.w, " "); err != nil {
			return err
		}
	}
	return writeString(es.w, ")")
}

func encodeMapping(v shvalue.Value, es *encState) error {
	if err := writeString(es.w, "("); err != nil {
		return err
	}
	for i, p := range v.Pairs() {
		if p.Value.IsComposite() {
			return &NestedCompositeError{Container: shvalue.KindMapping, Element: p.Value.Kind(), Index: i, Key: p.Key}
		}
		var err error
		if es.dialect == DialectBash {
			if p.Key == "" {
				return &EmptyKeyError{Index: i}
			}
			err = encodeBashPair(p, es)
		} else {
			err = encodePair(p, es)
		}
		if err != nil {
			return err
		}
	}
	return writeString(es.w, ")")
}

// encodePair writes "key value " for the zsh (k v k v) form.
func encodePair(p shvalue.Pair, es *encState) error {
	if err := encodeText(p.Key, es); err != nil {
		return err
	}
	if err := writeString(es.w, " "); err != nil {
		return err
	}
	if err := encode(p.Value, es); err != nil {
		return err
	}
	return writeString(es.w, " ")
}

// encodeBashPair writes "[key]=value ". The key is always quoted so that the
// subscript is a single string word rather than an arithmetic expression.
func encodeBashPair(p shvalue.Pair, es *encState) error {
	key, err := syntax.Quote(p.Key, syntax.LangBash)
	if err != nil {
		return &EncodingFailureError{Err: err}
	}
	if key == p.Key {
		key = "'" + key + "'"
	}
	if err := writeString(es.w, "["+key+"]="); err != nil {
		return err
	}
	if err := encode(p.Value, es); err != nil {
		return err
	}
	return writeString(es.w, " ")
}

func writeString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return &EncodingFailureError{Err: err}
	}
	return nil
}
