// SPDX-License-Identifier: MPL-2.0

package input

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/invowk/shlit/pkg/cueutil"
	"github.com/invowk/shlit/pkg/shvalue"
)

const (
	// FormatJSON decodes RFC 8259 JSON.
	FormatJSON Format = "json"
	// FormatYAML decodes a single YAML 1.2 document.
	FormatYAML Format = "yaml"
	// FormatTOML decodes a TOML document; the root is always a mapping.
	FormatTOML Format = "toml"
	// FormatCUE decodes a concrete CUE document; the root is always a mapping.
	FormatCUE Format = "cue"

	// MaxInputSize bounds every input document.
	MaxInputSize = cueutil.DefaultMaxFileSize
)

var (
	// ErrUnsupportedFormat is returned for an unknown format name or file extension.
	ErrUnsupportedFormat = errors.New("unsupported input format")
	// ErrDecode is returned when a document cannot be decoded into a value.
	ErrDecode = errors.New("failed to decode input")
)

type (
	// Format names an input document syntax.
	Format string

	// UnsupportedFormatError is returned for an unknown format name or file
	// extension. It wraps ErrUnsupportedFormat for errors.Is() compatibility.
	UnsupportedFormatError struct {
		Value string
	}

	// DecodeError is returned when a document cannot be decoded. It unwraps
	// to both ErrDecode and the underlying parser error.
	DecodeError struct {
		Format Format
		Source string
		Err    error
	}
)

// Error implements the error interface for UnsupportedFormatError.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported input format %q (valid: json, yaml, toml, cue)", e.Value)
}

// Unwrap returns ErrUnsupportedFormat for errors.Is() compatibility.
func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

// Error implements the error interface for DecodeError.
func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to decode %s input: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("failed to decode %s input %s: %v", e.Format, e.Source, e.Err)
}

// Unwrap returns ErrDecode and the underlying error.
func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// IsValid returns whether the Format is one of the defined formats.
func (f Format) IsValid() (bool, []error) {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatCUE:
		return true, nil
	default:
		return false, []error{&UnsupportedFormatError{Value: string(f)}}
	}
}

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML, FormatCUE}
}

// ParseFormat resolves a user-supplied format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f == "yml" {
		f = FormatYAML
	}
	if valid, errs := f.IsValid(); !valid {
		return "", errs[0]
	}
	return f, nil
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", &UnsupportedFormatError{Value: filepath.Base(path)}
	}
	return ParseFormat(ext)
}

// Decode parses data as format f. source names the document in errors and
// may be empty.
func Decode(f Format, data []byte, source string) (shvalue.Value, error) {
	if valid, errs := f.IsValid(); !valid {
		return shvalue.Value{}, errs[0]
	}
	name := source
	if name == "" {
		name = "<stdin>"
	}
	if err := cueutil.CheckFileSize(data, MaxInputSize, name); err != nil {
		return shvalue.Value{}, &DecodeError{Format: f, Source: source, Err: err}
	}

	var (
		v   shvalue.Value
		err error
	)
	switch f {
	case FormatJSON:
		v, err = decodeJSON(data)
	case FormatYAML:
		v, err = decodeYAML(data)
	case FormatTOML:
		v, err = decodeTOML(data)
	case FormatCUE:
		v, err = decodeCUE(data, name)
	}
	if err != nil {
		return shvalue.Value{}, &DecodeError{Format: f, Source: source, Err: err}
	}
	return v, nil
}
