// SPDX-License-Identifier: MPL-2.0

package script

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/invowk/shlit/pkg/shlit"
	"github.com/invowk/shlit/pkg/shvalue"

	"mvdan.cc/sh/v3/syntax"
)

const (
	// ShapeScalar assigns the literal to a plain variable.
	ShapeScalar Shape = "scalar"
	// ShapeArray assigns the literal to an indexed array.
	ShapeArray Shape = "array"
	// ShapeAssoc declares an associative array and assigns the literal to it.
	ShapeAssoc Shape = "assoc"

	// DefaultName is the variable the skeletons assign when none is given.
	DefaultName = "x"
)

var (
	// ErrInvalidName is returned when the variable name is not a shell identifier.
	ErrInvalidName = errors.New("invalid variable name")
	// ErrInvalidShape is returned for unknown shapes or a shape that does not
	// match the value.
	ErrInvalidShape = errors.New("invalid script shape")

	//go:embed templates/*.sh.tmpl
	templateFS embed.FS

	skeletons = template.Must(
		template.New("skeletons").Delims("{%", "%}").ParseFS(templateFS, "templates/*.sh.tmpl"),
	)
)

type (
	// Shape selects which skeleton a value is spliced into.
	Shape string

	// InvalidNameError is returned when Render gets a name that is not a valid
	// shell identifier.
	// It wraps ErrInvalidName for errors.Is() compatibility.
	InvalidNameError struct {
		Name string
	}

	// InvalidShapeError is returned when a Shape is unknown or cannot hold the
	// value kind. Kind is zero for the unknown-shape case.
	// It wraps ErrInvalidShape for errors.Is() compatibility.
	InvalidShapeError struct {
		Shape Shape
		Kind  shvalue.Kind
	}

	templateData struct {
		Name    string
		Literal string
	}
)

// Error implements the error interface for InvalidNameError.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid variable name %q: must match [A-Za-z_][A-Za-z0-9_]*", e.Name)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// Error implements the error interface for InvalidShapeError.
func (e *InvalidShapeError) Error() string {
	if e.Kind == shvalue.KindAbsent {
		return fmt.Sprintf("invalid script shape %q (valid: %s, %s, %s)", e.Shape, ShapeScalar, ShapeArray, ShapeAssoc)
	}
	return fmt.Sprintf("script shape %s cannot hold a %s value", e.Shape, e.Kind)
}

// Unwrap returns ErrInvalidShape for errors.Is() compatibility.
func (e *InvalidShapeError) Unwrap() error { return ErrInvalidShape }

// String returns the string representation of the Shape.
func (s Shape) String() string { return string(s) }

// IsValid returns whether the Shape is one of the defined shapes.
func (s Shape) IsValid() (bool, []error) {
	switch s {
	case ShapeScalar, ShapeArray, ShapeAssoc:
		return true, nil
	default:
		return false, []error{&InvalidShapeError{Shape: s}}
	}
}

// Shapes returns all defined shapes.
func Shapes() []Shape {
	return []Shape{ShapeScalar, ShapeArray, ShapeAssoc}
}

// ShapeFor returns the skeleton shape that fits a value of kind k.
// Every non-composite kind maps to ShapeScalar so that the encoder, not the
// skeleton, reports Absent and Bool values.
func ShapeFor(k shvalue.Kind) Shape {
	switch k {
	case shvalue.KindSequence:
		return ShapeArray
	case shvalue.KindMapping:
		return ShapeAssoc
	default:
		return ShapeScalar
	}
}

// Render encodes v for dialect d and splices the literal into the skeleton for
// shape, assigning it to the variable name. An empty name means DefaultName.
//
// Encoder failures are returned unchanged.
func Render(shape Shape, d shlit.Dialect, name string, v shvalue.Value) (string, error) {
	if valid, errs := shape.IsValid(); !valid {
		return "", errs[0]
	}
	if name == "" {
		name = DefaultName
	}
	if !syntax.ValidName(name) {
		return "", &InvalidNameError{Name: name}
	}
	if v.IsComposite() && ShapeFor(v.Kind()) != shape {
		return "", &InvalidShapeError{Shape: shape, Kind: v.Kind()}
	}

	lit, err := shlit.Marshal(v, shlit.WithDialect(d))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	data := templateData{Name: name, Literal: lit}
	if err := skeletons.ExecuteTemplate(&sb, templateName(shape, d), data); err != nil {
		return "", fmt.Errorf("execute %s skeleton: %w", shape, err)
	}
	return sb.String(), nil
}

// RenderValue renders v into the skeleton picked by ShapeFor.
func RenderValue(d shlit.Dialect, name string, v shvalue.Value) (string, error) {
	return Render(ShapeFor(v.Kind()), d, name, v)
}

func templateName(shape Shape, d shlit.Dialect) string {
	if shape != ShapeAssoc {
		return string(shape) + ".sh.tmpl"
	}
	if d == shlit.DialectBash {
		return "assoc_bash.sh.tmpl"
	}
	return "assoc_zsh.sh.tmpl"
}
