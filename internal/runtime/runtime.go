// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/invowk/shlit/pkg/shlit"
)

// Runtime type constants for the supported execution environments.
const (
	RuntimeTypeNative  RuntimeType = "native"
	RuntimeTypeVirtual RuntimeType = "virtual"
)

var (
	// ErrRuntimeNotAvailable is returned when a runtime cannot run on this system.
	ErrRuntimeNotAvailable = errors.New("runtime not available")
	// ErrRuntimeNotRegistered is returned when the registry has no runtime of a type.
	ErrRuntimeNotRegistered = errors.New("runtime not registered")
	// ErrInvalidRuntimeType is the sentinel error wrapped by InvalidRuntimeTypeError.
	ErrInvalidRuntimeType = errors.New("invalid runtime type")
)

type (
	// Result contains the result of a script execution.
	Result struct {
		// ExitCode is the exit status of the script
		ExitCode ExitCode
		// Error contains any infrastructure error (parse failure, missing shell).
		// A script that runs and exits non-zero has a nil Error.
		Error error
		// Output contains captured stdout
		Output string
		// ErrOutput contains captured stderr
		ErrOutput string
	}

	// Runtime defines the interface for script execution.
	Runtime interface {
		// Name returns the runtime name
		Name() string
		// Available returns whether this runtime can run on the current system
		Available() bool
		// Dialect returns the literal dialect the runtime's shell understands
		Dialect() shlit.Dialect
		// Run executes script and captures its output
		Run(ctx context.Context, script string) *Result
	}

	// RuntimeType identifies the type of runtime.
	//
	//nolint:revive // RuntimeType is more descriptive than Type for external callers
	RuntimeType string

	// InvalidRuntimeTypeError is returned when a RuntimeType value is not recognized.
	// It wraps ErrInvalidRuntimeType for errors.Is() compatibility.
	InvalidRuntimeTypeError struct {
		Value RuntimeType
	}

	// NotAvailableError is returned when a selected runtime cannot run here.
	// It wraps ErrRuntimeNotAvailable for errors.Is() compatibility.
	NotAvailableError struct {
		Type   RuntimeType
		Reason string
	}

	// Registry holds all known runtimes
	Registry struct {
		runtimes map[RuntimeType]Runtime
	}
)

// Error implements the error interface.
func (e *InvalidRuntimeTypeError) Error() string {
	return fmt.Sprintf("invalid runtime type %q (valid: %s, %s)", e.Value, RuntimeTypeVirtual, RuntimeTypeNative)
}

// Unwrap returns ErrInvalidRuntimeType so callers can use errors.Is for programmatic detection.
func (e *InvalidRuntimeTypeError) Unwrap() error { return ErrInvalidRuntimeType }

// Error implements the error interface.
func (e *NotAvailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("runtime '%s' is not available on this system", e.Type)
	}
	return fmt.Sprintf("runtime '%s' is not available on this system: %s", e.Type, e.Reason)
}

// Unwrap returns ErrRuntimeNotAvailable so callers can use errors.Is for programmatic detection.
func (e *NotAvailableError) Unwrap() error { return ErrRuntimeNotAvailable }

// String returns the string representation of the RuntimeType.
func (t RuntimeType) String() string { return string(t) }

// IsValid returns whether the RuntimeType is one of the defined runtime types,
// and a list of validation errors if it is not.
func (t RuntimeType) IsValid() (bool, []error) {
	switch t {
	case RuntimeTypeNative, RuntimeTypeVirtual:
		return true, nil
	default:
		return false, []error{&InvalidRuntimeTypeError{Value: t}}
	}
}

// Success returns true if the script ran and exited zero.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// NewRegistry creates a new, empty runtime registry.
func NewRegistry() *Registry {
	return &Registry{
		runtimes: make(map[RuntimeType]Runtime),
	}
}

// Register adds a runtime to the registry, replacing any runtime of the same type.
func (r *Registry) Register(typ RuntimeType, rt Runtime) {
	r.runtimes[typ] = rt
}

// Get returns a runtime by type.
func (r *Registry) Get(typ RuntimeType) (Runtime, error) {
	if valid, errs := typ.IsValid(); !valid {
		return nil, errs[0]
	}
	rt, ok := r.runtimes[typ]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrRuntimeNotRegistered, typ)
	}
	return rt, nil
}

// GetAvailable returns a runtime by type, failing with a *NotAvailableError
// when it cannot run on this system.
func (r *Registry) GetAvailable(typ RuntimeType) (Runtime, error) {
	rt, err := r.Get(typ)
	if err != nil {
		return nil, err
	}
	if !rt.Available() {
		return nil, &NotAvailableError{Type: typ}
	}
	return rt, nil
}

// Available returns all available runtime types in sorted order.
func (r *Registry) Available() []RuntimeType {
	var types []RuntimeType
	for typ, rt := range r.runtimes {
		if rt.Available() {
			types = append(types, typ)
		}
	}
	slices.Sort(types)
	return types
}
