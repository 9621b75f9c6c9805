// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/invowk/shlit/pkg/shlit"

	"mvdan.cc/sh/v3/syntax"
)

const (
	// RuntimeNative runs scripts with a host shell.
	// Defined locally to avoid coupling config to internal/runtime.
	RuntimeNative RuntimeMode = "native"
	// RuntimeVirtual runs scripts in the embedded mvdan/sh interpreter.
	RuntimeVirtual RuntimeMode = "virtual"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultVariableName is the variable the skeletons assign by default.
	DefaultVariableName VariableName = "x"
	// DefaultTimeout bounds a single script execution.
	DefaultTimeout TimeoutDuration = "10s"
)

var (
	// ErrInvalidConfigRuntimeMode is returned when a config RuntimeMode value is not recognized.
	ErrInvalidConfigRuntimeMode = errors.New("invalid runtime mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidVariableName is returned when a VariableName is not a shell identifier.
	ErrInvalidVariableName = errors.New("invalid variable name")
	// ErrInvalidShellPath is returned when a ShellPath value is whitespace-only.
	ErrInvalidShellPath = errors.New("invalid shell path")
	// ErrInvalidTimeout is returned when a TimeoutDuration cannot be parsed or is negative.
	ErrInvalidTimeout = errors.New("invalid timeout")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidNativeShellConfig is the sentinel error wrapped by InvalidNativeShellConfigError.
	ErrInvalidNativeShellConfig = errors.New("invalid native shell config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// RuntimeMode specifies the default execution runtime for round-trip checks.
	RuntimeMode string

	// InvalidConfigRuntimeModeError is returned when a config RuntimeMode value is not recognized.
	// It wraps ErrInvalidConfigRuntimeMode for errors.Is() compatibility.
	InvalidConfigRuntimeModeError struct {
		Value RuntimeMode
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// VariableName is the shell identifier rendered scripts assign to.
	VariableName string

	// InvalidVariableNameError is returned when a VariableName is not a valid
	// shell identifier.
	InvalidVariableNameError struct {
		Value VariableName
	}

	// ShellPath names the host shell binary, either a bare name looked up in
	// PATH or a filesystem path.
	// The zero value ("") is valid and means "zsh, then bash".
	ShellPath string

	// InvalidShellPathError is returned when a ShellPath value is
	// non-empty but whitespace-only.
	InvalidShellPathError struct {
		Value ShellPath
	}

	// TimeoutDuration is a Go duration string.
	// The zero value ("") is valid and means "no timeout".
	TimeoutDuration string

	// InvalidTimeoutError is returned when a TimeoutDuration cannot be parsed.
	InvalidTimeoutError struct {
		Value TimeoutDuration
		Err   error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidNativeShellConfigError is returned when a NativeShellConfig has invalid fields.
	InvalidNativeShellConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Dialect selects the literal grammar ("zsh" or "bash")
		Dialect shlit.Dialect `json:"dialect" mapstructure:"dialect"`
		// DefaultRuntime sets the runtime used by round-trip checks
		DefaultRuntime RuntimeMode `json:"default_runtime" mapstructure:"default_runtime"`
		// VariableName is the variable assigned by rendered scripts
		VariableName VariableName `json:"variable_name" mapstructure:"variable_name"`
		// NativeShell configures the host shell runtime
		NativeShell NativeShellConfig `json:"native_shell" mapstructure:"native_shell"`
		// Runtime configures script execution limits
		Runtime RuntimeConfig `json:"runtime" mapstructure:"runtime"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// NativeShellConfig configures the native runtime.
	NativeShellConfig struct {
		// Path overrides the shell lookup
		Path ShellPath `json:"path" mapstructure:"path"`
		// Args are passed to the shell before the script (default ["-c"])
		Args []string `json:"args" mapstructure:"args"`
	}

	// RuntimeConfig configures script execution.
	RuntimeConfig struct {
		// Timeout bounds one script execution
		Timeout TimeoutDuration `json:"timeout" mapstructure:"timeout"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the NativeShellConfig has valid fields.
func (c NativeShellConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Path.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidNativeShellConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidNativeShellConfigError.
func (e *InvalidNativeShellConfigError) Error() string {
	return fmt.Sprintf("invalid native shell config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidNativeShellConfig for errors.Is() compatibility.
func (e *InvalidNativeShellConfigError) Unwrap() error { return ErrInvalidNativeShellConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Dialect.IsValid(), DefaultRuntime.IsValid(),
// VariableName.IsValid(), NativeShell.IsValid(), Runtime.Timeout.IsValid()
// and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Dialect.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.DefaultRuntime.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.VariableName.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.NativeShell.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Runtime.Timeout.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface for InvalidConfigRuntimeModeError.
func (e *InvalidConfigRuntimeModeError) Error() string {
	return fmt.Sprintf("invalid runtime mode %q (valid: virtual, native)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidConfigRuntimeModeError) Unwrap() error {
	return ErrInvalidConfigRuntimeMode
}

// String returns the string representation of the config RuntimeMode.
func (m RuntimeMode) String() string { return string(m) }

// IsValid returns whether the config RuntimeMode is one of the defined runtime modes,
// and a list of validation errors if it is not.
func (m RuntimeMode) IsValid() (bool, []error) {
	switch m {
	case RuntimeNative, RuntimeVirtual:
		return true, nil
	default:
		return false, []error{&InvalidConfigRuntimeModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// String returns the string representation of the VariableName.
func (n VariableName) String() string { return string(n) }

// IsValid returns whether the VariableName is a valid shell identifier.
func (n VariableName) IsValid() (bool, []error) {
	if !syntax.ValidName(string(n)) {
		return false, []error{&InvalidVariableNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidVariableNameError.
func (e *InvalidVariableNameError) Error() string {
	return fmt.Sprintf("invalid variable name %q: must match [A-Za-z_][A-Za-z0-9_]*", e.Value)
}

// Unwrap returns ErrInvalidVariableName for errors.Is() compatibility.
func (e *InvalidVariableNameError) Unwrap() error { return ErrInvalidVariableName }

// String returns the string representation of the ShellPath.
func (p ShellPath) String() string { return string(p) }

// IsValid returns whether the ShellPath is valid.
// The zero value ("") is valid; non-zero values must not be whitespace-only.
func (p ShellPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidShellPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidShellPathError.
func (e *InvalidShellPathError) Error() string {
	return fmt.Sprintf("invalid shell path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidShellPath for errors.Is() compatibility.
func (e *InvalidShellPathError) Unwrap() error { return ErrInvalidShellPath }

// String returns the string representation of the TimeoutDuration.
func (d TimeoutDuration) String() string { return string(d) }

// Duration parses the timeout. The zero value and invalid values yield 0.
func (d TimeoutDuration) Duration() time.Duration {
	if d == "" {
		return 0
	}
	parsed, err := time.ParseDuration(string(d))
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

// IsValid returns whether the TimeoutDuration parses to a non-negative duration.
func (d TimeoutDuration) IsValid() (bool, []error) {
	if d == "" {
		return true, nil
	}
	parsed, err := time.ParseDuration(string(d))
	if err != nil {
		return false, []error{&InvalidTimeoutError{Value: d, Err: err}}
	}
	if parsed < 0 {
		return false, []error{&InvalidTimeoutError{Value: d, Err: errors.New("must not be negative")}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTimeoutError.
func (e *InvalidTimeoutError) Error() string {
	return fmt.Sprintf("invalid timeout %q: %v", e.Value, e.Err)
}

// Unwrap returns ErrInvalidTimeout for errors.Is() compatibility.
func (e *InvalidTimeoutError) Unwrap() error { return ErrInvalidTimeout }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Dialect:        shlit.DialectZsh,
		DefaultRuntime: RuntimeVirtual,
		VariableName:   DefaultVariableName,
		NativeShell: NativeShellConfig{
			Path: "", // zsh, then bash
			Args: []string{},
		},
		Runtime: RuntimeConfig{
			Timeout: DefaultTimeout,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
