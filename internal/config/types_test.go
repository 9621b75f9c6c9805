// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
	"time"

	"github.com/invowk/shlit/pkg/shlit"
)

func TestConfigRuntimeMode_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode    RuntimeMode
		want    bool
		wantErr bool
	}{
		{RuntimeNative, true, false},
		{RuntimeVirtual, true, false},
		{"", false, true},
		{"container", false, true},
		{"NATIVE", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.mode.IsValid()
			if isValid != tt.want {
				t.Errorf("RuntimeMode(%q).IsValid() = %v, want %v", tt.mode, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("RuntimeMode(%q).IsValid() returned no errors, want error", tt.mode)
				}
				if !errors.Is(errs[0], ErrInvalidConfigRuntimeMode) {
					t.Errorf("error should wrap ErrInvalidConfigRuntimeMode, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("RuntimeMode(%q).IsValid() returned unexpected errors: %v", tt.mode, errs)
			}
		})
	}
}

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scheme  ColorScheme
		want    bool
		wantErr bool
	}{
		{ColorSchemeAuto, true, false},
		{ColorSchemeDark, true, false},
		{ColorSchemeLight, true, false},
		{"", false, true},
		{"garbage", false, true},
		{"AUTO", false, true},
		{"Dark", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.scheme), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.scheme.IsValid()
			if isValid != tt.want {
				t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.scheme, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("ColorScheme(%q).IsValid() returned no errors, want error", tt.scheme)
				}
				if !errors.Is(errs[0], ErrInvalidColorScheme) {
					t.Errorf("error should wrap ErrInvalidColorScheme, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("ColorScheme(%q).IsValid() returned unexpected errors: %v", tt.scheme, errs)
			}
		})
	}
}

func TestVariableName_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name VariableName
		want bool
	}{
		{"x", true},
		{"_", true},
		{"my_var2", true},
		{"", false},
		{"2x", false},
		{"my-var", false},
		{"a b", false},
		{"$x", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.name.IsValid()
			if isValid != tt.want {
				t.Errorf("VariableName(%q).IsValid() = %v, want %v", tt.name, isValid, tt.want)
			}
			if !tt.want && (len(errs) == 0 || !errors.Is(errs[0], ErrInvalidVariableName)) {
				t.Errorf("expected ErrInvalidVariableName, got: %v", errs)
			}
		})
	}
}

func TestShellPath_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path ShellPath
		want bool
	}{
		{"", true},
		{"zsh", true},
		{"/usr/local/bin/bash", true},
		{" ", false},
		{"\t\n", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.path), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.path.IsValid()
			if isValid != tt.want {
				t.Errorf("ShellPath(%q).IsValid() = %v, want %v", tt.path, isValid, tt.want)
			}
			if !tt.want && (len(errs) == 0 || !errors.Is(errs[0], ErrInvalidShellPath)) {
				t.Errorf("expected ErrInvalidShellPath, got: %v", errs)
			}
		})
	}
}

func TestTimeoutDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value     TimeoutDuration
		wantValid bool
		want      time.Duration
	}{
		{"", true, 0},
		{"10s", true, 10 * time.Second},
		{"1m30s", true, 90 * time.Second},
		{"250ms", true, 250 * time.Millisecond},
		{"0s", true, 0},
		{"-1s", false, 0},
		{"ten seconds", false, 0},
		{"10", false, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.value.IsValid()
			if isValid != tt.wantValid {
				t.Errorf("TimeoutDuration(%q).IsValid() = %v, want %v", tt.value, isValid, tt.wantValid)
			}
			if !tt.wantValid && (len(errs) == 0 || !errors.Is(errs[0], ErrInvalidTimeout)) {
				t.Errorf("expected ErrInvalidTimeout, got: %v", errs)
			}
			if got := tt.value.Duration(); got != tt.want {
				t.Errorf("TimeoutDuration(%q).Duration() = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	if valid, errs := DefaultConfig().IsValid(); !valid {
		t.Fatalf("DefaultConfig().IsValid() = false: %v", errs)
	}

	cfg := DefaultConfig()
	cfg.Dialect = shlit.Dialect("fish")
	cfg.VariableName = "2x"
	cfg.NativeShell.Path = "  "
	cfg.UI.ColorScheme = "sepia"

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("expected invalid config")
	}
	if len(errs) != 1 {
		t.Fatalf("expected one aggregated error, got %d", len(errs))
	}

	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("expected *InvalidConfigError, got %T", errs[0])
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Error("expected error to wrap ErrInvalidConfig")
	}
	// dialect, variable name, native shell, ui
	if len(cfgErr.FieldErrors) != 4 {
		t.Errorf("FieldErrors = %d, want 4: %v", len(cfgErr.FieldErrors), cfgErr.FieldErrors)
	}

	var nativeErr *InvalidNativeShellConfigError
	var uiErr *InvalidUIConfigError
	for _, fe := range cfgErr.FieldErrors {
		if errors.As(fe, &nativeErr) && !errors.Is(nativeErr.FieldErrors[0], ErrInvalidShellPath) {
			t.Errorf("native shell error should carry ErrInvalidShellPath, got %v", nativeErr.FieldErrors)
		}
		if errors.As(fe, &uiErr) && !errors.Is(uiErr.FieldErrors[0], ErrInvalidColorScheme) {
			t.Errorf("ui error should carry ErrInvalidColorScheme, got %v", uiErr.FieldErrors)
		}
	}
	if nativeErr == nil || uiErr == nil {
		t.Errorf("expected nested native shell and UI errors, got %v", cfgErr.FieldErrors)
	}
}
