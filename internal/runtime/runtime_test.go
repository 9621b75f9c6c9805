// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/invowk/shlit/internal/config"
	"github.com/invowk/shlit/pkg/shlit"
)

type stubRuntime struct {
	name      string
	available bool
}

func (s *stubRuntime) Name() string           { return s.name }
func (s *stubRuntime) Available() bool        { return s.available }
func (s *stubRuntime) Dialect() shlit.Dialect { return shlit.DialectBash }
func (s *stubRuntime) Run(context.Context, string) *Result {
	return NewCapturedResult(0, "", "")
}

func TestRuntimeType_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  RuntimeType
		want bool
	}{
		{RuntimeTypeNative, true},
		{RuntimeTypeVirtual, true},
		{"", false},
		{"container", false},
		{"Virtual", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.typ.IsValid()
			if isValid != tt.want {
				t.Errorf("RuntimeType(%q).IsValid() = %v, want %v", tt.typ, isValid, tt.want)
			}
			if !tt.want && (len(errs) == 0 || !errors.Is(errs[0], ErrInvalidRuntimeType)) {
				t.Errorf("expected ErrInvalidRuntimeType, got %v", errs)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(RuntimeTypeVirtual, &stubRuntime{name: "virtual", available: true})
	reg.Register(RuntimeTypeNative, &stubRuntime{name: "native", available: false})

	rt, err := reg.Get(RuntimeTypeVirtual)
	if err != nil {
		t.Fatalf("Get(virtual) returned error: %v", err)
	}
	if rt.Name() != "virtual" {
		t.Errorf("Get(virtual).Name() = %q", rt.Name())
	}

	if _, err := reg.Get("container"); !errors.Is(err, ErrInvalidRuntimeType) {
		t.Errorf("Get(container) error = %v, want ErrInvalidRuntimeType", err)
	}

	if _, err := reg.GetAvailable(RuntimeTypeNative); !errors.Is(err, ErrRuntimeNotAvailable) {
		t.Errorf("GetAvailable(native) error = %v, want ErrRuntimeNotAvailable", err)
	}

	if got := reg.Available(); !slices.Equal(got, []RuntimeType{RuntimeTypeVirtual}) {
		t.Errorf("Available() = %v, want [virtual]", got)
	}

	empty := NewRegistry()
	if _, err := empty.Get(RuntimeTypeNative); !errors.Is(err, ErrRuntimeNotRegistered) {
		t.Errorf("empty Get(native) error = %v, want ErrRuntimeNotRegistered", err)
	}
}

func TestBuildRegistry(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.NativeShell = config.NativeShellConfig{Path: "definitely-not-a-shell-xyz", Args: []string{"-f", "-c"}}

	reg := BuildRegistry(cfg)

	virtual, err := reg.GetAvailable(RuntimeTypeVirtual)
	if err != nil {
		t.Fatalf("virtual runtime should always be available: %v", err)
	}
	if virtual.Dialect() != shlit.DialectBash {
		t.Errorf("virtual Dialect() = %s, want bash", virtual.Dialect())
	}

	rt, err := reg.Get(RuntimeTypeNative)
	if err != nil {
		t.Fatalf("native runtime should be registered: %v", err)
	}
	native, ok := rt.(*NativeRuntime)
	if !ok {
		t.Fatalf("native runtime has type %T", rt)
	}
	if native.Shell != "definitely-not-a-shell-xyz" {
		t.Errorf("Shell = %q", native.Shell)
	}
	if !slices.Equal(native.ShellArgs, []string{"-f", "-c"}) {
		t.Errorf("ShellArgs = %v", native.ShellArgs)
	}

	var notAvail *NotAvailableError
	if _, err := reg.GetAvailable(RuntimeTypeNative); !errors.As(err, &notAvail) {
		t.Errorf("expected *NotAvailableError for a missing shell, got %v", err)
	}

	if BuildRegistry(nil) == nil {
		t.Error("BuildRegistry(nil) returned nil")
	}
}

func TestTypeForMode(t *testing.T) {
	t.Parallel()

	if got := TypeForMode(config.RuntimeVirtual); got != RuntimeTypeVirtual {
		t.Errorf("TypeForMode(virtual) = %s", got)
	}
	if got := TypeForMode(config.RuntimeNative); got != RuntimeTypeNative {
		t.Errorf("TypeForMode(native) = %s", got)
	}
}

func TestNotAvailableError(t *testing.T) {
	t.Parallel()

	err := &NotAvailableError{Type: RuntimeTypeNative, Reason: "no shell"}
	if !errors.Is(err, ErrRuntimeNotAvailable) {
		t.Error("NotAvailableError should wrap ErrRuntimeNotAvailable")
	}
	if got := err.Error(); got != "runtime 'native' is not available on this system: no shell" {
		t.Errorf("Error() = %q", got)
	}
}
