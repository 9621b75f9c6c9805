// SPDX-License-Identifier: MPL-2.0

package config

import (
	"testing"

	"github.com/invowk/shlit/internal/testutil"
	"github.com/invowk/shlit/pkg/shlit"
)

func TestStaticProvider_ReturnsCopy(t *testing.T) {
	t.Parallel()

	base := DefaultConfig()
	base.Dialect = shlit.DialectBash
	base.NativeShell.Args = []string{"-c"}
	p := NewStaticProvider(base)

	cfg, err := p.Load(t.Context(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Dialect != shlit.DialectBash {
		t.Errorf("Dialect = %s, want bash", cfg.Dialect)
	}

	cfg.Dialect = shlit.DialectZsh
	cfg.NativeShell.Args[0] = "-x"

	again, err := p.Load(t.Context(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if again.Dialect != shlit.DialectBash {
		t.Error("mutating a loaded config changed the provider's copy")
	}
	if again.NativeShell.Args[0] != "-c" {
		t.Error("mutating loaded args changed the provider's copy")
	}
}

func TestStaticProvider_NilUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewStaticProvider(nil).Load(t.Context(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.VariableName != DefaultVariableName {
		t.Errorf("VariableName = %q, want %q", cfg.VariableName, DefaultVariableName)
	}
}

func TestFileProvider_Load(t *testing.T) {
	t.Parallel()

	cfgPath := testutil.MustWriteFile(t, t.TempDir(), "config.cue", `variable_name: "items"`)

	cfg, err := NewProvider().Load(t.Context(), LoadOptions{ConfigFilePath: cfgPath})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.VariableName != "items" {
		t.Errorf("VariableName = %q, want items", cfg.VariableName)
	}
}
