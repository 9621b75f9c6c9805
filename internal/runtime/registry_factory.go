// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"github.com/invowk/shlit/internal/config"
)

// BuildRegistry creates a registry holding the virtual runtime and a native
// runtime configured from cfg.NativeShell. A nil cfg uses config.DefaultConfig().
// The native runtime is registered even when no shell is installed; callers
// that need it should use Registry.GetAvailable.
func BuildRegistry(cfg *config.Config) *Registry {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	reg := NewRegistry()
	reg.Register(RuntimeTypeVirtual, NewVirtualRuntime())
	reg.Register(RuntimeTypeNative, NewNativeRuntime(string(cfg.NativeShell.Path), cfg.NativeShell.Args...))
	return reg
}

// TypeForMode maps a configured runtime mode to its RuntimeType.
func TypeForMode(mode config.RuntimeMode) RuntimeType {
	return RuntimeType(mode)
}
