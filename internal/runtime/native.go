// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/invowk/shlit/pkg/platform"
	"github.com/invowk/shlit/pkg/shlit"
)

// NativeRuntime executes scripts with a host shell.
type NativeRuntime struct {
	// Shell overrides the default shell lookup (zsh, then bash)
	Shell string
	// ShellArgs are arguments passed to the shell before the script; default "-c"
	ShellArgs []string
	// Sandbox, when set, routes the shell through the sandbox's host spawner
	Sandbox platform.SandboxType
}

// NewNativeRuntime creates a native runtime for the sandbox the process runs in.
func NewNativeRuntime(shell string, args ...string) *NativeRuntime {
	return &NativeRuntime{Shell: shell, ShellArgs: args, Sandbox: platform.DetectSandbox()}
}

// Name returns the runtime name
func (r *NativeRuntime) Name() string {
	return string(RuntimeTypeNative)
}

// Available returns whether this runtime is available
func (r *NativeRuntime) Available() bool {
	_, err := r.getShell()
	return err == nil
}

// Dialect returns the dialect matching the shell's base name. Shells other
// than bash are treated as zsh-compatible.
func (r *NativeRuntime) Dialect() shlit.Dialect {
	shell, err := r.getShell()
	if err != nil {
		return shlit.DialectZsh
	}
	return DialectForShell(shell)
}

// Run executes script as "<shell> <args> <script>" and captures its output.
func (r *NativeRuntime) Run(ctx context.Context, script string) *Result {
	shell, err := r.getShell()
	if err != nil {
		return NewErrorResult(1, err)
	}

	name, args := r.commandLine(shell, script)
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	result := NewCapturedResult(0, stdout.String(), stderr.String())
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			code := ExitCode(exitErr.ExitCode())
			if valid, errs := code.IsValid(); !valid {
				result.ExitCode = 1
				result.Error = errs[0]
				return result
			}
			result.ExitCode = code
			return result
		}
		// Not started, or killed by a signal (including context cancellation)
		result.ExitCode = 1
		result.Error = fmt.Errorf("failed to execute %s: %w", filepath.Base(shell), err)
	}
	return result
}

// DialectForShell derives the literal dialect from a shell path.
func DialectForShell(shell string) shlit.Dialect {
	base := strings.TrimSuffix(filepath.Base(shell), ".exe")
	if base == "bash" {
		return shlit.DialectBash
	}
	return shlit.DialectZsh
}

// getShell determines which shell to use
func (r *NativeRuntime) getShell() (string, error) {
	if r.Shell != "" {
		path, err := exec.LookPath(r.Shell)
		if err != nil {
			return "", &NotAvailableError{Type: RuntimeTypeNative, Reason: fmt.Sprintf("shell %q not found", r.Shell)}
		}
		return path, nil
	}
	for _, name := range []string{"zsh", "bash"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", &NotAvailableError{Type: RuntimeTypeNative, Reason: "neither zsh nor bash found in PATH"}
}

// commandLine returns the program and arguments that run script with shell.
func (r *NativeRuntime) commandLine(shell, script string) (string, []string) {
	args := append(r.getShellArgs(), script)
	prefix := platform.HostSpawnPrefix(r.Sandbox)
	if len(prefix) == 0 {
		return shell, args
	}
	return prefix[0], append(append(prefix[1:], shell), args...)
}

// getShellArgs returns the arguments to pass to the shell
func (r *NativeRuntime) getShellArgs() []string {
	if len(r.ShellArgs) > 0 {
		return append([]string(nil), r.ShellArgs...)
	}
	return []string{"-c"}
}
