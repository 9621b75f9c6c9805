// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/invowk/shlit/pkg/shlit"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime runs scripts with the mvdan/sh interpreter. Only builtins are
// available: every external command fails with exit status 127.
type VirtualRuntime struct {
	// Env is the initial environment as KEY=VALUE pairs; nil means os.Environ()
	Env []string
}

// NewVirtualRuntime creates a new virtual runtime
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name
func (r *VirtualRuntime) Name() string {
	return string(RuntimeTypeVirtual)
}

// Available returns whether this runtime is available
func (r *VirtualRuntime) Available() bool {
	// Virtual runtime is always available as it's built-in
	return true
}

// Dialect returns DialectBash; the interpreter implements bash grammar.
func (r *VirtualRuntime) Dialect() shlit.Dialect {
	return shlit.DialectBash
}

// Validate parses script without running it.
func (r *VirtualRuntime) Validate(script string) error {
	if _, err := parse(script); err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}

// Run parses and runs script, capturing its output.
func (r *VirtualRuntime) Run(ctx context.Context, script string) *Result {
	prog, err := parse(script)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to parse script: %w", err))
	}

	env := r.Env
	if env == nil {
		env = os.Environ()
	}

	var stdout, stderr bytes.Buffer
	runner, err := interp.New(
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, &stdout, &stderr),
		interp.ExecHandlers(refuseExternal),
	)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	err = runner.Run(ctx, prog)
	result := NewCapturedResult(0, stdout.String(), stderr.String())
	if err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			result.ExitCode = ExitCode(exitStatus)
		} else {
			result.ExitCode = 1
			result.Error = fmt.Errorf("script execution failed: %w", err)
		}
	}
	return result
}

func parse(script string) (*syntax.File, error) {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	return parser.Parse(strings.NewReader(script), "script")
}

// refuseExternal is an exec handler middleware that never calls next.
func refuseExternal(_ interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		hc := interp.HandlerCtx(ctx)
		fmt.Fprintf(hc.Stderr, "%s: external commands are not available in the virtual runtime\n", args[0])
		return interp.ExitStatus(127)
	}
}
