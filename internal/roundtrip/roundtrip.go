// SPDX-License-Identifier: MPL-2.0

package roundtrip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/invowk/shlit/internal/runtime"
	"github.com/invowk/shlit/internal/script"
	"github.com/invowk/shlit/pkg/shlit"
	"github.com/invowk/shlit/pkg/shvalue"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

var (
	// ErrMismatch is returned when the script output differs from the value.
	ErrMismatch = errors.New("round-trip output mismatch")
	// ErrScriptFailed is returned when the generated script does not exit zero.
	ErrScriptFailed = errors.New("generated script failed")
	// ErrDialectMismatch is returned when a literal targets a dialect other
	// than the runtime's shell.
	ErrDialectMismatch = errors.New("dialect not supported by runtime")
	// ErrNoRuntime is returned by Check when the Checker has no Runtime.
	ErrNoRuntime = errors.New("no runtime configured")
)

type (
	// Checker renders values into scripts, runs them and compares the output.
	Checker struct {
		// Runtime executes the generated script. Required.
		Runtime runtime.Runtime
		// Dialect selects the literal grammar; empty means Runtime.Dialect().
		Dialect shlit.Dialect
		// Name is the shell variable the script assigns; empty means script.DefaultName.
		Name string
		// Timeout bounds a single script run; zero means no limit.
		Timeout time.Duration
		// Logger receives debug output; nil discards it.
		Logger *log.Logger
	}

	// Report describes one round trip.
	Report struct {
		Runtime  string
		Dialect  shlit.Dialect
		Shape    script.Shape
		Script   string
		Output   string
		Expected string
	}

	// MismatchError is returned when the captured output does not reproduce
	// the value. Diff is a go-cmp diff of expected (-) against actual (+) lines.
	MismatchError struct {
		Report *Report
		Diff   string
	}

	// ScriptFailedError is returned when the script exits non-zero or the
	// runtime could not run it.
	ScriptFailedError struct {
		Runtime  string
		ExitCode runtime.ExitCode
		Stderr   string
		Err      error
	}

	// DialectMismatchError is returned when a value would be encoded for a
	// dialect other than the runtime's. Quoting and assoc syntax differ
	// between dialects, so a foreign literal cannot be verified.
	DialectMismatchError struct {
		Runtime        string
		RuntimeDialect shlit.Dialect
		Dialect        shlit.Dialect
	}
)

// Error implements the error interface for MismatchError.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("round-trip output mismatch on %s runtime (-want +got):\n%s", e.Report.Runtime, e.Diff)
}

// Unwrap returns ErrMismatch for errors.Is() compatibility.
func (e *MismatchError) Unwrap() error { return ErrMismatch }

// Error implements the error interface for ScriptFailedError.
func (e *ScriptFailedError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "generated script failed on %s runtime", e.Runtime)
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	} else {
		fmt.Fprintf(&sb, " with exit code %s", e.ExitCode)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		fmt.Fprintf(&sb, ": %s", stderr)
	}
	return sb.String()
}

// Unwrap returns ErrScriptFailed and the runtime error, if any.
func (e *ScriptFailedError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrScriptFailed}
	}
	return []error{ErrScriptFailed, e.Err}
}

// Error implements the error interface for DialectMismatchError.
func (e *DialectMismatchError) Error() string {
	return fmt.Sprintf("%s runtime speaks %s; a %s literal cannot be checked there", e.Runtime, e.RuntimeDialect, e.Dialect)
}

// Unwrap returns ErrDialectMismatch for errors.Is() compatibility.
func (e *DialectMismatchError) Unwrap() error { return ErrDialectMismatch }

// Check renders v, runs it and compares the output. The returned Report is
// non-nil whenever a script was rendered, including on mismatch, so callers
// can show what ran. Encoder errors from rendering are returned unchanged.
func (c *Checker) Check(ctx context.Context, v shvalue.Value) (*Report, error) {
	if c.Runtime == nil {
		return nil, ErrNoRuntime
	}
	logger := c.logger()

	dialect := c.dialect()
	if dialect != c.Runtime.Dialect() {
		return nil, &DialectMismatchError{
			Runtime:        c.Runtime.Name(),
			RuntimeDialect: c.Runtime.Dialect(),
			Dialect:        dialect,
		}
	}

	shape := script.ShapeFor(v.Kind())
	src, err := script.Render(shape, dialect, c.Name, v)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Runtime:  c.Runtime.Name(),
		Dialect:  dialect,
		Shape:    shape,
		Script:   src,
		Expected: Expected(v),
	}
	logger.Debug("Rendered script", "runtime", report.Runtime, "dialect", dialect, "shape", shape, "script", src)

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	start := time.Now()
	result := c.Runtime.Run(ctx, src)
	report.Output = result.Output
	logger.Debug("Script finished", "exitCode", result.ExitCode, "elapsed", time.Since(start))

	if !result.Success() {
		return report, &ScriptFailedError{
			Runtime:  report.Runtime,
			ExitCode: result.ExitCode,
			Stderr:   result.ErrOutput,
			Err:      result.Error,
		}
	}

	if diff := Compare(v, result.Output); diff != "" {
		return report, &MismatchError{Report: report, Diff: diff}
	}
	return report, nil
}

func (c *Checker) dialect() shlit.Dialect {
	if c.Dialect != "" {
		return c.Dialect
	}
	return c.Runtime.Dialect()
}

func (c *Checker) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.New(io.Discard)
}

// Expected returns the output the skeleton for v should print, with mapping
// entries in insertion order.
func Expected(v shvalue.Value) string {
	var sb strings.Builder
	for _, block := range expectedBlocks(v) {
		sb.WriteString(block)
	}
	return sb.String()
}

// Compare checks output against the canonical form of v and returns an empty
// string on a match or a go-cmp diff otherwise. Mapping blocks match in any
// order.
func Compare(v shvalue.Value, output string) string {
	blocks := expectedBlocks(v)
	if v.Kind() != shvalue.KindMapping {
		want := strings.Join(blocks, "")
		if want == output {
			return ""
		}
		return cmp.Diff(splitLines(want), splitLines(output))
	}

	if matchesAnyOrder(output, blocks, make([]bool, len(blocks))) {
		return ""
	}
	want := slices.Clone(blocks)
	got := pairBlocks(output)
	slices.Sort(want)
	slices.Sort(got)
	if diff := cmp.Diff(want, got); diff != "" {
		return diff
	}
	return fmt.Sprintf("output %q does not reproduce the %d key/value pairs", output, len(blocks))
}

// pairBlocks groups output lines two at a time, the shape the assoc
// skeleton prints for single-line keys and values.
func pairBlocks(output string) []string {
	lines := splitLines(output)
	blocks := make([]string, 0, (len(lines)+1)/2)
	for i := 0; i < len(lines); i += 2 {
		if i+1 < len(lines) {
			blocks = append(blocks, lines[i]+lines[i+1])
		} else {
			blocks = append(blocks, lines[i])
		}
	}
	return blocks
}

func expectedBlocks(v shvalue.Value) []string {
	switch v.Kind() {
	case shvalue.KindSequence:
		items := v.Items()
		blocks := make([]string, len(items))
		for i, item := range items {
			blocks[i] = item.String() + "\n"
		}
		return blocks
	case shvalue.KindMapping:
		pairs := v.Pairs()
		blocks := make([]string, len(pairs))
		for i, p := range pairs {
			blocks[i] = p.Key + "\n" + p.Value.String() + "\n"
		}
		return blocks
	default:
		return []string{v.String() + "\n"}
	}
}

// matchesAnyOrder reports whether output is exactly the unused blocks
// concatenated in some order. Keys and values may themselves contain
// newlines, so a prefix match can be a false lead; backtrack on failure.
func matchesAnyOrder(output string, blocks []string, used []bool) bool {
	if output == "" {
		return !slices.Contains(used, false)
	}
	for i, block := range blocks {
		if used[i] || !strings.HasPrefix(output, block) {
			continue
		}
		used[i] = true
		if matchesAnyOrder(output[len(block):], blocks, used) {
			return true
		}
		used[i] = false
	}
	return false
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
