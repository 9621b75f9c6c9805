// SPDX-License-Identifier: MPL-2.0

package roundtrip

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/invowk/shlit/internal/runtime"
	"github.com/invowk/shlit/internal/script"
	"github.com/invowk/shlit/internal/testutil"
	"github.com/invowk/shlit/pkg/shlit"
	"github.com/invowk/shlit/pkg/shvalue"

	"github.com/charmbracelet/log"
)

// samples are the values every runtime must reproduce.
func samples() map[string]shvalue.Value {
	return map[string]shvalue.Value{
		"word":              shvalue.Text("hello"),
		"spaced text":       shvalue.Text("hello world"),
		"single quotes":     shvalue.Text("''''"),
		"int":               shvalue.Int(1),
		"whole float":       shvalue.Float(1.0),
		"float":             shvalue.Float(1.3),
		"huge float":        shvalue.Float(1.3e100),
		"empty text":        shvalue.Text(""),
		"empty array":       shvalue.Sequence(),
		"word array":        shvalue.Texts("hello", "world"),
		"tricky array":      shvalue.Texts("hello world", "''''", `"""`, "\n\n", "(", ")"),
		"int array":         shvalue.Sequence(shvalue.Int(1), shvalue.Int(2), shvalue.Int(3)),
		"empty mapping":     shvalue.MustMapping(),
		"text mapping":      shvalue.MustMapping(shvalue.Pair{Key: "hello", Value: shvalue.Text("world")}, shvalue.Pair{Key: "''''", Value: shvalue.Text(`"""`)}),
		"number mapping":    shvalue.MustMapping(shvalue.Pair{Key: "1", Value: shvalue.Float(5.0)}, shvalue.Pair{Key: "3", Value: shvalue.Float(3e23)}),
		"keyword mapping":   shvalue.MustMapping(shvalue.Pair{Key: "if", Value: shvalue.Text("then")}, shvalue.Pair{Key: "a b", Value: shvalue.Text("$HOME")}),
		"multiline mapping": shvalue.MustMapping(shvalue.Pair{Key: "line\nbreak", Value: shvalue.Text("\ttab")}),
	}
}

func TestCheck_VirtualRuntime(t *testing.T) {
	t.Parallel()

	for name, v := range samples() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c := &Checker{Runtime: runtime.NewVirtualRuntime()}
			report, err := c.Check(t.Context(), v)
			if err != nil {
				t.Fatalf("Check() error = %v\nscript:\n%s", err, scriptOf(report))
			}
			if report.Dialect != shlit.DialectBash {
				t.Errorf("Dialect = %s, want bash", report.Dialect)
			}
			if report.Shape != script.ShapeFor(v.Kind()) {
				t.Errorf("Shape = %s, want %s", report.Shape, script.ShapeFor(v.Kind()))
			}
		})
	}
}

func TestCheck_NativeRuntime(t *testing.T) {
	t.Parallel()

	for _, shell := range []string{"zsh", "bash"} {
		t.Run(shell, func(t *testing.T) {
			t.Parallel()
			path := testutil.RequireShell(t, shell)

			c := &Checker{Runtime: runtime.NewNativeRuntime(path), Timeout: 10 * time.Second}
			for name, v := range samples() {
				report, err := c.Check(t.Context(), v)
				if err != nil {
					t.Errorf("%s: Check() error = %v\nscript:\n%s", name, err, scriptOf(report))
				}
			}
		})
	}
}

func TestCheck_DialectMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    shvalue.Value
	}{
		{"quoted text", shvalue.Text("it's")},
		{"int", shvalue.Int(1)},
		{"array", shvalue.Texts("a b", "it's", "\n")},
		{"mapping", shvalue.MustMapping(shvalue.Pair{Key: "k", Value: shvalue.Text("v")})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &Checker{Runtime: runtime.NewVirtualRuntime(), Dialect: shlit.DialectZsh}
			report, err := c.Check(t.Context(), tt.v)
			var mismatch *DialectMismatchError
			if !errors.As(err, &mismatch) {
				t.Fatalf("Check() error = %v, want *DialectMismatchError", err)
			}
			if !errors.Is(err, ErrDialectMismatch) {
				t.Error("DialectMismatchError should wrap ErrDialectMismatch")
			}
			if mismatch.RuntimeDialect != shlit.DialectBash || mismatch.Dialect != shlit.DialectZsh {
				t.Errorf("mismatch = %+v", mismatch)
			}
			if report != nil {
				t.Error("no script should be rendered on a dialect mismatch")
			}
		})
	}
}

func TestCheck_ExplicitRuntimeDialect(t *testing.T) {
	t.Parallel()

	c := &Checker{Runtime: runtime.NewVirtualRuntime(), Dialect: shlit.DialectBash, Name: "words"}
	report, err := c.Check(t.Context(), shvalue.Texts("a b", "it's", "\n"))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if !strings.HasPrefix(report.Script, "words=") {
		t.Errorf("script should assign the configured name:\n%s", report.Script)
	}
}

func TestCheck_EncoderErrorsPassThrough(t *testing.T) {
	t.Parallel()

	c := &Checker{Runtime: runtime.NewVirtualRuntime()}

	tests := []struct {
		name string
		v    shvalue.Value
		want error
	}{
		{"bool", shvalue.Bool(true), shlit.ErrUnsupportedValue},
		{"absent", shvalue.Absent(), shlit.ErrUnsupportedValue},
		{"nested", shvalue.Sequence(shvalue.Texts("a")), shlit.ErrNestedComposite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			report, err := c.Check(t.Context(), tt.v)
			if !errors.Is(err, tt.want) {
				t.Errorf("Check() error = %v, want %v", err, tt.want)
			}
			if report != nil {
				t.Error("expected nil report for an unrenderable value")
			}
		})
	}
}

type stubRuntime struct {
	result *runtime.Result
	got    string
}

func (s *stubRuntime) Name() string           { return "stub" }
func (s *stubRuntime) Available() bool        { return true }
func (s *stubRuntime) Dialect() shlit.Dialect { return shlit.DialectZsh }
func (s *stubRuntime) Run(_ context.Context, src string) *runtime.Result {
	s.got = src
	return s.result
}

func TestCheck_Mismatch(t *testing.T) {
	t.Parallel()

	rt := &stubRuntime{result: runtime.NewCapturedResult(0, "hello\nworld\n", "")}
	c := &Checker{Runtime: rt}

	report, err := c.Check(t.Context(), shvalue.Texts("hello", "there"))
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Check() error = %v, want *MismatchError", err)
	}
	if !errors.Is(err, ErrMismatch) {
		t.Error("MismatchError should wrap ErrMismatch")
	}
	if !strings.Contains(mismatch.Diff, "there") || !strings.Contains(mismatch.Diff, "world") {
		t.Errorf("Diff should show both sides:\n%s", mismatch.Diff)
	}
	if report == nil || report.Output != "hello\nworld\n" || report.Expected != "hello\nthere\n" {
		t.Errorf("report = %+v", report)
	}
	if report.Script != rt.got {
		t.Error("report should carry the script that ran")
	}
}

func TestCheck_ScriptFailed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		result  *runtime.Result
		wantMsg string
	}{
		{
			name:    "non-zero exit",
			result:  runtime.NewCapturedResult(2, "", "syntax error near ')'\n"),
			wantMsg: "exit code 2: syntax error near ')'",
		},
		{
			name:    "runtime error",
			result:  runtime.NewErrorResult(1, runtime.ErrRuntimeNotAvailable),
			wantMsg: "runtime not available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &Checker{Runtime: &stubRuntime{result: tt.result}}
			report, err := c.Check(t.Context(), shvalue.Int(7))

			var failed *ScriptFailedError
			if !errors.As(err, &failed) {
				t.Fatalf("Check() error = %v, want *ScriptFailedError", err)
			}
			if !errors.Is(err, ErrScriptFailed) {
				t.Error("ScriptFailedError should wrap ErrScriptFailed")
			}
			if tt.result.Error != nil && !errors.Is(err, tt.result.Error) {
				t.Error("ScriptFailedError should wrap the runtime error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
			if report == nil || report.Script == "" {
				t.Error("report should be returned with the script")
			}
		})
	}
}

func TestCheck_NoRuntime(t *testing.T) {
	t.Parallel()

	if _, err := (&Checker{}).Check(t.Context(), shvalue.Int(1)); !errors.Is(err, ErrNoRuntime) {
		t.Errorf("Check() error = %v, want ErrNoRuntime", err)
	}
}

func TestCheck_Timeout(t *testing.T) {
	t.Parallel()

	rt := &blockingRuntime{}
	c := &Checker{Runtime: rt, Timeout: 20 * time.Millisecond}
	_, err := c.Check(t.Context(), shvalue.Int(1))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Check() error = %v, want context.DeadlineExceeded", err)
	}
}

type blockingRuntime struct{ stubRuntime }

func (b *blockingRuntime) Run(ctx context.Context, _ string) *runtime.Result {
	<-ctx.Done()
	return runtime.NewErrorResult(1, ctx.Err())
}

func TestCheck_DebugLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	c := &Checker{Runtime: runtime.NewVirtualRuntime(), Logger: logger}
	if _, err := c.Check(t.Context(), shvalue.Text("logged")); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Rendered script", "Script finished", "virtual"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug log missing %q:\n%s", want, out)
		}
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	pairs := func(kv ...string) shvalue.Value {
		var ps []shvalue.Pair
		for i := 0; i < len(kv); i += 2 {
			ps = append(ps, shvalue.Pair{Key: kv[i], Value: shvalue.Text(kv[i+1])})
		}
		return shvalue.MustMapping(ps...)
	}

	tests := []struct {
		name   string
		v      shvalue.Value
		output string
		match  bool
	}{
		{"scalar", shvalue.Float(1.3e100), "1.3e+100\n", true},
		{"scalar missing newline", shvalue.Text("a"), "a", false},
		{"sequence in order", shvalue.Texts("a", "b"), "a\nb\n", true},
		{"sequence reordered", shvalue.Texts("a", "b"), "b\na\n", false},
		{"empty sequence", shvalue.Sequence(), "", true},
		{"mapping in order", pairs("k1", "v1", "k2", "v2"), "k1\nv1\nk2\nv2\n", true},
		{"mapping reordered", pairs("k1", "v1", "k2", "v2"), "k2\nv2\nk1\nv1\n", true},
		{"mapping missing entry", pairs("k1", "v1", "k2", "v2"), "k1\nv1\n", false},
		{"mapping extra output", pairs("k1", "v1"), "k1\nv1\nk9\nv9\n", false},
		{"mapping swapped value", pairs("k1", "v1", "k2", "v2"), "k1\nv2\nk2\nv1\n", false},
		{"mapping swapped multiline value", pairs("k1", "a\nb", "k2", "c"), "k1\nc\nk2\na\nb\n", false},
		{"mapping keys and values exchanged", pairs("k", "v"), "v\nk\n", false},
		{"empty mapping", shvalue.MustMapping(), "", true},
		{"empty mapping with blank lines", shvalue.MustMapping(), "\n\n", false},
		// "x\ny\n" is a prefix of the other block; matching it first is a dead end.
		{"mapping needs backtracking", pairs("x", "y", "x\ny", "z\nw"), "x\ny\nz\nw\nx\ny\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diff := Compare(tt.v, tt.output)
			if (diff == "") != tt.match {
				t.Errorf("Compare() match = %v, want %v (diff %q)", diff == "", tt.match, diff)
			}
		})
	}
}

func TestExpected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    shvalue.Value
		want string
	}{
		{shvalue.Int(-4), "-4\n"},
		{shvalue.Float(1.0), "1\n"},
		{shvalue.Texts("a b", ""), "a b\n\n"},
		{shvalue.MustMapping(shvalue.Pair{Key: "k", Value: shvalue.Int(1)}), "k\n1\n"},
		{shvalue.Sequence(), ""},
	}

	for _, tt := range tests {
		if got := Expected(tt.v); got != tt.want {
			t.Errorf("Expected(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func scriptOf(r *Report) string {
	if r == nil {
		return "<none>"
	}
	return r.Script
}
