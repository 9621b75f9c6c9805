// SPDX-License-Identifier: MPL-2.0

package shlit_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/invowk/shlit/pkg/shlit"
	"github.com/invowk/shlit/pkg/shvalue"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// assignedValue parses "x=<literal>" and returns the word a shell would
// assign after quote removal. POSIX single quotes parse identically in every
// dialect, so this covers the zsh text form without a zsh binary.
func assignedValue(t *testing.T, literal string) string {
	t.Helper()

	f, err := syntax.NewParser().Parse(strings.NewReader("x="+literal+"\n"), "")
	if err != nil {
		t.Fatalf("parse x=%s: %v", literal, err)
	}
	if len(f.Stmts) != 1 {
		t.Fatalf("x=%s parsed into %d statements", literal, len(f.Stmts))
	}
	call, ok := f.Stmts[0].Cmd.(*syntax.CallExpr)
	if !ok || len(call.Args) != 0 || len(call.Assigns) != 1 {
		t.Fatalf("x=%s is not a single assignment", literal)
	}

	fields, err := expand.Fields(&expand.Config{}, call.Assigns[0].Value)
	if err != nil {
		t.Fatalf("expand x=%s: %v", literal, err)
	}
	if len(fields) != 1 {
		t.Fatalf("x=%s expanded into %d fields %q", literal, len(fields), fields)
	}
	return fields[0]
}

func quoteSeeds() []string {
	return []string{
		"",
		"hello",
		"hello world",
		"''''",
		"it's",
		`"""`,
		"\n\n",
		"(",
		")",
		"$HOME",
		"`date`",
		`back\slash`,
		"~user",
		"{a,b}",
		"*.go",
		"tab\there",
		"ünïcödé ✓",
	}
}

func FuzzQuote(f *testing.F) {
	for _, s := range quoteSeeds() {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) || strings.ContainsRune(s, 0) {
			t.Skip("shells cannot hold NUL bytes or invalid UTF-8 in a parsed word")
		}

		zsh := shlit.Quote(s)
		if got := assignedValue(t, zsh); got != s {
			t.Errorf("Quote(%q) = %s assigns %q", s, zsh, got)
		}

		bash, err := shlit.Marshal(shvalue.Text(s), shlit.WithDialect(shlit.DialectBash))
		if err != nil {
			t.Fatalf("Marshal(%q, bash) error = %v", s, err)
		}
		if got := assignedValue(t, bash); got != s {
			t.Errorf("Marshal(%q, bash) = %s assigns %q", s, bash, got)
		}
	})
}
