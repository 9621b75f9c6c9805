// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/shlit/internal/config"
	"github.com/invowk/shlit/internal/issue"
	"github.com/invowk/shlit/internal/testutil"
)

func TestConfigCommand_Init(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "shlit")

	res := runCLI(t, nil, Dependencies{}, "", "config", "init", "--dir", dir)
	if res.err != nil {
		t.Fatalf("config init error = %v", res.err)
	}
	path := filepath.Join(dir, "config.cue")
	if !strings.Contains(res.stdout, "Created default configuration at "+path) {
		t.Errorf("stdout = %q", res.stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("config.cue = %q, want the default configuration", data)
	}

	res = runCLI(t, nil, Dependencies{}, "", "config", "init", "--dir", dir)
	if res.err != nil {
		t.Fatalf("second config init error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "already exists") {
		t.Errorf("stdout = %q, want the existing file to be reported", res.stdout)
	}
}

func TestConfigCommand_Path(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	res := runCLI(t, nil, Dependencies{}, "", "config", "path", "--dir", dir)
	if res.err != nil {
		t.Fatalf("config path error = %v", res.err)
	}
	want := "Config directory: " + dir + "\nConfig file: " + filepath.Join(dir, "config.cue") + "\n"
	if res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestConfigCommand_Dump(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.NativeShell.Args = []string{"-e", "-c"}

	res := runCLI(t, cfg, Dependencies{}, "", "config", "dump")
	if res.err != nil {
		t.Fatalf("config dump error = %v", res.err)
	}
	if want := config.GenerateCUE(cfg); res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestConfigCommand_Show(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		res := runCLI(t, nil, Dependencies{}, "", "config", "show", "--dir", t.TempDir())
		if res.err != nil {
			t.Fatalf("config show error = %v", res.err)
		}
		for _, want := range []string{
			"Current Configuration",
			"(using defaults)",
			"dialect: zsh",
			"default_runtime: virtual",
			"variable_name: x",
			"(zsh, then bash from PATH)",
			"timeout: 10s",
			"color_scheme: auto",
			"verbose: false",
		} {
			if !strings.Contains(res.stdout, want) {
				t.Errorf("stdout is missing %q:\n%s", want, res.stdout)
			}
		}
	})

	t.Run("config file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := testutil.MustWriteFile(t, dir, "config.cue", config.GenerateCUE(config.DefaultConfig()))

		res := runCLI(t, nil, Dependencies{}, "", "config", "show", "--dir", dir)
		if res.err != nil {
			t.Fatalf("config show error = %v", res.err)
		}
		if !strings.Contains(res.stdout, "Config file: "+path) {
			t.Errorf("stdout = %q, want the config file path", res.stdout)
		}
	})
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Dialect = "bash"
	path := testutil.MustWriteFile(t, dir, "custom.cue", config.GenerateCUE(cfg))

	deps := Dependencies{Config: config.NewProvider()}
	res := runCLI(t, nil, deps, `{"k": "v"}`, "--config", path, "encode")
	if res.err != nil {
		t.Fatalf("encode error = %v (stderr %q)", res.err, res.stderr)
	}
	if want := "(['k']=v )\n"; res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}

	res = runCLI(t, nil, deps, `1`, "--config", filepath.Join(dir, "missing.cue"), "encode")
	var ae *issue.ActionableError
	if !errors.As(res.err, &ae) {
		t.Fatalf("error = %v, want an ActionableError", res.err)
	}
	if ae.IssueID != issue.ConfigLoadFailedId {
		t.Errorf("IssueID = %d, want %d", ae.IssueID, issue.ConfigLoadFailedId)
	}
	if res.stderr == "" {
		t.Error("the config issue page should be rendered on stderr")
	}
}
