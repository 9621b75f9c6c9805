// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/invowk/shlit/internal/config"
	"github.com/invowk/shlit/internal/roundtrip"
	"github.com/invowk/shlit/internal/runtime"
	"github.com/invowk/shlit/pkg/shlit"

	"github.com/spf13/cobra"
)

type checkFlags struct {
	valueFlags
	runtime string
	name    string
	timeout time.Duration
	// timeoutSet distinguishes an explicit --timeout 0 from the default
	timeoutSet bool
}

// newCheckCommand creates the `shlit check` command.
func newCheckCommand(app *App) *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Round-trip a document's literal through a shell",
		Long: `Render the round-trip script for a document, run it and compare what the
shell prints with the value.

The virtual runtime interprets the script in-process as bash and never
starts external programs. The native runtime runs it with zsh or bash
from PATH, or the shell configured in native_shell.path.

Without --dialect the literal targets the runtime's own shell. A dialect
the runtime does not speak is rejected. --timeout 0 disables the
configured runtime.timeout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.timeoutSet = cmd.Flags().Changed("timeout")
			return runCheck(cmd.Context(), app, args, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.runtime, "runtime", "r", "", "runtime: virtual or native (default: from config)")
	cmd.Flags().StringVarP(&flags.name, "name", "n", "", "variable the script assigns (default: from config)")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "limit for the script run (default: runtime.timeout from config)")

	return cmd
}

func runCheck(ctx context.Context, app *App, args []string, flags checkFlags) error {
	s, err := app.newSession(ctx)
	if err != nil {
		return err
	}

	mode := s.cfg.DefaultRuntime
	if flags.runtime != "" {
		mode = config.RuntimeMode(flags.runtime)
	}
	if valid, errs := mode.IsValid(); !valid {
		return app.fail(s, errs[0], "select runtime", flags.runtime)
	}

	rt, err := app.Runtimes(s.cfg).GetAvailable(runtime.TypeForMode(mode))
	if err != nil {
		return app.fail(s, err, "select runtime", string(mode))
	}

	var dialect shlit.Dialect
	if flags.dialect != "" {
		if dialect, err = resolveDialect(flags.dialect, s.cfg); err != nil {
			return app.fail(s, err, "select dialect", flags.dialect)
		}
	}
	name, err := resolveName(flags.name, s.cfg)
	if err != nil {
		return app.fail(s, err, "select variable name", flags.name)
	}

	timeout := s.cfg.Runtime.Timeout.Duration()
	if flags.timeoutSet {
		timeout = flags.timeout
	}

	v, resource, err := app.readValue(args, flags.format)
	if err != nil {
		return app.fail(s, err, "decode input", resource)
	}

	checker := &roundtrip.Checker{
		Runtime: rt,
		Dialect: dialect,
		Name:    name,
		Timeout: timeout,
		Logger:  s.logger,
	}
	report, err := checker.Check(ctx, v)
	if err != nil {
		return app.checkFailed(s, report, err, resource)
	}

	fmt.Fprintf(app.stdout, "%s round trip ok on %s runtime (%s, %s)\n",
		SuccessStyle.Render("✓"), CmdStyle.Render(report.Runtime), report.Dialect, report.Shape)
	if s.verbose {
		fmt.Fprintln(app.stdout, VerboseStyle.Render(report.Script))
	}
	return nil
}

// checkFailed reports a failed round trip. Mismatches print the diff; script
// failures exit with the script's own exit code.
func (a *App) checkFailed(s *session, report *roundtrip.Report, err error, resource string) error {
	var (
		mismatch *roundtrip.MismatchError
		failed   *roundtrip.ScriptFailedError
	)
	code := runtime.ExitCode(1)

	switch {
	case errors.As(err, &mismatch):
		fmt.Fprintln(a.stderr, diffHeaderStyle.Render("Output differs (-want +got):"))
		fmt.Fprintln(a.stderr, mismatch.Diff)
	case errors.As(err, &failed) && failed.Err == nil && !failed.ExitCode.IsSuccess():
		code = failed.ExitCode
	}
	if report != nil && s.verbose {
		fmt.Fprintln(a.stderr, SubtitleStyle.Render("Script:"))
		fmt.Fprintln(a.stderr, VerboseStyle.Render(report.Script))
	}

	return &ExitError{Code: code, Err: a.fail(s, err, "check round trip", resource)}
}
