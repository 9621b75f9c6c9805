// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the shlit command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shlit",
		Short: "Write data as shell literals",
		Long: TitleStyle.Render("shlit") + SubtitleStyle.Render(" - Write data as shell literals") + `

shlit turns JSON, YAML, TOML and CUE documents into zsh or bash literals:
scalars become single words, lists become indexed arrays and flat maps
become associative arrays. Every literal can be checked by running it
through a shell and reading the value back.

` + SubtitleStyle.Render("Examples:") + `
  shlit encode value.json           Print the literal for a document
  echo '[1,"a b"]' | shlit encode   Read JSON from stdin
  shlit render -d bash map.yaml     Print a script that assigns and prints it
  shlit check -d bash map.yaml      Round-trip a value through a shell
  shlit config show                 Show the current configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/shlit/config.cue)")

	rootCmd.AddCommand(newEncodeCommand(app))
	rootCmd.AddCommand(newRenderCommand(app))
	rootCmd.AddCommand(newCheckCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the App, runs the command tree and exits with the
// command's exit code. It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error:")+" "+err.Error())
		os.Exit(1)
	}

	// fang.WithVersion is required since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
