// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invowk/shlit/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `shlit config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage shlit configuration",
		Long: `Manage shlit configuration.

Configuration is stored in:
  - Linux: ~/.config/shlit/config.cue
  - macOS: ~/Library/Application Support/shlit/config.cue
  - Windows: %APPDATA%\shlit\config.cue

SHLIT_* environment variables override file values, e.g. SHLIT_DIALECT=bash
or SHLIT_RUNTIME_TIMEOUT=30s.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cfgCmd.PersistentFlags().StringVar(&app.flags.configDir, "dir", "", "config directory (default: platform config directory)")

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(s.cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	s, err := app.newSession(ctx)
	if err != nil {
		return err
	}
	cfg := s.cfg

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	source := SubtitleStyle.Render("(using defaults)")
	if path := configSource(app); path != "" {
		source = path
	}
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), source)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("dialect"), valueStyle.Render(cfg.Dialect.String()))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("default_runtime"), valueStyle.Render(cfg.DefaultRuntime.String()))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("variable_name"), valueStyle.Render(cfg.VariableName.String()))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("native_shell"))
	shellPath := SubtitleStyle.Render("(zsh, then bash from PATH)")
	if cfg.NativeShell.Path != "" {
		shellPath = valueStyle.Render(cfg.NativeShell.Path.String())
	}
	fmt.Fprintf(out, "  path: %s\n", shellPath)
	shellArgs := SubtitleStyle.Render("(-c)")
	if len(cfg.NativeShell.Args) > 0 {
		shellArgs = valueStyle.Render(strings.Join(cfg.NativeShell.Args, " "))
	}
	fmt.Fprintf(out, "  args: %s\n", shellArgs)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("runtime"))
	fmt.Fprintf(out, "  timeout: %s\n", valueStyle.Render(cfg.Runtime.Timeout.String()))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

// configSource returns the config file that would be read, or "" when none
// exists and only defaults apply.
func configSource(app *App) string {
	if app.flags.configPath != "" {
		return app.flags.configPath
	}
	path, err := config.ConfigFilePath(app.flags.configDir)
	if err != nil {
		return ""
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}

func initConfig(app *App) error {
	path, created, err := config.CreateDefaultConfig(app.flags.configDir)
	if err != nil {
		return app.fail(nil, err, "create config", app.flags.configDir)
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(app *App) error {
	path, err := config.ConfigFilePath(app.flags.configDir)
	if err != nil {
		return app.fail(nil, err, "find config directory", "")
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", filepath.Dir(path))
	fmt.Fprintf(app.stdout, "Config file: %s\n", path)
	return nil
}
