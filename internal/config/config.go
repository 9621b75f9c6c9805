// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/invowk/shlit/internal/issue"
	"github.com/invowk/shlit/pkg/cueutil"
	"github.com/invowk/shlit/pkg/platform"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "shlit"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. SHLIT_DIALECT.
	EnvPrefix = "SHLIT"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the shlit configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv(platform.HomeEnvVar(platform.Windows)), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the path of config.cue inside dir, or inside
// ConfigDir() when dir is empty.
//
//nolint:revive // mirrors ConfigDir
func ConfigFilePath(dir string) (string, error) {
	cfgDir, err := configDirWithOverride(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// LoadWithPath loads configuration and reports which file it came from.
//
// Precedence, lowest first: built-in defaults, config.cue, SHLIT_* environment
// variables. With opts.ConfigFilePath set, that file must exist and is the only
// file consulted. Otherwise the config directory is tried, then ./config.cue;
// a missing file is not an error.
func LoadWithPath(ctx context.Context, opts LoadOptions) (LoadResult, error) {
	select {
	case <-ctx.Done():
		return LoadResult{}, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()
	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return LoadResult{}, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'shlit config show' to see the default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return LoadResult{}, configLoadError(opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cuePath, err := ConfigFilePath(opts.ConfigDirPath)
		if err != nil {
			return LoadResult{}, err
		}
		localCuePath := ConfigFileName + "." + ConfigFileExt
		for _, candidate := range []string{cuePath, localCuePath} {
			if !fileExists(candidate) {
				continue
			}
			if err := loadCUEIntoViper(v, candidate); err != nil {
				return LoadResult{}, configLoadError(candidate, err)
			}
			resolvedPath = candidate
			break
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return LoadResult{}, fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment values bypass the CUE schema, so validate the merged result.
	if valid, errs := cfg.IsValid(); !valid {
		return LoadResult{}, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check config.cue and any SHLIT_* environment variables").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return LoadResult{Config: &cfg, Path: resolvedPath}, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("dialect", defaults.Dialect)
	v.SetDefault("default_runtime", defaults.DefaultRuntime)
	v.SetDefault("variable_name", defaults.VariableName)
	v.SetDefault("native_shell.path", defaults.NativeShell.Path)
	v.SetDefault("native_shell.args", defaults.NativeShell.Args)
	v.SetDefault("runtime.timeout", defaults.Runtime.Timeout)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	// SHLIT_NATIVE_SHELL_PATH -> native_shell.path
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func configLoadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("See 'shlit config --help' for configuration options").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
//
// The file decodes to map[string]any rather than Config so that Viper keeps
// its defaults for omitted keys and environment overrides still apply.
// Concrete(false) because every field is optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := cueutil.ParseAndDecodeString[map[string]any](
		configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config.cue into dir (ConfigDir() when
// empty). An existing file is left untouched and created is false.
func CreateDefaultConfig(dir string) (path string, created bool, err error) {
	cfgDir, err := configDirWithOverride(dir)
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, false, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// shlit configuration file\n")
	sb.WriteString("// Environment variables (SHLIT_DIALECT, SHLIT_UI_VERBOSE, ...) override these values.\n\n")

	fmt.Fprintf(&sb, "dialect: %q\n", cfg.Dialect)
	fmt.Fprintf(&sb, "default_runtime: %q\n", cfg.DefaultRuntime)
	fmt.Fprintf(&sb, "variable_name: %q\n", cfg.VariableName)

	sb.WriteString("\nnative_shell: {\n")
	if cfg.NativeShell.Path != "" {
		fmt.Fprintf(&sb, "\tpath: %q\n", cfg.NativeShell.Path)
	}
	if len(cfg.NativeShell.Args) > 0 {
		quoted := make([]string, len(cfg.NativeShell.Args))
		for i, arg := range cfg.NativeShell.Args {
			quoted[i] = fmt.Sprintf("%q", arg)
		}
		fmt.Fprintf(&sb, "\targs: [%s]\n", strings.Join(quoted, ", "))
	}
	sb.WriteString("}\n")

	sb.WriteString("\nruntime: {\n")
	fmt.Fprintf(&sb, "\ttimeout: %q\n", cfg.Runtime.Timeout)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
