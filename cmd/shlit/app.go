// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/invowk/shlit/internal/config"
	"github.com/invowk/shlit/internal/issue"
	"github.com/invowk/shlit/internal/runtime"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: every Cobra handler receives an App reference and reaches
	// configuration, runtimes and the standard streams through it.
	App struct {
		Config   ConfigProvider
		Runtimes RegistryFactory
		stdin    io.Reader
		stdout   io.Writer
		stderr   io.Writer
		// stderrTTY is true when stderr is a terminal that can show styled output.
		stderrTTY bool
		flags     rootFlags
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   ConfigProvider
		Runtimes RegistryFactory
		Stdin    io.Reader
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// RegistryFactory builds the runtime registry for a loaded configuration.
	RegistryFactory func(cfg *config.Config) *runtime.Registry

	// rootFlags holds the persistent flags shared by every subcommand.
	rootFlags struct {
		verbose    bool
		configPath string
		// configDir is set by `config --dir`.
		configDir string
	}

	// session is the per-invocation state derived from the loaded configuration.
	session struct {
		cfg     *config.Config
		logger  *log.Logger
		verbose bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Runtimes == nil {
		deps.Runtimes = runtime.BuildRegistry
	}

	return &App{
		Config:    deps.Config,
		Runtimes:  deps.Runtimes,
		stdin:     deps.Stdin,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		stderrTTY: isTerminal(deps.Stderr),
	}, nil
}

// newSession loads the configuration honoring --config and builds the logger.
// --verbose and ui.verbose both lower the log level to debug.
func (a *App) newSession(ctx context.Context) (*session, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: a.flags.configPath,
		ConfigDirPath:  a.flags.configDir,
	})
	if err != nil {
		a.renderIssue(issue.Get(issue.ConfigLoadFailedId), config.ColorSchemeAuto)
		return nil, err
	}

	verbose := a.flags.verbose || cfg.UI.Verbose
	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix:          config.AppName,
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	logger.Debug("configuration loaded", "dialect", cfg.Dialect, "runtime", cfg.DefaultRuntime, "config", a.flags.configPath)

	return &session{cfg: cfg, logger: logger, verbose: verbose}, nil
}

// fail classifies err as a failure of operation on resource, renders the
// linked issue page and returns the ActionableError for Cobra. Suggestions,
// and in verbose mode the full error chain, are printed as well.
func (a *App) fail(s *session, err error, operation, resource string) error {
	scheme := config.ColorSchemeAuto
	verbose := a.flags.verbose
	if s != nil {
		scheme = s.cfg.UI.ColorScheme
		verbose = s.verbose
	}

	ae := actionable(err, operation, resource)
	a.renderIssue(ae.Issue(), scheme)
	if verbose || ae.HasSuggestions() {
		fmt.Fprintln(a.stderr, ErrorStyle.Render("Error:")+" "+formatErrorForDisplay(ae, verbose))
	}
	return ae
}

// renderIssue writes page to stderr; a nil page writes nothing. Rendering
// failures are ignored since the returned error carries the message.
func (a *App) renderIssue(page *issue.Issue, scheme config.ColorScheme) {
	if page == nil {
		return
	}
	rendered, err := page.Render(glamourStyle(scheme, a.stderrTTY))
	if err != nil {
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// glamourStyle maps a configured color scheme to a glamour standard style.
// Output that is not a terminal gets the unstyled "notty" style.
func glamourStyle(scheme config.ColorScheme, tty bool) string {
	switch {
	case !tty:
		return "notty"
	case scheme == config.ColorSchemeLight:
		return "light"
	default:
		return "dark"
	}
}

// isTerminal reports whether w is a terminal, including Cygwin/MSYS ptys.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
