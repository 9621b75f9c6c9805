// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/invowk/shlit/internal/script"

	"github.com/spf13/cobra"
)

type renderFlags struct {
	valueFlags
	shape string
	name  string
}

// newRenderCommand creates the `shlit render` command.
func newRenderCommand(app *App) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Print a script that assigns a document's literal and prints it back",
		Long: `Render the round-trip script for a document without running it.

The script assigns the literal to a variable and prints the value one
line per scalar, element or key/value pair. Pipe it to a shell to check
the literal by hand:

  shlit render -d bash value.yaml | bash`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), app, args, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&flags.shape, "shape", "", "script shape: "+shapeNames()+" (default: from the value)")
	cmd.Flags().StringVarP(&flags.name, "name", "n", "", "variable the script assigns (default: from config)")

	return cmd
}

func runRender(ctx context.Context, app *App, args []string, flags renderFlags) error {
	s, err := app.newSession(ctx)
	if err != nil {
		return err
	}

	dialect, err := resolveDialect(flags.dialect, s.cfg)
	if err != nil {
		return app.fail(s, err, "select dialect", flags.dialect)
	}
	name, err := resolveName(flags.name, s.cfg)
	if err != nil {
		return app.fail(s, err, "select variable name", flags.name)
	}

	v, resource, err := app.readValue(args, flags.format)
	if err != nil {
		return app.fail(s, err, "decode input", resource)
	}

	shape := script.ShapeFor(v.Kind())
	if flags.shape != "" {
		shape = script.Shape(flags.shape)
	}
	s.logger.Debug("rendering script", "shape", shape, "dialect", dialect, "name", name)

	src, err := script.Render(shape, dialect, name, v)
	if err != nil {
		return app.fail(s, err, "render script", resource)
	}
	fmt.Fprint(app.stdout, src)
	return nil
}

func shapeNames() string {
	names := make([]string, 0, len(script.Shapes()))
	for _, sh := range script.Shapes() {
		names = append(names, sh.String())
	}
	return strings.Join(names, ", ")
}
