// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/invowk/shlit/pkg/shlit"

	"github.com/spf13/cobra"
)

type encodeFlags struct {
	valueFlags
	validate bool
}

// newEncodeCommand creates the `shlit encode` command.
func newEncodeCommand(app *App) *cobra.Command {
	var flags encodeFlags

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Print the shell literal for a document",
		Long: `Decode a JSON, YAML, TOML or CUE document and print its shell literal.

Scalars print as one single-quoted word, lists as an indexed array literal
and flat maps as an associative array literal in the selected dialect.
Nulls, booleans and nested lists or maps are rejected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd.Context(), app, args, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.validate, "validate", false, "only check that the document has a literal; print nothing")

	return cmd
}

func runEncode(ctx context.Context, app *App, args []string, flags encodeFlags) error {
	s, err := app.newSession(ctx)
	if err != nil {
		return err
	}

	dialect, err := resolveDialect(flags.dialect, s.cfg)
	if err != nil {
		return app.fail(s, err, "select dialect", flags.dialect)
	}

	v, resource, err := app.readValue(args, flags.format)
	if err != nil {
		return app.fail(s, err, "decode input", resource)
	}
	s.logger.Debug("decoded input", "source", resource, "kind", v.Kind())

	if flags.validate {
		if err := shlit.Validate(v, shlit.WithDialect(dialect)); err != nil {
			return app.fail(s, err, "encode value", resource)
		}
		return nil
	}

	lit, err := shlit.Marshal(v, shlit.WithDialect(dialect))
	if err != nil {
		return app.fail(s, err, "encode value", resource)
	}
	fmt.Fprintln(app.stdout, lit)
	return nil
}
