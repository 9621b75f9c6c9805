// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/invowk/shlit/internal/config"
	"github.com/invowk/shlit/internal/input"
	"github.com/invowk/shlit/pkg/shlit"
	"github.com/invowk/shlit/pkg/shvalue"

	"github.com/spf13/cobra"
)

const stdinName = "-"

// valueFlags are the flags shared by every command that reads a document.
type valueFlags struct {
	format  string
	dialect string
}

func (f *valueFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "input format: json, yaml, toml or cue (default: from the file extension, json for stdin)")
	cmd.Flags().StringVarP(&f.dialect, "dialect", "d", "", "literal dialect: zsh or bash (default: from config)")
}

// readValue decodes the document named by args into a value. No argument, or
// "-", reads stdin. The returned resource names the document for errors.
func (a *App) readValue(args []string, formatName string) (v shvalue.Value, resource string, err error) {
	path := stdinName
	if len(args) > 0 {
		path = args[0]
	}

	resource = path
	if path == stdinName {
		resource = "<stdin>"
	}

	format, err := resolveFormat(path, formatName)
	if err != nil {
		return shvalue.Value{}, resource, err
	}

	var r io.Reader = a.stdin
	if path != stdinName {
		f, openErr := os.Open(path)
		if openErr != nil {
			return shvalue.Value{}, resource, openErr
		}
		defer f.Close()
		r = f
	}

	// One byte past the limit lets Decode report the oversize document.
	data, err := io.ReadAll(io.LimitReader(r, input.MaxInputSize+1))
	if err != nil {
		return shvalue.Value{}, resource, err
	}

	source := path
	if path == stdinName {
		source = ""
	}
	v, err = input.Decode(format, data, source)
	return v, resource, err
}

// resolveFormat prefers an explicit --format, then the file extension.
// stdin without --format is read as JSON.
func resolveFormat(path, formatName string) (input.Format, error) {
	switch {
	case formatName != "":
		return input.ParseFormat(formatName)
	case path == stdinName:
		return input.FormatJSON, nil
	default:
		return input.FormatFromPath(path)
	}
}

// resolveDialect prefers an explicit --dialect over the configured one.
func resolveDialect(flag string, cfg *config.Config) (shlit.Dialect, error) {
	d := cfg.Dialect
	if flag != "" {
		d = shlit.Dialect(flag)
	}
	if valid, errs := d.IsValid(); !valid {
		return "", errs[0]
	}
	return d, nil
}

// resolveName prefers an explicit --name over the configured variable name.
func resolveName(flag string, cfg *config.Config) (string, error) {
	name := cfg.VariableName
	if flag != "" {
		name = config.VariableName(flag)
	}
	if valid, errs := name.IsValid(); !valid {
		return "", errs[0]
	}
	return string(name), nil
}
