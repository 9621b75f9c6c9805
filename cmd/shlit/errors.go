// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io/fs"

	"github.com/invowk/shlit/internal/config"
	"github.com/invowk/shlit/internal/input"
	"github.com/invowk/shlit/internal/issue"
	"github.com/invowk/shlit/internal/roundtrip"
	"github.com/invowk/shlit/internal/runtime"
	"github.com/invowk/shlit/internal/script"
	"github.com/invowk/shlit/pkg/cueutil"
	"github.com/invowk/shlit/pkg/shlit"
)

// classifyError maps a failure to an issue catalog ID and the suggestions
// shown under the error message.
func classifyError(err error) (issueID issue.Id, suggestions []string) {
	var notAvail *runtime.NotAvailableError

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return issue.FileNotFoundId, []string{"Check the path, or pipe the document through stdin"}
	case errors.Is(err, input.ErrUnsupportedFormat):
		return issue.InputParseErrorId, []string{"Pass --format json, yaml, toml or cue"}
	case errors.Is(err, cueutil.ErrFileTooLarge):
		return issue.InputParseErrorId, []string{"Split the document; each input is limited in size"}
	case errors.Is(err, input.ErrDecode):
		return issue.InputParseErrorId, nil
	case errors.Is(err, shlit.ErrEmptyKey):
		return issue.UnsupportedValueId, []string{"Give the entry a non-empty key, or use --dialect zsh which accepts empty keys"}
	case errors.Is(err, shlit.ErrUnsupportedValue):
		return issue.UnsupportedValueId, nil
	case errors.Is(err, shlit.ErrNestedComposite):
		return issue.NestedCompositeId, nil
	case errors.Is(err, shlit.ErrInvalidDialect), errors.Is(err, roundtrip.ErrDialectMismatch):
		return issue.InvalidDialectId, []string{"Omit --dialect so the literal matches the runtime's shell; the virtual runtime only speaks bash"}
	case errors.Is(err, script.ErrInvalidName), errors.Is(err, config.ErrInvalidVariableName):
		return issue.InvalidVariableNameId, nil
	case errors.Is(err, script.ErrInvalidShape):
		return 0, []string{"Omit --shape to pick the skeleton from the value"}
	case errors.As(err, &notAvail) && notAvail.Type == runtime.RuntimeTypeNative:
		return issue.ShellNotFoundId, nil
	case errors.Is(err, runtime.ErrRuntimeNotAvailable), errors.Is(err, runtime.ErrInvalidRuntimeType),
		errors.Is(err, config.ErrInvalidConfigRuntimeMode):
		return issue.RuntimeNotAvailableId, nil
	case errors.Is(err, roundtrip.ErrScriptFailed):
		return issue.ScriptExecutionFailedId, nil
	case errors.Is(err, roundtrip.ErrMismatch):
		return issue.RoundTripMismatchId, nil
	default:
		return 0, nil
	}
}

// actionable wraps err into an ActionableError for operation on resource,
// linking the issue page and suggestions that match its class. Errors that
// already are actionable, such as configuration failures, keep their context.
func actionable(err error, operation, resource string) *issue.ActionableError {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae
	}

	id, suggestions := classifyError(err)
	return issue.NewErrorContext().
		WithOperation(operation).
		WithResource(resource).
		WithSuggestions(suggestions...).
		WithIssue(id).
		Wrap(err).
		Build()
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
