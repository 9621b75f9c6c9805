// SPDX-License-Identifier: MPL-2.0

package runtime

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewCapturedResult creates a Result carrying captured output and an exit code.
// Use this for scripts that ran to completion, whatever their exit status.
func NewCapturedResult(code ExitCode, stdout, stderr string) *Result {
	return &Result{ExitCode: code, Output: stdout, ErrOutput: stderr}
}
