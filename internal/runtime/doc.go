// SPDX-License-Identifier: MPL-2.0

// Package runtime runs generated shell scripts and captures what they print.
//
// Two runtime implementations are available:
//   - virtual: runs scripts in-process with the mvdan/sh interpreter, bash grammar,
//     builtins only
//   - native: runs scripts with a host shell (zsh or bash) via os/exec
//
// All runtimes implement the Runtime interface with Name(), Available(), Dialect()
// and Run(). Run always captures stdout and stderr into the returned Result.
package runtime
