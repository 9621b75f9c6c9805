// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include environment variable management (MustSetenv),
// file and directory operations (MustChdir, MustMkdirAll, MustWriteFile),
// home directory redirection (SetHomeDir) and host shell detection
// (RequireShell).
package testutil
