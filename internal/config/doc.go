// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/shlit/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/shlit/config.cue on macOS, %APPDATA%\shlit\config.cue
// on Windows), falling back to ./config.cue. Every key may also be set through a
// SHLIT_-prefixed environment variable (SHLIT_DIALECT, SHLIT_RUNTIME_TIMEOUT, ...).
//
// Files are validated against the embedded CUE schema (config_schema.cue) before they
// reach Viper, so type errors are reported with the offending path.
package config
