// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Two flows are supported:
//
//   - Compile turns a standalone CUE document into a validated cue.Value, used
//     when CUE is an input format.
//   - ParseAndDecode compiles an embedded schema, unifies user data with one of
//     its definitions, validates and decodes the result, used for config.cue.
//
// # Usage
//
//	//go:embed config_schema.cue
//	var configSchema string
//
//	result, err := cueutil.ParseAndDecodeString[map[string]any](
//	    configSchema,
//	    userFileBytes,
//	    "#Config",
//	    cueutil.WithFilename("config.cue"),
//	    cueutil.WithConcrete(false),
//	)
//	if err != nil {
//	    return nil, err  // Error includes CUE path for debugging
//	}
//
// Errors are formatted with JSON-path prefixes by FormatError.
package cueutil
