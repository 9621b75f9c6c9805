// SPDX-License-Identifier: MPL-2.0

// Package input decodes JSON, YAML, TOML and CUE documents into shvalue.Value
// trees for the encoder.
//
// Decoders keep document key order where the format defines one (JSON, YAML,
// CUE). TOML tables decode through a Go map, so their keys come out sorted.
// Nulls become Absent and booleans become Bool; the encoder rejects both with
// its own errors, which keeps rejection policy in one place.
package input
