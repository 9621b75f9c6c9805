// SPDX-License-Identifier: MPL-2.0

// Package shlit encodes shvalue.Value trees as shell literals.
//
// The encoding is chosen so that a shell parsing the emitted text gets back
// exactly the original content:
//
//   - integers and floats are written as bare tokens,
//   - text is single-quoted, with embedded single quotes written as '\'',
//   - sequences become array literals: ('a' 'b' ),
//   - mappings become flat key/value array literals: ('k' 'v' ).
//
// Only one level of composition is supported, matching the one-dimensional
// arrays of the target shells. Absent and boolean values have no safe shell
// representation and are rejected.
//
// The default dialect targets zsh. DialectBash keeps the same shapes but
// writes mapping pairs as [key]=value and quotes text with mvdan.cc/sh, which
// is the grammar bash associative arrays require.
//
// Encoding is a pure function of the value: the package holds no state and is
// safe for concurrent use.
package shlit
