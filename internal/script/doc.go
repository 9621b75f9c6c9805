// SPDX-License-Identifier: MPL-2.0

// Package script renders the shell skeletons that assign an encoded literal to
// a variable and print it back, one value part per line.
//
// Three shapes exist: a scalar assignment, an indexed array and an associative
// array. The skeletons are embedded text/template files parsed once at init,
// with "{%" and "%}" as delimiters so that shell parameter expansions need no
// escaping.
package script
