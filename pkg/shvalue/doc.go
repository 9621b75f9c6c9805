// SPDX-License-Identifier: MPL-2.0

// Package shvalue defines the closed set of value shapes that can be written
// as shell literals.
//
// A Value is one of Absent, Bool, Int, Float, Text, Sequence or Mapping.
// Sequences and mappings are one level of composition over scalars only,
// matching the one-dimensional indexed and associative arrays of the target
// shells. Values are immutable once constructed; accessors that return slices
// return copies.
//
// Values are normally built with the constructors in this package or converted
// from decoded Go data with FromAny.
package shvalue
