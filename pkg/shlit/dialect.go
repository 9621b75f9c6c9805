// SPDX-License-Identifier: MPL-2.0

package shlit

const (
	// DialectZsh writes mappings as flat (k v k v ) lists, the zsh
	// associative array assignment form. It is the default.
	DialectZsh Dialect = "zsh"
	// DialectBash writes mappings as ([k]=v ) lists for bash associative
	// arrays.
	DialectBash Dialect = "bash"
)

// Dialect selects the shell grammar the literal targets.
type Dialect string

// String returns the string representation of the Dialect.
func (d Dialect) String() string { return string(d) }

// IsValid returns whether the Dialect is one of the defined dialects.
// The zero value is valid and means DialectZsh.
func (d Dialect) IsValid() (bool, []error) {
	switch d {
	case "", DialectZsh, DialectBash:
		return true, nil
	default:
		return false, []error{&InvalidDialectError{Value: d}}
	}
}

// orDefault resolves the zero value to DialectZsh.
func (d Dialect) orDefault() Dialect {
	if d == "" {
		return DialectZsh
	}
	return d
}

// Dialects returns the supported dialects.
func Dialects() []Dialect {
	return []Dialect{DialectZsh, DialectBash}
}
