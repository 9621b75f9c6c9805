// SPDX-License-Identifier: MPL-2.0

package shvalue

import "fmt"

const (
	// KindAbsent represents "no value".
	KindAbsent Kind = iota
	// KindBool represents a true/false flag.
	KindBool
	// KindInt represents a signed 64-bit integer.
	KindInt
	// KindFloat represents a 64-bit floating-point number.
	KindFloat
	// KindText represents an arbitrary string.
	KindText
	// KindSequence represents an ordered list of scalars.
	KindSequence
	// KindMapping represents ordered text-keyed pairs of scalars.
	KindMapping
)

// Kind is the discriminator of a Value.
type Kind uint8

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// IsComposite reports whether values of this kind contain other values.
func (k Kind) IsComposite() bool {
	return k == KindSequence || k == KindMapping
}

// IsScalar reports whether the kind is Int, Float or Text.
func (k Kind) IsScalar() bool {
	return k == KindInt || k == KindFloat || k == KindText
}
