// SPDX-License-Identifier: MPL-2.0

// Package roundtrip verifies that an encoded value survives a trip through a
// shell: the value is rendered into a skeleton script, the script runs on a
// runtime, and the captured output is compared with the value's canonical
// textual form.
//
// Scalars must print as String() plus a newline. Sequences print each element
// the same way, in order. Mappings print one "key\nvalue\n" block per entry;
// shells do not preserve associative array order, so blocks may come back in
// any order.
package roundtrip
