// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the shlit CLI: decoding documents into values, writing
// their shell literals, rendering test scripts and checking round trips
// through a shell runtime.
package cmd
