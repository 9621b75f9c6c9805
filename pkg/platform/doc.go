// SPDX-License-Identifier: MPL-2.0

// Package platform holds operating system names and the detection of
// application sandboxes that hide host programs, such as host shells.
package platform
