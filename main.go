// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/invowk/shlit/cmd/shlit"

func main() {
	cmd.Execute()
}
