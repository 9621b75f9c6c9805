// SPDX-License-Identifier: MPL-2.0

package platform

// GOOS values that change where shlit keeps its configuration.
const (
	Windows = "windows"
	Darwin  = "darwin"
)

// HomeEnvVar names the variable holding the user's home directory on goos.
func HomeEnvVar(goos string) string {
	if goos == Windows {
		return "USERPROFILE"
	}
	return "HOME"
}
