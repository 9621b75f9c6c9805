// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"sync"
)

const (
	// SandboxNone means the process runs directly on the host.
	SandboxNone SandboxType = ""
	// SandboxFlatpak means the process runs inside a Flatpak sandbox.
	SandboxFlatpak SandboxType = "flatpak"
	// SandboxSnap means the process runs inside a Snap confinement.
	SandboxSnap SandboxType = "snap"

	flatpakInfoPath = "/.flatpak-info"
	snapNameEnv     = "SNAP_NAME"
)

// detectOnce caches the detection for the process lifetime.
// detectSandboxFrom must not panic: sync.OnceValue re-panics on every call.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(os.Getenv, statFile)
})

// SandboxType identifies the application sandbox, if any.
type SandboxType string

// DetectSandbox returns the sandbox the current process runs in. Flatpak is
// recognized by /.flatpak-info and wins over Snap, recognized by $SNAP_NAME.
func DetectSandbox() SandboxType {
	return detectOnce()
}

// HostSpawnPrefix returns the command words that run the rest of a command
// line on the host from inside st, or nil outside a sandbox.
//
//	flatpak: flatpak-spawn --host
//	snap:    snap run --shell
func HostSpawnPrefix(st SandboxType) []string {
	switch st {
	case SandboxFlatpak:
		return []string{"flatpak-spawn", "--host"}
	case SandboxSnap:
		return []string{"snap", "run", "--shell"}
	default:
		return nil
	}
}

func detectSandboxFrom(lookupEnv func(string) string, statFile func(string) error) SandboxType {
	if err := statFile(flatpakInfoPath); err == nil {
		return SandboxFlatpak
	}
	if lookupEnv(snapNameEnv) != "" {
		return SandboxSnap
	}
	return SandboxNone
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
