//go:build !windows

package cmdexec

import "os/exec"

// hideWindow is a no-op where processes have no console window.
func hideWindow(*exec.Cmd) {}
