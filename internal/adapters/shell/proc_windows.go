//go:build windows

package shell

import (
	"os/exec"
	"strconv"
)

// setProcessGroup is a no-op on Windows; killProcessTree takes the tree
// down by PID instead.
func setProcessGroup(_ *exec.Cmd) {}

// killProcessTree terminates the child and all of its descendants so
// the output pipes close promptly.
func killProcessTree(c *exec.Cmd) {
	if c.Process == nil {
		return
	}
	kill := exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(c.Process.Pid))
	if err := kill.Run(); err != nil {
		_ = c.Process.Kill()
	}
}
