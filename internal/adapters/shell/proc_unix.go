//go:build unix

package shell

import (
	"os/exec"
	"syscall"
)

// setProcessGroup places the child in its own process group so the
// whole spawned tree can be killed as one unit on cancellation.
func setProcessGroup(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcessTree kills the child's process group. Descendants holding
// the output pipes die with it, so the reader loops reach EOF promptly
// instead of draining for the lifetime of a surviving grandchild.
func killProcessTree(c *exec.Cmd) {
	if c.Process == nil {
		return
	}
	if err := syscall.Kill(-c.Process.Pid, syscall.SIGKILL); err != nil {
		_ = c.Process.Kill()
	}
}
