//go:build unix

package procexec

import (
	"os/exec"
	"syscall"
)

// ExitCode reports the exit status of a finished command. A process killed by
// a signal reports the negated signal number; an unfinished one reports -1.
func ExitCode(cmd *exec.Cmd) int {
	if cmd == nil || cmd.ProcessState == nil {
		return -1
	}
	if status, ok := cmd.ProcessState.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return -int(status.Signal())
	}
	return cmd.ProcessState.ExitCode()
}
