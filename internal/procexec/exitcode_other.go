//go:build !unix

package procexec

import "os/exec"

// ExitCode reports the exit status of a finished command, or -1 when it has
// not finished.
func ExitCode(cmd *exec.Cmd) int {
	if cmd == nil || cmd.ProcessState == nil {
		return -1
	}
	return cmd.ProcessState.ExitCode()
}
