// Package deps reports which external programs are installed.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement names an external program the demo launches.
type Requirement struct {
	Name     string
	Command  string
	Purpose  string
	Optional bool
}

// Status reports the availability of a requirement.
type Status struct {
	Requirement
	// Path is the resolved executable when the program was found.
	Path      string
	Available bool
	Detail    string
}

// Check looks every requirement up in PATH, or on disk for commands
// containing a slash.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Purpose = strings.TrimSpace(req.Purpose)
		status := Status{Requirement: req}
		switch path, err := exec.LookPath(req.Command); {
		case req.Command == "":
			status.Detail = "command not configured"
		case err != nil:
			status.Detail = fmt.Sprintf("binary %q not found", req.Command)
		default:
			status.Path = path
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}

// Missing returns the statuses of required programs that were not found.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
