package preflight

import (
	"loggingtalk/internal/config"
	"loggingtalk/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes every check for cfg.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := []Result{CheckLogDirectory("Log directory", cfg.Logging.Dir)}
	for _, status := range deps.Check(Requirements(cfg)) {
		result := Result{Name: status.Name, Passed: status.Available, Optional: status.Optional, Detail: status.Detail}
		if status.Available {
			result.Detail = status.Path
		} else if status.Purpose != "" {
			result.Detail += " (" + status.Purpose + ")"
		}
		results = append(results, result)
	}
	return results
}

// Requirements lists the programs the workload launches.
func Requirements(cfg *config.Config) []deps.Requirement {
	return []deps.Requirement{
		{Name: "Shell", Command: cfg.Subprocess.Shell, Purpose: "runs shell command lines"},
		{Name: "grep", Command: "grep", Purpose: "searched by job2"},
		{Name: "ssh", Command: "ssh", Purpose: "used by complex_shell", Optional: true},
		{Name: "cat", Command: "cat", Purpose: "used by complex_shell", Optional: true},
	}
}

// Failures returns the failed checks that are not optional.
func Failures(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed && !result.Optional {
			failed = append(failed, result)
		}
	}
	return failed
}
