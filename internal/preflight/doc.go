// Package preflight checks that a slide can run before any log sink is
// opened: the log directory must be writable and the programs the workload
// launches must be installed.
//
// Optional programs only produce a warning; the job that needs them fails at
// runtime instead, which is part of what the demo shows.
package preflight
