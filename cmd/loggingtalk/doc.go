// Package main hosts the loggingtalk CLI.
//
// Each slide of the talk configures the log sinks with one more feature turned
// on and runs the same workload, so the output of consecutive slides can be
// compared side by side. The colorized and plain log files accumulate every
// run; the terminal shows the current one.
package main
