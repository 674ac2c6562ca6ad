// Package procexec is the single place where the module launches external
// processes.
//
// Every code path that spawns a process builds its command with Command and
// starts it with Start (or Output), so process-wide before-launch hooks see
// every execution. The logging package installs such a hook to record each
// command line, working directory and environment override before the
// process starts.
package procexec
