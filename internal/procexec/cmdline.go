package procexec

import (
	"github.com/alessio/shellescape"
)

// CommandLine is an argument vector rendered for humans: shell-quoted and
// framed by guillemets so it stands out inside a log line.
type CommandLine []string

// String joins the arguments with POSIX shell quoting.
func (c CommandLine) String() string {
	return "«" + Join(c) + "»"
}

// Join quotes each argument for a POSIX shell and joins them with spaces.
func Join(args []string) string {
	return shellescape.QuoteCommand(args)
}

// Quote returns arg unchanged when it only contains characters a shell does
// not interpret, and single-quoted otherwise.
func Quote(arg string) string {
	return shellescape.Quote(arg)
}
