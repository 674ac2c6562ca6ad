package config

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Terminal color modes.
const (
	TerminalColorsAlways = "always"
	TerminalColorsAuto   = "auto"
	TerminalColorsNever  = "never"
)

// TerminalColors reports whether escapes should be written to f. In auto
// mode that depends on f being a terminal.
func (c *Config) TerminalColors(f *os.File) bool {
	switch c.Logging.TerminalColors {
	case TerminalColorsNever:
		return false
	case TerminalColorsAuto:
		return isTerminal(f)
	default:
		return true
	}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
