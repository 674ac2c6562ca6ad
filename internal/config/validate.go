package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// ErrInvalid marks configuration values that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateWorkload(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Subprocess.Shell) == "" {
		return fmt.Errorf("%w: subprocess.shell must be set", ErrInvalid)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.TerminalColors {
	case TerminalColorsAlways, TerminalColorsAuto, TerminalColorsNever:
	default:
		return fmt.Errorf("%w: logging.terminal_colors must be always, auto or never (got %q)", ErrInvalid, c.Logging.TerminalColors)
	}
	for key, name := range map[string]string{
		"logging.color_file": c.Logging.ColorFile,
		"logging.plain_file": c.Logging.PlainFile,
	} {
		if name != filepath.Base(name) {
			return fmt.Errorf("%w: %s must be a file name inside logging.dir (got %q)", ErrInvalid, key, name)
		}
	}
	if c.Logging.ColorFile == c.Logging.PlainFile {
		return fmt.Errorf("%w: logging.color_file and logging.plain_file must differ", ErrInvalid)
	}
	return nil
}

func (c *Config) validateWorkload() error {
	if c.Workload.SleepScale < 0 {
		return fmt.Errorf("%w: workload.sleep_scale must not be negative", ErrInvalid)
	}
	if c.Workload.JobLimit < 0 {
		return fmt.Errorf("%w: workload.job_limit must not be negative", ErrInvalid)
	}
	return nil
}

// ParseLevel converts a level name such as "debug" or "warning" to a slog
// level.
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: logging.level must be debug, info, warning or error (got %q)", ErrInvalid, value)
}

// TerminalLevel returns the parsed minimum terminal level.
func (c *Config) TerminalLevel() slog.Level {
	level, err := ParseLevel(c.Logging.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}
