package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.Subprocess.Shell = strings.TrimSpace(c.Subprocess.Shell)
	if c.Subprocess.Shell == "" {
		c.Subprocess.Shell = defaultShell
	}
	if strings.TrimSpace(c.Workload.SearchDir) == "" {
		c.Workload.SearchDir = defaultSearchDir
	}
	var err error
	if c.Workload.SearchDir, err = expandPath(strings.TrimSpace(c.Workload.SearchDir)); err != nil {
		return fmt.Errorf("workload.search_dir: %w", err)
	}
	if strings.TrimSpace(c.Workload.ShellCommand) == "" {
		c.Workload.ShellCommand = defaultShellCommand
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = defaultLogDir
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	c.Logging.ColorFile = fileName(c.Logging.ColorFile, defaultColorFile)
	c.Logging.PlainFile = fileName(c.Logging.PlainFile, defaultPlainFile)

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.TerminalColors = strings.ToLower(strings.TrimSpace(c.Logging.TerminalColors))
	if c.Logging.TerminalColors == "" {
		c.Logging.TerminalColors = defaultTerminalColors
	}
	return nil
}

func fileName(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return filepath.Clean(value)
}
