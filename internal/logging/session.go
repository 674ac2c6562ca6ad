package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"loggingtalk/internal/procexec"
)

// ErrSinkLocked is returned by Configure when another process holds the log
// directory.
var ErrSinkLocked = errors.New("log directory in use by another process")

const (
	// DefaultDir is the directory holding both log files.
	DefaultDir = "logs"
	// DefaultColorFile keeps records with escape sequences.
	DefaultColorFile = "loggingtalk.log"
	// DefaultPlainFile keeps the same records without escape sequences.
	DefaultPlainFile = "loggingtalk-plain.log"

	lockFile = ".lock"
)

// Options describes the sinks installed by Configure.
type Options struct {
	// Level is the minimum level shown on the terminal. The files always
	// receive every record.
	Level slog.Level
	// Colors enables escape sequences on the colorized file and terminal.
	Colors bool
	// Prefixes adds the context prefix to every line.
	Prefixes bool
	// ReplaceNewlines keeps every record on a single line.
	ReplaceNewlines bool
	// Subprocesses logs every process launched through package procexec.
	Subprocesses bool

	Dir       string
	ColorFile string
	PlainFile string

	// Terminal receives the interactive sink. Defaults to standard error.
	Terminal io.Writer
	// TerminalColors disables escapes on the terminal only, for outputs that
	// are not terminals. Nil follows Colors.
	TerminalColors *bool
	// Diagnostics receives reports about malformed log calls. Defaults to
	// standard error.
	Diagnostics io.Writer
	// Registry styles arguments by category. Defaults to DefaultRegistry.
	Registry *Registry
	// LevelNames labels additional levels.
	LevelNames map[slog.Level]string
}

// DefaultOptions enables every feature and shows info and above on the
// terminal.
func DefaultOptions() Options {
	return Options{
		Level:           slog.LevelInfo,
		Colors:          true,
		Prefixes:        true,
		ReplaceNewlines: true,
		Subprocesses:    true,
		Dir:             DefaultDir,
		ColorFile:       DefaultColorFile,
		PlainFile:       DefaultPlainFile,
	}
}

// Session owns the sinks installed by Configure.
type Session struct {
	id         string
	logger     *Logger
	files      []*os.File
	lock       *flock.Flock
	removeHook func()
	closeOnce  sync.Once
	closeErr   error
}

// Configure opens the log files, locks the log directory and returns a
// session whose logger writes to the colorized file, the plain file and the
// terminal.
func Configure(opts Options) (*Session, error) {
	dir := strings.TrimSpace(opts.Dir)
	if dir == "" {
		dir = DefaultDir
	}
	colorName := defaultString(opts.ColorFile, DefaultColorFile)
	plainName := defaultString(opts.PlainFile, DefaultPlainFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock log directory %s: %w", dir, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrSinkLocked, dir)
	}

	s := &Session{id: uuid.NewString(), lock: lock}
	colorFile, err := openAppend(filepath.Join(dir, colorName))
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.files = append(s.files, colorFile)
	plainFile, err := openAppend(filepath.Join(dir, plainName))
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.files = append(s.files, plainFile)

	terminal := opts.Terminal
	if terminal == nil {
		terminal = os.Stderr
	}
	terminalColors := opts.Colors
	if opts.TerminalColors != nil {
		terminalColors = opts.Colors && *opts.TerminalColors
	}
	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	sink := func(w io.Writer, escapes bool) slog.Handler {
		return NewSinkHandler(w, SinkOptions{
			Escapes:         escapes,
			ReplaceNewlines: opts.ReplaceNewlines,
			Prefixes:        opts.Prefixes,
			Registry:        registry,
			LevelNames:      opts.LevelNames,
		})
	}
	handler := newFanoutHandler(
		sink(colorFile, opts.Colors),
		sink(plainFile, false),
		newLevelOverrideHandler(sink(terminal, terminalColors), opts.Level),
	)

	var logOpts []Option
	if opts.Diagnostics != nil {
		logOpts = append(logOpts, WithDiagnostics(opts.Diagnostics))
	}
	s.logger = New(handler, logOpts...)
	if opts.Subprocesses {
		s.removeHook = procexec.AddHook(subprocessHook(s.logger))
	}
	return s, nil
}

// ID returns the random identifier of the session.
func (s *Session) ID() string {
	return s.id
}

// Logger returns the logger feeding all sinks of the session.
func (s *Session) Logger() *Logger {
	if s == nil || s.logger == nil {
		return NewNop()
	}
	return s.logger
}

// Close removes the launch hook, closes the files and releases the directory
// lock. It is safe to call more than once.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	s.closeOnce.Do(func() {
		if s.removeHook != nil {
			s.removeHook()
		}
		var errs []error
		for _, f := range s.files {
			if err := f.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", f.Name(), err))
			}
		}
		if s.lock != nil {
			if err := s.lock.Unlock(); err != nil {
				errs = append(errs, fmt.Errorf("unlock log directory: %w", err))
			}
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}

func openAppend(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}

func defaultString(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
