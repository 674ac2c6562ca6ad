package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Logger emits printf-style records. The template and arguments travel
// unrendered to the handler so every sink renders them with its own policy.
type Logger struct {
	handler slog.Handler
	diag    *diagnostics
}

// Option configures a Logger.
type Option func(*Logger)

// WithDiagnostics sets where malformed log calls are reported. The default is
// standard error.
func WithDiagnostics(w io.Writer) Option {
	return func(l *Logger) {
		if w != nil {
			l.diag = &diagnostics{w: w}
		}
	}
}

// New returns a Logger writing records to h.
func New(h slog.Handler, opts ...Option) *Logger {
	if h == nil {
		h = NoopHandler{}
	}
	l := &Logger{handler: h, diag: &diagnostics{w: os.Stderr}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return New(NoopHandler{}, WithDiagnostics(io.Discard))
}

// Handler returns the underlying handler.
func (l *Logger) Handler() slog.Handler {
	return l.handler
}

// Slog returns a *slog.Logger sharing the same handler. Its messages are
// written literally.
func (l *Logger) Slog() *slog.Logger {
	return slog.New(l.handler)
}

// With returns a Logger that appends the given key/value pairs to every
// record.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}
	return &Logger{handler: slog.New(l.handler).With(args...).Handler(), diag: l.diag}
}

// Enabled reports whether any sink accepts records at level.
func (l *Logger) Enabled(ctx context.Context, level slog.Level) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.handler.Enabled(ctx, level)
}

// Logf emits a record at level. Args are either positional values for the
// %-verbs of template or a single Fields for %(name)verb placeholders.
func (l *Logger) Logf(ctx context.Context, level slog.Level, template string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.handler.Enabled(ctx, level) {
		return
	}
	if problem := checkArgs(template, args); problem != "" {
		l.diag.report(problem, template)
	}
	record := slog.NewRecord(time.Now(), level, template, 0)
	if len(args) > 0 {
		record.AddAttrs(slog.Any(argsKey, callArgs(args)))
	}
	_ = l.handler.Handle(ctx, record)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(ctx context.Context, template string, args ...any) {
	l.Logf(ctx, slog.LevelDebug, template, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(ctx context.Context, template string, args ...any) {
	l.Logf(ctx, slog.LevelInfo, template, args...)
}

// Warnf logs at warning level.
func (l *Logger) Warnf(ctx context.Context, template string, args ...any) {
	l.Logf(ctx, slog.LevelWarn, template, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(ctx context.Context, template string, args ...any) {
	l.Logf(ctx, slog.LevelError, template, args...)
}

// diagnostics is the side channel for malformed log calls. It writes directly
// to its writer and never goes through a handler.
type diagnostics struct {
	mu sync.Mutex
	w  io.Writer
}

func (d *diagnostics) report(problem, template string) {
	if d == nil || d.w == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, _ = fmt.Fprintf(d.w, "logging: %s in %q\n", problem, template)
}

// NoopHandler discards all log output.
type NoopHandler struct{}

// Enabled implements slog.Handler.
func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

// Handle implements slog.Handler.
func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

// WithAttrs implements slog.Handler.
func (h NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

// WithGroup implements slog.Handler.
func (h NoopHandler) WithGroup(string) slog.Handler { return h }
