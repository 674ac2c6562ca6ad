package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"loggingtalk/internal/style"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	levelWidth      = 10
	newlineGlyph    = "␤"
)

// SinkOptions controls how one sink renders records.
type SinkOptions struct {
	// Level is the minimum level written. Nil means debug.
	Level slog.Leveler
	// Escapes enables ANSI styling of arguments.
	Escapes bool
	// ReplaceNewlines keeps each record on one line by replacing every
	// newline with a visible glyph.
	ReplaceNewlines bool
	// Prefixes adds the context prefix in front of the message.
	Prefixes bool
	// Registry styles arguments by category when Escapes is set.
	Registry *Registry
	// LevelNames labels levels beyond debug, info, warning and error.
	LevelNames map[slog.Level]string
}

type formatHandler struct {
	mu     *sync.Mutex
	writer io.Writer
	opts   SinkOptions
	attrs  []slog.Attr
	groups []string
}

// NewSinkHandler returns a handler writing one line per record to w:
//
//	2006-01-02 15:04:05       INFO: [prefix] message key=value
func NewSinkHandler(w io.Writer, opts SinkOptions) slog.Handler {
	return newSinkHandler(w, &sync.Mutex{}, opts)
}

func newSinkHandler(w io.Writer, mu *sync.Mutex, opts SinkOptions) *formatHandler {
	if w == nil {
		w = io.Discard
	}
	if opts.Level == nil {
		opts.Level = slog.LevelDebug
	}
	if len(opts.LevelNames) > 0 {
		upper := cases.Upper(language.Und)
		names := make(map[slog.Level]string, len(opts.LevelNames))
		for level, name := range opts.LevelNames {
			names[level] = upper.String(strings.TrimSpace(name))
		}
		opts.LevelNames = names
	}
	return &formatHandler{mu: mu, writer: w, opts: opts}
}

func (h *formatHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *formatHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level < h.opts.Level.Level() {
		return nil
	}

	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var args []any
	kvs := make([]kv, 0, record.NumAttrs()+len(h.attrs))
	flattenAttrs(&kvs, h.groups, h.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == argsKey {
			if call, ok := attr.Value.Any().(callArgs); ok {
				args = call
			}
			return true
		}
		flattenAttr(&kvs, h.groups, attr)
		return true
	})

	var buf bytes.Buffer
	buf.Grow(128 + len(record.Message))
	buf.WriteString(timestamp.In(time.Local).Format(timestampLayout))
	buf.WriteByte(' ')
	label := levelLabel(record.Level, h.opts.LevelNames)
	if pad := levelWidth - len([]rune(label)); pad > 0 {
		buf.WriteString(strings.Repeat(" ", pad))
	}
	buf.WriteString(label)
	buf.WriteString(": ")
	if h.opts.Prefixes {
		buf.WriteString(Prefix(ctx))
	}
	buf.WriteString(renderMessage(record.Message, args, h.argConverter()))
	for _, kv := range kvs {
		if kv.key == "" {
			continue
		}
		buf.WriteByte(' ')
		buf.WriteString(kv.key)
		buf.WriteByte('=')
		buf.WriteString(formatValue(kv.value))
	}

	line := buf.String()
	if h.opts.ReplaceNewlines {
		line = strings.ReplaceAll(line, "\n", newlineGlyph)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, line+"\n")
	return err
}

func (h *formatHandler) argConverter() func(any) any {
	if !h.opts.Escapes {
		return style.Unwrap
	}
	registry := h.opts.Registry
	return registry.activate
}

func (h *formatHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.attrs = append(clone.attrs, attrs...)
	return clone
}

func (h *formatHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *formatHandler) clone() *formatHandler {
	clone := &formatHandler{
		mu:     h.mu,
		writer: h.writer,
		opts:   h.opts,
	}
	if len(h.attrs) > 0 {
		clone.attrs = make([]slog.Attr, len(h.attrs))
		copy(clone.attrs, h.attrs)
	}
	if len(h.groups) > 0 {
		clone.groups = make([]string, len(h.groups))
		copy(clone.groups, h.groups)
	}
	return clone
}

type kv struct {
	key   string
	value slog.Value
}

func flattenAttrs(dst *[]kv, prefix []string, attrs []slog.Attr) {
	for _, attr := range attrs {
		flattenAttr(dst, prefix, attr)
	}
}

func flattenAttr(dst *[]kv, prefix []string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		next := prefix
		if attr.Key != "" {
			next = append(append([]string(nil), prefix...), attr.Key)
		}
		flattenAttrs(dst, next, attr.Value.Group())
		return
	}
	key := attr.Key
	if len(prefix) > 0 {
		key = strings.Join(append(append([]string(nil), prefix...), key), ".")
	}
	*dst = append(*dst, kv{key: key, value: attr.Value})
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindTime:
		s = v.Time().In(time.Local).Format(timestampLayout)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if needsQuotes(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return true
		}
	}
	return false
}

func levelLabel(level slog.Level, names map[slog.Level]string) string {
	if name, ok := names[level]; ok {
		return name
	}
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARNING"
	case slog.LevelError:
		return "ERROR"
	}
	return level.String()
}
