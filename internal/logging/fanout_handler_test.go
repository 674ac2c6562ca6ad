package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func sinkAt(buf *bytes.Buffer, level slog.Level) slog.Handler {
	return NewSinkHandler(buf, SinkOptions{Level: level})
}

func TestNewFanoutHandlerNilHandlers(t *testing.T) {
	h := newFanoutHandler(nil, nil, nil)
	if _, ok := h.(NoopHandler); !ok {
		t.Errorf("expected NoopHandler for all nil handlers, got %T", h)
	}
}

func TestNewFanoutHandlerSingleHandler(t *testing.T) {
	var buf bytes.Buffer
	inner := sinkAt(&buf, slog.LevelDebug)

	if h := newFanoutHandler(nil, inner, nil); h != inner {
		t.Error("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerEnabled(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	h := newFanoutHandler(sinkAt(&infoBuf, slog.LevelInfo), sinkAt(&debugBuf, slog.LevelDebug))

	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected fanout to be enabled for debug")
	}

	h = newFanoutHandler(sinkAt(&infoBuf, slog.LevelWarn), sinkAt(&debugBuf, slog.LevelError))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected fanout to be disabled for info")
	}
}

func TestFanoutHandlerDebugFiltering(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	logger := New(newFanoutHandler(sinkAt(&infoBuf, slog.LevelInfo), sinkAt(&debugBuf, slog.LevelDebug)))

	logger.Debugf(context.Background(), "debug only message")

	if infoBuf.Len() != 0 {
		t.Errorf("info sink should not receive debug records, got %q", infoBuf.String())
	}
	if !strings.Contains(debugBuf.String(), "debug only message") {
		t.Errorf("debug sink missing record, got %q", debugBuf.String())
	}
}

func TestFanoutHandlerWithAttrsAndGroup(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h := newFanoutHandler(sinkAt(&buf1, slog.LevelDebug), sinkAt(&buf2, slog.LevelDebug))
	logger := New(h.WithGroup("job").WithAttrs([]slog.Attr{slog.String("name", "numbers")}))

	logger.Infof(context.Background(), "started")

	for i, out := range []string{buf1.String(), buf2.String()} {
		if !strings.Contains(out, "started job.name=numbers") {
			t.Errorf("sink %d missing grouped attr: %q", i, out)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestFanoutHandlerKeepsWritingAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	h := newFanoutHandler(NewSinkHandler(failingWriter{}, SinkOptions{}), sinkAt(&buf, slog.LevelDebug))

	record := slog.NewRecord(fixedTime(), slog.LevelInfo, "still here", 0)
	err := h.Handle(context.Background(), record)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected first sink error, got %v", err)
	}
	if !strings.Contains(buf.String(), "still here") {
		t.Fatalf("second sink missing record: %q", buf.String())
	}
}

func TestLevelOverrideOnlyFiltersWrappedSink(t *testing.T) {
	var fileBuf, termBuf bytes.Buffer
	logger := New(newFanoutHandler(
		sinkAt(&fileBuf, slog.LevelDebug),
		newLevelOverrideHandler(sinkAt(&termBuf, slog.LevelDebug), slog.LevelWarn),
	))

	ctx := context.Background()
	logger.Infof(ctx, "details")
	logger.Warnf(ctx, "careful")

	if got := strings.Count(fileBuf.String(), "\n"); got != 2 {
		t.Fatalf("file sink lines = %d, want 2: %q", got, fileBuf.String())
	}
	if strings.Contains(termBuf.String(), "details") || !strings.Contains(termBuf.String(), "careful") {
		t.Fatalf("unexpected terminal output %q", termBuf.String())
	}
}

func TestLevelOverrideWithoutLevelPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	sink := sinkAt(&buf, slog.LevelDebug)
	if h := newLevelOverrideHandler(sink, nil); h != sink {
		t.Fatalf("expected the wrapped handler back, got %T", h)
	}
	if _, ok := newLevelOverrideHandler(nil, slog.LevelInfo).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler for a nil handler")
	}
}
