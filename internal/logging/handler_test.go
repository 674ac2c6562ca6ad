package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"loggingtalk/internal/style"
)

const stamp = "2024-01-02 03:04:05"

func fixedTime() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
}

// emit mirrors Logger.Logf with a fixed timestamp.
func emit(t *testing.T, h slog.Handler, ctx context.Context, level slog.Level, template string, args ...any) {
	t.Helper()
	record := slog.NewRecord(fixedTime(), level, template, 0)
	if len(args) > 0 {
		record.AddAttrs(slog.Any(argsKey, callArgs(args)))
	}
	if err := h.Handle(ctx, record); err != nil {
		t.Fatalf("handle: %v", err)
	}
}

func TestSinkLineLayout(t *testing.T) {
	var buf bytes.Buffer
	h := NewSinkHandler(&buf, SinkOptions{Prefixes: true})
	ctx := WithPrefix(context.Background(), "[numbers] ")

	emit(t, h, ctx, slog.LevelInfo, "Loaded config from %s", Path("/etc/talk.toml"))
	emit(t, h, ctx, slog.LevelWarn, "careful")

	want := stamp + "       INFO: [numbers] Loaded config from /etc/talk.toml\n" +
		stamp + "    WARNING: [numbers] careful\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output\n got: %q\nwant: %q", got, want)
	}
}

func TestSinkWithoutPrefixes(t *testing.T) {
	var buf bytes.Buffer
	h := NewSinkHandler(&buf, SinkOptions{})
	emit(t, h, WithPrefix(context.Background(), "[job] "), slog.LevelError, "boom")

	if got, want := buf.String(), stamp+"      ERROR: boom\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPlainSinkNeverEmitsEscapes(t *testing.T) {
	var buf bytes.Buffer
	h := NewSinkHandler(&buf, SinkOptions{Registry: DefaultRegistry()})

	emit(t, h, context.Background(), slog.LevelInfo, "%s at %s finished %s",
		Path("/tmp"),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		style.Style{Color: style.Magenta, Bold: true}.Apply("do_stuff"),
	)

	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("plain sink wrote escapes: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "/tmp at 2024-01-02 00:00:00 +0000 UTC finished do_stuff") {
		t.Fatalf("unexpected message: %q", buf.String())
	}
}

func TestPlainSinkStripsActivatedArguments(t *testing.T) {
	var buf bytes.Buffer
	logger := New(NewSinkHandler(&buf, SinkOptions{}))

	red := style.Style{Color: style.Red}
	logger.Infof(context.Background(), "value %s and %s", red.Activate("x"), red.Apply("y").Activate())

	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("plain sink wrote escapes: %q", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "INFO: value x and y\n") {
		t.Fatalf("unexpected line %q", buf.String())
	}
}

func TestColorSinkStylesArguments(t *testing.T) {
	var buf bytes.Buffer
	h := NewSinkHandler(&buf, SinkOptions{Escapes: true, Registry: DefaultRegistry()})

	emit(t, h, context.Background(), slog.LevelInfo, "Loaded %s, finished %s, plain %d",
		Path("/tmp/x"),
		style.Style{Color: style.Magenta}.Apply("do_stuff"),
		7,
	)

	want := "Loaded \x1b[36m/tmp/x\x1b[39m, finished \x1b[35mdo_stuff\x1b[39m, plain 7\n"
	if !strings.HasSuffix(buf.String(), want) {
		t.Fatalf("got %q, want suffix %q", buf.String(), want)
	}
}

func TestExplicitStyleWinsOverRegistry(t *testing.T) {
	var buf bytes.Buffer
	h := NewSinkHandler(&buf, SinkOptions{Escapes: true, Registry: DefaultRegistry()})

	emit(t, h, context.Background(), slog.LevelInfo, "%s",
		style.Style{Dim: true, Bold: true}.Apply(Path("/x")))

	if !strings.HasSuffix(buf.String(), ": \x1b[1;2m/x\x1b[22m\n") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestColorSinkWithoutRegistry(t *testing.T) {
	var buf bytes.Buffer
	h := NewSinkHandler(&buf, SinkOptions{Escapes: true})

	emit(t, h, context.Background(), slog.LevelInfo, "%s", Path("/x"))

	if !strings.HasSuffix(buf.String(), ": /x\n") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestNewlineReplacement(t *testing.T) {
	tests := []struct {
		name    string
		replace bool
		want    string
	}{
		{name: "replaced", replace: true, want: "grep: 'evil␤name': No such file␤\n"},
		{name: "kept", replace: false, want: "grep: 'evil\nname': No such file\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewSinkHandler(&buf, SinkOptions{ReplaceNewlines: tt.replace})
			emit(t, h, context.Background(), slog.LevelInfo, "%s", "grep: 'evil\nname': No such file\n")
			if !strings.HasSuffix(buf.String(), tt.want) {
				t.Fatalf("got %q, want suffix %q", buf.String(), tt.want)
			}
			if tt.replace && strings.Count(buf.String(), "\n") != 1 {
				t.Fatalf("expected a single line, got %q", buf.String())
			}
		})
	}
}

func TestLevelLabels(t *testing.T) {
	var buf bytes.Buffer
	h := NewSinkHandler(&buf, SinkOptions{LevelNames: map[slog.Level]string{-2: "next slide"}})

	emit(t, h, context.Background(), slog.Level(-2), "No more slides!")
	emit(t, h, context.Background(), slog.LevelDebug, "dbg")
	emit(t, h, context.Background(), slog.Level(2), "odd")

	want := stamp + " NEXT SLIDE: No more slides!\n" +
		stamp + "      DEBUG: dbg\n" +
		stamp + "     INFO+2: odd\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSinkLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	h := NewSinkHandler(&buf, SinkOptions{Level: slog.LevelInfo})
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug should be disabled")
	}
	emit(t, h, context.Background(), slog.LevelDebug, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestSinkAppendsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := New(NewSinkHandler(&buf, SinkOptions{})).With("session", "abc", "note", "two words")

	logger.Infof(context.Background(), "ready")

	if !strings.Contains(buf.String(), `ready session=abc note="two words"`) {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

type panicky struct{}

func (panicky) String() string { panic("bad value") }

func TestArgumentPanicIsContained(t *testing.T) {
	var buf bytes.Buffer
	h := NewSinkHandler(&buf, SinkOptions{})
	emit(t, h, context.Background(), slog.LevelInfo, "value %s", panicky{})

	if !strings.Contains(buf.String(), "value %!s(PANIC=String method: bad value)") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestSharedMutexSerializesSinks(t *testing.T) {
	var buf bytes.Buffer
	h := NewSinkHandler(&buf, SinkOptions{})
	logger := New(h)

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				logger.Infof(context.Background(), "line %d", j)
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 200 {
		t.Fatalf("expected 200 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.Contains(line, "INFO: line ") {
			t.Fatalf("torn line %q", line)
		}
	}
}

func TestSlogMessagesAreLiteral(t *testing.T) {
	var buf bytes.Buffer
	logger := New(NewSinkHandler(&buf, SinkOptions{Prefixes: true}))

	logger.Slog().InfoContext(WithPrefix(context.Background(), "[std] "), "100% literal", "n", 2)

	got := buf.String()
	if !strings.HasSuffix(got, "INFO: [std] 100% literal n=2\n") {
		t.Fatalf("unexpected line %q", got)
	}
}
