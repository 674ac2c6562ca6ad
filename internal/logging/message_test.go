package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		want     string
	}{
		{name: "literal", template: "100%% done", want: "100%% done"},
		{name: "positional", template: "%s has %d", args: []any{"ann", 3}, want: "ann has 3"},
		{name: "named", template: "%(user)s has %(count)03d", args: []any{Fields{"user": "ann", "count": 3}}, want: "ann has 003"},
		{name: "named escapes percent", template: "%(n)d%%", args: []any{Fields{"n": 50}}, want: "50%"},
		{name: "named missing", template: "%(user)s %(count)d", args: []any{Fields{"user": "ann"}}, want: "ann %!d(MISSING count)"},
		{name: "named missing non-ascii verb", template: "%(who)é!", args: []any{Fields{"user": "ann"}}, want: "%!é(MISSING who)!"},
		{name: "named non-ascii verb", template: "%(user)é!", args: []any{Fields{"user": "ann"}}, want: "%!é(string=ann)!"},
		{name: "map as positional", template: "config %v", args: []any{Fields{"a": 1}}, want: "config map[a:1]"},
		{name: "too few", template: "%s and %s", args: []any{"one"}, want: "one and %!s(MISSING)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.template, tt.args...); got != tt.want {
				t.Fatalf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckArgs(t *testing.T) {
	tests := []struct {
		template string
		args     []any
		want     string
	}{
		{template: "no args"},
		{template: "%s %d", args: []any{"a", 1}},
		{template: "%*d", args: []any{4, 1}},
		{template: "%[1]s %[1]s", args: []any{"a"}},
		{template: "%(a)s", args: []any{Fields{"a": 1}}},
		{template: "%s", args: []any{Fields{"a": 1}}},
		{template: "%s and %s", args: []any{"one"}, want: "2 placeholders but 1 arguments"},
		{template: "done", args: []any{"extra"}, want: "0 placeholders but 1 arguments"},
		{template: "%(a)s %(b)s", args: []any{Fields{"a": 1}}, want: `missing key "b"`},
		{template: "%(a)s", args: []any{"x"}, want: "positional arguments for named placeholders"},
		{template: "%s %s", args: []any{"x", Fields{"a": 1}}, want: "mapping mixed with positional arguments"},
	}
	for _, tt := range tests {
		if got := checkArgs(tt.template, tt.args); got != tt.want {
			t.Errorf("checkArgs(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}

func TestMalformedCallIsDiagnosed(t *testing.T) {
	var out, diag bytes.Buffer
	logger := New(NewSinkHandler(&out, SinkOptions{}), WithDiagnostics(&diag))

	logger.Infof(context.Background(), "%s and %s", "one")
	logger.Infof(context.Background(), "%(user)s", Fields{})

	wantDiag := "logging: 2 placeholders but 1 arguments in \"%s and %s\"\n" +
		"logging: missing key \"user\" in \"%(user)s\"\n"
	if diag.String() != wantDiag {
		t.Fatalf("diagnostics = %q, want %q", diag.String(), wantDiag)
	}
	if !strings.Contains(out.String(), "one and %!s(MISSING)") || !strings.Contains(out.String(), "%!s(MISSING user)") {
		t.Fatalf("expected best-effort output, got %q", out.String())
	}
}

func TestDisabledLevelSkipsDiagnostics(t *testing.T) {
	var diag bytes.Buffer
	logger := New(NoopHandler{}, WithDiagnostics(&diag))
	logger.Debugf(context.Background(), "%s %s")
	if diag.Len() != 0 {
		t.Fatalf("unexpected diagnostics %q", diag.String())
	}
}
