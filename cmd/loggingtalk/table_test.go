package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"loggingtalk/internal/jobs"
)

func TestOutcomeTable(t *testing.T) {
	got := outcomeTable([]jobs.Outcome{
		{ID: "0f8c2a41-7b7e-4c38-9d0e-5f0a4f1f7d11", Name: "numbers", Duration: 1500 * time.Millisecond},
		{ID: "short", Name: "job2", Err: errors.New("grep exited with 2")},
	})

	for _, want := range []string{"ID", "JOB", "STATUS", "DURATION", "ERROR", "0f8c2a41", "numbers", "1.5s", "failed", "grep exited with 2"} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "7b7e") {
		t.Errorf("expected shortened outcome id:\n%s", got)
	}
}

func TestRenderTableWithoutHeaders(t *testing.T) {
	if got := renderTable(nil, [][]string{{"x"}}, nil); got != "" {
		t.Fatalf("expected empty table, got %q", got)
	}
}
