package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"zebranoise/internal/stimulus"
)

func TestProgressReporterSamplesWhenNotATerminal(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	p := newProgressReporter(&bytes.Buffer{}, logger, 100)
	if p.bar != nil {
		t.Fatal("expected no progress bar for a buffer")
	}
	for i := range 20 {
		p.observe(stimulus.Progress{Stage: stimulus.StageBlack, Done: i + 1, Total: 20})
	}
	for i := range 80 {
		p.observe(stimulus.Progress{Stage: stimulus.StageNoise, Done: i + 1, Total: 80})
	}
	p.finish()

	lines := strings.Count(logs.String(), "generation progress")
	// black: 1%, 10%, 20%; noise: 21% on the stage change, then 30% to 100%.
	if lines != 12 {
		t.Fatalf("expected 12 sampled progress lines, got %d:\n%s", lines, logs.String())
	}
}
