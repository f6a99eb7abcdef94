// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	slogger := NewSlogLogger(zerolog.New(&buf))

	slogger.Warn("service restarted",
		"service", "api",
		"attempt", 3,
		"backoff", 2*time.Second,
		"ok", false,
		"err", errors.New("exit"),
	)

	out := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"message":"service restarted"`,
		`"service":"api"`,
		`"attempt":3`,
		`"ok":false`,
		`"err":"exit"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	h := NewSlogHandler(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	ctx := context.Background()

	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("info enabled on a warn logger")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("error disabled on a warn logger")
	}
}

func TestSlogHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	slogger := NewSlogLogger(zerolog.New(&buf)).
		With("tree", "nurture").
		WithGroup("supervisor").
		With("layer", "api")

	slogger.Error("failure", slog.Group("svc", "name", "http"))

	out := buf.String()
	for _, want := range []string{
		`"tree":"nurture"`,
		`"supervisor.layer":"api"`,
		`"supervisor.svc.name":"http"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestSlogHandler_WithGroupEmpty(t *testing.T) {
	h := NewSlogHandler(zerolog.Nop())
	if h.WithGroup("") != slog.Handler(h) {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogLevel(tt.in); got != tt.want {
			t.Errorf("slogLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
