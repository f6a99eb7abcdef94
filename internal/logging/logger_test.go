// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// restoreLogging resets the global logger after a test that calls Init.
func restoreLogging(t *testing.T) {
	t.Helper()
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "json" || !cfg.Timestamp || cfg.Output == nil {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestInit_JSON(t *testing.T) {
	restoreLogging(t)

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})

	Debug().Str("key", "value").Msg("hello")

	out := buf.String()
	for _, want := range []string{`"level":"debug"`, `"key":"value"`, `"message":"hello"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
	if strings.Contains(out, `"time"`) {
		t.Errorf("timestamp written although disabled: %s", out)
	}
}

func TestInit_Console(t *testing.T) {
	restoreLogging(t)

	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	Info().Msg("console line")

	out := buf.String()
	if !strings.Contains(out, "console line") {
		t.Errorf("output %q missing message", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("console output looks like JSON: %s", out)
	}
}

func TestInit_LevelFilters(t *testing.T) {
	restoreLogging(t)

	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})

	Info().Msg("dropped")
	Warn().Msg("kept")
	Err(errors.New("boom")).Msg("failed")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info entry written at warn level")
	}
	if !strings.Contains(out, "kept") || !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("output %q missing warn or error entries", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidLevel(t *testing.T) {
	for _, l := range []string{"debug", "Info", "warn", "disabled"} {
		if !ValidLevel(l) {
			t.Errorf("ValidLevel(%q) = false", l)
		}
	}
	if ValidLevel("loud") {
		t.Error("ValidLevel(loud) = true")
	}
}

func TestSetLevelString(t *testing.T) {
	restoreLogging(t)

	SetLevelString("error")
	if zerolog.GlobalLevel() != zerolog.ErrorLevel {
		t.Errorf("GlobalLevel() = %v, want error", zerolog.GlobalLevel())
	}
}

func TestWithComponent(t *testing.T) {
	restoreLogging(t)

	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})

	logger := WithComponent("api")
	logger.Info().Msg("ready")

	if !strings.Contains(buf.String(), `"component":"api"`) {
		t.Errorf("output %q missing component", buf.String())
	}
}

func TestNewTestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)
	logger.Warn().Msg("captured")

	if !strings.Contains(buf.String(), "captured") {
		t.Errorf("output %q missing message", buf.String())
	}
}
