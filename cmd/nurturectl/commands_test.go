// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nurture/internal/recommend"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCatalogCmd(t *testing.T) {
	out, err := run(t, "catalog")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if !strings.Contains(out, "Guided Breathing") || !strings.Contains(out, "a25") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRecommendCmd_JSON(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "interactions.csv")

	out, err := run(t, "recommend", "--log-path", logPath, "--json",
		"--metric", "sleep_quality=2", "-m", "anxiety_level=15", "--label", "anxious", "--top-k", "3")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}

	var resp recommend.Response
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(resp.Items) != 3 {
		t.Errorf("items = %d, want 3", len(resp.Items))
	}
	if resp.Metadata.Signal != "emotion" {
		t.Errorf("signal = %q, want emotion", resp.Metadata.Signal)
	}
}

func TestLogAndPopularityCmds(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "interactions.csv")

	for i := 0; i < 2; i++ {
		if _, err := run(t, "log", "--log-path", logPath, "--user", "u1", "--item", "a7", "--feedback", "1"); err != nil {
			t.Fatalf("log %d: %v", i, err)
		}
	}
	if _, err := run(t, "log", "--log-path", logPath, "-u", "u2", "-i", "a3"); err != nil {
		t.Fatalf("log: %v", err)
	}

	out, err := run(t, "popularity", "--log-path", logPath)
	if err != nil {
		t.Fatalf("popularity: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, 2 rows and total; got:\n%s", out)
	}
	if !strings.HasPrefix(lines[1], "a7") || !strings.Contains(lines[1], " 2 ") {
		t.Errorf("first row = %q, want a7 with count 2", lines[1])
	}
	if !strings.HasPrefix(lines[3], "total") || !strings.Contains(lines[3], "3") {
		t.Errorf("total row = %q", lines[3])
	}
}

func TestLogCmd_Errors(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "interactions.csv")

	tests := []struct {
		name string
		args []string
	}{
		{"unknown activity", []string{"log", "--log-path", logPath, "--user", "u1", "--item", "a99"}},
		{"missing user", []string{"log", "--log-path", logPath, "--item", "a1"}},
		{"unknown backend", []string{"log", "--backend", "sqlite", "--user", "u1", "--item", "a1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLogCmd_NonStrictAcceptsUnknownActivity(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "interactions.csv")

	out, err := run(t, "log", "--log-path", logPath, "--strict=false", "--user", "u1", "--item", "a99")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if !strings.Contains(out, "logged a99 for u1 (count 1)") {
		t.Errorf("output = %q", out)
	}
}

func TestParseMetrics(t *testing.T) {
	m, err := parseMetrics([]string{"sleep_quality=3", " mood = low "})
	if err != nil {
		t.Fatalf("parseMetrics: %v", err)
	}
	if v, ok := m["sleep_quality"].(float64); !ok || v != 3 {
		t.Errorf("sleep_quality = %#v", m["sleep_quality"])
	}
	if v, ok := m["mood"].(string); !ok || v != "low" {
		t.Errorf("mood = %#v", m["mood"])
	}

	for _, bad := range []string{"novalue", "=3"} {
		if _, err := parseMetrics([]string{bad}); err == nil {
			t.Errorf("parseMetrics(%q): expected error", bad)
		}
	}
}
