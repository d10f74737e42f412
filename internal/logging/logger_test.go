// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// restoreGlobal resets the global logger and level after a test.
func restoreGlobal(t *testing.T) {
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

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if cfg.Caller {
		t.Error("expected default caller to be false")
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestInit(t *testing.T) {
	restoreGlobal(t)

	tests := []struct {
		name     string
		cfg      Config
		log      func()
		contains []string
		absent   []string
	}{
		{
			name:     "json info",
			cfg:      Config{Level: "info", Format: "json"},
			log:      func() { Info().Int("items", 3).Msg("artifact trained") },
			contains: []string{`"level":"info"`, `"items":3`, `"message":"artifact trained"`},
		},
		{
			name:   "level filters debug",
			cfg:    Config{Level: "warn", Format: "json"},
			log:    func() { Debug().Msg("hidden") },
			absent: []string{"hidden"},
		},
		{
			name:     "console format",
			cfg:      Config{Level: "debug", Format: "console"},
			log:      func() { Warn().Str("strategy", "crew").Msg("slow scorer") },
			contains: []string{"slow scorer", "strategy="},
		},
		{
			name:     "caller",
			cfg:      Config{Level: "info", Format: "json", Caller: true},
			log:      func() { Info().Msg("with caller") },
			contains: []string{`"caller":`},
		},
		{
			name:     "error with cause",
			cfg:      Config{Level: "info"},
			log:      func() { Error().Err(errors.New("boom")).Msg("failed") },
			contains: []string{`"error":"boom"`, `"level":"error"`, `"service":"reelmatch"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := tt.cfg
			cfg.Output = &buf
			Init(cfg)

			tt.log()

			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(out, unwanted) {
					t.Errorf("output %q should not contain %q", out, unwanted)
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWithComponent(t *testing.T) {
	restoreGlobal(t)

	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})

	logger := WithComponent("trainer")
	logger.Info().Msg("started")

	if !strings.Contains(buf.String(), `"component":"trainer"`) {
		t.Errorf("missing component field: %s", buf.String())
	}
}

func TestSetLogger(t *testing.T) {
	restoreGlobal(t)

	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	Warn().Msg("replaced")

	if !strings.Contains(buf.String(), "replaced") {
		t.Errorf("expected output on replacement logger, got %q", buf.String())
	}
}
