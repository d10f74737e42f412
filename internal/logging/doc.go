// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package logging provides centralized zerolog-based structured logging for
// Reelmatch.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger configured once from config.LoggingConfig
//   - JSON output for production, console output for development
//   - Context-aware logging with request and correlation ids (google/uuid)
//   - An slog.Handler adapter so sutureslog logs through zerolog
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:     cfg.Logging.Level,
//	    Format:    cfg.Logging.Format,
//	    Caller:    cfg.Logging.Caller,
//	    Timestamp: true,
//	})
//
//	logging.Info().Int("items", n).Msg("Artifact trained")
//	logging.Ctx(ctx).Warn().Err(err).Msg("TMDB fallback failed")
//
// Components receive a zerolog.Logger and tag it:
//
//	logger := logging.WithComponent("trainer")
//
// Tests pass zerolog.Nop() or zerolog.New(&buf) to assert on output.
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send(), and prefer structured
// fields over Msgf.
package logging
