// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config provides centralized configuration management for Reelmatch.

Configuration is layered with Koanf (later sources override earlier):

 1. Struct defaults (defaultConfig)
 2. A YAML file: the --config flag, CONFIG_PATH, or the first of
    DefaultConfigPaths that exists
 3. Environment variables, mapped explicitly in envMappings

# Sections

  - server: listen address, timeouts, CORS origins, per-IP rate limit
  - database: DuckDB path, memory limit, threads, query timeout
  - recommend: artifact location and backend, training schedule,
    vocabulary size, hybrid weights and per-signal limits
  - tmdb: API key, base URL, timeout, outbound rate limit, circuit breaker
  - logging: level, format, caller

# Environment Variables

Server:
  - HTTP_HOST (default: 0.0.0.0), HTTP_PORT (default: 8000)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - CORS_ORIGINS: comma-separated (default: *)
  - RATE_LIMIT_REQUESTS (default: 100), RATE_LIMIT_WINDOW (default: 1m)
  - DISABLE_RATE_LIMIT

Database:
  - DUCKDB_PATH (default: /data/reelmatch.duckdb)
  - DUCKDB_MAX_MEMORY (default: 1GB), DUCKDB_THREADS (default: NumCPU)
  - DUCKDB_QUERY_TIMEOUT (default: 30s)

Recommendations:
  - ARTIFACT_DIR (default: /data/artifacts), ARTIFACT_BACKEND (file or badger)
  - RECOMMEND_TRAIN_ON_STARTUP, RECOMMEND_TRAIN_INTERVAL (default: 24h, 0 disables)
  - RECOMMEND_TRAIN_TIMEOUT (default: 30m), RECOMMEND_MIN_ITEMS (default: 1)
  - RECOMMEND_VOCABULARY_SIZE (default: 5000), RECOMMEND_STOP_WORDS (english or none)
  - RECOMMEND_WEIGHT_CONTENT, _FRANCHISE, _CREW, _COLLABORATIVE, _POPULARITY

TMDB:
  - TMDB_API_KEY, TMDB_BASE_URL (default: https://api.themoviedb.org/3)
  - TMDB_TIMEOUT (default: 30s), TMDB_REQUESTS_PER_SECOND, TMDB_BURST

Logging:
  - LOG_LEVEL (default: info), LOG_FORMAT (default: json), LOG_CALLER

# Usage

	cfg, err := config.Load("")
	if err != nil {
	    return fmt.Errorf("load config: %w", err)
	}
	engineCfg := cfg.Recommend.EngineConfig()
*/
package config
