// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
client.go - The Movie Database (TMDB) API Client

Resilience Mechanisms:
  - Rate Limiting: a token bucket (golang.org/x/time/rate) paces every request
  - Circuit Breaker: opens after BreakerFailures consecutive failures and
    stays open for BreakerTimeout before probing again
  - HTTP 429: retried with exponential backoff, honouring Retry-After
  - Context: all methods accept context for cancellation

A 404 is reported as ErrNotFound and does not count against the breaker.
While the breaker is open every call fails fast with ErrCircuitOpen.
*/

//nolint:staticcheck // File documentation, not package doc
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

var (
	// ErrNotFound is returned when TMDB answers 404 for a resource.
	ErrNotFound = errors.New("tmdb: not found")

	// ErrCircuitOpen is returned while the circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("tmdb: circuit breaker open")

	// ErrMissingAPIKey is returned by NewClient when no API key is configured.
	ErrMissingAPIKey = errors.New("tmdb: api key is required")
)

// breakerName labels circuit breaker metrics and logs.
const breakerName = "tmdb-api"

// maxErrorBodySize limits how much of an error response body is read.
const maxErrorBodySize = 4 * 1024

// Client calls the TMDB v3 REST API. It is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]byte]
	logger  zerolog.Logger

	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a TMDB client from configuration.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewClient(cfg *config.TMDBConfig, logger zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		http:           &http.Client{Timeout: cfg.Timeout},
		limiter:        rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:         logger.With().Str("component", "tmdb").Logger(),
		maxRetries:     3,
		retryBaseDelay: time.Second,
	}
	c.cb = newBreaker(cfg.BreakerFailures, cfg.BreakerTimeout, c.logger)
	return c, nil
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newBreaker(failures uint32, timeout time.Duration, logger zerolog.Logger) *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("Circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})
}

// PopularMovies returns one page of /movie/popular. Pages start at 1.
func (c *Client) PopularMovies(ctx context.Context, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var out MoviePage
	if err := c.get(ctx, "popular", "/movie/popular", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrendingMovies returns the first page of /trending/movie/{window}, where
// window is "day" or "week".
func (c *Client) TrendingMovies(ctx context.Context, window string) (*MoviePage, error) {
	if window != "day" && window != "week" {
		return nil, fmt.Errorf("tmdb trending: window must be day or week, got %q", window)
	}
	var out MoviePage
	if err := c.get(ctx, "trending", "/trending/movie/"+window, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SimilarMovies returns the first page of /movie/{id}/similar.
func (c *Client) SimilarMovies(ctx context.Context, tmdbID int64) (*MoviePage, error) {
	var out MoviePage
	if err := c.get(ctx, "similar", fmt.Sprintf("/movie/%d/similar", tmdbID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieDetails returns /movie/{id}.
func (c *Client) MovieDetails(ctx context.Context, tmdbID int64) (*MovieDetails, error) {
	var out MovieDetails
	if err := c.get(ctx, "details", fmt.Sprintf("/movie/%d", tmdbID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieCredits returns /movie/{id}/credits.
func (c *Client) MovieCredits(ctx context.Context, tmdbID int64) (*Credits, error) {
	var out Credits
	if err := c.get(ctx, "credits", fmt.Sprintf("/movie/%d/credits", tmdbID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieGenres returns the movie genre list.
func (c *Client) MovieGenres(ctx context.Context) ([]Genre, error) {
	var out GenreList
	if err := c.get(ctx, "genres", "/genre/movie/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

// get fetches path through the limiter and breaker and decodes the JSON body
// into out. endpoint labels metrics.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	start := time.Now()

	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.fetch(ctx, path, params)
	})
	if err != nil {
		result := "error"
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			result = "rejected"
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
			err = fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		case errors.Is(err, ErrNotFound):
			result = "not_found"
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(float64(c.cb.Counts().ConsecutiveFailures))
		}
		metrics.RecordTMDBRequest(endpoint, result, time.Since(start))
		return fmt.Errorf("tmdb %s: %w", endpoint, err)
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)

	if err := json.Unmarshal(body, out); err != nil {
		metrics.RecordTMDBRequest(endpoint, "decode_error", time.Since(start))
		return fmt.Errorf("tmdb %s: decode response: %w", endpoint, err)
	}
	metrics.RecordTMDBRequest(endpoint, "success", time.Since(start))
	return nil
}

// fetch performs the GET with rate limiting and 429 backoff and returns the
// body of a 200 response.
func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + query.Encode()

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			// url.Error embeds the request URL, which carries the API key.
			var urlErr *url.Error
			if errors.As(err, &urlErr) {
				err = urlErr.Err
			}
			return nil, fmt.Errorf("request %s failed: %w", path, err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			body, readErr := io.ReadAll(resp.Body)
			closeBody(resp)
			if readErr != nil {
				return nil, fmt.Errorf("read %s: %w", path, readErr)
			}
			return body, nil

		case resp.StatusCode == http.StatusNotFound:
			closeBody(resp)
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)

		case resp.StatusCode == http.StatusTooManyRequests && attempt < c.maxRetries:
			delay := retryDelay(resp.Header.Get("Retry-After"), c.retryBaseDelay, attempt)
			closeBody(resp)
			c.logger.Debug().Str("path", path).Dur("delay", delay).Msg("Rate limited by TMDB, backing off")
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}

		default:
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
			closeBody(resp)
			return nil, fmt.Errorf("%s: unexpected status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
		}
	}
}

// retryDelay returns the Retry-After delay in seconds when present, else
// exponential backoff from base.
func retryDelay(retryAfter string, base time.Duration, attempt int) time.Duration {
	if seconds, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	return base * time.Duration(1<<uint(attempt))
}

func closeBody(resp *http.Response) {
	_ = resp.Body.Close()
}

// stateToFloat converts circuit breaker state to a float for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
