// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRouter_Envelopes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"unknown route", http.MethodGet, "/api/v1/nope", http.StatusNotFound, ErrCodeNotFound},
		{"wrong method", http.MethodDelete, "/api/v1/recommend/popular", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"toggle requires post", http.MethodGet, "/api/v1/watchlist/toggle", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(t, tt.method, tt.path, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if env.Success || env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("envelope = %+v, want error %s", env, tt.wantCode)
			}
			if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
				t.Errorf("Content-Type = %q", got)
			}
		})
	}
}

func TestRouter_RequestID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommend/popular", http.NoBody)
	req.Header.Set("X-Request-ID", "client-supplied-42")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "client-supplied-42" {
		t.Errorf("X-Request-ID = %q, want echo of client id", got)
	}
	if !strings.Contains(rec.Body.String(), `"request_id":"client-supplied-42"`) {
		t.Errorf("response meta missing request id: %s", rec.Body.String())
	}

	_, env := s.do(t, http.MethodGet, "/health", "")
	if env.Meta == nil || env.Meta.RequestID == "" {
		t.Errorf("generated request id missing from meta: %+v", env.Meta)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	s := newTestServer(t, withRateLimit(2))

	for i := 0; i < 2; i++ {
		if rec, _ := s.do(t, http.MethodGet, "/api/v1/recommend/popular", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}

	rec, env := s.do(t, http.MethodGet, "/api/v1/recommend/popular", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("error = %+v", env.Error)
	}

	if rec, _ := s.do(t, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("health is rate limited: status = %d", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/api/v1/recommend/popular", "")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing API request counter")
	}
}

func TestRouter_CORS(t *testing.T) {
	h, err := NewHandler(Deps{Store: stubStore{}, Engine: stubEngine{}, Trainer: stubTrainer{}}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://reel.example"}
	router := NewRouter(h, NewChiMiddleware(cfg))

	tests := []struct {
		origin string
		want   string
	}{
		{"https://reel.example", "https://reel.example"},
		{"https://evil.example", ""},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommend/popular", http.NoBody)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}
