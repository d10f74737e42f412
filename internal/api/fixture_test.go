// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/database"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/algorithms"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
	"github.com/tomtom215/reelmatch/internal/tmdb"
)

// testDBSemaphore keeps one DuckDB connection open at a time across tests.
var testDBSemaphore = make(chan struct{}, 1)

// fakeTMDB is an in-memory MovieSource. Details for ids missing from
// details answer ErrNotFound.
type fakeTMDB struct {
	mu       sync.Mutex
	page     *tmdb.MoviePage
	err      error
	calls    int
	details  map[int64]*tmdb.MovieDetails
	credits  map[int64]*tmdb.Credits
	trending *tmdb.MoviePage
	fetchErr error
}

func (f *fakeTMDB) SimilarMovies(_ context.Context, _ int64) (*tmdb.MoviePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.page == nil {
		return &tmdb.MoviePage{}, nil
	}
	return f.page, nil
}

func (f *fakeTMDB) MovieDetails(_ context.Context, id int64) (*tmdb.MovieDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("/movie/%d: %w", id, tmdb.ErrNotFound)
}

func (f *fakeTMDB) MovieCredits(_ context.Context, id int64) (*tmdb.Credits, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.credits[id], nil
}

func (f *fakeTMDB) TrendingMovies(_ context.Context, _ string) (*tmdb.MoviePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if f.trending == nil {
		return &tmdb.MoviePage{}, nil
	}
	return f.trending, nil
}

type testServer struct {
	db      *database.DB
	engine  *recommend.Engine
	remote  *fakeTMDB
	router  http.Handler
	ids     map[int64]int64 // tmdb id -> internal id
}

type serverOption func(*Deps, *ChiMiddlewareConfig)

func withoutTMDB() serverOption {
	return func(d *Deps, _ *ChiMiddlewareConfig) { d.TMDB = nil }
}

func withRateLimit(n int) serverOption {
	return func(_ *Deps, c *ChiMiddlewareConfig) {
		c.RateLimitDisabled = false
		c.RateLimitRequests = n
	}
}

// catalogFixture is a small movie catalog keyed by TMDB id.
//
//	603  The Matrix           Wachowski  Reeves, Moss       pop 80
//	604  The Matrix Reloaded  Wachowski  Reeves, Moss       pop 60
//	6977 John Wick            Stahelski  Reeves             pop 70
//	550  Fight Club           Fincher    Pitt, Norton       pop 90
//	807  Se7en                Fincher    Pitt, Freeman      pop 50
func catalogFixture() []recommend.Item {
	return []recommend.Item{
		{TMDBID: 603, Title: "The Matrix", Genres: []string{"Action", "Science Fiction"},
			Overview: "A hacker learns that reality is a simulation run by machines.",
			Director: "Lana Wachowski", Cast: []string{"Keanu Reeves", "Carrie-Anne Moss"},
			Popularity: 80, PosterPath: "/matrix.jpg", ReleaseDate: "1999-03-30", Runtime: 136, Language: "en"},
		{TMDBID: 604, Title: "The Matrix Reloaded", Genres: []string{"Action", "Science Fiction"},
			Overview: "Neo fights the machines to free reality from the simulation.",
			Director: "Lana Wachowski", Cast: []string{"Keanu Reeves", "Carrie-Anne Moss"},
			Popularity: 60, PosterPath: "/reloaded.jpg"},
		{TMDBID: 6977, Title: "John Wick", Genres: []string{"Action", "Thriller"},
			Overview: "A retired hitman seeks vengeance for his dog.",
			Director: "Chad Stahelski", Cast: []string{"Keanu Reeves"},
			Popularity: 70, PosterPath: "/wick.jpg"},
		{TMDBID: 550, Title: "Fight Club", Genres: []string{"Drama"},
			Overview: "An insomniac office worker starts an underground club.",
			Director: "David Fincher", Cast: []string{"Brad Pitt", "Edward Norton"},
			Popularity: 90, PosterPath: "/fightclub.jpg"},
		{TMDBID: 807, Title: "Se7en", Genres: []string{"Crime", "Thriller"},
			Overview: "Two detectives hunt a killer who uses the seven deadly sins.",
			Director: "David Fincher", Cast: []string{"Brad Pitt", "Morgan Freeman"},
			Popularity: 50, PosterPath: "/se7en.jpg"},
	}
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "1GB"})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ids := make(map[int64]int64)
	for _, item := range catalogFixture() {
		id, err := db.UpsertMovie(context.Background(), &item)
		if err != nil {
			t.Fatalf("UpsertMovie(%q) error = %v", item.Title, err)
		}
		ids[item.TMDBID] = id
	}

	cfg := recommend.DefaultConfig()
	engine, err := recommend.NewEngine(recommend.Scorers{
		Content:       algorithms.NewContent(),
		Collaborative: algorithms.NewCollaborative(db, cfg.Limits.Neighbors),
		Crew:          algorithms.NewCrew(db),
		Franchise:     algorithms.NewFranchise(db),
		Popularity:    algorithms.NewPopularity(db),
	}, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	store, err := storage.NewFileStore(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	trainer := recommend.NewTrainer(db, algorithms.NewTFIDF(algorithms.TFIDFConfig{}), store, engine, cfg.Training, zerolog.Nop())

	remote := &fakeTMDB{}
	deps := Deps{
		Store:   db,
		Engine:  engine,
		Trainer: trainer,
		TMDB:    remote,
		Limits:  Limits{Default: 10, Max: 50},
	}
	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	for _, opt := range opts {
		opt(&deps, mwCfg)
	}

	h, err := NewHandler(deps, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	return &testServer{
		db:      db,
		engine:  engine,
		remote:  remote,
		router:  NewRouter(h, NewChiMiddleware(mwCfg)),
		ids:     ids,
	}
}

// envelope mirrors APIResponse with Data left raw for typed decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec, env
}

func (s *testServer) results(t *testing.T, path string) []MovieResult {
	t.Helper()
	rec, env := s.do(t, http.MethodGet, path, "")
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("GET %s: status = %d, body = %s", path, rec.Code, rec.Body.String())
	}
	var out []MovieResult
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("GET %s: decode data: %v", path, err)
	}
	return out
}

func (s *testServer) train(t *testing.T) {
	t.Helper()
	rec, _ := s.do(t, http.MethodPost, "/api/v1/admin/train", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("train: status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func (s *testServer) review(t *testing.T, userID, tmdbID int64, rating int) {
	t.Helper()
	_, err := s.db.AddReview(context.Background(), database.Review{UserID: userID, MovieID: s.ids[tmdbID], Rating: rating})
	if err != nil {
		t.Fatalf("AddReview() error = %v", err)
	}
}

func tmdbIDs(results []MovieResult) []int64 {
	out := make([]int64, len(results))
	for i := range results {
		out[i] = results[i].ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
