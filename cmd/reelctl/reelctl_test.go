// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/database"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/tmdb"
)

// writeTestConfig creates a config file pointing at a fresh database and
// artifact directory and seeds the catalog with items.
func writeTestConfig(t *testing.T, items ...recommend.Item) string {
	t.Helper()
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("CONFIG_PATH", "")

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "reelmatch.duckdb")

	db, err := database.New(&config.DatabaseConfig{Path: dbPath, MaxMemory: "512MB"})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	for i := range items {
		if _, err := db.UpsertMovie(context.Background(), &items[i]); err != nil {
			t.Fatalf("UpsertMovie() error = %v", err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	cfg := `database:
  path: ` + dbPath + `
  max_memory: 512MB
recommend:
  artifact_dir: ` + filepath.Join(dir, "artifacts") + `
logging:
  level: error
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func testCatalog() []recommend.Item {
	return []recommend.Item{
		{TMDBID: 603, Title: "The Matrix", Genres: []string{"Action", "Science Fiction"},
			Overview: "A hacker learns that reality is a simulation run by machines.",
			Director: "Lana Wachowski", Cast: []string{"Keanu Reeves"}, Popularity: 80},
		{TMDBID: 604, Title: "The Matrix Reloaded", Genres: []string{"Action", "Science Fiction"},
			Overview: "Neo fights the machines to free reality from the simulation.",
			Director: "Lana Wachowski", Cast: []string{"Keanu Reeves"}, Popularity: 60},
		{TMDBID: 550, Title: "Fight Club", Genres: []string{"Drama"},
			Overview: "An insomniac office worker starts an underground club.",
			Director: "David Fincher", Cast: []string{"Brad Pitt"}, Popularity: 90},
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRecommendCommands(t *testing.T) {
	cfgPath := writeTestConfig(t, testCatalog()...)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{"popular", []string{"recommend", "popular"}, []string{"550", "Fight Club", "603", "604"}, nil},
		{"popular limit", []string{"recommend", "popular", "-n", "1"}, []string{"Fight Club"}, []string{"The Matrix"}},
		{"crew", []string{"recommend", "crew", "603"}, []string{"The Matrix Reloaded"}, []string{"Fight Club"}},
		{"franchise", []string{"recommend", "franchise", "603"}, []string{"604"}, []string{"550"}},
		{"collaborative cold user", []string{"recommend", "collaborative", "9"}, []string{"no recommendations"}, nil},
		{"hybrid without artifact", []string{"recommend", "hybrid", "--movie", "603"}, []string{"The Matrix Reloaded"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"--config", cfgPath}, tt.args...)...)
			if err != nil {
				t.Fatalf("execute(%v) error = %v\n%s", tt.args, err, out)
			}
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(out, s) {
					t.Errorf("output unexpectedly contains %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestTrainThenContent(t *testing.T) {
	cfgPath := writeTestConfig(t, testCatalog()...)

	if _, err := execute(t, "--config", cfgPath, "recommend", "content", "603"); err == nil {
		t.Fatal("content before training should fail")
	}

	out, err := execute(t, "--config", cfgPath, "train")
	if err != nil {
		t.Fatalf("train error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "artifact v1: 3 movies") {
		t.Errorf("train output = %q", out)
	}

	out, err = execute(t, "--config", cfgPath, "train")
	if err != nil || !strings.Contains(out, "artifact v2") {
		t.Errorf("second train: err = %v, out = %q", err, out)
	}

	out, err = execute(t, "--config", cfgPath, "recommend", "content", "603", "-n", "1")
	if err != nil {
		t.Fatalf("content error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "The Matrix Reloaded") {
		t.Errorf("content output = %q, want The Matrix Reloaded", out)
	}
}

func TestCommandErrors(t *testing.T) {
	cfgPath := writeTestConfig(t, testCatalog()...)
	emptyCfg := writeTestConfig(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing config file", []string{"--config", "/nonexistent/reelmatch.yaml", "train"}, "config"},
		{"train empty catalog", []string{"--config", emptyCfg, "train"}, "reelctl seed"},
		{"unknown movie", []string{"--config", cfgPath, "recommend", "crew", "999"}, "not in the catalog"},
		{"invalid id", []string{"--config", cfgPath, "recommend", "franchise", "abc"}, "positive integer"},
		{"missing argument", []string{"--config", cfgPath, "recommend", "crew"}, "accepts 1 arg"},
		{"seed without api key", []string{"--config", cfgPath, "seed"}, "TMDB_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// fakeSource serves one page of movies with a director credit each.
type fakeSource struct {
	pageErr error
}

func (f fakeSource) PopularMovies(_ context.Context, page int) (*tmdb.MoviePage, error) {
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	if page > 1 {
		return &tmdb.MoviePage{Page: page}, nil
	}
	return &tmdb.MoviePage{Page: 1, Results: []tmdb.Movie{
		{ID: 27205, Title: "Inception", Overview: "A thief steals secrets through dreams.", GenreIDs: []int{28}, Popularity: 70},
		{ID: 157336, Title: "Interstellar", Overview: "Explorers travel through a wormhole.", GenreIDs: []int{878}, Popularity: 65},
	}}, nil
}

func (fakeSource) MovieCredits(_ context.Context, id int64) (*tmdb.Credits, error) {
	return &tmdb.Credits{ID: id, Crew: []tmdb.CrewMember{{Name: "Christopher Nolan", Job: "Director"}}}, nil
}

func (fakeSource) MovieGenres(context.Context) ([]tmdb.Genre, error) {
	return []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}}, nil
}

func TestAppSeed(t *testing.T) {
	cfgPath := writeTestConfig(t)

	cfg, err := loadConfig(&rootOptions{configPath: cfgPath})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	a, err := newApp(cfg)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer a.Close()

	var out bytes.Buffer
	if err := a.seed(context.Background(), fakeSource{}, 2, &out); err != nil {
		t.Fatalf("seed() error = %v", err)
	}
	if !strings.Contains(out.String(), "inserted 2") {
		t.Errorf("seed output = %q", out.String())
	}

	inception, err := a.db.GetItemByTMDBID(context.Background(), 27205)
	if err != nil || inception == nil {
		t.Fatalf("GetItemByTMDBID() = %v, %v", inception, err)
	}
	if inception.Director != "Christopher Nolan" || len(inception.Genres) != 1 || inception.Genres[0] != "Action" {
		t.Errorf("seeded item = %+v", inception)
	}

	ids, err := a.engine.RecommendByCrew(context.Background(), inception.ID, 10)
	if err != nil {
		t.Fatalf("RecommendByCrew() error = %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("crew recommendations = %v, want the other Nolan film", ids)
	}

	out.Reset()
	errUpstream := errors.New("tmdb unavailable")
	if err := a.seed(context.Background(), fakeSource{pageErr: errUpstream}, 1, &out); !errors.Is(err, errUpstream) {
		t.Errorf("seed() error = %v, want %v", err, errUpstream)
	}
}

func TestAppLimit(t *testing.T) {
	a := &app{cfg: &config.Config{Recommend: config.RecommendConfig{
		Limits: config.LimitsConfig{DefaultTopN: 10, MaxTopN: 50},
	}}}

	tests := []struct{ in, want int }{
		{0, 10},
		{-3, 10},
		{5, 5},
		{500, 50},
	}
	for _, tt := range tests {
		if got := a.limit(tt.in); got != tt.want {
			t.Errorf("limit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
