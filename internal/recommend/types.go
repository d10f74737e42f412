// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrArtifactAbsent is returned by an ArtifactStore when no usable artifact
// exists. Missing, truncated and checksum-failing artifacts all map to it.
var ErrArtifactAbsent = errors.New("recommend: artifact absent")

// Item represents a catalog entry (a movie).
type Item struct {
	// ID is the stable internal catalog identifier.
	ID int64 `json:"id"`

	// TMDBID is the public identifier used by the HTTP layer.
	TMDBID int64 `json:"tmdb_id"`

	Title       string   `json:"title"`
	Overview    string   `json:"overview,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	Runtime     int      `json:"runtime,omitempty"`
	Language    string   `json:"language,omitempty"`
	PosterPath  string   `json:"poster_path,omitempty"`

	// Director is empty when the catalog has no director for the item.
	Director string `json:"director,omitempty"`

	// Cast is ordered billing; an empty slice means no cast is known.
	Cast []string `json:"cast,omitempty"`

	// Popularity is non-negative; higher is more popular.
	Popularity float64 `json:"popularity"`
}

// HasDirector reports whether the item carries a director.
//
//nolint:gocritic // Item passed by value matches reader return types
func (i Item) HasDirector() bool {
	return strings.TrimSpace(i.Director) != ""
}

// HasCast reports whether the item carries at least one non-blank cast name.
//
//nolint:gocritic // Item passed by value matches reader return types
func (i Item) HasCast() bool {
	for _, name := range i.Cast {
		if strings.TrimSpace(name) != "" {
			return true
		}
	}
	return false
}

// Document returns the text the vectorizer fits on: genre tags joined with
// whitespace followed by the overview, lower-cased.
//
//nolint:gocritic // Item passed by value matches reader return types
func (i Item) Document() string {
	var b strings.Builder
	if len(i.Genres) > 0 {
		b.WriteString(strings.Join(i.Genres, " "))
		b.WriteByte(' ')
	}
	b.WriteString(i.Overview)
	return strings.ToLower(b.String())
}

// Interaction is a single rating by a user for an item.
// Duplicate interactions are not collapsed; each contributes independently.
type Interaction struct {
	UserID int64 `json:"user_id"`
	ItemID int64 `json:"item_id"`
	Rating int   `json:"rating"`
}

// CatalogReader is read-only access to item records.
// GetItem returns (nil, nil) when the item does not exist.
type CatalogReader interface {
	GetItem(ctx context.Context, id int64) (*Item, error)
	ListItems(ctx context.Context) ([]Item, error)
	ListItemsByDirector(ctx context.Context, director string) ([]Item, error)
	FindItemsByTitleSubstring(ctx context.Context, s string) ([]Item, error)
	ListPopular(ctx context.Context, limit int) ([]Item, error)
}

// InteractionReader is read-only access to user interactions.
type InteractionReader interface {
	GetInteractionsByUser(ctx context.Context, userID int64) ([]Interaction, error)
	ListAllInteractions(ctx context.Context) ([]Interaction, error)
}

// ArtifactStore persists and loads the content artifact as one atomic unit.
// Load returns ErrArtifactAbsent when nothing usable is stored.
type ArtifactStore interface {
	Save(ctx context.Context, artifact *Artifact) error
	Load(ctx context.Context) (*Artifact, error)
}

// Vectorizer fits a vocabulary model over a corpus and returns one vector per
// document, in document order.
type Vectorizer interface {
	Fit(docs []string) (VocabularyModel, []SparseVector)
}

// ContentScorer ranks items by similarity inside an artifact snapshot.
type ContentScorer interface {
	RecommendSimilar(artifact *Artifact, itemID int64, topN int) []int64
}

// ItemScorer ranks items related to a seed item.
type ItemScorer interface {
	Recommend(ctx context.Context, itemID int64, topN int) ([]int64, error)
}

// UserScorer ranks items for a user.
type UserScorer interface {
	RecommendForUser(ctx context.Context, userID int64, topN int) ([]int64, error)
}

// PopularityScorer returns the globally most popular items.
type PopularityScorer interface {
	Top(ctx context.Context, n int) ([]int64, error)
}

// Scorers groups the signals the Engine combines.
type Scorers struct {
	Content       ContentScorer
	Collaborative UserScorer
	Crew          ItemScorer
	Franchise     ItemScorer
	Popularity    PopularityScorer
}

// HybridRequest selects the signals for a hybrid recommendation.
// A nil ItemID or UserID means the caller has no such context.
type HybridRequest struct {
	ItemID *int64
	UserID *int64
	TopN   int
}

// TrainingStatus describes the most recent artifact build.
type TrainingStatus struct {
	Loaded        bool      `json:"loaded"`
	Version       int64     `json:"version"`
	Items         int       `json:"items"`
	Vocabulary    int       `json:"vocabulary"`
	LastTrainedAt time.Time `json:"last_trained_at"`
}
