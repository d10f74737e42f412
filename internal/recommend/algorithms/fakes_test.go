// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"context"
	"sort"
	"strings"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// fakeCatalog is an in-memory recommend.CatalogReader.
type fakeCatalog struct {
	items []recommend.Item
	err   error
	calls map[string]int
}

func newFakeCatalog(items ...recommend.Item) *fakeCatalog {
	return &fakeCatalog{items: items, calls: make(map[string]int)}
}

func (f *fakeCatalog) GetItem(_ context.Context, id int64) (*recommend.Item, error) {
	f.calls["GetItem"]++
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) ListItems(_ context.Context) ([]recommend.Item, error) {
	f.calls["ListItems"]++
	if f.err != nil {
		return nil, f.err
	}
	return append([]recommend.Item(nil), f.items...), nil
}

func (f *fakeCatalog) ListItemsByDirector(_ context.Context, director string) ([]recommend.Item, error) {
	f.calls["ListItemsByDirector"]++
	if f.err != nil {
		return nil, f.err
	}
	var out []recommend.Item
	for i := range f.items {
		if f.items[i].Director == director {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindItemsByTitleSubstring(_ context.Context, s string) ([]recommend.Item, error) {
	f.calls["FindItemsByTitleSubstring"]++
	if f.err != nil {
		return nil, f.err
	}
	var out []recommend.Item
	for i := range f.items {
		if strings.Contains(strings.ToLower(f.items[i].Title), strings.ToLower(s)) {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListPopular(_ context.Context, limit int) ([]recommend.Item, error) {
	f.calls["ListPopular"]++
	if f.err != nil {
		return nil, f.err
	}
	out := append([]recommend.Item(nil), f.items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Popularity != out[j].Popularity {
			return out[i].Popularity > out[j].Popularity
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeInteractions is an in-memory recommend.InteractionReader.
type fakeInteractions struct {
	all []recommend.Interaction
	err error
}

func (f *fakeInteractions) GetInteractionsByUser(_ context.Context, userID int64) ([]recommend.Interaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []recommend.Interaction
	for _, in := range f.all {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (f *fakeInteractions) ListAllInteractions(_ context.Context) ([]recommend.Interaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]recommend.Interaction(nil), f.all...), nil
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
