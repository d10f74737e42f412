// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "splits on punctuation and drops single characters",
			doc:  "Action, Sci-Fi: a hero's journey",
			want: []string{"action", "sci", "fi", "hero", "journey"},
		},
		{
			name: "keeps digits",
			doc:  "Apollo 13 in 1995",
			want: []string{"apollo", "13", "in", "1995"},
		},
		{
			name: "underscore separates tokens",
			doc:  "snake_case ab_c",
			want: []string{"snake", "case", "ab"},
		},
		{
			name: "empty document",
			doc:  "",
			want: []string{},
		},
		{
			name: "unicode letters",
			doc:  "Amélie à Montmartre",
			want: []string{"amélie", "montmartre"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.doc)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.doc, got, tt.want)
			}
		})
	}
}

func TestTFIDF_Fit(t *testing.T) {
	docs := []string{
		"action adventure the hero saves the city",
		"drama romance a love story in the city",
		"",
		"action thriller the hero returns",
	}

	v := NewTFIDF(TFIDFConfig{})
	model, vectors := v.Fit(docs)

	t.Run("one vector per document", func(t *testing.T) {
		if len(vectors) != len(docs) {
			t.Fatalf("len(vectors) = %d, want %d", len(vectors), len(docs))
		}
	})

	t.Run("stop words excluded", func(t *testing.T) {
		for _, term := range model.Terms {
			if _, stop := englishStopWords[term]; stop {
				t.Errorf("vocabulary contains stop word %q", term)
			}
		}
	})

	t.Run("terms sorted alphabetically", func(t *testing.T) {
		for i := 1; i < len(model.Terms); i++ {
			if model.Terms[i-1] >= model.Terms[i] {
				t.Fatalf("terms not sorted at %d: %q >= %q", i, model.Terms[i-1], model.Terms[i])
			}
		}
	})

	t.Run("empty document yields zero vector", func(t *testing.T) {
		if len(vectors[2].Indices) != 0 {
			t.Errorf("empty document has %d non-zero entries", len(vectors[2].Indices))
		}
		if vectors[2].Norm() != 0 {
			t.Errorf("empty document norm = %f, want 0", vectors[2].Norm())
		}
	})

	t.Run("non-empty vectors are L2 normalized", func(t *testing.T) {
		for _, i := range []int{0, 1, 3} {
			if n := vectors[i].Norm(); math.Abs(n-1) > 1e-6 {
				t.Errorf("vector %d norm = %f, want 1", i, n)
			}
		}
	})

	t.Run("smoothed idf", func(t *testing.T) {
		col := -1
		for j, term := range model.Terms {
			if term == "hero" {
				col = j
			}
		}
		if col < 0 {
			t.Fatal("hero missing from vocabulary")
		}
		want := math.Log(5.0/3.0) + 1
		if math.Abs(model.IDF[col]-want) > 1e-12 {
			t.Errorf("idf(hero) = %f, want %f", model.IDF[col], want)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		model2, vectors2 := NewTFIDF(TFIDFConfig{}).Fit(docs)
		if !reflect.DeepEqual(model, model2) {
			t.Error("model differs between runs")
		}
		if !reflect.DeepEqual(vectors, vectors2) {
			t.Error("vectors differ between runs")
		}
	})
}

func TestTFIDF_VocabularyCap(t *testing.T) {
	docs := []string{
		"alpha alpha alpha beta beta gamma",
		"alpha beta delta",
		"epsilon",
	}

	model, vectors := NewTFIDF(TFIDFConfig{MaxFeatures: 2}).Fit(docs)

	want := []string{"alpha", "beta"}
	if !reflect.DeepEqual(model.Terms, want) {
		t.Fatalf("Terms = %v, want %v", model.Terms, want)
	}
	if len(vectors[2].Indices) != 0 {
		t.Errorf("document with only pruned terms should be zero, got %v", vectors[2])
	}
}

func TestTFIDF_CapTieBreaksAlphabetically(t *testing.T) {
	docs := []string{"zeta yota kappa", "lambda"}

	model, _ := NewTFIDF(TFIDFConfig{MaxFeatures: 2}).Fit(docs)

	want := []string{"kappa", "lambda"}
	if !reflect.DeepEqual(model.Terms, want) {
		t.Errorf("Terms = %v, want %v", model.Terms, want)
	}
}

func TestTFIDF_StopWordsDisabled(t *testing.T) {
	model, _ := NewTFIDF(TFIDFConfig{StopWords: "none"}).Fit([]string{"the hero"})

	want := []string{"hero", "the"}
	if !reflect.DeepEqual(model.Terms, want) {
		t.Errorf("Terms = %v, want %v", model.Terms, want)
	}
}

func TestTransform_MatchesFit(t *testing.T) {
	docs := []string{"space opera with robots", "robots in love"}
	model, vectors := NewTFIDF(TFIDFConfig{}).Fit(docs)

	got := Transform(model, docs[1])
	if !reflect.DeepEqual(got, vectors[1]) {
		t.Errorf("Transform = %v, want %v", got, vectors[1])
	}

	unseen := Transform(model, "completely unrelated words")
	if len(unseen.Indices) != 0 {
		t.Errorf("out-of-vocabulary text should transform to zero vector, got %v", unseen)
	}
}
