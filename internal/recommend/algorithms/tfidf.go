// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// TFIDF fits a bounded-vocabulary TF-IDF model.
//
// Tokens are runs of two or more letters, digits or underscores. Term
// weights are raw counts scaled by the smoothed inverse document frequency
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// and each document vector is L2-normalized. When the vocabulary exceeds
// MaxFeatures the most frequent terms across the corpus are kept, ties
// broken alphabetically. Columns are ordered alphabetically by term.
//
// Fit is deterministic: the same corpus and configuration always produce
// the same model and vectors.
type TFIDF struct {
	maxFeatures int
	stopWords   string
	stopSet     map[string]struct{}
}

// TFIDFConfig contains configuration for the vectorizer.
type TFIDFConfig struct {
	// MaxFeatures caps the vocabulary size. Default: 5000.
	MaxFeatures int

	// StopWords names the stop-word list. Default: "english".
	// Use "none" to disable filtering.
	StopWords string
}

// NewTFIDF creates a new TF-IDF vectorizer.
func NewTFIDF(cfg TFIDFConfig) *TFIDF {
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = 5000
	}
	if cfg.StopWords == "" {
		cfg.StopWords = StopWordsEnglish
	}
	return &TFIDF{
		maxFeatures: cfg.MaxFeatures,
		stopWords:   cfg.StopWords,
		stopSet:     stopWordList(cfg.StopWords),
	}
}

// Fit learns the vocabulary from docs and returns one vector per document.
// Empty documents yield empty (all-zero) vectors in their original position.
func (v *TFIDF) Fit(docs []string) (recommend.VocabularyModel, []recommend.SparseVector) {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	tf := make(map[string]int)

	for i, doc := range docs {
		c := make(map[string]int)
		for _, tok := range Tokenize(doc) {
			if _, stop := v.stopSet[tok]; stop {
				continue
			}
			c[tok]++
		}
		for term, n := range c {
			df[term]++
			tf[term] += n
		}
		counts[i] = c
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}

	if len(terms) > v.maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if tf[terms[i]] != tf[terms[j]] {
				return tf[terms[i]] > tf[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	idf := make([]float64, len(terms))
	for j, term := range terms {
		idf[j] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	model := recommend.VocabularyModel{
		Terms:       terms,
		IDF:         idf,
		MaxFeatures: v.maxFeatures,
		StopWords:   v.stopWords,
	}

	columns := columnIndex(terms)
	vectors := make([]recommend.SparseVector, len(docs))
	for i, c := range counts {
		vectors[i] = weigh(c, columns, idf)
	}

	return model, vectors
}

// Transform vectorizes a new document with a fitted model. Terms outside
// the vocabulary are ignored.
func Transform(model recommend.VocabularyModel, doc string) recommend.SparseVector {
	stop := stopWordList(model.StopWords)
	c := make(map[string]int)
	for _, tok := range Tokenize(doc) {
		if _, skip := stop[tok]; skip {
			continue
		}
		c[tok]++
	}
	return weigh(c, columnIndex(model.Terms), model.IDF)
}

// Tokenize lower-cases doc and splits it into tokens of at least two
// letters or digits.
func Tokenize(doc string) []string {
	fields := strings.FieldsFunc(strings.ToLower(doc), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func columnIndex(terms []string) map[string]int32 {
	columns := make(map[string]int32, len(terms))
	for j, term := range terms {
		columns[term] = int32(j) //nolint:gosec // vocabulary is capped far below MaxInt32
	}
	return columns
}

// weigh converts term counts into an L2-normalized TF-IDF vector.
func weigh(counts map[string]int, columns map[string]int32, idf []float64) recommend.SparseVector {
	type entry struct {
		col int32
		w   float64
	}

	entries := make([]entry, 0, len(counts))
	var sumSq float64
	for term, n := range counts {
		col, ok := columns[term]
		if !ok {
			continue
		}
		w := float64(n) * idf[col]
		entries = append(entries, entry{col: col, w: w})
		sumSq += w * w
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].col < entries[j].col })

	vec := recommend.SparseVector{
		Indices: make([]int32, len(entries)),
		Values:  make([]float32, len(entries)),
	}
	norm := math.Sqrt(sumSq)
	for k, e := range entries {
		vec.Indices[k] = e.col
		if norm > 0 {
			vec.Values[k] = float32(e.w / norm)
		}
	}
	return vec
}
