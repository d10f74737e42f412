// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// SparseVector is a non-negative vector stored as parallel index/value
// slices. Indices are strictly ascending.
type SparseVector struct {
	Indices []int32
	Values  []float32
}

// Norm returns the L2 norm of the vector.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of two sparse vectors.
func (v SparseVector) Dot(o SparseVector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			dot += float64(v.Values[i]) * float64(o.Values[j])
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return dot
}

// VocabularyModel is the fitted TF-IDF model: the term for each column and
// its inverse document frequency.
type VocabularyModel struct {
	Terms       []string
	IDF         []float64
	MaxFeatures int
	StopWords   string
}

// Dim returns the vector dimensionality.
func (m VocabularyModel) Dim() int {
	return len(m.Terms)
}

// Artifact is the offline-built content representation: one vector per
// item plus the parallel item-id index and the model that produced them.
//
// An Artifact is immutable once published to an Engine.
type Artifact struct {
	Version   int64
	TrainedAt time.Time
	ItemIDs   []int64
	Vectors   []SparseVector
	Model     VocabularyModel

	indexOnce sync.Once
	index     map[int64]int
	norms     []float64
}

// NewArtifact assembles an artifact and validates its invariants.
func NewArtifact(version int64, trainedAt time.Time, ids []int64, vectors []SparseVector, model VocabularyModel) (*Artifact, error) {
	a := &Artifact{
		Version:   version,
		TrainedAt: trainedAt,
		ItemIDs:   ids,
		Vectors:   vectors,
		Model:     model,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the id/vector alignment and that every index falls inside
// the vocabulary.
func (a *Artifact) Validate() error {
	if len(a.ItemIDs) != len(a.Vectors) {
		return fmt.Errorf("artifact has %d ids but %d vectors", len(a.ItemIDs), len(a.Vectors))
	}
	if len(a.Model.IDF) != len(a.Model.Terms) {
		return fmt.Errorf("model has %d terms but %d idf weights", len(a.Model.Terms), len(a.Model.IDF))
	}
	dim := int32(a.Model.Dim()) //nolint:gosec // vocabulary is capped far below MaxInt32
	for row, v := range a.Vectors {
		if len(v.Indices) != len(v.Values) {
			return fmt.Errorf("vector %d has %d indices but %d values", row, len(v.Indices), len(v.Values))
		}
		for k, idx := range v.Indices {
			if idx < 0 || idx >= dim {
				return fmt.Errorf("vector %d index %d out of range [0,%d)", row, idx, dim)
			}
			if k > 0 && v.Indices[k-1] >= idx {
				return fmt.Errorf("vector %d indices not ascending", row)
			}
			if v.Values[k] < 0 {
				return fmt.Errorf("vector %d has negative weight", row)
			}
		}
	}
	return nil
}

// Len returns the number of items in the artifact.
func (a *Artifact) Len() int {
	return len(a.ItemIDs)
}

// IndexOf returns the row for an item id. The first row wins when an id
// repeats.
func (a *Artifact) IndexOf(itemID int64) (int, bool) {
	a.buildIndex()
	row, ok := a.index[itemID]
	return row, ok
}

// NormAt returns the cached L2 norm of a row.
func (a *Artifact) NormAt(row int) float64 {
	a.buildIndex()
	return a.norms[row]
}

func (a *Artifact) buildIndex() {
	a.indexOnce.Do(func() {
		a.index = make(map[int64]int, len(a.ItemIDs))
		for row, id := range a.ItemIDs {
			if _, dup := a.index[id]; !dup {
				a.index[id] = row
			}
		}
		a.norms = make([]float64, len(a.Vectors))
		for row, v := range a.Vectors {
			a.norms[row] = v.Norm()
		}
	})
}
