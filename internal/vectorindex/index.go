// Package vectorindex provides an append-only, exact nearest-neighbour index
// over embedded chunks using squared Euclidean distance.
package vectorindex

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cloo-solutions/tutorai/internal/domain"
)

// Match is one search hit: the entry position and its squared L2 distance.
type Match struct {
	Position int
	Distance float64
}

// Index is a flat scan over every stored vector. Entries are never removed or
// mutated, so positions returned by Search stay valid as the index grows.
type Index struct {
	mu        sync.RWMutex
	dimension int
	entries   []domain.EmbeddedChunk
}

// New creates an empty index bound to dimension.
func New(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, fmt.Sprintf("invalid index dimension %d", dimension))
	}
	return &Index{dimension: dimension}, nil
}

// Dimension returns the vector dimension the index was created with.
func (x *Index) Dimension() int { return x.dimension }

// Len returns the number of stored entries.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Add appends entries in order. The whole batch is rejected when any vector
// has the wrong dimension.
func (x *Index) Add(entries []domain.EmbeddedChunk) error {
	for _, e := range entries {
		if len(e.Vector) != x.dimension {
			return domain.DimensionMismatch(x.dimension, len(e.Vector))
		}
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	x.entries = append(x.entries, entries...)
	return nil
}

// Entry returns the entry stored at pos.
func (x *Index) Entry(pos int) (domain.EmbeddedChunk, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if pos < 0 || pos >= len(x.entries) {
		return domain.EmbeddedChunk{}, false
	}
	return x.entries[pos], true
}

// Search returns up to topK entries closest to query in ascending distance.
// Equal distances keep insertion order.
func (x *Index) Search(query []float32, topK int) ([]Match, error) {
	if len(query) != x.dimension {
		return nil, domain.DimensionMismatch(x.dimension, len(query))
	}
	x.mu.RLock()
	defer x.mu.RUnlock()
	if topK <= 0 || len(x.entries) == 0 {
		return []Match{}, nil
	}
	matches := make([]Match, len(x.entries))
	for i := range x.entries {
		matches[i] = Match{Position: i, Distance: squaredL2(x.entries[i].Vector, query)}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Distance < matches[j].Distance })
	if topK > len(matches) {
		topK = len(matches)
	}
	return matches[:topK:topK], nil
}

func squaredL2(a, b []float32) float64 {
	sum := 0.0
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
