package service

import (
	"sync"

	"github.com/cloo-solutions/tutorai/internal/domain"
	"github.com/cloo-solutions/tutorai/internal/vectorindex"
)

// KnowledgeStats summarizes the shared knowledge base.
type KnowledgeStats struct {
	Chunks    int `json:"chunks"`
	Dimension int `json:"dimension"`
}

// KnowledgeBase owns the process-wide vector index. The index is created on
// the first append and its dimension is fixed from then on. Appends are
// serialized so each ingestion lands as one contiguous batch.
type KnowledgeBase struct {
	mu    sync.Mutex
	index *vectorindex.Index
}

func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{}
}

// Append adds entries in order and returns the new total. A batch that does
// not match the established dimension is rejected whole.
func (kb *KnowledgeBase) Append(entries []domain.EmbeddedChunk) (int, error) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	if len(entries) == 0 {
		return kb.lenLocked(), nil
	}

	idx := kb.index
	if idx == nil {
		var err error
		idx, err = vectorindex.New(len(entries[0].Vector))
		if err != nil {
			return 0, err
		}
	}
	if err := idx.Add(entries); err != nil {
		return kb.lenLocked(), err
	}
	kb.index = idx
	return idx.Len(), nil
}

// Index returns the current index, or nil before the first append.
func (kb *KnowledgeBase) Index() *vectorindex.Index {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.index
}

func (kb *KnowledgeBase) Stats() KnowledgeStats {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	if kb.index == nil {
		return KnowledgeStats{}
	}
	return KnowledgeStats{Chunks: kb.index.Len(), Dimension: kb.index.Dimension()}
}

func (kb *KnowledgeBase) lenLocked() int {
	if kb.index == nil {
		return 0
	}
	return kb.index.Len()
}
