package service

import (
	"context"
	"fmt"

	"github.com/cloo-solutions/tutorai/internal/domain"
	"github.com/cloo-solutions/tutorai/internal/vectorindex"
)

// DefaultTopK is the number of candidates retrieved per question.
const DefaultTopK = 5

// Embedder computes vectors for chunk batches and single queries.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	EmbedOne(ctx context.Context, text string) ([]float32, error)
}

// Retriever finds the chunks nearest to a question.
type Retriever struct {
	embedder Embedder
}

func NewRetriever(embedder Embedder) *Retriever {
	return &Retriever{embedder: embedder}
}

// Retrieve embeds question and returns up to topK results in ascending
// distance. Chunk metadata is read from the index entries, so positions and
// chunks cannot drift apart. A nil or empty index yields no results and no
// embedding call.
func (r *Retriever) Retrieve(ctx context.Context, question string, idx *vectorindex.Index, topK int) ([]domain.RetrievalResult, error) {
	if idx == nil || idx.Len() == 0 {
		return []domain.RetrievalResult{}, nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	query, err := r.embedder.EmbedOne(ctx, question)
	if err != nil {
		return nil, err
	}

	matches, err := idx.Search(query, topK)
	if err != nil {
		return nil, err
	}

	results := make([]domain.RetrievalResult, 0, len(matches))
	for _, m := range matches {
		entry, ok := idx.Entry(m.Position)
		if !ok {
			return nil, domain.NewDomainError(domain.ErrCodeInternalError,
				fmt.Sprintf("index position %d out of range", m.Position))
		}
		results = append(results, domain.RetrievalResult{Chunk: entry.Chunk, Score: m.Distance})
	}
	return results, nil
}
