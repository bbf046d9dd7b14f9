package service

import (
	"context"
	"iter"

	"github.com/stretchr/testify/mock"

	"github.com/cloo-solutions/tutorai/internal/domain"
)

// MockEmbedder is a mock implementation of Embedder
type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *MockEmbedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// MockCompletion is a mock implementation of CompletionService
type MockCompletion struct {
	mock.Mock
}

func (m *MockCompletion) Complete(ctx context.Context, prompt string) iter.Seq2[string, error] {
	args := m.Called(ctx, prompt)
	return args.Get(0).(iter.Seq2[string, error])
}

// MockTranscriptFetcher is a mock implementation of TranscriptFetcher
type MockTranscriptFetcher struct {
	mock.Mock
}

func (m *MockTranscriptFetcher) FetchPages(ctx context.Context, url string) ([]domain.Page, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Page), args.Error(1)
}

// MockUploadStore is a mock implementation of UploadStore
type MockUploadStore struct {
	mock.Mock
}

func (m *MockUploadStore) Save(ctx context.Context, filename string, data []byte) (string, error) {
	args := m.Called(ctx, filename, data)
	return args.String(0), args.Error(1)
}

func fragments(err error, parts ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, p := range parts {
			if !yield(p, nil) {
				return
			}
		}
		if err != nil {
			yield("", err)
		}
	}
}

// keywordEmbedder maps each text to a vector counting a fixed keyword set,
// which makes nearest-neighbour order easy to reason about in tests.
type keywordEmbedder struct {
	keywords []string
	calls    int
}

func (e *keywordEmbedder) vector(text string) []float32 {
	v := make([]float32, len(e.keywords))
	for i, k := range e.keywords {
		if containsFold(text, k) {
			v[i] = 1
		}
	}
	return v
}

func (e *keywordEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.vector(t)
	}
	return out, nil
}

func (e *keywordEmbedder) EmbedOne(_ context.Context, text string) ([]float32, error) {
	e.calls++
	return e.vector(text), nil
}
