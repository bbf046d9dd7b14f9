// Package ollama serves completions and embeddings from a local Ollama
// server through langchaingo.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const (
	DefaultURL            = "http://localhost:11434"
	DefaultChatModel      = "llama3.1"
	DefaultEmbeddingModel = "all-minilm"
)

var errStopped = errors.New("consumer stopped")

type Config struct {
	URL            string
	ChatModel      string
	EmbeddingModel string
}

// Client wraps a chat model and an embedder served by the same Ollama host.
type Client struct {
	llm      llms.Model
	embedder embeddings.Embedder
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}

	chat, err := ollama.New(ollama.WithServerURL(cfg.URL), ollama.WithModel(cfg.ChatModel))
	if err != nil {
		return nil, fmt.Errorf("create ollama chat model: %w", err)
	}
	embedLLM, err := ollama.New(ollama.WithServerURL(cfg.URL), ollama.WithModel(cfg.EmbeddingModel))
	if err != nil {
		return nil, fmt.Errorf("create ollama embedding model: %w", err)
	}
	embedder, err := embeddings.NewEmbedder(embedLLM)
	if err != nil {
		return nil, fmt.Errorf("create ollama embedder: %w", err)
	}
	return &Client{llm: chat, embedder: embedder}, nil
}

// EmbedTexts embeds texts with the configured embedding model.
func (c *Client) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := c.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	return vectors, nil
}

// Complete streams the answer to prompt. Models that do not stream yield the
// full answer once.
func (c *Client) Complete(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		streamed, stopped := false, false
		onChunk := func(_ context.Context, chunk []byte) error {
			if len(chunk) == 0 {
				return nil
			}
			streamed = true
			if !yield(string(chunk), nil) {
				stopped = true
				return errStopped
			}
			return nil
		}

		full, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithStreamingFunc(onChunk))
		if stopped {
			return
		}
		if err != nil {
			yield("", fmt.Errorf("ollama completion: %w", err))
			return
		}
		if !streamed && full != "" {
			yield(full, nil)
		}
	}
}
