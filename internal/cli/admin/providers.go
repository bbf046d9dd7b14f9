package admin

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/cloo-solutions/tutorai/internal/config"
	"github.com/cloo-solutions/tutorai/internal/embedding"
	"github.com/cloo-solutions/tutorai/internal/gemini"
	"github.com/cloo-solutions/tutorai/internal/ollama"
	"github.com/cloo-solutions/tutorai/internal/openai"
	"github.com/cloo-solutions/tutorai/internal/service"
)

// providers builds each model client at most once so embeddings and
// completions can share a connection when they use the same backend.
type providers struct {
	cfg    *config.Config
	openai *openai.Client
	gemini *gemini.Client
	ollama *ollama.Client
}

func newProviders(cfg *config.Config) *providers {
	return &providers{cfg: cfg}
}

func (p *providers) Embedding(ctx context.Context) (embedding.Provider, error) {
	switch p.cfg.EmbeddingProvider {
	case config.ProviderOpenAI:
		return p.openAI(), nil
	case config.ProviderGemini:
		return p.geminiClient(ctx)
	case config.ProviderOllama:
		return p.ollamaClient()
	case config.ProviderHashing:
		return embedding.NewHashingProvider(p.cfg.HashingDimensions), nil
	}
	return nil, fmt.Errorf("unknown embedding provider %q", p.cfg.EmbeddingProvider)
}

func (p *providers) Completion(ctx context.Context) (service.CompletionService, error) {
	switch p.cfg.CompletionProvider {
	case config.ProviderOpenAI:
		return p.openAI(), nil
	case config.ProviderGemini:
		return p.geminiClient(ctx)
	case config.ProviderOllama:
		return p.ollamaClient()
	}
	return nil, fmt.Errorf("unknown completion provider %q", p.cfg.CompletionProvider)
}

func (p *providers) openAI() *openai.Client {
	if p.openai == nil {
		p.openai = openai.NewClientWithConfig(openai.Config{
			APIKey:         p.cfg.OpenAIAPIKey,
			BaseURL:        p.cfg.OpenAIBaseURL,
			EmbeddingModel: goopenai.EmbeddingModel(p.embeddingModel(config.ProviderOpenAI)),
			ChatModel:      p.completionModel(config.ProviderOpenAI),
		})
	}
	return p.openai
}

func (p *providers) geminiClient(ctx context.Context) (*gemini.Client, error) {
	if p.gemini == nil {
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:         p.cfg.GeminiAPIKey,
			ChatModel:      p.completionModel(config.ProviderGemini),
			EmbeddingModel: p.embeddingModel(config.ProviderGemini),
		})
		if err != nil {
			return nil, err
		}
		p.gemini = client
	}
	return p.gemini, nil
}

func (p *providers) ollamaClient() (*ollama.Client, error) {
	if p.ollama == nil {
		client, err := ollama.NewClient(ollama.Config{
			URL:            p.cfg.OllamaURL,
			ChatModel:      p.completionModel(config.ProviderOllama),
			EmbeddingModel: p.embeddingModel(config.ProviderOllama),
		})
		if err != nil {
			return nil, err
		}
		p.ollama = client
	}
	return p.ollama, nil
}

// Model overrides apply only to the provider they were configured for;
// an empty name selects the client's default.
func (p *providers) embeddingModel(provider string) string {
	if p.cfg.EmbeddingProvider == provider {
		return p.cfg.EmbeddingModel
	}
	return ""
}

func (p *providers) completionModel(provider string) string {
	if p.cfg.CompletionProvider == provider {
		return p.cfg.CompletionModel
	}
	return ""
}
