package service

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cloo-solutions/tutorai/internal/dialogue"
	"github.com/cloo-solutions/tutorai/internal/domain"
	"github.com/cloo-solutions/tutorai/internal/telemetry"
	"github.com/cloo-solutions/tutorai/internal/vectorindex"
)

const (
	// DefaultContextResults is how many retrieved chunks reach the prompt.
	DefaultContextResults    = 2
	DefaultCompletionTimeout = 90 * time.Second
)

// CompletionService streams a model answer for one assembled prompt.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) iter.Seq2[string, error]
}

// ChunkRetriever finds the chunks nearest to a question.
type ChunkRetriever interface {
	Retrieve(ctx context.Context, question string, idx *vectorindex.Index, topK int) ([]domain.RetrievalResult, error)
}

type ChatConfig struct {
	TopK              int
	ContextResults    int
	CompletionTimeout time.Duration
	Retries           int
}

type ChatInput struct {
	Question   string
	History    []domain.ChatTurn
	Difficulty domain.Difficulty
}

type ChatOutput struct {
	domain.DialogueResponse
	Sources []Source
}

// ChatService answers questions from the knowledge base.
type ChatService struct {
	kb         *KnowledgeBase
	retriever  ChunkRetriever
	completion CompletionService
	cfg        ChatConfig
}

func NewChatService(kb *KnowledgeBase, retriever ChunkRetriever, completion CompletionService, cfg ChatConfig) *ChatService {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.ContextResults <= 0 {
		cfg.ContextResults = DefaultContextResults
	}
	if cfg.CompletionTimeout <= 0 {
		cfg.CompletionTimeout = DefaultCompletionTimeout
	}
	return &ChatService{
		kb:         kb,
		retriever:  retriever,
		completion: completion,
		cfg:        cfg,
	}
}

// Chat retrieves context for the question and asks the completion model for
// a structured dialogue answer. An empty knowledge base answers with a fixed
// message before the question is validated; an empty retrieval also returns a
// fixed answer without calling the model.
func (s *ChatService) Chat(ctx context.Context, in ChatInput) (*ChatOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "ChatService.Chat", telemetry.SpanAttributes{
		Difficulty: string(in.Difficulty),
		Operation:  "chat",
	})
	defer span.End()

	idx := s.kb.Index()
	if idx == nil || idx.Len() == 0 {
		return &ChatOutput{DialogueResponse: domain.NoDocumentsResponse(), Sources: []Source{}}, nil
	}

	question := strings.TrimSpace(in.Question)
	if question == "" {
		err := domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "question is required", domain.ErrMissingRequiredField)
		span.SetError(err)
		return nil, err
	}
	for i, turn := range in.History {
		if !turn.Role.IsValid() {
			err := domain.NewDomainErrorWithCause(domain.ErrCodeValidation,
				fmt.Sprintf("history[%d]: invalid role %q", i, turn.Role), domain.ErrInvalidRole)
			span.SetError(err)
			return nil, err
		}
	}

	var results []domain.RetrievalResult
	err := withRetry(ctx, s.cfg.Retries, func() error {
		var err error
		results, err = s.retriever.Retrieve(ctx, question, idx, s.cfg.TopK)
		return err
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	if len(results) == 0 {
		return &ChatOutput{DialogueResponse: domain.NotCoveredResponse(), Sources: []Source{}}, nil
	}
	if len(results) > s.cfg.ContextResults {
		results = results[:s.cfg.ContextResults]
	}

	prompt := TeacherPrompt(BuildContext(results), question, FormatHistory(in.History), in.Difficulty)
	log.Debug().Str("prompt", prompt).Msg("completion prompt")

	var raw string
	err = withRetry(ctx, s.cfg.Retries, func() error {
		var err error
		raw, err = s.complete(ctx, prompt)
		return err
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return &ChatOutput{
		DialogueResponse: dialogue.Parse(raw),
		Sources:          SanitizeSources(results),
	}, nil
}

// complete drains the completion stream into one string.
func (s *ChatService) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CompletionTimeout)
	defer cancel()

	var sb strings.Builder
	for fragment, err := range s.completion.Complete(ctx, prompt) {
		if err != nil {
			return "", domain.ModelUnavailable("completion", err)
		}
		sb.WriteString(fragment)
	}
	if err := ctx.Err(); err != nil {
		return "", domain.ModelUnavailable("completion", err)
	}
	return sb.String(), nil
}
