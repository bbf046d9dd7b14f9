package handlers

import (
	"context"

	"github.com/cloo-solutions/tutorai/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Chat(ctx context.Context, input service.ChatInput) (*service.ChatOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatOutput), args.Error(1)
}

type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) IngestPDF(ctx context.Context, filename string, data []byte) (*service.IngestResult, error) {
	args := m.Called(ctx, filename, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IngestResult), args.Error(1)
}

func (m *MockIngestService) IngestTranscript(ctx context.Context, url string) (*service.IngestResult, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IngestResult), args.Error(1)
}

type stubStats service.KnowledgeStats

func (s stubStats) Stats() service.KnowledgeStats { return service.KnowledgeStats(s) }
