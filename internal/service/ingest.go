package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/cloo-solutions/tutorai/internal/domain"
	"github.com/cloo-solutions/tutorai/internal/telemetry"
)

// PageExtractor turns an uploaded document into pages.
type PageExtractor interface {
	ExtractPages(data []byte) ([]domain.Page, error)
}

// PageExtractorFunc adapts a plain function to PageExtractor.
type PageExtractorFunc func(data []byte) ([]domain.Page, error)

func (f PageExtractorFunc) ExtractPages(data []byte) ([]domain.Page, error) { return f(data) }

// TranscriptFetcher turns a video URL into transcript pages.
type TranscriptFetcher interface {
	FetchPages(ctx context.Context, url string) ([]domain.Page, error)
}

// UploadStore archives raw uploads.
type UploadStore interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}

type IngestConfig struct {
	Chunk   ChunkConfig
	Retries int
}

// IngestResult reports what one ingestion added.
type IngestResult struct {
	Source      string
	Pages       int
	ChunksAdded int
	Total       int
}

// IngestService chunks, embeds and appends sources to the knowledge base.
// Re-ingesting a source appends its chunks again.
type IngestService struct {
	kb          *KnowledgeBase
	embedder    Embedder
	extractor   PageExtractor
	transcripts TranscriptFetcher
	uploads     UploadStore
	cfg         IngestConfig
}

// NewIngestService creates an IngestService. uploads may be nil to skip archiving.
func NewIngestService(
	kb *KnowledgeBase,
	embedder Embedder,
	extractor PageExtractor,
	transcripts TranscriptFetcher,
	uploads UploadStore,
	cfg IngestConfig,
) *IngestService {
	return &IngestService{
		kb:          kb,
		embedder:    embedder,
		extractor:   extractor,
		transcripts: transcripts,
		uploads:     uploads,
		cfg:         cfg,
	}
}

// IngestPDF archives the upload, extracts its pages and appends their chunks.
func (s *IngestService) IngestPDF(ctx context.Context, filename string, data []byte) (*IngestResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "IngestService.IngestPDF", telemetry.SpanAttributes{
		Source:    filename,
		Operation: "ingest_pdf",
	})
	defer span.End()

	if len(data) == 0 {
		err := domain.NewDomainError(domain.ErrCodeValidation, "uploaded file is empty")
		span.SetError(err)
		return nil, err
	}

	if s.uploads != nil {
		location, err := s.uploads.Save(ctx, filename, data)
		if err != nil {
			log.Warn().Err(err).Str("source", filename).Msg("failed to archive upload")
		} else {
			log.Debug().Str("source", filename).Str("location", location).Msg("upload archived")
		}
	}

	pages, err := s.extractor.ExtractPages(data)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return s.ingestPages(ctx, span, filename, pages)
}

// IngestTranscript fetches a video transcript and appends its chunks.
func (s *IngestService) IngestTranscript(ctx context.Context, url string) (*IngestResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "IngestService.IngestTranscript", telemetry.SpanAttributes{
		Source:    url,
		Operation: "ingest_transcript",
	})
	defer span.End()

	pages, err := s.transcripts.FetchPages(ctx, url)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return s.ingestPages(ctx, span, url, pages)
}

// ingestPages chunks, embeds and appends pages, marking span on failure.
func (s *IngestService) ingestPages(ctx context.Context, span *telemetry.Span, source string, pages []domain.Page) (*IngestResult, error) {
	if len(pages) == 0 {
		err := domain.EmptySource(fmt.Sprintf("%s has no pages", source))
		span.SetError(err)
		return nil, err
	}

	chunks := ChunkPages(pages, s.cfg.Chunk)
	if len(chunks) == 0 {
		err := domain.EmptySource(fmt.Sprintf("%s has no extractable text", source))
		span.SetError(err)
		return nil, err
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	var vectors [][]float32
	err := withRetry(ctx, s.cfg.Retries, func() error {
		var err error
		vectors, err = s.embedder.EmbedBatch(ctx, texts)
		return err
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	entries := make([]domain.EmbeddedChunk, len(chunks))
	for i, c := range chunks {
		entries[i] = domain.EmbeddedChunk{Chunk: c, Vector: vectors[i]}
	}

	total, err := s.kb.Append(entries)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	log.Info().
		Str("source", source).
		Int("pages", len(pages)).
		Int("chunks_added", len(entries)).
		Int("kb_size", total).
		Msg("source ingested")

	return &IngestResult{
		Source:      source,
		Pages:       len(pages),
		ChunksAdded: len(entries),
		Total:       total,
	}, nil
}
