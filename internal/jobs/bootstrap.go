package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/cloo-solutions/tutorai/internal/service"
)

const (
	// MaxRetries is the maximum number of attempts for a default source
	MaxRetries = 3
)

// SourceKind says how a default source is ingested.
type SourceKind string

const (
	SourcePDF     SourceKind = "pdf"
	SourceYouTube SourceKind = "youtube"
)

// SourceStatus tracks a bootstrap job.
type SourceStatus string

const (
	SourceStatusPending   SourceStatus = "pending"
	SourceStatusCompleted SourceStatus = "completed"
	SourceStatusFailed    SourceStatus = "failed"
)

// Ingester is the ingestion surface the bootstrap drives.
type Ingester interface {
	IngestPDF(ctx context.Context, filename string, data []byte) (*service.IngestResult, error)
	IngestTranscript(ctx context.Context, url string) (*service.IngestResult, error)
}

// SourceJob is one default source to load at startup.
type SourceJob struct {
	Kind    SourceKind
	Ref     string
	Status  SourceStatus
	Retries int
	Error   string
}

var readFile = os.ReadFile

// BootstrapProcessor ingests configured default sources in the background.
// Failures are retried on later ticks and never stop the service.
type BootstrapProcessor struct {
	mu       sync.Mutex
	ingester Ingester
	jobs     []*SourceJob
}

// NewBootstrapProcessor queues the non-empty sources.
func NewBootstrapProcessor(ingester Ingester, defaultPDF, defaultYouTube string) *BootstrapProcessor {
	p := &BootstrapProcessor{ingester: ingester}
	if defaultPDF != "" {
		p.jobs = append(p.jobs, &SourceJob{Kind: SourcePDF, Ref: defaultPDF, Status: SourceStatusPending})
	}
	if defaultYouTube != "" {
		p.jobs = append(p.jobs, &SourceJob{Kind: SourceYouTube, Ref: defaultYouTube, Status: SourceStatusPending})
	}
	return p
}

// ProcessJobs implements the JobProcessor interface
func (p *BootstrapProcessor) ProcessJobs(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, job := range p.jobs {
		if job.Status != SourceStatusPending {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		p.processJob(ctx, job)
	}
	return nil
}

// Jobs returns a snapshot of the queued sources.
func (p *BootstrapProcessor) Jobs() []SourceJob {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]SourceJob, len(p.jobs))
	for i, j := range p.jobs {
		out[i] = *j
	}
	return out
}

// Pending reports whether any source still awaits ingestion.
func (p *BootstrapProcessor) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, j := range p.jobs {
		if j.Status == SourceStatusPending {
			return true
		}
	}
	return false
}

func (p *BootstrapProcessor) processJob(ctx context.Context, job *SourceJob) {
	result, err := p.ingest(ctx, job)
	if err != nil {
		p.handleJobFailure(job, err)
		return
	}
	job.Status = SourceStatusCompleted
	job.Error = ""
	log.Info().
		Str("kind", string(job.Kind)).
		Str("source", job.Ref).
		Int("chunks_added", result.ChunksAdded).
		Msg("default source ingested")
}

func (p *BootstrapProcessor) ingest(ctx context.Context, job *SourceJob) (*service.IngestResult, error) {
	switch job.Kind {
	case SourcePDF:
		data, err := readFile(job.Ref)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", job.Ref, err)
		}
		return p.ingester.IngestPDF(ctx, filepath.Base(job.Ref), data)
	case SourceYouTube:
		return p.ingester.IngestTranscript(ctx, job.Ref)
	default:
		return nil, fmt.Errorf("unknown source kind %q", job.Kind)
	}
}

// handleJobFailure handles a failed job with retry logic
func (p *BootstrapProcessor) handleJobFailure(job *SourceJob, jobErr error) {
	job.Retries++
	job.Error = jobErr.Error()

	if job.Retries >= MaxRetries {
		job.Status = SourceStatusFailed
		log.Warn().Err(jobErr).Str("source", job.Ref).Int("attempts", job.Retries).
			Msg("default source not loaded, giving up")
		return
	}

	log.Warn().Err(jobErr).Str("source", job.Ref).Int("attempt", job.Retries).Int("max", MaxRetries).
		Msg("default source not loaded, will retry")
}
