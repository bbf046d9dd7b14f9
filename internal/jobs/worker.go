package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// JobProcessor defines the interface for processing jobs
type JobProcessor interface {
	ProcessJobs(ctx context.Context) error
}

// Drainable is implemented by processors whose work runs out. The worker
// exits once Pending reports false.
type Drainable interface {
	Pending() bool
}

// Worker represents a background job worker
type Worker struct {
	processor    JobProcessor
	pollInterval time.Duration
	stopChan     chan struct{}
	doneChan     chan struct{}
}

// NewWorker creates a new Worker instance
func NewWorker(processor JobProcessor, pollInterval time.Duration) *Worker {
	return &Worker{
		processor:    processor,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
		doneChan:     make(chan struct{}),
	}
}

// Start processes once immediately, then on every tick until stopped or,
// for a Drainable processor, until nothing is pending.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	defer close(w.doneChan)

	log.Info().Dur("poll_interval", w.pollInterval).Msg("worker started")
	w.process(ctx)

	for !w.drained() {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker stopped: context cancelled")
			return
		case <-w.stopChan:
			log.Info().Msg("worker stopped: stop signal received")
			return
		case <-ticker.C:
			w.process(ctx)
		}
	}
	log.Info().Msg("worker stopped: nothing pending")
}

func (w *Worker) drained() bool {
	d, ok := w.processor.(Drainable)
	return ok && !d.Pending()
}

func (w *Worker) process(ctx context.Context) {
	if err := w.processor.ProcessJobs(ctx); err != nil {
		log.Error().Err(err).Msg("error processing jobs")
	}
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	close(w.stopChan)
	<-w.doneChan
	log.Info().Msg("worker shutdown complete")
}
