package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cloo-solutions/tutorai/internal/api/handlers"
	"github.com/cloo-solutions/tutorai/internal/config"
	"github.com/cloo-solutions/tutorai/internal/embedding"
	"github.com/cloo-solutions/tutorai/internal/jobs"
	"github.com/cloo-solutions/tutorai/internal/pdftext"
	"github.com/cloo-solutions/tutorai/internal/server"
	"github.com/cloo-solutions/tutorai/internal/service"
	"github.com/cloo-solutions/tutorai/internal/storage"
	"github.com/cloo-solutions/tutorai/internal/telemetry"
	"github.com/cloo-solutions/tutorai/internal/youtube"
)

const bootstrapPollInterval = 30 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the tutor API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-bootstrap", false, "Skip ingesting the default sources on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	telemetry.SetupLogger(cfg.Debug, cfg.LogPretty)

	if cfg.SentryDSN != "" {
		// 10% sampling in production, everything in development
		sampleRate := 0.1
		if cfg.Environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Warn().Err(err).Msg("telemetry init failed, continuing without tracing")
		} else {
			defer shutdownTelemetry()
		}
	}

	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetString("port")
	}

	app, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}

	var bootstrapWorker *jobs.Worker
	noBootstrap, _ := cmd.Flags().GetBool("no-bootstrap")
	if !noBootstrap && app.bootstrap.Pending() {
		bootstrapWorker = jobs.NewWorker(app.bootstrap, bootstrapPollInterval)
		go bootstrapWorker.Start(ctx)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).
			Str("embedding_provider", cfg.EmbeddingProvider).
			Str("completion_provider", cfg.CompletionProvider).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down...")

	if bootstrapWorker != nil {
		bootstrapWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited")
	return nil
}

type app struct {
	kb        *service.KnowledgeBase
	ingest    *service.IngestService
	chat      *service.ChatService
	bootstrap *jobs.BootstrapProcessor
	router    http.Handler
}

// buildApp wires providers, services and the router from configuration.
func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	models := newProviders(cfg)

	embedProvider, err := models.Embedding(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}
	completion, err := models.Completion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion provider: %w", err)
	}

	uploads, err := buildUploadStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	batcher := embedding.NewBatcher(embedProvider, embedding.Options{
		BatchSize:   cfg.EmbeddingBatchSize,
		Concurrency: cfg.EmbeddingConcurrency,
		Timeout:     cfg.EmbeddingTimeout,
	})

	kb := service.NewKnowledgeBase()
	transcripts := youtube.NewFetcher(youtube.NewCaptionSource(), youtube.DefaultPageThreshold)
	ingestSvc := service.NewIngestService(kb, batcher, service.PageExtractorFunc(pdftext.ExtractPages), transcripts, uploads, service.IngestConfig{
		Chunk:   service.ChunkConfig{MaxChars: cfg.ChunkMaxChars},
		Retries: cfg.ModelRetries,
	})
	chatSvc := service.NewChatService(kb, service.NewRetriever(batcher), completion, service.ChatConfig{
		TopK:              cfg.RetrievalTopK,
		ContextResults:    cfg.ContextResults,
		CompletionTimeout: cfg.CompletionTimeout,
		Retries:           cfg.ModelRetries,
	})

	router := server.NewRouter(server.RouterConfig{
		ChatHandler:    handlers.NewChatHandler(chatSvc),
		IngestHandler:  handlers.NewIngestHandler(ingestSvc),
		StatusHandler:  handlers.NewStatusHandler(kb),
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxUploadBytes(),
	})

	return &app{
		kb:        kb,
		ingest:    ingestSvc,
		chat:      chatSvc,
		bootstrap: jobs.NewBootstrapProcessor(ingestSvc, cfg.DefaultPDF, cfg.DefaultYouTube),
		router:    router,
	}, nil
}

func buildUploadStore(ctx context.Context, cfg *config.Config) (service.UploadStore, error) {
	if !cfg.HasS3() {
		log.Info().Str("dir", cfg.UploadDir).Msg("archiving uploads on disk")
		return storage.NewDisk(cfg.UploadDir), nil
	}

	s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKey,
		SecretAccessKey: cfg.S3SecretKey,
		Bucket:          cfg.S3Bucket,
		UsePathStyle:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}
	if err := s3Client.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure S3 bucket: %w", err)
	}
	log.Info().Str("bucket", cfg.S3Bucket).Msg("S3 bucket ready")
	return s3Client, nil
}
