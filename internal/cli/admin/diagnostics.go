package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloo-solutions/tutorai/internal/config"
	"github.com/cloo-solutions/tutorai/internal/embedding"
)

// ConfigCmd prints the effective configuration with secrets masked.
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long:  "Load configuration from the environment and .env, validate it and print it with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			outputFormat, _ := cmd.Flags().GetString("output")
			return printConfig(cmd.OutOrStdout(), cfg, outputFormat)
		},
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")

	return cmd
}

func configSummary(cfg *config.Config) [][2]string {
	return [][2]string{
		{"port", cfg.Port},
		{"embedding_provider", cfg.EmbeddingProvider},
		{"embedding_model", cfg.EmbeddingModel},
		{"completion_provider", cfg.CompletionProvider},
		{"completion_model", cfg.CompletionModel},
		{"chunk_max_chars", fmt.Sprint(cfg.ChunkMaxChars)},
		{"retrieval_top_k", fmt.Sprint(cfg.RetrievalTopK)},
		{"context_results", fmt.Sprint(cfg.ContextResults)},
		{"allowed_origins", strings.Join(cfg.AllowedOrigins, ",")},
		{"max_upload_mb", fmt.Sprint(cfg.MaxUploadMB)},
		{"openai_api_key", mask(cfg.OpenAIAPIKey)},
		{"gemini_api_key", mask(cfg.GeminiAPIKey)},
		{"ollama_url", cfg.OllamaURL},
		{"upload_dir", cfg.UploadDir},
		{"s3_endpoint", cfg.S3Endpoint},
		{"s3_bucket", cfg.S3Bucket},
		{"default_pdf", cfg.DefaultPDF},
		{"default_youtube", cfg.DefaultYouTube},
		{"sentry", fmt.Sprint(cfg.SentryDSN != "")},
		{"environment", cfg.Environment},
	}
}

func printConfig(w io.Writer, cfg *config.Config, outputFormat string) error {
	summary := configSummary(cfg)
	if outputFormat == "json" {
		data := make(map[string]string, len(summary))
		for _, kv := range summary {
			data[kv[0]] = kv[1]
		}
		jsonBytes, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(jsonBytes))
		return nil
	}

	for _, kv := range summary {
		if kv[1] == "" {
			continue
		}
		fmt.Fprintf(w, "%-20s %s\n", kv[0], kv[1])
	}
	return nil
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

// CheckCmd checks that the configured model providers answer.
func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check model providers",
		Long:  "Embed a sample sentence and request a short completion from the configured providers",
		RunE:  runCheck,
	}

	cmd.Flags().Duration("timeout", 60*time.Second, "Timeout for each provider call")
	cmd.Flags().Bool("skip-completion", false, "Only check the embedding provider")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	skipCompletion, _ := cmd.Flags().GetBool("skip-completion")
	out := cmd.OutOrStdout()

	models := newProviders(cfg)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	embedProvider, err := models.Embedding(ctx)
	if err != nil {
		return err
	}
	batcher := embedding.NewBatcher(embedProvider, embedding.Options{Timeout: timeout})
	vector, err := batcher.EmbedOne(ctx, "The mitochondria is the powerhouse of the cell.")
	if err != nil {
		return fmt.Errorf("embedding provider %s: %w", cfg.EmbeddingProvider, err)
	}
	fmt.Fprintf(out, "embedding  %-8s ok (dimension %d)\n", cfg.EmbeddingProvider, len(vector))

	if skipCompletion {
		return nil
	}

	completion, err := models.Completion(ctx)
	if err != nil {
		return err
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var sb strings.Builder
	for fragment, err := range completion.Complete(callCtx, "Reply with the single word: ready") {
		if err != nil {
			return fmt.Errorf("completion provider %s: %w", cfg.CompletionProvider, err)
		}
		sb.WriteString(fragment)
	}
	fmt.Fprintf(out, "completion %-8s ok (%q)\n", cfg.CompletionProvider, strings.TrimSpace(sb.String()))
	return nil
}
