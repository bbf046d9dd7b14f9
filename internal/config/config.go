package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Provider names accepted for embeddings and completions.
const (
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"
	ProviderOllama  = "ollama"
	ProviderHashing = "hashing"
)

type Config struct {
	Port           string   `envconfig:"PORT" default:"8080"`
	Debug          bool     `envconfig:"DEBUG" default:"false"`
	LogPretty      bool     `envconfig:"LOG_PRETTY" default:"false"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	MaxUploadMB    int64    `envconfig:"MAX_UPLOAD_MB" default:"25"`

	ChunkMaxChars  int `envconfig:"CHUNK_MAX_CHARS" default:"500"`
	RetrievalTopK  int `envconfig:"RETRIEVAL_TOP_K" default:"5"`
	ContextResults int `envconfig:"CONTEXT_RESULTS" default:"2"`

	EmbeddingProvider    string        `envconfig:"EMBEDDING_PROVIDER" default:"openai"`
	EmbeddingModel       string        `envconfig:"EMBEDDING_MODEL"`
	EmbeddingBatchSize   int           `envconfig:"EMBEDDING_BATCH_SIZE" default:"16"`
	EmbeddingConcurrency int           `envconfig:"EMBEDDING_CONCURRENCY" default:"4"`
	EmbeddingTimeout     time.Duration `envconfig:"EMBEDDING_TIMEOUT" default:"30s"`
	HashingDimensions    int           `envconfig:"HASHING_DIMENSIONS" default:"384"`

	CompletionProvider string        `envconfig:"COMPLETION_PROVIDER" default:"gemini"`
	CompletionModel    string        `envconfig:"COMPLETION_MODEL"`
	CompletionTimeout  time.Duration `envconfig:"COMPLETION_TIMEOUT" default:"90s"`
	ModelRetries       int           `envconfig:"MODEL_RETRIES" default:"2"`

	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	OllamaURL     string `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`

	UploadDir   string `envconfig:"UPLOAD_DIR" default:"data/uploads"`
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"tutor-uploads"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	// Bootstrap: sources ingested in the background on startup
	DefaultPDF     string `envconfig:"DEFAULT_PDF"`
	DefaultYouTube string `envconfig:"DEFAULT_YOUTUBE"`

	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("TUTOR", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks provider names and the credentials they need.
func (c *Config) Validate() error {
	c.EmbeddingProvider = strings.ToLower(c.EmbeddingProvider)
	c.CompletionProvider = strings.ToLower(c.CompletionProvider)

	switch c.EmbeddingProvider {
	case ProviderOpenAI, ProviderGemini, ProviderOllama, ProviderHashing:
	default:
		return fmt.Errorf("unknown embedding provider %q", c.EmbeddingProvider)
	}
	switch c.CompletionProvider {
	case ProviderOpenAI, ProviderGemini, ProviderOllama:
	default:
		return fmt.Errorf("unknown completion provider %q", c.CompletionProvider)
	}

	if c.uses(ProviderOpenAI) && !c.HasOpenAI() {
		return fmt.Errorf("TUTOR_OPENAI_API_KEY is required for the openai provider")
	}
	if c.uses(ProviderGemini) && !c.HasGemini() {
		return fmt.Errorf("TUTOR_GEMINI_API_KEY is required for the gemini provider")
	}
	if c.ChunkMaxChars <= 0 || c.RetrievalTopK <= 0 || c.ContextResults <= 0 {
		return fmt.Errorf("chunk size, top-k and context results must be positive")
	}
	return nil
}

func (c *Config) uses(provider string) bool {
	return c.EmbeddingProvider == provider || c.CompletionProvider == provider
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

func (c *Config) HasGemini() bool {
	return c.GeminiAPIKey != ""
}

// MaxUploadBytes converts the upload limit to bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
