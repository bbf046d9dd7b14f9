package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloo-solutions/tutorai/internal/config"
	"github.com/cloo-solutions/tutorai/internal/embedding"
	"github.com/cloo-solutions/tutorai/internal/gemini"
	"github.com/cloo-solutions/tutorai/internal/ollama"
	"github.com/cloo-solutions/tutorai/internal/openai"
	"github.com/cloo-solutions/tutorai/internal/storage"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:                 "8080",
		AllowedOrigins:       []string{"http://localhost:3000"},
		MaxUploadMB:          25,
		ChunkMaxChars:        500,
		RetrievalTopK:        5,
		ContextResults:       2,
		EmbeddingProvider:    config.ProviderHashing,
		EmbeddingBatchSize:   16,
		EmbeddingConcurrency: 4,
		HashingDimensions:    32,
		CompletionProvider:   config.ProviderOllama,
		OllamaURL:            "http://localhost:11434",
		UploadDir:            t.TempDir(),
	}
}

func TestProviders_Embedding(t *testing.T) {
	cfg := testConfig(t)
	p := newProviders(cfg)

	provider, err := p.Embedding(context.Background())
	require.NoError(t, err)
	hashing, ok := provider.(*embedding.HashingProvider)
	require.True(t, ok)
	assert.Equal(t, 32, hashing.Dimensions())

	cfg.EmbeddingProvider = config.ProviderOpenAI
	cfg.OpenAIAPIKey = "sk-test"
	provider, err = newProviders(cfg).Embedding(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &openai.Client{}, provider)

	cfg.EmbeddingProvider = config.ProviderOllama
	provider, err = newProviders(cfg).Embedding(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &ollama.Client{}, provider)
}

func TestProviders_GeminiRequiresKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.CompletionProvider = config.ProviderGemini

	_, err := newProviders(cfg).Completion(context.Background())
	assert.ErrorIs(t, err, gemini.ErrNoAPIKey)
}

func TestProviders_SharedClient(t *testing.T) {
	cfg := testConfig(t)
	cfg.EmbeddingProvider = config.ProviderOllama
	p := newProviders(cfg)

	embedder, err := p.Embedding(context.Background())
	require.NoError(t, err)
	completion, err := p.Completion(context.Background())
	require.NoError(t, err)

	assert.Same(t, embedder.(*ollama.Client), completion.(*ollama.Client))
}

func TestProviders_ModelOverridesFollowProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.EmbeddingModel = "nomic-embed-text"
	cfg.CompletionModel = "gpt-4o"
	cfg.CompletionProvider = config.ProviderOpenAI
	p := newProviders(cfg)

	assert.Equal(t, "", p.embeddingModel(config.ProviderOpenAI))
	assert.Equal(t, "nomic-embed-text", p.embeddingModel(config.ProviderHashing))
	assert.Equal(t, "gpt-4o", p.completionModel(config.ProviderOpenAI))
	assert.Equal(t, "", p.completionModel(config.ProviderOllama))
}

func TestProviders_Unknown(t *testing.T) {
	cfg := testConfig(t)
	cfg.EmbeddingProvider = "cohere"
	cfg.CompletionProvider = config.ProviderHashing

	_, err := newProviders(cfg).Embedding(context.Background())
	assert.Error(t, err)
	_, err = newProviders(cfg).Completion(context.Background())
	assert.Error(t, err)
}

func TestBuildUploadStore_DiskWithoutS3(t *testing.T) {
	cfg := testConfig(t)

	store, err := buildUploadStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &storage.Disk{}, store)
}

func TestBuildApp(t *testing.T) {
	cfg := testConfig(t)
	cfg.DefaultYouTube = "https://youtu.be/abc123"

	a, err := buildApp(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, a.bootstrap.Pending())
	assert.Len(t, a.bootstrap.Jobs(), 1)

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"chunks":0,"dimension":0}`, w.Body.String())

	w = httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(`{"question":"hello?"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No documents have been uploaded yet.", resp["teacher"])
}

func TestCheckCmd_EmbeddingOnly(t *testing.T) {
	t.Setenv("TUTOR_EMBEDDING_PROVIDER", config.ProviderHashing)
	t.Setenv("TUTOR_HASHING_DIMENSIONS", "16")
	t.Setenv("TUTOR_COMPLETION_PROVIDER", config.ProviderOllama)

	var out bytes.Buffer
	cmd := CheckCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--skip-completion"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "hashing")
	assert.Contains(t, out.String(), "ok (dimension 16)")
}

func TestPrintConfig_MasksSecrets(t *testing.T) {
	cfg := testConfig(t)
	cfg.OpenAIAPIKey = "sk-1234567890abcdef"

	var buf bytes.Buffer
	require.NoError(t, printConfig(&buf, cfg, "json"))

	var data map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, "sk-1...cdef", data["openai_api_key"])
	assert.Equal(t, "hashing", data["embedding_provider"])
	assert.NotContains(t, buf.String(), "1234567890")

	buf.Reset()
	require.NoError(t, printConfig(&buf, cfg, "text"))
	assert.Contains(t, buf.String(), "completion_provider")
	assert.NotContains(t, buf.String(), "gemini_api_key")
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", mask(""))
	assert.Equal(t, "****", mask("short"))
	assert.Equal(t, "abcd...wxyz", mask("abcdefghijklmnopqrstuvwxyz"))
}
