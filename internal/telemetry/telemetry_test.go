package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_NoDSN(t *testing.T) {
	shutdown, err := Init(Config{})

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	shutdown()
}

func TestStartSpan_WithoutSentry(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "ChatService.Chat", SpanAttributes{Difficulty: "exam"})
	defer span.End()

	require.NotNil(t, span.inner)
	assert.Same(t, span.inner, sentry.SpanFromContext(ctx))
	assert.Equal(t, "exam", span.inner.Tags["difficulty"])
}

func TestStartSpan_ChildOfRequestTransaction(t *testing.T) {
	tx := sentry.StartTransaction(context.Background(), "POST /chat")
	defer tx.Finish()

	_, span := StartSpan(tx.Context(), "ChatService.Chat", SpanAttributes{})
	defer span.End()

	assert.Equal(t, tx.SpanID, span.inner.ParentSpanID)
	assert.Equal(t, tx.TraceID, span.inner.TraceID)
}

func newCapturingContext(t *testing.T) (context.Context, *sentry.MockTransport) {
	t.Helper()
	transport := &sentry.MockTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:       "http://key@example.com/1",
		Transport: transport,
	})
	require.NoError(t, err)
	hub := sentry.NewHub(client, sentry.NewScope())
	return sentry.SetHubOnContext(context.Background(), hub), transport
}

func TestSpanSetError_MarksStatusAndCaptures(t *testing.T) {
	ctx, transport := newCapturingContext(t)

	_, span := StartSpan(ctx, "IngestService.IngestPDF", SpanAttributes{Source: "notes.pdf"})
	span.SetError(errors.New("embedding backend down"))
	span.End()

	assert.Equal(t, sentry.SpanStatusInternalError, span.inner.Status)
	events := transport.Events()
	require.Len(t, events, 1)
	require.NotEmpty(t, events[0].Exception)
	assert.Equal(t, "embedding backend down", events[0].Exception[0].Value)
}

func TestSpanSetError_NilIsIgnored(t *testing.T) {
	ctx, transport := newCapturingContext(t)

	_, span := StartSpan(ctx, "ChatService.Chat", SpanAttributes{})
	span.SetError(nil)
	span.End()

	assert.NotEqual(t, sentry.SpanStatusInternalError, span.inner.Status)
	assert.Empty(t, transport.Events())
}

func TestSetupLogger_JSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	var buf bytes.Buffer

	logger := setupLogger(&buf, false, false)
	logger.Info().Int("chunks_added", 3).Msg("ingested")
	logger.Debug().Msg("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ingested", entry["message"])
	assert.Equal(t, "tutorai", entry["service"])
	assert.Equal(t, float64(3), entry["chunks_added"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestSetupLogger_Debug(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	var buf bytes.Buffer

	logger := setupLogger(&buf, true, false)
	logger.Debug().Msg("visible")

	assert.Contains(t, buf.String(), "visible")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetupLogger_Pretty(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	var buf bytes.Buffer

	logger := setupLogger(&buf, false, true)
	logger.Info().Msg("ready")

	assert.Contains(t, buf.String(), "ready")
	assert.False(t, json.Valid(buf.Bytes()))
}
