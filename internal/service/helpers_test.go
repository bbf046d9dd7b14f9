package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/require"
)

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func fastRetries(t *testing.T) {
	t.Helper()
	orig := retryInitialInterval
	retryInitialInterval = time.Millisecond
	t.Cleanup(func() { retryInitialInterval = orig })
}

// capturingContext carries a Sentry hub whose events land in the returned
// transport.
func capturingContext(t *testing.T) (context.Context, *sentry.MockTransport) {
	t.Helper()
	transport := &sentry.MockTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:       "http://key@example.com/1",
		Transport: transport,
	})
	require.NoError(t, err)
	return sentry.SetHubOnContext(context.Background(), sentry.NewHub(client, sentry.NewScope())), transport
}

func capturedExceptions(transport *sentry.MockTransport) []string {
	var values []string
	for _, event := range transport.Events() {
		for _, ex := range event.Exception {
			values = append(values, ex.Value)
		}
	}
	return values
}
