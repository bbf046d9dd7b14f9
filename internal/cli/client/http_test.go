package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressReader_ReportsProgress(t *testing.T) {
	data := []byte("hello world this is test data")
	reader := bytes.NewReader(data)

	var progressCalls []struct{ current, total int64 }
	pr := &progressReader{
		reader: reader,
		total:  int64(len(data)),
		onProgress: func(current, total int64) {
			progressCalls = append(progressCalls, struct{ current, total int64 }{current, total})
		},
	}

	result, err := io.ReadAll(pr)
	require.NoError(t, err)
	assert.Equal(t, data, result)

	// Progress should have been called at least once
	assert.NotEmpty(t, progressCalls)

	// Final progress should equal total
	lastCall := progressCalls[len(progressCalls)-1]
	assert.Equal(t, int64(len(data)), lastCall.current)
	assert.Equal(t, int64(len(data)), lastCall.total)
}

func TestProgressReader_NilCallback(t *testing.T) {
	data := []byte("hello world")
	reader := bytes.NewReader(data)

	pr := &progressReader{
		reader:     reader,
		total:      int64(len(data)),
		onProgress: nil, // No callback
	}

	result, err := io.ReadAll(pr)
	require.NoError(t, err)
	assert.Equal(t, data, result)
}

func TestProgressReader_SmallReads(t *testing.T) {
	data := []byte("hello world")
	reader := bytes.NewReader(data)

	var progressValues []int64
	pr := &progressReader{
		reader: reader,
		total:  int64(len(data)),
		onProgress: func(current, total int64) {
			progressValues = append(progressValues, current)
		},
	}

	// Read one byte at a time
	buf := make([]byte, 1)
	for {
		n, err := pr.Read(buf)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	}

	// Progress should increase monotonically
	for i := 1; i < len(progressValues); i++ {
		assert.GreaterOrEqual(t, progressValues[i], progressValues[i-1])
	}
}

func TestNewAPIClientWithCmd_Cascade(t *testing.T) {
	t.Setenv(envAPIURL, "")
	assert.Equal(t, defaultAPIURL, NewAPIClientWithCmd(nil).BaseURL())

	t.Setenv(envAPIURL, "http://env:9000")
	assert.Equal(t, "http://env:9000", NewAPIClientWithCmd(nil).BaseURL())

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("api-url", "", "")
	require.NoError(t, cmd.Flags().Set("api-url", "http://flag:7000"))
	assert.Equal(t, "http://flag:7000", NewAPIClientWithCmd(cmd).BaseURL())
}

func TestAPIClient_PostDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "why?", req.Question)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"teacher":"because","student":"","teacher_followup":"","sources":[]}`))
	}))
	defer srv.Close()

	var resp ChatResponse
	err := NewAPIClientWithConfig(srv.URL).Post("/chat", ChatRequest{Question: "why?"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "because", resp.Teacher)
}

func TestAPIClient_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"error","message":"completion unavailable"}`))
	}))
	defer srv.Close()

	err := NewAPIClientWithConfig(srv.URL).Get("/stats", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "completion unavailable", apiErr.Message)
}

func TestAPIClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewAPIClientWithConfig(srv.URL).Get("/", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestAPIClient_UploadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 content"), 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)

		assert.Equal(t, "notes.pdf", header.Filename)
		assert.Equal(t, "%PDF-1.4 content", string(data))
		w.Write([]byte(`{"status":"success","pdf":"notes.pdf","chunks_added":3}`))
	}))
	defer srv.Close()

	var last int64
	var resp IngestResponse
	err := NewAPIClientWithConfig(srv.URL).UploadFile("/ingest/pdf", "file", path, func(current, total int64) {
		last = current
		assert.LessOrEqual(t, current, total)
	}, &resp)

	require.NoError(t, err)
	assert.Equal(t, 3, resp.ChunksAdded)
	assert.Positive(t, last)
}

func TestAPIClient_UploadFileMissing(t *testing.T) {
	err := NewAPIClientWithConfig("http://localhost:1").UploadFile("/ingest/pdf", "file", "/does/not/exist.pdf", nil, nil)
	assert.Error(t, err)
}
