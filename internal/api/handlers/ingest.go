package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cloo-solutions/tutorai/internal/api"
	"github.com/cloo-solutions/tutorai/internal/service"
)

// UploadField is the multipart form field carrying the PDF.
const UploadField = "file"

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling to temp files.
const multipartMemory = 8 << 20

type IngestService interface {
	IngestPDF(ctx context.Context, filename string, data []byte) (*service.IngestResult, error)
	IngestTranscript(ctx context.Context, url string) (*service.IngestResult, error)
}

type IngestHandler struct {
	svc IngestService
}

func NewIngestHandler(svc IngestService) *IngestHandler {
	return &IngestHandler{svc: svc}
}

type IngestPDFResponse struct {
	Status      string `json:"status"`
	PDF         string `json:"pdf"`
	ChunksAdded int    `json:"chunks_added"`
}

type IngestYouTubeResponse struct {
	Status      string `json:"status"`
	ChunksAdded int    `json:"chunks_added"`
}

func (h *IngestHandler) PDF(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			api.Error(w, http.StatusRequestEntityTooLarge, "uploaded file is too large")
			return
		}
		api.Error(w, http.StatusBadRequest, "expected a multipart form with a \"file\" field")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(UploadField)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if filename == "." || filename == string(filepath.Separator) || strings.TrimSpace(filename) == "" {
		api.Error(w, http.StatusBadRequest, "file name is required")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	result, err := h.svc.IngestPDF(r.Context(), filename, data)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, IngestPDFResponse{
		Status:      api.StatusSuccess,
		PDF:         filename,
		ChunksAdded: result.ChunksAdded,
	})
}

func (h *IngestHandler) YouTube(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.URL.Query().Get("url"))
	if url == "" {
		api.Error(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	result, err := h.svc.IngestTranscript(r.Context(), url)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, IngestYouTubeResponse{
		Status:      api.StatusSuccess,
		ChunksAdded: result.ChunksAdded,
	})
}
