package handlers

import (
	"net/http"

	"github.com/cloo-solutions/tutorai/internal/api"
	"github.com/cloo-solutions/tutorai/internal/service"
)

type StatsProvider interface {
	Stats() service.KnowledgeStats
}

type StatusHandler struct {
	kb StatsProvider
}

func NewStatusHandler(kb StatsProvider) *StatusHandler {
	return &StatusHandler{kb: kb}
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, HealthResponse{Status: api.StatusOK})
}

func (h *StatusHandler) Stats(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, h.kb.Stats())
}
