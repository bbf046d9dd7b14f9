package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cloo-solutions/tutorai/internal/api"
	"github.com/cloo-solutions/tutorai/internal/domain"
	"github.com/cloo-solutions/tutorai/internal/service"
)

type ChatService interface {
	Chat(ctx context.Context, input service.ChatInput) (*service.ChatOutput, error)
}

type ChatHandler struct {
	svc ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatTurnRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Question   string            `json:"question"`
	History    []ChatTurnRequest `json:"history"`
	Difficulty string            `json:"difficulty"`
}

type ChatResponse struct {
	Teacher         string           `json:"teacher"`
	Student         string           `json:"student"`
	TeacherFollowup string           `json:"teacher_followup"`
	Sources         []service.Source `json:"sources"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	history := make([]domain.ChatTurn, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, domain.ChatTurn{Role: domain.ChatRole(turn.Role), Content: turn.Content})
	}

	out, err := h.svc.Chat(r.Context(), service.ChatInput{
		Question:   req.Question,
		History:    history,
		Difficulty: domain.ParseDifficulty(req.Difficulty),
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	sources := out.Sources
	if sources == nil {
		sources = []service.Source{}
	}
	api.JSON(w, http.StatusOK, ChatResponse{
		Teacher:         out.Teacher,
		Student:         out.Student,
		TeacherFollowup: out.TeacherFollowup,
		Sources:         sources,
	})
}
