package server

import (
	"net/http"

	"github.com/cloo-solutions/tutorai/internal/api/handlers"
	"github.com/cloo-solutions/tutorai/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	ChatHandler    *handlers.ChatHandler
	IngestHandler  *handlers.IngestHandler
	StatusHandler  *handlers.StatusHandler
	AllowedOrigins []string
	MaxBodyBytes   int64
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Sentry)
	r.Use(middleware.AccessLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.LimitBody(cfg.MaxBodyBytes))

	r.Get("/", cfg.StatusHandler.Health)
	r.Get("/stats", cfg.StatusHandler.Stats)

	r.Post("/chat", cfg.ChatHandler.Chat)

	r.Route("/ingest", func(r chi.Router) {
		r.Post("/pdf", cfg.IngestHandler.PDF)
		r.Post("/youtube", cfg.IngestHandler.YouTube)
	})

	return r
}
