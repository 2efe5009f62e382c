package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"pricecheck-service/internal/config"
	"pricecheck-service/internal/middleware"
	pcHnd "pricecheck-service/internal/pricecheck/handler"
	"pricecheck-service/server/http/handlers"
)

func NewRouter(cfg config.Config, h *pcHnd.Handler, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", h.Categories)

		r.Post("/filter", h.RunFilter)
		r.Get("/filter", h.ViewFilter)

		r.Post("/history-check", h.RunCheck)
		r.Get("/history-check", h.ViewCheck)

		r.Get("/detail/pairs", h.DetailPairs)
		r.Get("/detail/history", h.DetailHistory)
	})

	return r
}
