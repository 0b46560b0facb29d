package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.learnerMiddleware)

		r.Post("/sessions", s.handleStartSession)
		r.Get("/queue", s.handleQueue)
		r.Post("/answers", s.handleAnswer)
		r.Post("/sessions/{id}/answers", s.handleAnswer)
		r.Post("/sessions/{id}/close", s.handleCloseSession)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.adminMiddleware)

			r.Get("/overview", s.handleOverview)
			r.Get("/learners/{id}", s.handleLearnerRow)
			r.Post("/learners", s.handleCreateLearner)
			r.Post("/import", s.handleImport)
			r.Post("/sweep", s.handleSweep)
		})
	})
	return r
}
