package api

import (
	"net/http"
	"time"

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
		r.Use(timeoutMiddleware(15 * time.Second))

		r.Get("/program", s.handleProgram)
		r.Get("/days/{day}", s.handleDay)
		r.Get("/days/{day}/lessons/{lesson}", s.handleLesson)
		r.Get("/days/{day}/lessons/{lesson}/objectives", s.handleObjectives)
		r.Get("/days/{day}/test", s.handleDailyTest)

		r.Group(func(r chi.Router) {
			r.Use(learnerMiddleware)

			r.Post("/lessons", s.handleStartLesson)
			r.Get("/lessons/{id}", s.handleGetLesson)
			r.Delete("/lessons/{id}", s.handleEndLesson)
			r.Post("/lessons/{id}/advance", s.handleAdvance)
			r.Post("/lessons/{id}/retreat", s.handleRetreat)
			r.Post("/lessons/{id}/submit", s.handleSubmitLesson)

			r.Post("/tests", s.handleStartTest)
			r.Get("/tests/{id}", s.handleGetTest)
			r.Delete("/tests/{id}", s.handleEndTest)
			r.Post("/tests/{id}/submit", s.handleSubmitTest)

			r.Route("/learners/{learner}", func(r chi.Router) {
				r.Use(ownLearnerMiddleware)

				r.Get("/progress", s.handleProgress)
				r.Delete("/progress", s.handleResetProgress)
				r.Get("/completions", s.handleCompletions)
				r.Get("/attempts", s.handleAttempts)
			})
		})
	})
	return r
}
