package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	apperrors "github.com/vytor/tradeskill/internal/errors"
	"github.com/vytor/tradeskill/internal/models"
)

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	sum, err := s.ProgressService.Summary(r.Context(), chi.URLParam(r, "learner"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sum)
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	if err := s.ProgressService.Reset(r.Context(), chi.URLParam(r, "learner")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompletions(w http.ResponseWriter, r *http.Request) {
	filter, err := progressFilter(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	out, err := s.ProgressService.Completions(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"completions": out})
}

func (s *Server) handleAttempts(w http.ResponseWriter, r *http.Request) {
	filter, err := progressFilter(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	out, err := s.ProgressService.Attempts(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"attempts": out})
}

// progressFilter reads the learner path parameter and the optional day and
// limit query parameters.
func progressFilter(r *http.Request) (models.ProgressFilter, error) {
	f := models.ProgressFilter{LearnerID: chi.URLParam(r, "learner")}
	q := r.URL.Query()
	if v := q.Get("day"); v != "" {
		day, err := strconv.Atoi(v)
		if err != nil || day < 1 {
			return f, apperrors.NewBadRequestError("day must be a positive integer")
		}
		f.Day = day
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return f, apperrors.NewBadRequestError("limit must be a positive integer")
		}
		f.Limit = limit
	}
	return f, nil
}
