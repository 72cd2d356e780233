package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	apperrors "github.com/vytor/tradeskill/internal/errors"
	"github.com/vytor/tradeskill/internal/services"
)

type startTestRequest struct {
	Day int `json:"day"`
}

func (s *Server) handleStartTest(w http.ResponseWriter, r *http.Request) {
	var req startTestRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	sess, err := s.DailyTestService.StartDailyTest(r.Context(), learnerFromContext(r.Context()), req.Day)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/tests/"+sess.ID)
	writeJSON(w, r, http.StatusCreated, sess)
}

func (s *Server) ownedTest(r *http.Request) (*services.TestSession, error) {
	id := chi.URLParam(r, "id")
	sess, err := s.DailyTestService.GetSession(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if sess.LearnerID != learnerFromContext(r.Context()) {
		return nil, apperrors.NewSessionNotFoundError(id)
	}
	return sess, nil
}

func (s *Server) handleGetTest(w http.ResponseWriter, r *http.Request) {
	sess, err := s.ownedTest(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sess)
}

func (s *Server) handleSubmitTest(w http.ResponseWriter, r *http.Request) {
	sess, err := s.ownedTest(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	out, err := s.DailyTestService.SubmitJSON(r.Context(), sess.ID, body)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleEndTest(w http.ResponseWriter, r *http.Request) {
	sess, err := s.ownedTest(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.DailyTestService.EndSession(r.Context(), sess.ID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
