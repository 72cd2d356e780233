package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	apperrors "github.com/vytor/tradeskill/internal/errors"
	"github.com/vytor/tradeskill/internal/logger"
	"github.com/vytor/tradeskill/internal/services"
)

type startLessonRequest struct {
	Day    int `json:"day"`
	Lesson int `json:"lesson"`
}

func (s *Server) handleStartLesson(w http.ResponseWriter, r *http.Request) {
	var req startLessonRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	sess, err := s.LessonService.StartLesson(r.Context(), learnerFromContext(r.Context()), req.Day, req.Lesson)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/lessons/"+sess.ID)
	writeJSON(w, r, http.StatusCreated, sess)
}

// ownedLesson loads the session and hides it from other learners.
func (s *Server) ownedLesson(r *http.Request) (*services.LessonSession, error) {
	id := chi.URLParam(r, "id")
	sess, err := s.LessonService.GetSession(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if sess.LearnerID != learnerFromContext(r.Context()) {
		logger.FromContext(r.Context()).Warn("lesson session %s requested by another learner", id)
		return nil, apperrors.NewSessionNotFoundError(id)
	}
	return sess, nil
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	sess, err := s.ownedLesson(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sess)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	s.lessonTransition(w, r, s.LessonService.Advance)
}

func (s *Server) handleRetreat(w http.ResponseWriter, r *http.Request) {
	s.lessonTransition(w, r, s.LessonService.Retreat)
}

func (s *Server) lessonTransition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) (*services.LessonSession, error)) {
	sess, err := s.ownedLesson(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	next, err := fn(r.Context(), sess.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, next)
}

func (s *Server) handleSubmitLesson(w http.ResponseWriter, r *http.Request) {
	sess, err := s.ownedLesson(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	out, err := s.LessonService.SubmitJSON(r.Context(), sess.ID, body)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleEndLesson(w http.ResponseWriter, r *http.Request) {
	sess, err := s.ownedLesson(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.LessonService.EndSession(r.Context(), sess.ID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
