package api

import (
	"net/http"

	"github.com/vytor/tradeskill/internal/logger"
)

func (s *Server) handleProgram(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Debug("rendering program overview")
	writeJSON(w, r, http.StatusOK, s.CurriculumService.Program(r.Context()))
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	day, err := intParam(r, "day")
	if err != nil {
		handleError(w, r, err)
		return
	}
	d, err := s.CurriculumService.GetDay(r.Context(), day)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, d)
}

func (s *Server) handleLesson(w http.ResponseWriter, r *http.Request) {
	day, lesson, err := dayLessonParams(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	ov, err := s.CurriculumService.GetLesson(r.Context(), day, lesson)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ov)
}

func (s *Server) handleObjectives(w http.ResponseWriter, r *http.Request) {
	day, lesson, err := dayLessonParams(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	objs, err := s.CurriculumService.Objectives(r.Context(), day, lesson)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"day": day, "lesson": lesson, "objectives": objs})
}

func (s *Server) handleDailyTest(w http.ResponseWriter, r *http.Request) {
	day, err := intParam(r, "day")
	if err != nil {
		handleError(w, r, err)
		return
	}
	ov, err := s.CurriculumService.GetDailyTest(r.Context(), day)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ov)
}

func dayLessonParams(r *http.Request) (int, int, error) {
	day, err := intParam(r, "day")
	if err != nil {
		return 0, 0, err
	}
	lesson, err := intParam(r, "lesson")
	if err != nil {
		return 0, 0, err
	}
	return day, lesson, nil
}
