package api_test

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vytor/tradeskill/internal/api"
	"github.com/vytor/tradeskill/internal/curriculum"
	"github.com/vytor/tradeskill/internal/models"
	"github.com/vytor/tradeskill/internal/services"
	"github.com/vytor/tradeskill/internal/tasks"
	"github.com/vytor/tradeskill/internal/testutil"
	"github.com/vytor/tradeskill/internal/testutil/mocks"
)

type harness struct {
	handler http.Handler
	repo    *mocks.MockProgressRepository
}

func newHarness() harness {
	content := curriculum.NewRepository(testutil.SmallProgram())
	registry := tasks.NewRegistry(tasks.NewSequenceSource(0.2))
	sessions := services.NewSessionStore()
	repo := new(mocks.MockProgressRepository)
	srv := &api.Server{
		CurriculumService: services.NewCurriculumService(content),
		LessonService:     services.NewLessonService(content, registry, sessions, nil),
		DailyTestService:  services.NewDailyTestService(content, registry, sessions, nil),
		ProgressService:   services.NewProgressService(repo, content),
		Store:             repo,
	}
	return harness{handler: srv.Routes(), repo: repo}
}

func (h harness) do(t *testing.T, method, path, learner, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if learner != "" {
		req.Header.Set("X-Learner-ID", learner)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorBody](t, rec).Error.Code
}

func TestHealth(t *testing.T) {
	h := newHarness()
	rec := h.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestReady(t *testing.T) {
	h := newHarness()
	h.repo.On("Ping", mock.Anything).Return(nil).Once()
	h.repo.On("Ping", mock.Anything).Return(stderrors.New("down")).Once()

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/readyz", "", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, h.do(t, http.MethodGet, "/readyz", "", "").Code)
}

func TestCurriculumEndpoints(t *testing.T) {
	h := newHarness()

	rec := h.do(t, http.MethodGet, "/api/program", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	prog := decode[services.ProgramSummary](t, rec)
	assert.Len(t, prog.Days, 3)

	rec = h.do(t, http.MethodGet, "/api/days/2/lessons/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	ov := decode[services.LessonOverview](t, rec)
	assert.Equal(t, 10, ov.Screens)

	rec = h.do(t, http.MethodGet, "/api/days/1/lessons/1/objectives", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Asset classes")

	rec = h.do(t, http.MethodGet, "/api/days/3/test", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestCurriculumEndpoints_Errors(t *testing.T) {
	h := newHarness()
	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/api/days/29", http.StatusNotFound, "DAY_NOT_FOUND"},
		{"/api/days/0", http.StatusNotFound, "DAY_NOT_FOUND"},
		{"/api/days/abc", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/days/1/lessons/5", http.StatusNotFound, "LESSON_NOT_FOUND"},
		{"/api/days/1/lessons/x/objectives", http.StatusBadRequest, "BAD_REQUEST"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := h.do(t, http.MethodGet, tt.path, "", "")
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestLessonFlow(t *testing.T) {
	h := newHarness()

	rec := h.do(t, http.MethodPost, "/api/lessons", "ana", `{"day":1,"lesson":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sess := decode[services.LessonSession](t, rec)
	assert.Equal(t, "/api/lessons/"+sess.ID, rec.Header().Get("Location"))
	base := "/api/lessons/" + sess.ID

	for i := 0; i < 2; i++ {
		rec = h.do(t, http.MethodPost, base+"/advance", "ana", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	sess = decode[services.LessonSession](t, rec)
	require.NotNil(t, sess.Screen.Task)
	assert.NotContains(t, rec.Body.String(), "correct", "answer keys stay server side")

	rec = h.do(t, http.MethodPost, base+"/submit", "ana", `{"selected":"Sell"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MALFORMED_RESPONSE", errorCode(t, rec))

	rec = h.do(t, http.MethodPost, base+"/submit", "ana", `{"selected":["Sell"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[services.SubmitOutcome](t, rec)
	assert.True(t, out.Result.Passed)

	rec = h.do(t, http.MethodPost, base+"/submit", "ana", `{"selected":["Sell"]}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, rec))

	rec = h.do(t, http.MethodPost, base+"/retreat", "ana", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[services.LessonSession](t, rec).Progress.Current)

	rec = h.do(t, http.MethodGet, base, "bob", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "other learners cannot see the session")

	rec = h.do(t, http.MethodDelete, base, "ana", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = h.do(t, http.MethodGet, base, "ana", "")
	assert.Equal(t, "SESSION_NOT_FOUND", errorCode(t, rec))
}

func TestLessonStart_Errors(t *testing.T) {
	h := newHarness()

	rec := h.do(t, http.MethodPost, "/api/lessons", "", `{"day":1,"lesson":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))

	rec = h.do(t, http.MethodPost, "/api/lessons", "ana", `{"day":1,`)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, rec))

	rec = h.do(t, http.MethodPost, "/api/lessons", "ana", `{"day":9,"lesson":1}`)
	assert.Equal(t, "DAY_NOT_FOUND", errorCode(t, rec))
}

func TestDailyTestFlow(t *testing.T) {
	h := newHarness()

	rec := h.do(t, http.MethodPost, "/api/tests", "ana", `{"day":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sess := decode[services.TestSession](t, rec)
	base := "/api/tests/" + sess.ID

	for i := 0; i < 4; i++ {
		rec = h.do(t, http.MethodPost, base+"/submit", "ana", `{"value":false}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	out := decode[services.AnswerOutcome](t, rec)
	assert.True(t, out.Session.Result.Finished)
	assert.False(t, out.Session.Result.Passed)
	assert.Equal(t, 0.0, out.Session.Result.Score)

	rec = h.do(t, http.MethodPost, base+"/submit", "ana", `{"value":true}`)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, rec))

	rec = h.do(t, http.MethodDelete, base, "ana", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestProgressEndpoints(t *testing.T) {
	h := newHarness()
	h.repo.On("ListLessonCompletions", mock.Anything, models.ProgressFilter{LearnerID: "ana", Limit: -1}).
		Return([]models.LessonCompletion{{Day: 1, Lesson: 1}}, nil)
	h.repo.On("ListTestAttempts", mock.Anything, models.ProgressFilter{LearnerID: "ana", Limit: -1}).
		Return([]models.TestAttempt{{Day: 1, Score: 100, Passed: true}}, nil)
	h.repo.On("ListTestAttempts", mock.Anything, models.ProgressFilter{LearnerID: "ana", Day: 1, Limit: 5}).
		Return([]models.TestAttempt{{Day: 1, Score: 100, Passed: true}}, nil)
	h.repo.On("DeleteLearner", mock.Anything, "ana").Return(nil)

	rec := h.do(t, http.MethodGet, "/api/learners/ana/progress", "ana", "")
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decode[models.LearnerProgress](t, rec)
	assert.Equal(t, 2, sum.UnlockedThrough)

	rec = h.do(t, http.MethodGet, "/api/learners/ana/attempts?day=1&limit=5", "ana", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"attempts"`)

	rec = h.do(t, http.MethodGet, "/api/learners/ana/completions?limit=0", "ana", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(t, http.MethodDelete, "/api/learners/ana/progress", "ana", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	h.repo.AssertExpectations(t)
}

func TestProgressEndpoints_OwnLearnerOnly(t *testing.T) {
	h := newHarness()

	paths := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/learners/ana/progress"},
		{http.MethodDelete, "/api/learners/ana/progress"},
		{http.MethodGet, "/api/learners/ana/completions"},
		{http.MethodGet, "/api/learners/ana/attempts"},
	}
	for _, p := range paths {
		rec := h.do(t, p.method, p.path, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s without header", p.method, p.path)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))

		rec = h.do(t, p.method, p.path, "bo", "")
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s as another learner", p.method, p.path)
		assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
	}

	// The repository is never reached for someone else's progress.
	h.repo.AssertNotCalled(t, "DeleteLearner", mock.Anything, mock.Anything)
	h.repo.AssertNotCalled(t, "ListLessonCompletions", mock.Anything, mock.Anything)
	h.repo.AssertNotCalled(t, "ListTestAttempts", mock.Anything, mock.Anything)
}
