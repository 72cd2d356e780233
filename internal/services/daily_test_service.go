package services

import (
	"context"
	"encoding/json"

	"github.com/vytor/tradeskill/internal/curriculum"
	"github.com/vytor/tradeskill/internal/dailytest"
	"github.com/vytor/tradeskill/internal/errors"
	"github.com/vytor/tradeskill/internal/jobs"
	"github.com/vytor/tradeskill/internal/logger"
	"github.com/vytor/tradeskill/internal/models"
	"github.com/vytor/tradeskill/internal/tasks"
)

// TestSession is a snapshot of one daily test runner.
type TestSession struct {
	ID        string            `json:"id"`
	LearnerID string            `json:"learner_id"`
	Day       int               `json:"day"`
	Index     int               `json:"index"`
	Question  *tasks.View       `json:"question,omitempty"`
	Result    models.TestResult `json:"result"`
}

// AnswerOutcome is the result of one answered question plus the session after it.
type AnswerOutcome struct {
	Result      models.TaskResult `json:"result"`
	Explanation string            `json:"explanation,omitempty"`
	Session     *TestSession      `json:"session"`
}

// DailyTestService hosts daily test sessions
type DailyTestService interface {
	StartDailyTest(ctx context.Context, learnerID string, day int) (*TestSession, error)
	GetSession(ctx context.Context, id string) (*TestSession, error)
	Submit(ctx context.Context, id string, resp models.Response) (*AnswerOutcome, error)
	SubmitJSON(ctx context.Context, id string, raw json.RawMessage) (*AnswerOutcome, error)
	EndSession(ctx context.Context, id string) error
}

type dailyTestService struct {
	repo     *curriculum.Repository
	registry *tasks.Registry
	sessions *SessionStore
	queue    jobs.ProgressQueue
}

// NewDailyTestService creates a new DailyTestService. queue may be nil.
func NewDailyTestService(repo *curriculum.Repository, registry *tasks.Registry, sessions *SessionStore, queue jobs.ProgressQueue) DailyTestService {
	return &dailyTestService{repo: repo, registry: registry, sessions: sessions, queue: queue}
}

func (s *dailyTestService) StartDailyTest(ctx context.Context, learnerID string, day int) (*TestSession, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting daily test: learner=%s, day=%d", learnerID, day)

	if err := ValidateLearnerID(learnerID); err != nil {
		return nil, err
	}
	test, ok, err := s.repo.GetDailyTest(day)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFoundError("daily test for day", day)
	}

	r, err := dailytest.New(day, *test, s.registry, dailytest.WithFinishHook(s.finishHook(ctx, learnerID)))
	if err != nil {
		return nil, err
	}
	id := s.sessions.putTest(testEntry{learnerID: learnerID, runner: r})
	log.Info("test session started: id=%s, learner=%s, day=%d", id, learnerID, day)
	return snapshotTest(id, learnerID, r), nil
}

func (s *dailyTestService) finishHook(ctx context.Context, learnerID string) func(models.TestResult) {
	log := logger.FromContext(ctx).WithField("learner", learnerID)
	return func(res models.TestResult) {
		log.Info("daily test finished: day=%d, score=%.1f, passed=%t", res.Day, res.Score, res.Passed)
		if s.queue == nil {
			return
		}
		err := s.queue.EnqueueTestAttempt(models.TestAttempt{
			LearnerID:    learnerID,
			Day:          res.Day,
			Score:        res.Score,
			Passed:       res.Passed,
			PassingScore: res.PassingScore,
			Correct:      res.Correct,
			Total:        res.Total,
		})
		if err != nil {
			log.Error("failed to enqueue test attempt: %v", err)
		}
	}
}

func (s *dailyTestService) lookup(id string) (testEntry, error) {
	e, ok := s.sessions.test(id)
	if !ok {
		return testEntry{}, errors.NewSessionNotFoundError(id)
	}
	return e, nil
}

func (s *dailyTestService) GetSession(ctx context.Context, id string) (*TestSession, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return snapshotTest(id, e.learnerID, e.runner), nil
}

func (s *dailyTestService) Submit(ctx context.Context, id string, resp models.Response) (*AnswerOutcome, error) {
	return s.answer(ctx, id, func(models.TaskConfig) (models.Response, error) { return resp, nil })
}

// SubmitJSON decodes raw against the current question's task kind and submits it.
func (s *dailyTestService) SubmitJSON(ctx context.Context, id string, raw json.RawMessage) (*AnswerOutcome, error) {
	return s.answer(ctx, id, func(cfg models.TaskConfig) (models.Response, error) {
		return tasks.DecodeResponse(cfg.Kind(), raw)
	})
}

func (s *dailyTestService) answer(ctx context.Context, id string, decode func(models.TaskConfig) (models.Response, error)) (*AnswerOutcome, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	q, res, err := e.runner.Answer(decode)
	if err != nil {
		logger.FromContext(ctx).Warn("answer rejected for session %s: %v", id, err)
		return nil, err
	}
	return &AnswerOutcome{
		Result:      res,
		Explanation: q.Explanation,
		Session:     snapshotTest(id, e.learnerID, e.runner),
	}, nil
}

func (s *dailyTestService) EndSession(ctx context.Context, id string) error {
	if !s.sessions.deleteTest(id) {
		return errors.NewSessionNotFoundError(id)
	}
	logger.FromContext(ctx).Debug("test session ended: id=%s", id)
	return nil
}

func snapshotTest(id, learnerID string, r *dailytest.Runner) *TestSession {
	out := &TestSession{
		ID:        id,
		LearnerID: learnerID,
		Day:       r.Day(),
		Index:     r.Index(),
		Result:    r.Result(),
	}
	if q, err := r.CurrentQuestion(); err == nil {
		v := tasks.Present(q.Task)
		out.Question = &v
	}
	return out
}
