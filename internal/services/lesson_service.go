package services

import (
	"context"
	"encoding/json"
	"regexp"

	"github.com/vytor/tradeskill/internal/curriculum"
	"github.com/vytor/tradeskill/internal/errors"
	"github.com/vytor/tradeskill/internal/jobs"
	"github.com/vytor/tradeskill/internal/logger"
	"github.com/vytor/tradeskill/internal/models"
	"github.com/vytor/tradeskill/internal/player"
	"github.com/vytor/tradeskill/internal/tasks"
)

// ScreenView is a screen as sent to clients, with its task reduced to a
// tasks.View that carries no answer key.
type ScreenView struct {
	Kind       models.ScreenKind  `json:"kind"`
	Title      string             `json:"title"`
	Eyebrow    string             `json:"eyebrow,omitempty"`
	Body       string             `json:"body,omitempty"`
	Objectives []models.Objective `json:"objectives,omitempty"`
	KeyPoints  []string           `json:"key_points,omitempty"`
	Task       *tasks.View        `json:"task,omitempty"`
}

func viewScreen(s models.Screen) *ScreenView {
	v := &ScreenView{
		Kind:       s.Kind,
		Title:      s.Title,
		Eyebrow:    s.Eyebrow,
		Body:       s.Body,
		Objectives: s.Objectives,
		KeyPoints:  s.KeyPoints,
	}
	if s.IsTask() {
		tv := tasks.Present(s.Task)
		v.Task = &tv
	}
	return v
}

// LessonSession is a snapshot of one lesson player.
type LessonSession struct {
	ID        string                `json:"id"`
	LearnerID string                `json:"learner_id"`
	Day       int                   `json:"day"`
	Lesson    int                   `json:"lesson"`
	Title     string                `json:"title"`
	State     player.State          `json:"state"`
	Progress  models.LessonProgress `json:"progress"`
	Screen    *ScreenView           `json:"screen,omitempty"`
	Result    *models.TaskResult    `json:"result,omitempty"`
	Attempts  int                   `json:"attempts"`
	Complete  bool                  `json:"complete"`
}

// SubmitOutcome is the result of one task submission plus the session after it.
type SubmitOutcome struct {
	Result  models.TaskResult `json:"result"`
	Session *LessonSession    `json:"session"`
}

// LessonService hosts lesson player sessions
type LessonService interface {
	StartLesson(ctx context.Context, learnerID string, day, lesson int) (*LessonSession, error)
	GetSession(ctx context.Context, id string) (*LessonSession, error)
	Advance(ctx context.Context, id string) (*LessonSession, error)
	Retreat(ctx context.Context, id string) (*LessonSession, error)
	Submit(ctx context.Context, id string, resp models.Response) (*SubmitOutcome, error)
	SubmitJSON(ctx context.Context, id string, raw json.RawMessage) (*SubmitOutcome, error)
	EndSession(ctx context.Context, id string) error
}

type lessonService struct {
	repo     *curriculum.Repository
	registry *tasks.Registry
	sessions *SessionStore
	queue    jobs.ProgressQueue
}

// NewLessonService creates a new LessonService. queue may be nil, in which
// case completions are not persisted.
func NewLessonService(repo *curriculum.Repository, registry *tasks.Registry, sessions *SessionStore, queue jobs.ProgressQueue) LessonService {
	return &lessonService{repo: repo, registry: registry, sessions: sessions, queue: queue}
}

var learnerIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// ValidateLearnerID reports a VALIDATION_ERROR unless id is 1-64 letters,
// digits, dots, dashes or underscores.
func ValidateLearnerID(id string) error {
	if !learnerIDPattern.MatchString(id) {
		return errors.NewValidationError("learner_id", "must be 1-64 letters, digits, dots, dashes or underscores")
	}
	return nil
}

func (s *lessonService) StartLesson(ctx context.Context, learnerID string, day, lesson int) (*LessonSession, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting lesson: learner=%s, day=%d, lesson=%d", learnerID, day, lesson)

	if err := ValidateLearnerID(learnerID); err != nil {
		return nil, err
	}
	l, err := s.repo.GetLesson(day, lesson)
	if err != nil {
		return nil, err
	}

	p, err := player.New(day, l, s.registry, player.WithCompletionHook(s.completionHook(ctx, learnerID)))
	if err != nil {
		return nil, err
	}
	id := s.sessions.putLesson(lessonEntry{learnerID: learnerID, player: p})
	log.Info("lesson session started: id=%s, learner=%s, day=%d, lesson=%d", id, learnerID, day, lesson)
	return snapshotLesson(id, learnerID, p), nil
}

func (s *lessonService) completionHook(ctx context.Context, learnerID string) func(models.LessonOutcome) {
	log := logger.FromContext(ctx).WithField("learner", learnerID)
	return func(o models.LessonOutcome) {
		log.Info("lesson complete: day=%d, lesson=%d, attempts=%d", o.Day, o.Lesson, o.TaskAttempts)
		if s.queue == nil {
			return
		}
		err := s.queue.EnqueueLessonCompletion(models.LessonCompletion{
			LearnerID:    learnerID,
			Day:          o.Day,
			Lesson:       o.Lesson,
			TaskAttempts: o.TaskAttempts,
			CompletedAt:  o.CompletedAt,
		})
		if err != nil {
			log.Error("failed to enqueue lesson completion: %v", err)
		}
	}
}

func (s *lessonService) lookup(id string) (lessonEntry, error) {
	e, ok := s.sessions.lesson(id)
	if !ok {
		return lessonEntry{}, errors.NewSessionNotFoundError(id)
	}
	return e, nil
}

func (s *lessonService) GetSession(ctx context.Context, id string) (*LessonSession, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return snapshotLesson(id, e.learnerID, e.player), nil
}

func (s *lessonService) Advance(ctx context.Context, id string) (*LessonSession, error) {
	return s.transition(ctx, id, "advance", (*player.Player).Advance)
}

func (s *lessonService) Retreat(ctx context.Context, id string) (*LessonSession, error) {
	return s.transition(ctx, id, "retreat", (*player.Player).Retreat)
}

func (s *lessonService) transition(ctx context.Context, id, op string, fn func(*player.Player) error) (*LessonSession, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if err := fn(e.player); err != nil {
		logger.FromContext(ctx).Warn("%s rejected for session %s: %v", op, id, err)
		return nil, err
	}
	return snapshotLesson(id, e.learnerID, e.player), nil
}

func (s *lessonService) Submit(ctx context.Context, id string, resp models.Response) (*SubmitOutcome, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	res, err := e.player.Submit(resp)
	if err != nil {
		logger.FromContext(ctx).Warn("submit rejected for session %s: %v", id, err)
		return nil, err
	}
	logger.FromContext(ctx).Debug("submit on session %s: kind=%s passed=%t", id, res.Kind, res.Passed)
	return &SubmitOutcome{Result: res, Session: snapshotLesson(id, e.learnerID, e.player)}, nil
}

// SubmitJSON decodes raw against the current screen's task kind and submits it.
func (s *lessonService) SubmitJSON(ctx context.Context, id string, raw json.RawMessage) (*SubmitOutcome, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	screen, err := e.player.CurrentScreen()
	if err != nil {
		return nil, err
	}
	if !screen.IsTask() {
		return nil, errors.NewInvalidTransitionError("submit", string(e.player.State()))
	}
	resp, err := tasks.DecodeResponse(screen.Task.Kind(), raw)
	if err != nil {
		return nil, err
	}
	return s.Submit(ctx, id, resp)
}

func (s *lessonService) EndSession(ctx context.Context, id string) error {
	if !s.sessions.deleteLesson(id) {
		return errors.NewSessionNotFoundError(id)
	}
	logger.FromContext(ctx).Debug("lesson session ended: id=%s", id)
	return nil
}

func snapshotLesson(id, learnerID string, p *player.Player) *LessonSession {
	l := p.Lesson()
	out := &LessonSession{
		ID:        id,
		LearnerID: learnerID,
		Day:       p.Day(),
		Lesson:    l.Index,
		Title:     l.Title,
		State:     p.State(),
		Progress:  p.Progress(),
		Attempts:  p.Attempts(),
		Complete:  p.IsComplete(),
	}
	if screen, err := p.CurrentScreen(); err == nil {
		out.Screen = viewScreen(screen)
	}
	if res, ok := p.Result(); ok {
		out.Result = &res
	}
	return out
}
