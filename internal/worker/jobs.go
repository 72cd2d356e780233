package worker

import (
	"context"
	"time"

	"github.com/vytor/tradeskill/internal/logger"
	"github.com/vytor/tradeskill/internal/models"
	"github.com/vytor/tradeskill/internal/repository"
)

// RecordCompletionJob persists one finished lesson.
type RecordCompletionJob struct {
	Repo       repository.ProgressRepository
	Completion models.LessonCompletion
}

func (j *RecordCompletionJob) Name() string { return "record_lesson_completion" }

func (j *RecordCompletionJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"learner": j.Completion.LearnerID,
		"day":     j.Completion.Day,
		"lesson":  j.Completion.Lesson,
	})
	id, err := j.Repo.InsertLessonCompletion(ctx, j.Completion)
	if err != nil {
		return err
	}
	log.Info("lesson completion recorded: id=%d", id)
	return nil
}

// RecordAttemptJob persists one finished daily test.
type RecordAttemptJob struct {
	Repo    repository.ProgressRepository
	Attempt models.TestAttempt
}

func (j *RecordAttemptJob) Name() string { return "record_test_attempt" }

func (j *RecordAttemptJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"learner": j.Attempt.LearnerID,
		"day":     j.Attempt.Day,
	})
	id, err := j.Repo.InsertTestAttempt(ctx, j.Attempt)
	if err != nil {
		return err
	}
	log.Info("test attempt recorded: id=%d score=%.1f passed=%t", id, j.Attempt.Score, j.Attempt.Passed)
	return nil
}

// Sweeper drops sessions idle for longer than the given duration and
// reports how many it removed.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// SweepSessionsJob evicts idle lesson and test sessions.
type SweepSessionsJob struct {
	Sessions Sweeper
	Idle     time.Duration
}

func (j *SweepSessionsJob) Name() string { return "sweep_sessions" }

func (j *SweepSessionsJob) Run(ctx context.Context) error {
	if n := j.Sessions.Sweep(j.Idle); n > 0 {
		logger.FromContext(ctx).Info("evicted %d idle sessions", n)
	}
	return nil
}

// Every submits a fresh job from next on each tick until ctx is done.
func Every(ctx context.Context, pool *Pool, interval time.Duration, next func() Job) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := pool.Submit(ctx, next()); err != nil {
				return
			}
		}
	}
}
