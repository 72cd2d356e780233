package repository

import (
	"context"

	"github.com/vytor/tradeskill/internal/models"
)

// ProgressRepository stores lesson completions and daily test attempts per learner
type ProgressRepository interface {
	InsertLessonCompletion(ctx context.Context, c models.LessonCompletion) (int64, error)
	InsertTestAttempt(ctx context.Context, a models.TestAttempt) (int64, error)
	ListLessonCompletions(ctx context.Context, filter models.ProgressFilter) ([]models.LessonCompletion, error)
	ListTestAttempts(ctx context.Context, filter models.ProgressFilter) ([]models.TestAttempt, error)
	DeleteLearner(ctx context.Context, learnerID string) error
	Ping(ctx context.Context) error
}
