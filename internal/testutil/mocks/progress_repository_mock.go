package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/tradeskill/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) InsertLessonCompletion(ctx context.Context, c models.LessonCompletion) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgressRepository) InsertTestAttempt(ctx context.Context, a models.TestAttempt) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgressRepository) ListLessonCompletions(ctx context.Context, filter models.ProgressFilter) ([]models.LessonCompletion, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LessonCompletion), args.Error(1)
}

func (m *MockProgressRepository) ListTestAttempts(ctx context.Context, filter models.ProgressFilter) ([]models.TestAttempt, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TestAttempt), args.Error(1)
}

func (m *MockProgressRepository) DeleteLearner(ctx context.Context, learnerID string) error {
	args := m.Called(ctx, learnerID)
	return args.Error(0)
}

func (m *MockProgressRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
