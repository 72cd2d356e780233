package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/tradeskill/internal/models"
)

// MockProgressQueue is a mock implementation of jobs.ProgressQueue
type MockProgressQueue struct {
	mock.Mock
}

func (m *MockProgressQueue) EnqueueLessonCompletion(c models.LessonCompletion) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockProgressQueue) EnqueueTestAttempt(a models.TestAttempt) error {
	args := m.Called(a)
	return args.Error(0)
}
