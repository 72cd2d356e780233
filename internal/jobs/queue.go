package jobs

import "github.com/vytor/tradeskill/internal/models"

// ProgressQueue hands finished sessions to background persistence
type ProgressQueue interface {
	EnqueueLessonCompletion(c models.LessonCompletion) error
	EnqueueTestAttempt(a models.TestAttempt) error
}
