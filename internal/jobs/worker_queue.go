package jobs

import (
	"context"
	"time"

	"github.com/vytor/tradeskill/internal/models"
	"github.com/vytor/tradeskill/internal/repository"
	"github.com/vytor/tradeskill/internal/worker"
)

// submitTimeout bounds how long an enqueue waits on a full queue.
const submitTimeout = 5 * time.Second

// WorkerQueue implements ProgressQueue using a worker pool
type WorkerQueue struct {
	pool *worker.Pool
	repo repository.ProgressRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, repo repository.ProgressRepository) ProgressQueue {
	return &WorkerQueue{pool: pool, repo: repo}
}

func (q *WorkerQueue) EnqueueLessonCompletion(c models.LessonCompletion) error {
	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()
	return q.pool.Submit(ctx, &worker.RecordCompletionJob{Repo: q.repo, Completion: c})
}

func (q *WorkerQueue) EnqueueTestAttempt(a models.TestAttempt) error {
	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()
	return q.pool.Submit(ctx, &worker.RecordAttemptJob{Repo: q.repo, Attempt: a})
}
