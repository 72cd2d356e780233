package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vytor/tradeskill/internal/models"
	"github.com/vytor/tradeskill/internal/testutil/mocks"
	"github.com/vytor/tradeskill/internal/worker"
)

type countJob struct {
	n   *atomic.Int32
	err error
}

func (j countJob) Name() string { return "count" }

func (j countJob) Run(context.Context) error {
	j.n.Add(1)
	return j.err
}

func TestPool_StopDrainsQueue(t *testing.T) {
	var n atomic.Int32
	pool := worker.NewPool(2, 16)
	pool.Start(context.Background())

	for i := 0; i < 10; i++ {
		var err error
		if i%3 == 0 {
			err = errors.New("boom")
		}
		require.NoError(t, pool.Submit(context.Background(), countJob{n: &n, err: err}))
	}
	pool.Stop()

	assert.Equal(t, int32(10), n.Load())
	assert.Equal(t, 0, pool.QueueSize())
}

func TestPool_SubmitAfterStop(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()

	err := pool.Submit(context.Background(), countJob{n: new(atomic.Int32)})
	assert.ErrorIs(t, err, worker.ErrPoolStopped)
}

func TestPool_SubmitRespectsContext(t *testing.T) {
	// Not started, so the single slot stays full.
	pool := worker.NewPool(1, 1)
	require.NoError(t, pool.Submit(context.Background(), countJob{n: new(atomic.Int32)}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.Submit(ctx, countJob{n: new(atomic.Int32)})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, pool.QueueSize())
}

func TestRecordCompletionJob(t *testing.T) {
	repo := new(mocks.MockProgressRepository)
	c := models.LessonCompletion{LearnerID: "ana", Day: 1, Lesson: 1, TaskAttempts: 2}
	repo.On("InsertLessonCompletion", mock.Anything, c).Return(int64(7), nil)

	job := &worker.RecordCompletionJob{Repo: repo, Completion: c}
	assert.Equal(t, "record_lesson_completion", job.Name())
	require.NoError(t, job.Run(context.Background()))
	repo.AssertExpectations(t)
}

func TestRecordAttemptJob_PropagatesError(t *testing.T) {
	repo := new(mocks.MockProgressRepository)
	a := models.TestAttempt{LearnerID: "ana", Day: 1, Score: 60}
	repo.On("InsertTestAttempt", mock.Anything, a).Return(int64(0), errors.New("disk full"))

	err := (&worker.RecordAttemptJob{Repo: repo, Attempt: a}).Run(context.Background())
	assert.EqualError(t, err, "disk full")
}

type fakeSweeper struct {
	idle []time.Duration
}

func (f *fakeSweeper) Sweep(idle time.Duration) int {
	f.idle = append(f.idle, idle)
	return 2
}

func TestSweepSessionsJob(t *testing.T) {
	s := &fakeSweeper{}
	job := &worker.SweepSessionsJob{Sessions: s, Idle: time.Hour}
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, []time.Duration{time.Hour}, s.idle)
}

func TestEvery_SubmitsUntilCancelled(t *testing.T) {
	var n atomic.Int32
	pool := worker.NewPool(1, 8)
	pool.Start(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Every(ctx, pool, 5*time.Millisecond, func() worker.Job { return countJob{n: &n} })
		close(done)
	}()

	assert.Eventually(t, func() bool { return n.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
	pool.Stop()
}
