// Package dailytest runs the end-of-day quiz: one answer per question,
// scored against the day's passing threshold.
package dailytest

import (
	"fmt"
	"sync"
	"sync/atomic"

	apperrors "github.com/vytor/tradeskill/internal/errors"
	"github.com/vytor/tradeskill/internal/models"
)

// Evaluator scores task responses. *tasks.Registry satisfies it.
type Evaluator interface {
	Evaluate(cfg models.TaskConfig, resp models.Response) (models.TaskResult, error)
}

type Option func(*Runner)

// WithFinishHook registers fn to receive the final result once.
func WithFinishHook(fn func(models.TestResult)) Option {
	return func(r *Runner) { r.onFinish = fn }
}

// Runner is the state machine for one daily test attempt.
type Runner struct {
	day  int
	test models.DailyTest
	eval Evaluator

	onFinish func(models.TestResult)

	busy atomic.Bool

	mu      sync.RWMutex
	index   int
	correct int
	answers []models.TaskResult
}

func New(day int, test models.DailyTest, eval Evaluator, opts ...Option) (*Runner, error) {
	if len(test.Questions) == 0 {
		return nil, apperrors.NewValidationError("test", fmt.Sprintf("day %d test has no questions", day))
	}
	r := &Runner{day: day, test: test, eval: eval}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Runner) Day() int { return r.day }

func (r *Runner) Finished() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.finishedLocked()
}

func (r *Runner) finishedLocked() bool {
	return r.index >= len(r.test.Questions)
}

// Index returns the 0-based index of the current question.
func (r *Runner) Index() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index
}

func (r *Runner) CurrentQuestion() (models.TestQuestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.finishedLocked() {
		return models.TestQuestion{}, apperrors.NewInvalidTransitionError("current question", "finished")
	}
	return r.test.Questions[r.index], nil
}

// Answers returns the results recorded so far, in question order.
func (r *Runner) Answers() []models.TaskResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.TaskResult, len(r.answers))
	copy(out, r.answers)
	return out
}

// Submit records the answer to the current question and moves on. Wrong
// answers are results, not errors.
func (r *Runner) Submit(resp models.Response) (models.TaskResult, error) {
	_, res, err := r.Answer(func(models.TaskConfig) (models.Response, error) { return resp, nil })
	return res, err
}

// Answer builds the response for the current question with decode and
// records it. The returned question is the one that was scored, even when
// other submissions race with this one.
func (r *Runner) Answer(decode func(models.TaskConfig) (models.Response, error)) (models.TestQuestion, models.TaskResult, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return models.TestQuestion{}, models.TaskResult{}, apperrors.NewTransitionInProgressError("submit")
	}
	defer r.busy.Store(false)

	q, res, finished, err := r.answer(decode)
	if err != nil {
		return models.TestQuestion{}, models.TaskResult{}, err
	}
	if finished && r.onFinish != nil {
		r.onFinish(r.Result())
	}
	return q, res, nil
}

func (r *Runner) answer(decode func(models.TaskConfig) (models.Response, error)) (models.TestQuestion, models.TaskResult, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finishedLocked() {
		return models.TestQuestion{}, models.TaskResult{}, false, apperrors.NewInvalidTransitionError("submit", "finished")
	}

	q := r.test.Questions[r.index]
	resp, err := decode(q.Task)
	if err != nil {
		return models.TestQuestion{}, models.TaskResult{}, false, err
	}
	res, err := r.eval.Evaluate(q.Task, resp)
	if err != nil {
		return models.TestQuestion{}, models.TaskResult{}, false, err
	}
	if res.Passed {
		r.correct++
	}
	r.answers = append(r.answers, res)
	r.index++
	return q, res, r.finishedLocked(), nil
}

// Result returns the running result. Passed is only ever true once every
// question is answered.
func (r *Runner) Result() models.TestResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	answered := len(r.answers)
	res := models.TestResult{
		Day:          r.day,
		PassingScore: r.test.PassingScore,
		Correct:      r.correct,
		Answered:     answered,
		Total:        len(r.test.Questions),
		Finished:     r.finishedLocked(),
	}
	if answered > 0 {
		res.Score = float64(r.correct) * 100 / float64(answered)
	}
	res.Passed = res.Finished && res.Score >= r.test.PassingScore
	return res
}
