// Package player walks a learner through one lesson, screen by screen,
// gating task screens on a passing submission.
package player

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	apperrors "github.com/vytor/tradeskill/internal/errors"
	"github.com/vytor/tradeskill/internal/models"
)

type State string

const (
	StateAtScreen       State = "at_screen"
	StateAwaitingSubmit State = "awaiting_task_submission"
	StateComplete       State = "complete"
)

// Evaluator scores task responses. *tasks.Registry satisfies it.
type Evaluator interface {
	Evaluate(cfg models.TaskConfig, resp models.Response) (models.TaskResult, error)
	AutoResolve(cfg models.TaskConfig) (models.TaskResult, error)
}

type Option func(*Player)

// WithCompletionHook registers fn to receive the lesson outcome once, when
// the learner advances past the last screen.
func WithCompletionHook(fn func(models.LessonOutcome)) Option {
	return func(p *Player) { p.onComplete = fn }
}

// WithClock overrides the time source used to stamp the outcome.
func WithClock(now func() time.Time) Option {
	return func(p *Player) { p.now = now }
}

// Player is the state machine for one lesson session. Transitions are
// serialised: a transition started while another is running fails with
// TRANSITION_IN_PROGRESS instead of waiting.
type Player struct {
	day    int
	lesson models.Lesson
	eval   Evaluator

	onComplete func(models.LessonOutcome)
	now        func() time.Time

	busy atomic.Bool

	mu       sync.RWMutex
	index    int
	complete bool
	results  map[int]models.TaskResult
	attempts map[int]int
}

func New(day int, lesson models.Lesson, eval Evaluator, opts ...Option) (*Player, error) {
	if len(lesson.Screens) == 0 {
		return nil, apperrors.NewValidationError("lesson", fmt.Sprintf("day %d lesson %d has no screens", day, lesson.Index))
	}
	p := &Player{
		day:      day,
		lesson:   lesson,
		eval:     eval,
		now:      time.Now,
		results:  make(map[int]models.TaskResult),
		attempts: make(map[int]int),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Player) Day() int              { return p.day }
func (p *Player) Lesson() models.Lesson { return p.lesson }

func (p *Player) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stateLocked()
}

func (p *Player) stateLocked() State {
	if p.complete {
		return StateComplete
	}
	if p.blockedLocked() {
		return StateAwaitingSubmit
	}
	return StateAtScreen
}

// blockedLocked reports whether the current screen is a task without a
// passing result. Auto-pass tasks count as blocked until resolved, but
// Advance resolves them instead of stopping.
func (p *Player) blockedLocked() bool {
	s := p.lesson.Screens[p.index]
	if !s.IsTask() {
		return false
	}
	res, ok := p.results[p.index]
	return !ok || !res.Passed
}

func (p *Player) IsComplete() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.complete
}

// Index returns the current 0-based screen index.
func (p *Player) Index() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index
}

func (p *Player) CurrentScreen() (models.Screen, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.complete {
		return models.Screen{}, apperrors.NewInvalidTransitionError("current screen", string(StateComplete))
	}
	return p.lesson.Screens[p.index], nil
}

// Result returns the latest result recorded for the current screen.
func (p *Player) Result() (models.TaskResult, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.complete {
		return models.TaskResult{}, false
	}
	res, ok := p.results[p.index]
	return res, ok
}

func (p *Player) Progress() models.LessonProgress {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cur := p.index
	if p.complete {
		cur = len(p.lesson.Screens)
	}
	return models.LessonProgress{Current: cur, Total: len(p.lesson.Screens)}
}

// Attempts returns the number of submissions made on the current screen.
func (p *Player) Attempts() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.attempts[p.index]
}

func (p *Player) begin(op string) error {
	if !p.busy.CompareAndSwap(false, true) {
		return apperrors.NewTransitionInProgressError(op)
	}
	return nil
}

func (p *Player) end() { p.busy.Store(false) }

// Advance moves to the next screen. On a task screen without a passing
// result it does nothing, except for coin flips and simulations which
// resolve themselves and move on.
func (p *Player) Advance() error {
	if err := p.begin("advance"); err != nil {
		return err
	}
	defer p.end()

	outcome, finished, err := p.advance()
	if err != nil {
		return err
	}
	if finished && p.onComplete != nil {
		p.onComplete(outcome)
	}
	return nil
}

func (p *Player) advance() (models.LessonOutcome, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.complete {
		return models.LessonOutcome{}, false, apperrors.NewInvalidTransitionError("advance", string(StateComplete))
	}
	if p.blockedLocked() {
		s := p.lesson.Screens[p.index]
		if !s.Task.Kind().AutoPass() {
			return models.LessonOutcome{}, false, nil
		}
		res, err := p.eval.AutoResolve(s.Task)
		if err != nil {
			return models.LessonOutcome{}, false, err
		}
		p.results[p.index] = withFeedback(s, res)
	}

	if p.index+1 < len(p.lesson.Screens) {
		p.index++
		return models.LessonOutcome{}, false, nil
	}
	p.complete = true
	return p.outcomeLocked(), true, nil
}

// Retreat moves back one screen. Results recorded on later screens are kept.
func (p *Player) Retreat() error {
	if err := p.begin("retreat"); err != nil {
		return err
	}
	defer p.end()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.complete {
		return apperrors.NewInvalidTransitionError("retreat", string(StateComplete))
	}
	if p.index > 0 {
		p.index--
	}
	return nil
}

// Submit evaluates resp against the current task screen. A failing answer
// is returned as a result, not an error, and may be retried.
func (p *Player) Submit(resp models.Response) (models.TaskResult, error) {
	if err := p.begin("submit"); err != nil {
		return models.TaskResult{}, err
	}
	defer p.end()

	p.mu.Lock()
	defer p.mu.Unlock()
	if state := p.stateLocked(); state != StateAwaitingSubmit {
		return models.TaskResult{}, apperrors.NewInvalidTransitionError("submit", string(state))
	}

	s := p.lesson.Screens[p.index]
	res, err := p.eval.Evaluate(s.Task, resp)
	if err != nil {
		return models.TaskResult{}, err
	}
	res = withFeedback(s, res)
	p.attempts[p.index]++
	p.results[p.index] = res
	return res, nil
}

func (p *Player) outcomeLocked() models.LessonOutcome {
	out := models.LessonOutcome{
		Day:         p.day,
		Lesson:      p.lesson.Index,
		Screens:     len(p.lesson.Screens),
		CompletedAt: p.now().UTC(),
	}
	for i := range p.lesson.Screens {
		if res, ok := p.results[i]; ok {
			out.Results = append(out.Results, res)
		}
		out.TaskAttempts += p.attempts[i]
	}
	return out
}

func withFeedback(s models.Screen, res models.TaskResult) models.TaskResult {
	if res.Passed && s.SuccessText != "" {
		res.Feedback = s.SuccessText
	}
	if !res.Passed && s.FailureText != "" {
		res.Feedback = s.FailureText
	}
	return res
}
