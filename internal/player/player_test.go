package player_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vytor/tradeskill/internal/errors"
	"github.com/vytor/tradeskill/internal/models"
	"github.com/vytor/tradeskill/internal/player"
	"github.com/vytor/tradeskill/internal/tasks"
	"github.com/vytor/tradeskill/internal/testutil"
)

func newPlayer(t *testing.T, opts ...player.Option) *player.Player {
	t.Helper()
	p, err := player.New(1, testutil.TenScreenLesson(), tasks.NewRegistry(tasks.NewSequenceSource(0.1)), opts...)
	require.NoError(t, err)
	return p
}

func advanceN(t *testing.T, p *player.Player, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, p.Advance())
	}
}

func TestNew_RejectsEmptyLesson(t *testing.T) {
	_, err := player.New(1, models.Lesson{Index: 1}, tasks.NewRegistry(nil))
	assert.Error(t, err)
}

func TestPlayer_TaskGating(t *testing.T) {
	p := newPlayer(t)
	assert.Equal(t, player.StateAtScreen, p.State())
	assert.Equal(t, models.LessonProgress{Current: 0, Total: 10}, p.Progress())

	advanceN(t, p, 2)
	assert.Equal(t, 2, p.Index())
	assert.Equal(t, player.StateAwaitingSubmit, p.State())

	screen, err := p.CurrentScreen()
	require.NoError(t, err)
	assert.Equal(t, models.TaskMultipleChoice, screen.Task.Kind())

	// Advancing an unanswered task is a silent no-op.
	require.NoError(t, p.Advance())
	require.NoError(t, p.Advance())
	assert.Equal(t, 2, p.Index())

	res, err := p.Submit(models.MultipleChoiceResponse{Selected: []string{"Sell"}})
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.Equal(t, "Right, sellers are in control.", res.Feedback)
	assert.Equal(t, player.StateAtScreen, p.State())

	require.NoError(t, p.Advance())
	assert.Equal(t, 3, p.Index())
}

func TestPlayer_FailedSubmitAllowsRetry(t *testing.T) {
	p := newPlayer(t)
	advanceN(t, p, 2)

	for i := 0; i < 3; i++ {
		res, err := p.Submit(models.MultipleChoiceResponse{Selected: []string{"Buy"}})
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Equal(t, "Look again at who is in a hurry.", res.Feedback)
		assert.Equal(t, player.StateAwaitingSubmit, p.State())
	}
	assert.Equal(t, 3, p.Attempts())

	require.NoError(t, p.Advance())
	assert.Equal(t, 2, p.Index())

	res, err := p.Submit(models.MultipleChoiceResponse{Selected: []string{"Sell"}})
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.Equal(t, 4, p.Attempts())
}

func TestPlayer_MalformedLeavesStateUnchanged(t *testing.T) {
	p := newPlayer(t)
	advanceN(t, p, 2)

	_, err := p.Submit(models.SliderResponse{Value: 3})
	assert.ErrorIs(t, err, apperrors.ErrMalformedResponse)

	_, err = p.Submit(models.MultipleChoiceResponse{Selected: []string{"Hold"}})
	assert.ErrorIs(t, err, apperrors.ErrMalformedResponse)

	assert.Equal(t, 0, p.Attempts())
	assert.Equal(t, player.StateAwaitingSubmit, p.State())
	_, ok := p.Result()
	assert.False(t, ok)
}

func TestPlayer_SubmitOutsideTask(t *testing.T) {
	p := newPlayer(t)

	_, err := p.Submit(models.MultipleChoiceResponse{Selected: []string{"Sell"}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	advanceN(t, p, 2)
	_, err = p.Submit(models.MultipleChoiceResponse{Selected: []string{"Sell"}})
	require.NoError(t, err)

	_, err = p.Submit(models.MultipleChoiceResponse{Selected: []string{"Sell"}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "a passed task takes no further submissions")
}

func TestPlayer_AnswersAreSticky(t *testing.T) {
	p := newPlayer(t)
	advanceN(t, p, 2)
	_, err := p.Submit(models.MultipleChoiceResponse{Selected: []string{"2"}})
	require.NoError(t, err)
	advanceN(t, p, 1)

	require.NoError(t, p.Retreat())
	assert.Equal(t, 2, p.Index())
	assert.Equal(t, player.StateAtScreen, p.State())
	res, ok := p.Result()
	require.True(t, ok)
	assert.True(t, res.Passed)

	require.NoError(t, p.Advance())
	assert.Equal(t, 3, p.Index())
}

func TestPlayer_RetreatAtStartIsNoop(t *testing.T) {
	p := newPlayer(t)
	require.NoError(t, p.Retreat())
	require.NoError(t, p.Retreat())
	assert.Equal(t, 0, p.Index())
	assert.Equal(t, player.StateAtScreen, p.State())
}

func TestPlayer_AutoPassScreens(t *testing.T) {
	rng := tasks.NewSequenceSource(0.9)
	p, err := player.New(1, testutil.TenScreenLesson(), tasks.NewRegistry(rng))
	require.NoError(t, err)

	advanceN(t, p, 2)
	_, err = p.Submit(models.MultipleChoiceResponse{Selected: []string{"Sell"}})
	require.NoError(t, err)
	advanceN(t, p, 2)
	_, err = p.Submit(models.SliderResponse{Value: 480})
	require.NoError(t, err)
	advanceN(t, p, 2)
	assert.Equal(t, 6, p.Index())
	assert.Equal(t, player.StateAwaitingSubmit, p.State())

	// The coin flip resolves itself on advance.
	require.NoError(t, p.Advance())
	assert.Equal(t, 7, p.Index())
	assert.Equal(t, 1, rng.Calls())

	require.NoError(t, p.Retreat())
	res, ok := p.Result()
	require.True(t, ok)
	assert.True(t, res.Passed)
	assert.Equal(t, "down", res.Outcome)

	// Going back over a resolved flip does not flip again.
	advanceN(t, p, 1)
	assert.Equal(t, 1, rng.Calls())

	// Simulation on screen 8 resolves the same way.
	advanceN(t, p, 2)
	assert.Equal(t, 9, p.Index())
}

func TestPlayer_CompletionHookFiresOnce(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var outcomes []models.LessonOutcome
	p := newPlayer(t,
		player.WithCompletionHook(func(o models.LessonOutcome) { outcomes = append(outcomes, o) }),
		player.WithClock(func() time.Time { return fixed }),
	)

	advanceN(t, p, 2)
	_, err := p.Submit(models.MultipleChoiceResponse{Selected: []string{"Buy"}})
	require.NoError(t, err)
	_, err = p.Submit(models.MultipleChoiceResponse{Selected: []string{"Sell"}})
	require.NoError(t, err)
	advanceN(t, p, 2)
	_, err = p.Submit(models.SliderResponse{Value: 540})
	require.NoError(t, err)
	advanceN(t, p, 6)

	assert.True(t, p.IsComplete())
	assert.Equal(t, player.StateComplete, p.State())
	assert.Equal(t, models.LessonProgress{Current: 10, Total: 10}, p.Progress())
	require.Len(t, outcomes, 1)

	o := outcomes[0]
	assert.Equal(t, 1, o.Day)
	assert.Equal(t, 1, o.Lesson)
	assert.Equal(t, 10, o.Screens)
	assert.Equal(t, 3, o.TaskAttempts)
	assert.Len(t, o.Results, 4)
	assert.Equal(t, fixed, o.CompletedAt)

	assert.ErrorIs(t, p.Advance(), apperrors.ErrInvalidTransition)
	assert.ErrorIs(t, p.Retreat(), apperrors.ErrInvalidTransition)
	_, err = p.CurrentScreen()
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	assert.Len(t, outcomes, 1)
}

func TestPlayer_ReentrantTransitionRejected(t *testing.T) {
	var reentrant []error
	var p *player.Player
	p = newPlayer(t, player.WithCompletionHook(func(models.LessonOutcome) {
		reentrant = append(reentrant, p.Advance(), p.Retreat())
		_, err := p.Submit(models.SimulationResponse{})
		reentrant = append(reentrant, err)
		// Reads stay available inside the hook.
		assert.True(t, p.IsComplete())
	}))

	advanceN(t, p, 2)
	_, err := p.Submit(models.MultipleChoiceResponse{Selected: []string{"Sell"}})
	require.NoError(t, err)
	advanceN(t, p, 2)
	_, err = p.Submit(models.SliderResponse{Value: 500})
	require.NoError(t, err)
	advanceN(t, p, 6)

	require.Len(t, reentrant, 3)
	for _, err := range reentrant {
		assert.ErrorIs(t, err, apperrors.ErrTransitionInProgress)
	}
	assert.True(t, p.IsComplete())
	assert.Equal(t, 10, p.Progress().Current)
}

func TestPlayer_ScreenBoundsUnderRandomWalk(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for run := 0; run < 50; run++ {
		p := newPlayer(t)
		for step := 0; step < 200 && !p.IsComplete(); step++ {
			before := p.Index()
			blocked := p.State() == player.StateAwaitingSubmit
			screen, err := p.CurrentScreen()
			require.NoError(t, err)

			if rng.IntN(2) == 0 {
				require.NoError(t, p.Advance())
				if blocked && !screen.Task.Kind().AutoPass() {
					assert.Equal(t, before, p.Index(), "gated advance moved the index")
				}
			} else {
				require.NoError(t, p.Retreat())
				if before == 0 {
					assert.Equal(t, 0, p.Index())
				}
			}
			if !p.IsComplete() {
				idx := p.Index()
				assert.GreaterOrEqual(t, idx, 0)
				assert.Less(t, idx, 10)
			}
		}
	}
}
