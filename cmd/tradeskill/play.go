package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vytor/tradeskill/internal/config"
	"github.com/vytor/tradeskill/internal/curriculum"
	"github.com/vytor/tradeskill/internal/dailytest"
	apperrors "github.com/vytor/tradeskill/internal/errors"
	"github.com/vytor/tradeskill/internal/models"
	"github.com/vytor/tradeskill/internal/player"
	"github.com/vytor/tradeskill/internal/repository"
	"github.com/vytor/tradeskill/internal/services"
	"github.com/vytor/tradeskill/internal/tasks"
)

var errQuit = errors.New("quit")

func playCmd() *cobra.Command {
	var (
		day, lesson int
		withTest    bool
		learner     string
		save        bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a lesson and its daily test in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if save {
				if err := services.ValidateLearnerID(learner); err != nil {
					return fmt.Errorf("--learner %q: %w", learner, err)
				}
			}
			cfg := config.Load()
			setupLogger(cfg)

			prog, err := loadProgram(cmd, cfg)
			if err != nil {
				return err
			}
			content := curriculum.NewRepository(prog)
			d, err := content.GetDay(day)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			var store repository.ProgressRepository
			if save {
				repo, closeStore, err := openProgressStore(ctx, cfg)
				if err != nil {
					return err
				}
				defer closeStore()
				store = repo
			}

			term := newTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
			registry := tasks.NewRegistry(tasks.NewRandomSource(cfg.Seed))

			lessons := d.Lessons
			if lesson > 0 {
				l, err := content.GetLesson(day, lesson)
				if err != nil {
					return err
				}
				lessons = []models.Lesson{l}
			}
			for _, l := range lessons {
				outcome, err := term.playLesson(day, l, registry)
				if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}
				if store != nil {
					if _, err := store.InsertLessonCompletion(ctx, models.LessonCompletion{
						LearnerID: learner, Day: outcome.Day, Lesson: outcome.Lesson,
						TaskAttempts: outcome.TaskAttempts, CompletedAt: outcome.CompletedAt,
					}); err != nil {
						return fmt.Errorf("save lesson completion: %w", err)
					}
				}
			}

			if !withTest {
				return nil
			}
			test, ok, err := content.GetDailyTest(day)
			if err != nil {
				return err
			}
			if !ok {
				term.printf("\nDay %d has no daily test.\n", day)
				return nil
			}
			res, err := term.playTest(day, *test, registry)
			if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if store != nil {
				if _, err := store.InsertTestAttempt(ctx, models.TestAttempt{
					LearnerID: learner, Day: res.Day, Score: res.Score, Passed: res.Passed,
					PassingScore: res.PassingScore, Correct: res.Correct, Total: res.Total,
				}); err != nil {
					return fmt.Errorf("save test attempt: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&day, "day", 1, "Day to play (1-28)")
	cmd.Flags().IntVar(&lesson, "lesson", 0, "Lesson to play, 0 for every lesson of the day")
	cmd.Flags().BoolVar(&withTest, "test", false, "Take the daily test after the lessons")
	cmd.Flags().StringVar(&learner, "learner", "local", "Learner ID used when saving progress")
	cmd.Flags().BoolVar(&save, "save", false, "Record completions in the configured progress store")
	return cmd
}

type terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	return &terminal{in: bufio.NewScanner(in), out: out}
}

func (t *terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *terminal) readLine(prompt string) (string, error) {
	t.printf("%s", prompt)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := strings.TrimSpace(t.in.Text())
	if strings.EqualFold(line, "q") {
		return "", errQuit
	}
	return line, nil
}

// playLesson runs one lesson to completion. Blank input advances, "b"
// goes back and "q" quits.
func (t *terminal) playLesson(day int, l models.Lesson, eval player.Evaluator) (models.LessonOutcome, error) {
	var outcome models.LessonOutcome
	p, err := player.New(day, l, eval, player.WithCompletionHook(func(o models.LessonOutcome) { outcome = o }))
	if err != nil {
		return outcome, err
	}
	t.printf("\n== Day %d, lesson %d: %s ==\n", day, l.Index, l.Title)

	for !p.IsComplete() {
		screen, err := p.CurrentScreen()
		if err != nil {
			return outcome, err
		}
		prog := p.Progress()
		t.printf("\n[%d/%d] %s\n", prog.Current+1, prog.Total, screen.Title)
		renderScreen(t.out, screen)

		awaiting := p.State() == player.StateAwaitingSubmit
		prompt := "[enter] next  [b] back  [q] quit > "
		if awaiting {
			renderTask(t.out, tasks.Present(screen.Task))
			prompt = "answer > "
			if screen.Task.Kind().AutoPass() {
				prompt = "answer, or [enter] to skip > "
			}
		}

		line, err := t.readLine(prompt)
		if err != nil {
			return outcome, err
		}
		switch {
		case strings.EqualFold(line, "b"):
			err = p.Retreat()
		case line == "" || !awaiting:
			err = p.Advance()
		default:
			err = t.submit(p, screen, line)
		}
		if err != nil {
			return outcome, err
		}
	}
	t.printf("\nLesson complete. Task attempts: %d\n", outcome.TaskAttempts)
	return outcome, nil
}

func (t *terminal) submit(p *player.Player, screen models.Screen, line string) error {
	resp, err := tasks.ParseText(screen.Task, line)
	if err == nil {
		var res models.TaskResult
		res, err = p.Submit(resp)
		if err == nil {
			renderResult(t.out, res)
			return nil
		}
	}
	if errors.Is(err, apperrors.ErrMalformedResponse) {
		t.printf("  ! %v\n", err)
		return nil
	}
	return err
}

// playTest runs the daily test. Each question takes exactly one answer.
func (t *terminal) playTest(day int, test models.DailyTest, eval dailytest.Evaluator) (models.TestResult, error) {
	r, err := dailytest.New(day, test, eval)
	if err != nil {
		return models.TestResult{}, err
	}
	t.printf("\n== Day %d daily test: %d questions, pass at %.0f%% ==\n", day, len(test.Questions), test.PassingScore)

	for !r.Finished() {
		q, err := r.CurrentQuestion()
		if err != nil {
			return r.Result(), err
		}
		t.printf("\nQuestion %d of %d\n", r.Index()+1, len(test.Questions))
		renderTask(t.out, tasks.Present(q.Task))

		line, err := t.readLine("answer > ")
		if err != nil {
			return r.Result(), err
		}
		resp, err := tasks.ParseText(q.Task, line)
		if err != nil {
			t.printf("  ! %v\n", err)
			continue
		}
		res, err := r.Submit(resp)
		if errors.Is(err, apperrors.ErrMalformedResponse) {
			t.printf("  ! %v\n", err)
			continue
		}
		if err != nil {
			return r.Result(), err
		}
		renderResult(t.out, res)
		if q.Explanation != "" {
			t.printf("  %s\n", q.Explanation)
		}
	}

	res := r.Result()
	verdict := "not passed"
	if res.Passed {
		verdict = "passed"
	}
	t.printf("\nScore: %.0f%% (%d/%d), %s\n", res.Score, res.Correct, res.Total, verdict)
	return res, nil
}
