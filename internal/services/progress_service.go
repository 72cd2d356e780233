package services

import (
	"context"
	"sort"

	"github.com/vytor/tradeskill/internal/curriculum"
	"github.com/vytor/tradeskill/internal/errors"
	"github.com/vytor/tradeskill/internal/logger"
	"github.com/vytor/tradeskill/internal/models"
	"github.com/vytor/tradeskill/internal/repository"
)

// ProgressService summarises and manages stored learner progress
type ProgressService interface {
	Summary(ctx context.Context, learnerID string) (*models.LearnerProgress, error)
	Completions(ctx context.Context, filter models.ProgressFilter) ([]models.LessonCompletion, error)
	Attempts(ctx context.Context, filter models.ProgressFilter) ([]models.TestAttempt, error)
	Reset(ctx context.Context, learnerID string) error
}

type progressService struct {
	progressRepo repository.ProgressRepository
	curriculum   *curriculum.Repository
}

// NewProgressService creates a new ProgressService
func NewProgressService(progressRepo repository.ProgressRepository, curriculum *curriculum.Repository) ProgressService {
	return &progressService{progressRepo: progressRepo, curriculum: curriculum}
}

func (s *progressService) Summary(ctx context.Context, learnerID string) (*models.LearnerProgress, error) {
	log := logger.FromContext(ctx)
	log.Debug("summarising progress: learner=%s", learnerID)

	if err := ValidateLearnerID(learnerID); err != nil {
		return nil, err
	}
	filter := models.ProgressFilter{LearnerID: learnerID, Limit: -1}
	completions, err := s.progressRepo.ListLessonCompletions(ctx, filter)
	if err != nil {
		log.Error("failed to list lesson completions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	attempts, err := s.progressRepo.ListTestAttempts(ctx, filter)
	if err != nil {
		log.Error("failed to list test attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return summarize(learnerID, s.curriculum.Program(), completions, attempts), nil
}

// summarize folds stored history into per-day progress. Day 1 is always
// unlocked; each following day unlocks once the day before is complete.
func summarize(learnerID string, prog models.Program, completions []models.LessonCompletion, attempts []models.TestAttempt) *models.LearnerProgress {
	done := make(map[int]map[int]bool)
	for _, c := range completions {
		if done[c.Day] == nil {
			done[c.Day] = make(map[int]bool)
		}
		done[c.Day][c.Lesson] = true
	}
	best := make(map[int]float64)
	passed := make(map[int]bool)
	for _, a := range attempts {
		if cur, ok := best[a.Day]; !ok || a.Score > cur {
			best[a.Day] = a.Score
		}
		if a.Passed {
			passed[a.Day] = true
		}
	}

	out := &models.LearnerProgress{LearnerID: learnerID, UnlockedThrough: 1, Days: make([]models.DayProgress, 0, len(prog.Days))}
	chain := true
	for _, d := range prog.Days {
		dp := models.DayProgress{
			Day:              d.Number,
			LessonsTotal:     len(d.Lessons),
			HasTest:          d.Test != nil,
			TestPassed:       passed[d.Number],
			LessonsCompleted: []int{},
		}
		for _, l := range d.Lessons {
			if done[d.Number][l.Index] {
				dp.LessonsCompleted = append(dp.LessonsCompleted, l.Index)
			}
		}
		sort.Ints(dp.LessonsCompleted)
		if score, ok := best[d.Number]; ok {
			dp.BestScore = &score
		}
		dp.Complete = len(dp.LessonsCompleted) == dp.LessonsTotal && (!dp.HasTest || dp.TestPassed)
		if dp.Complete {
			out.DaysComplete++
		}
		if chain && dp.Complete {
			if d.Number < len(prog.Days) {
				out.UnlockedThrough = d.Number + 1
			}
		} else {
			chain = false
		}
		out.Days = append(out.Days, dp)
	}
	return out
}

func (s *progressService) Completions(ctx context.Context, filter models.ProgressFilter) ([]models.LessonCompletion, error) {
	if err := ValidateLearnerID(filter.LearnerID); err != nil {
		return nil, err
	}
	out, err := s.progressRepo.ListLessonCompletions(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list lesson completions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return out, nil
}

func (s *progressService) Attempts(ctx context.Context, filter models.ProgressFilter) ([]models.TestAttempt, error) {
	if err := ValidateLearnerID(filter.LearnerID); err != nil {
		return nil, err
	}
	out, err := s.progressRepo.ListTestAttempts(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list test attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return out, nil
}

func (s *progressService) Reset(ctx context.Context, learnerID string) error {
	if err := ValidateLearnerID(learnerID); err != nil {
		return err
	}
	if err := s.progressRepo.DeleteLearner(ctx, learnerID); err != nil {
		logger.FromContext(ctx).Error("failed to reset progress: %v", err)
		return errors.NewInternalError(err)
	}
	logger.FromContext(ctx).Info("progress reset: learner=%s", learnerID)
	return nil
}
