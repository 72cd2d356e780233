package services

import (
	"context"

	"github.com/vytor/tradeskill/internal/curriculum"
	"github.com/vytor/tradeskill/internal/errors"
	"github.com/vytor/tradeskill/internal/logger"
	"github.com/vytor/tradeskill/internal/models"
)

// DaySummary is a day without its lesson bodies.
type DaySummary struct {
	Number  int      `json:"number"`
	Title   string   `json:"title"`
	Theme   string   `json:"theme"`
	Lessons []string `json:"lessons"`
	HasTest bool     `json:"has_test"`
}

type ProgramSummary struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Days  []DaySummary `json:"days"`
}

// LessonOverview describes a lesson before it is started.
type LessonOverview struct {
	Day        int                `json:"day"`
	Index      int                `json:"index"`
	Title      string             `json:"title"`
	Screens    int                `json:"screens"`
	Tasks      int                `json:"tasks"`
	Objectives []models.Objective `json:"objectives"`
}

type TestOverview struct {
	Day          int     `json:"day"`
	Questions    int     `json:"questions"`
	PassingScore float64 `json:"passing_score"`
}

// CurriculumService exposes read-only lookups over the loaded program
type CurriculumService interface {
	Program(ctx context.Context) ProgramSummary
	GetDay(ctx context.Context, day int) (*DaySummary, error)
	GetLesson(ctx context.Context, day, lesson int) (*LessonOverview, error)
	Objectives(ctx context.Context, day, lesson int) ([]models.Objective, error)
	GetDailyTest(ctx context.Context, day int) (*TestOverview, error)
}

type curriculumService struct {
	repo *curriculum.Repository
}

// NewCurriculumService creates a new CurriculumService
func NewCurriculumService(repo *curriculum.Repository) CurriculumService {
	return &curriculumService{repo: repo}
}

func summarizeDay(d models.Day) DaySummary {
	s := DaySummary{Number: d.Number, Title: d.Title, Theme: d.Theme, HasTest: d.Test != nil}
	for _, l := range d.Lessons {
		s.Lessons = append(s.Lessons, l.Title)
	}
	return s
}

func (s *curriculumService) Program(ctx context.Context) ProgramSummary {
	p := s.repo.Program()
	out := ProgramSummary{ID: p.ID, Title: p.Title, Days: make([]DaySummary, 0, len(p.Days))}
	for _, d := range p.Days {
		out.Days = append(out.Days, summarizeDay(d))
	}
	return out
}

func (s *curriculumService) GetDay(ctx context.Context, day int) (*DaySummary, error) {
	d, err := s.repo.GetDay(day)
	if err != nil {
		logger.FromContext(ctx).Debug("day lookup failed: %v", err)
		return nil, err
	}
	sum := summarizeDay(d)
	return &sum, nil
}

func (s *curriculumService) GetLesson(ctx context.Context, day, lesson int) (*LessonOverview, error) {
	l, err := s.repo.GetLesson(day, lesson)
	if err != nil {
		logger.FromContext(ctx).Debug("lesson lookup failed: %v", err)
		return nil, err
	}
	ov := &LessonOverview{
		Day:        day,
		Index:      l.Index,
		Title:      l.Title,
		Screens:    s.repo.TotalScreens(l),
		Objectives: s.repo.MapScreensToObjectives(l),
	}
	for _, sc := range l.Screens {
		if sc.IsTask() {
			ov.Tasks++
		}
	}
	return ov, nil
}

func (s *curriculumService) Objectives(ctx context.Context, day, lesson int) ([]models.Objective, error) {
	l, err := s.repo.GetLesson(day, lesson)
	if err != nil {
		return nil, err
	}
	return s.repo.MapScreensToObjectives(l), nil
}

func (s *curriculumService) GetDailyTest(ctx context.Context, day int) (*TestOverview, error) {
	test, ok, err := s.repo.GetDailyTest(day)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFoundError("daily test for day", day)
	}
	return &TestOverview{Day: day, Questions: len(test.Questions), PassingScore: test.PassingScore}, nil
}
