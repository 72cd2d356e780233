package curriculum

import (
	apperrors "github.com/vytor/tradeskill/internal/errors"
	"github.com/vytor/tradeskill/internal/models"
)

// Repository serves lookups over a loaded program. It never mutates the
// program, so it is safe for concurrent readers without locking. Returned
// values share backing arrays with the program and must be treated as
// read-only.
type Repository struct {
	program models.Program
}

func NewRepository(p models.Program) *Repository {
	return &Repository{program: p}
}

func (r *Repository) Program() models.Program {
	return r.program
}

func (r *Repository) TotalDays() int {
	return len(r.program.Days)
}

// GetDay returns day n, counting from 1.
func (r *Repository) GetDay(n int) (models.Day, error) {
	if n < 1 || n > len(r.program.Days) {
		return models.Day{}, apperrors.NewDayNotFoundError(n)
	}
	return r.program.Days[n-1], nil
}

// GetLesson returns lesson index (from 1) of the given day.
func (r *Repository) GetLesson(day, index int) (models.Lesson, error) {
	d, err := r.GetDay(day)
	if err != nil {
		return models.Lesson{}, err
	}
	if index < 1 || index > len(d.Lessons) {
		return models.Lesson{}, apperrors.NewLessonNotFoundError(day, index)
	}
	return d.Lessons[index-1], nil
}

// GetDailyTest returns the day's test. ok is false when the day has no
// test, which is not an error.
func (r *Repository) GetDailyTest(day int) (test *models.DailyTest, ok bool, err error) {
	d, err := r.GetDay(day)
	if err != nil {
		return nil, false, err
	}
	if d.Test == nil {
		return nil, false, nil
	}
	return d.Test, true, nil
}

func (r *Repository) TotalScreens(lesson models.Lesson) int {
	return TotalScreens(lesson)
}

func (r *Repository) MapScreensToObjectives(lesson models.Lesson) []models.Objective {
	return MapScreensToObjectives(lesson)
}

func TotalScreens(lesson models.Lesson) int {
	return len(lesson.Screens)
}

// MapScreensToObjectives flattens every screen's objectives in screen order,
// keeping duplicates.
func MapScreensToObjectives(lesson models.Lesson) []models.Objective {
	out := make([]models.Objective, 0, len(lesson.Screens))
	for _, s := range lesson.Screens {
		out = append(out, s.Objectives...)
	}
	return out
}
