package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/tradeskill/internal/models"
	"github.com/vytor/tradeskill/internal/repository"
	"github.com/vytor/tradeskill/internal/repository/sqlite"
	"github.com/vytor/tradeskill/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProgressRepository
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProgressRepository(s.db)
}

func (s *ProgressRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProgressRepositorySuite) TestInsertAndListCompletions() {
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	for i, lesson := range []int{1, 2} {
		id, err := s.repo.InsertLessonCompletion(ctx, models.LessonCompletion{
			LearnerID:    "ana",
			Day:          1,
			Lesson:       lesson,
			TaskAttempts: 3,
			CompletedAt:  base.Add(time.Duration(i) * time.Hour),
		})
		s.Require().NoError(err)
		s.Assert().Greater(id, int64(0))
	}
	_, err := s.repo.InsertLessonCompletion(ctx, models.LessonCompletion{LearnerID: "ana", Day: 2, Lesson: 1})
	s.Require().NoError(err)
	_, err = s.repo.InsertLessonCompletion(ctx, models.LessonCompletion{LearnerID: "ben", Day: 1, Lesson: 1})
	s.Require().NoError(err)

	all, err := s.repo.ListLessonCompletions(ctx, models.ProgressFilter{LearnerID: "ana"})
	s.Require().NoError(err)
	s.Assert().Len(all, 3)

	day1, err := s.repo.ListLessonCompletions(ctx, models.ProgressFilter{LearnerID: "ana", Day: 1})
	s.Require().NoError(err)
	s.Require().Len(day1, 2)
	s.Assert().Equal(2, day1[0].Lesson, "newest first")
	s.Assert().Equal(3, day1[0].TaskAttempts)
	s.Assert().True(base.Add(time.Hour).Equal(day1[0].CompletedAt))

	limited, err := s.repo.ListLessonCompletions(ctx, models.ProgressFilter{LearnerID: "ana", Limit: 1})
	s.Require().NoError(err)
	s.Assert().Len(limited, 1)
}

func (s *ProgressRepositorySuite) TestInsertAndListAttempts() {
	ctx := context.Background()

	_, err := s.repo.InsertTestAttempt(ctx, models.TestAttempt{
		LearnerID: "ana", Day: 1, Score: 60, Passed: false, PassingScore: 70, Correct: 6, Total: 10,
		CreatedAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	})
	s.Require().NoError(err)
	_, err = s.repo.InsertTestAttempt(ctx, models.TestAttempt{
		LearnerID: "ana", Day: 1, Score: 80, Passed: true, PassingScore: 70, Correct: 8, Total: 10,
		CreatedAt: time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC),
	})
	s.Require().NoError(err)

	attempts, err := s.repo.ListTestAttempts(ctx, models.ProgressFilter{LearnerID: "ana", Day: 1})
	s.Require().NoError(err)
	s.Require().Len(attempts, 2)
	s.Assert().Equal(80.0, attempts[0].Score)
	s.Assert().True(attempts[0].Passed)
	s.Assert().False(attempts[1].Passed)
	s.Assert().Equal(70.0, attempts[1].PassingScore)
	s.Assert().Equal(6, attempts[1].Correct)

	none, err := s.repo.ListTestAttempts(ctx, models.ProgressFilter{LearnerID: "nobody"})
	s.Require().NoError(err)
	s.Assert().Empty(none)
}

func (s *ProgressRepositorySuite) TestDeleteLearner() {
	ctx := context.Background()

	_, err := s.repo.InsertLessonCompletion(ctx, models.LessonCompletion{LearnerID: "ana", Day: 1, Lesson: 1})
	s.Require().NoError(err)
	_, err = s.repo.InsertTestAttempt(ctx, models.TestAttempt{LearnerID: "ana", Day: 1, Score: 100, Passed: true, PassingScore: 70, Correct: 1, Total: 1})
	s.Require().NoError(err)
	_, err = s.repo.InsertLessonCompletion(ctx, models.LessonCompletion{LearnerID: "ben", Day: 1, Lesson: 1})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.DeleteLearner(ctx, "ana"))

	completions, err := s.repo.ListLessonCompletions(ctx, models.ProgressFilter{LearnerID: "ana"})
	s.Require().NoError(err)
	s.Assert().Empty(completions)
	attempts, err := s.repo.ListTestAttempts(ctx, models.ProgressFilter{LearnerID: "ana"})
	s.Require().NoError(err)
	s.Assert().Empty(attempts)

	others, err := s.repo.ListLessonCompletions(ctx, models.ProgressFilter{LearnerID: "ben"})
	s.Require().NoError(err)
	s.Assert().Len(others, 1)
}

func (s *ProgressRepositorySuite) TestPing() {
	s.Assert().NoError(s.repo.Ping(context.Background()))
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
