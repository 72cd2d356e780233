package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/vytor/tradeskill/internal/logger"
	"github.com/vytor/tradeskill/internal/models"
	"github.com/vytor/tradeskill/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) InsertLessonCompletion(ctx context.Context, c models.LessonCompletion) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("recording lesson completion: learner=%s, day=%d, lesson=%d", c.LearnerID, c.Day, c.Lesson)

	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now().UTC()
	}
	sql, args, err := sqlBuilder.Insert("lesson_completions").
		Columns("learner_id", "day", "lesson", "task_attempts", "completed_at").
		Values(c.LearnerID, c.Day, c.Lesson, c.TaskAttempts, c.CompletedAt).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to insert lesson completion: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *progressRepository) InsertTestAttempt(ctx context.Context, a models.TestAttempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("recording test attempt: learner=%s, day=%d, score=%.1f", a.LearnerID, a.Day, a.Score)

	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	sql, args, err := sqlBuilder.Insert("test_attempts").
		Columns("learner_id", "day", "score", "passed", "passing_score", "correct", "total", "created_at").
		Values(a.LearnerID, a.Day, a.Score, a.Passed, a.PassingScore, a.Correct, a.Total, a.CreatedAt).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to insert test attempt: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *progressRepository) ListLessonCompletions(ctx context.Context, filter models.ProgressFilter) ([]models.LessonCompletion, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing lesson completions: learner=%s, day=%d", filter.LearnerID, filter.Day)

	query := sqlBuilder.Select("id", "learner_id", "day", "lesson", "task_attempts", "completed_at").
		From("lesson_completions")
	query = progressWhere(query, filter).OrderBy("completed_at DESC", "id DESC")

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list lesson completions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.LessonCompletion
	for rows.Next() {
		var c models.LessonCompletion
		if err := rows.Scan(&c.ID, &c.LearnerID, &c.Day, &c.Lesson, &c.TaskAttempts, &c.CompletedAt); err != nil {
			log.Error("failed to scan lesson completion row: %v", err)
			return nil, err
		}
		out = append(out, c)
	}
	log.Debug("found %d lesson completions", len(out))
	return out, rows.Err()
}

func (r *progressRepository) ListTestAttempts(ctx context.Context, filter models.ProgressFilter) ([]models.TestAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing test attempts: learner=%s, day=%d", filter.LearnerID, filter.Day)

	query := sqlBuilder.Select("id", "learner_id", "day", "score", "passed", "passing_score", "correct", "total", "created_at").
		From("test_attempts")
	query = progressWhere(query, filter).OrderBy("created_at DESC", "id DESC")

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list test attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.TestAttempt
	for rows.Next() {
		var a models.TestAttempt
		if err := rows.Scan(&a.ID, &a.LearnerID, &a.Day, &a.Score, &a.Passed, &a.PassingScore, &a.Correct, &a.Total, &a.CreatedAt); err != nil {
			log.Error("failed to scan test attempt row: %v", err)
			return nil, err
		}
		out = append(out, a)
	}
	log.Debug("found %d test attempts", len(out))
	return out, rows.Err()
}

func (r *progressRepository) DeleteLearner(ctx context.Context, learnerID string) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Info("deleting progress for learner: %s", learnerID)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM lesson_completions WHERE learner_id = ?`, learnerID); err != nil {
			log.Error("failed to delete lesson completions: %v", err)
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM test_attempts WHERE learner_id = ?`, learnerID); err != nil {
			log.Error("failed to delete test attempts: %v", err)
			return err
		}
		return nil
	})
}

func (r *progressRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
