package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/tradeskill/internal/logger"
	"github.com/vytor/tradeskill/internal/models"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const defaultListLimit = 500

// progressWhere applies the learner and day filters shared by both tables.
func progressWhere(query squirrel.SelectBuilder, filter models.ProgressFilter) squirrel.SelectBuilder {
	query = query.Where(squirrel.Eq{"learner_id": filter.LearnerID})
	if filter.Day != 0 {
		query = query.Where(squirrel.Eq{"day": filter.Day})
	}
	switch {
	case filter.Limit < 0:
		return query
	case filter.Limit == 0:
		return query.Limit(defaultListLimit)
	}
	return query.Limit(uint64(filter.Limit))
}

func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	log.Debug("transaction committed")
	return nil
}
