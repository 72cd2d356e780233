// Package redis stores learner progress in Redis lists, newest entry first.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vytor/tradeskill/internal/cache"
	"github.com/vytor/tradeskill/internal/logger"
	"github.com/vytor/tradeskill/internal/models"
	"github.com/vytor/tradeskill/internal/repository"
)

const (
	defaultListLimit = 500

	completionsList = "completions"
	attemptsList    = "attempts"
)

type progressRepository struct {
	rdb       goredis.Cmdable
	namespace string
}

// NewProgressRepository creates a Redis-backed ProgressRepository.
func NewProgressRepository(c *cache.Cache) repository.ProgressRepository {
	return newProgressRepository(c.Client, c.Namespace())
}

func newProgressRepository(rdb goredis.Cmdable, namespace string) *progressRepository {
	return &progressRepository{rdb: rdb, namespace: namespace}
}

func (r *progressRepository) listKey(learnerID, list string) string {
	return cache.Key(r.namespace, "progress", learnerID, list)
}

func (r *progressRepository) seqKey(list string) string {
	return cache.Key(r.namespace, "seq", list)
}

func (r *progressRepository) push(ctx context.Context, learnerID, list string, build func(id int64) any) (int64, error) {
	id, err := r.rdb.Incr(ctx, r.seqKey(list)).Result()
	if err != nil {
		return 0, fmt.Errorf("allocating %s id: %w", list, err)
	}
	raw, err := json.Marshal(build(id))
	if err != nil {
		return 0, err
	}
	if err := r.rdb.LPush(ctx, r.listKey(learnerID, list), raw).Err(); err != nil {
		return 0, fmt.Errorf("pushing %s: %w", list, err)
	}
	return id, nil
}

func (r *progressRepository) InsertLessonCompletion(ctx context.Context, c models.LessonCompletion) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_redis")
	log.Debug("recording lesson completion: learner=%s, day=%d, lesson=%d", c.LearnerID, c.Day, c.Lesson)

	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now().UTC()
	}
	id, err := r.push(ctx, c.LearnerID, completionsList, func(id int64) any {
		c.ID = id
		return c
	})
	if err != nil {
		log.Error("failed to record lesson completion: %v", err)
	}
	return id, err
}

func (r *progressRepository) InsertTestAttempt(ctx context.Context, a models.TestAttempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_redis")
	log.Debug("recording test attempt: learner=%s, day=%d, score=%.1f", a.LearnerID, a.Day, a.Score)

	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	id, err := r.push(ctx, a.LearnerID, attemptsList, func(id int64) any {
		a.ID = id
		return a
	})
	if err != nil {
		log.Error("failed to record test attempt: %v", err)
	}
	return id, err
}

func (r *progressRepository) ListLessonCompletions(ctx context.Context, filter models.ProgressFilter) ([]models.LessonCompletion, error) {
	raws, err := r.rdb.LRange(ctx, r.listKey(filter.LearnerID, completionsList), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return decodeFiltered(raws, filter, func(c models.LessonCompletion) int { return c.Day })
}

func (r *progressRepository) ListTestAttempts(ctx context.Context, filter models.ProgressFilter) ([]models.TestAttempt, error) {
	raws, err := r.rdb.LRange(ctx, r.listKey(filter.LearnerID, attemptsList), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return decodeFiltered(raws, filter, func(a models.TestAttempt) int { return a.Day })
}

func (r *progressRepository) DeleteLearner(ctx context.Context, learnerID string) error {
	logger.FromContext(ctx).WithPrefix("progress_redis").Info("deleting progress for learner: %s", learnerID)
	return r.rdb.Del(ctx, r.listKey(learnerID, completionsList), r.listKey(learnerID, attemptsList)).Err()
}

func (r *progressRepository) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// decodeFiltered decodes list entries in stored order, keeping those on
// filter.Day (or all when zero) up to the filter's limit.
func decodeFiltered[T any](raws []string, filter models.ProgressFilter, day func(T) int) ([]T, error) {
	limit := filter.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	var out []T
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("decoding progress entry: %w", err)
		}
		if filter.Day != 0 && day(v) != filter.Day {
			continue
		}
		out = append(out, v)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
