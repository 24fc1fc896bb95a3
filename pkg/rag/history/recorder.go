// Package history keeps a capped list of recent similarity queries in Redis.
package history

import (
	"context"
	"strings"
	"time"

	"contract-workflow-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const recordTimeout = 2 * time.Second

// ListStore is the subset of redis.Cmdable the recorder needs.
type ListStore interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

type Recorder struct {
	store  ListStore
	key    string
	limit  int64
	logger logger.ILogger
}

func NewRecorder(store ListStore, key string, limit int, log logger.ILogger) *Recorder {
	if limit <= 0 {
		limit = 100
	}
	return &Recorder{
		store:  store,
		key:    key,
		limit:  int64(limit),
		logger: log,
	}
}

// Record pushes query onto the history list. Failures are logged and dropped.
func (r *Recorder) Record(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := r.store.LPush(ctx, r.key, query).Err(); err != nil {
		r.logger.Warn("SEARCH_HISTORY", "Failed to record search query", map[string]interface{}{
			"error": err.Error(),
			"query": query,
		})
		return
	}

	if err := r.store.LTrim(ctx, r.key, 0, r.limit-1).Err(); err != nil {
		r.logger.Warn("SEARCH_HISTORY", "Failed to trim search history", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Recent returns up to limit queries, newest first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 || int64(limit) > r.limit {
		limit = int(r.limit)
	}
	return r.store.LRange(ctx, r.key, 0, int64(limit-1)).Result()
}
