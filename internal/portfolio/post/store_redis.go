package post

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/pofol/folio/internal/platform/constants"
)

// RedisViewCounter implements ViewCounter on Redis. Counters use plain INCR
// with no TTL; the keyspace is small (one key per post).
type RedisViewCounter struct {
	client *redis.Client
}

func NewRedisViewCounter(client *redis.Client) *RedisViewCounter {
	return &RedisViewCounter{client: client}
}

func viewKey(postID int64) string {
	return constants.RedisPrefixPostViews + strconv.FormatInt(postID, 10)
}

func (counter *RedisViewCounter) Increment(context context.Context, postID int64) (int64, error) {
	views, err := counter.client.Incr(context, viewKey(postID)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_view_counter_incr_failed: %w", err)
	}
	return views, nil
}

func (counter *RedisViewCounter) Get(context context.Context, postID int64) (int64, error) {
	views, err := counter.client.Get(context, viewKey(postID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis_view_counter_get_failed: %w", err)
	}
	return views, nil
}

func (counter *RedisViewCounter) GetMany(context context.Context, postIDs []int64) (map[int64]int64, error) {
	views := make(map[int64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return views, nil
	}

	keys := make([]string, len(postIDs))
	for i, id := range postIDs {
		keys[i] = viewKey(id)
	}

	values, err := counter.client.MGet(context, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_view_counter_mget_failed: %w", err)
	}

	for i, value := range values {
		if value == nil {
			views[postIDs[i]] = 0
			continue
		}
		if raw, ok := value.(string); ok {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err == nil {
				views[postIDs[i]] = parsed
			}
		}
	}
	return views, nil
}
