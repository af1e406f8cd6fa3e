package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RateLimiter 固定窗口计数
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

func rateKey(scope string, userID int64, window time.Duration, now time.Time) string {
	bucket := now.UnixNano() / int64(window)
	return keyPrefix + "rate:" + scope + ":" + strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(bucket, 10)
}

// Allow 当前窗口内的第limit+1次请求开始返回false
func (r *RateLimiter) Allow(ctx context.Context, scope string, userID, limit int64, window time.Duration) (bool, error) {
	key := rateKey(scope, userID, window, time.Now())
	var incr *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "rate limit failed")
	}
	return incr.Val() <= limit, nil
}
