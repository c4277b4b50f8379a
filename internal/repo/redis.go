package repo

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis backs the per-IP rate limiter. Optional: a nil *Redis disables
// the Redis path at the middleware.
type Redis struct{ C *redis.Client }

func NewRedis(addr string) *Redis {
	return &Redis{C: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *Redis) Ping(ctx context.Context) error { return r.C.Ping(ctx).Err() }
func (r *Redis) Close() error                   { return r.C.Close() }

// Allow counts a hit for key within a fixed window and reports whether
// the caller is still under limit. INCR + first-hit EXPIRE.
func (r *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := r.C.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		r.C.Expire(ctx, key, window)
	}
	return n <= int64(limit), nil
}
