package redisrepo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Attempts live in a sorted set scored by their unix millis. Only accepted
// attempts are stored, so a rejected client is let back in as soon as its
// oldest accepted attempt leaves the window.
//
// KEYS[1] attempts set
// ARGV[1] now (ms), ARGV[2] window (ms), ARGV[3] limit, ARGV[4] member
//
// Returns {allowed, used, wait_ms}.
const luaAttemptWindow = `
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', now - window)
local used = redis.call('ZCARD', KEYS[1])

if used >= limit then
  local oldest = redis.call('ZRANGE', KEYS[1], 0, 0, 'WITHSCORES')
  local wait = window
  if oldest[2] then
    wait = tonumber(oldest[2]) + window - now
  end
  return {0, used, wait}
end

redis.call('ZADD', KEYS[1], now, ARGV[4])
redis.call('PEXPIRE', KEYS[1], window)
return {1, used + 1, 0}
`

// Decision is the outcome of one booking attempt against the limiter.
type Decision struct {
	Allowed    bool
	Used       int64
	Remaining  int64
	RetryAfter time.Duration
}

// BookingLimiter caps booking attempts per client over a sliding window.
type BookingLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	script *redis.Script
	now    func() time.Time
}

func NewBookingLimiter(rdb *redis.Client, limit int, window time.Duration) *BookingLimiter {
	return &BookingLimiter{
		rdb:    rdb,
		limit:  int64(limit),
		window: window,
		script: redis.NewScript(luaAttemptWindow),
		now:    time.Now,
	}
}

// KeyBookingAttempts is the attempts set of one client, e.g. "ip:203.0.113.7".
func KeyBookingAttempts(client string) string {
	return fmt.Sprintf("%s:rl:bookings:%s", ns, client)
}

// Allow records an attempt for client if it still fits in the window.
func (l *BookingLimiter) Allow(ctx context.Context, client string) (Decision, error) {
	const op = "redisrepo.BookingLimiter.Allow"

	now := l.now().UnixMilli()
	member := strconv.FormatInt(now, 10) + "-" + uuid.NewString()

	res, err := l.script.Run(ctx, l.rdb,
		[]string{KeyBookingAttempts(client)},
		now, l.window.Milliseconds(), l.limit, member,
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("%s:%w", op, err)
	}
	if len(res) != 3 {
		return Decision{}, fmt.Errorf("%s: unexpected script reply %v", op, res)
	}

	d := Decision{
		Allowed:    res[0] == 1,
		Used:       res[1],
		Remaining:  max(l.limit-res[1], 0),
		RetryAfter: time.Duration(res[2]) * time.Millisecond,
	}
	return d, nil
}
