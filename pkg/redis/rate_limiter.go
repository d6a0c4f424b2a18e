package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrRateLimited is returned by Acquire when a window is full.
var ErrRateLimited = errors.New("rate limit reached")

// RateLimiterOptions represents options for rate limiter operations
type RateLimiterOptions struct {
	// MaxPerSecond is the number of acquisitions allowed in any 1s window, 0 disables the check
	MaxPerSecond int
	// MaxPerMinute is the number of acquisitions allowed in any 60s window, 0 disables the check
	MaxPerMinute int
	// WaitOnLimit makes Acquire retry until WaitTimeout instead of failing fast
	WaitOnLimit bool
	WaitTimeout time.Duration
	RetryDelay  time.Duration
	Namespace   string
}

// NewRateLimiterOptions creates a new rate limiter options with default values
func NewRateLimiterOptions() *RateLimiterOptions {
	return &RateLimiterOptions{
		WaitTimeout: 5 * time.Second,
		RetryDelay:  100 * time.Millisecond,
	}
}

func (rlo *RateLimiterOptions) WithMaxPerSecond(max int) *RateLimiterOptions {
	rlo.MaxPerSecond = max
	return rlo
}

func (rlo *RateLimiterOptions) WithMaxPerMinute(max int) *RateLimiterOptions {
	rlo.MaxPerMinute = max
	return rlo
}

func (rlo *RateLimiterOptions) WithWaitOnLimit(wait bool, timeout time.Duration) *RateLimiterOptions {
	rlo.WaitOnLimit = wait
	rlo.WaitTimeout = timeout
	return rlo
}

func (rlo *RateLimiterOptions) WithNamespace(namespace string) *RateLimiterOptions {
	rlo.Namespace = namespace
	return rlo
}

// Validate validates the rate limiter options
func (rlo *RateLimiterOptions) Validate() error {
	if rlo.MaxPerSecond < 0 || rlo.MaxPerMinute < 0 {
		return fmt.Errorf("limits must be non-negative")
	}
	if rlo.MaxPerSecond == 0 && rlo.MaxPerMinute == 0 {
		return fmt.Errorf("at least one limit must be configured (MaxPerSecond or MaxPerMinute)")
	}
	return nil
}

// RateLimiter is a distributed sliding-window limiter shared by every
// process pointing at the same Redis.
type RateLimiter struct {
	client     *Client
	key        string
	opts       *RateLimiterOptions
	secondKey  string
	minuteKey  string
	acquireLua *redis.Script
}

// NewRateLimiter creates a new distributed rate limiter
func NewRateLimiter(client *Client, key string, opts *RateLimiterOptions) (*RateLimiter, error) {
	if opts == nil {
		opts = NewRateLimiterOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	limiter := &RateLimiter{
		client:     client,
		key:        key,
		opts:       opts,
		acquireLua: redis.NewScript(acquireScript),
	}
	limiter.secondKey = limiter.buildKey("tps")
	limiter.minuteKey = limiter.buildKey("tpm")
	return limiter, nil
}

// buildKey constructs the full key using Namespace::key::suffix format
func (rl *RateLimiter) buildKey(suffix string) string {
	if rl.opts.Namespace != "" {
		return rl.opts.Namespace + "::" + rl.key + "::" + suffix
	}
	return rl.key + "::" + suffix
}

// Acquire records one call against both windows, or returns an error
// wrapping ErrRateLimited.
func (rl *RateLimiter) Acquire(ctx context.Context) error {
	if !rl.opts.WaitOnLimit {
		return rl.acquireImmediate(ctx)
	}

	deadline := time.Now().Add(rl.opts.WaitTimeout)
	for {
		err := rl.acquireImmediate(ctx)
		if err == nil || !errors.Is(err, ErrRateLimited) {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timeout waiting for rate limiter: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(rl.opts.RetryDelay):
		}
	}
}

func (rl *RateLimiter) acquireImmediate(ctx context.Context) error {
	now := time.Now().UnixMilli()

	result, err := rl.acquireLua.Run(ctx, rl.client.GetClient(),
		[]string{rl.secondKey, rl.minuteKey},
		rl.opts.MaxPerSecond,
		rl.opts.MaxPerMinute,
		uuid.NewString(),
		now,
	).Int64()
	if err != nil {
		return fmt.Errorf("failed to acquire rate limiter: %w", err)
	}

	// 1 = acquired, -1 = second window full, -2 = minute window full
	switch result {
	case 1:
		return nil
	case -1:
		return fmt.Errorf("%w: %d per second", ErrRateLimited, rl.opts.MaxPerSecond)
	case -2:
		return fmt.Errorf("%w: %d per minute", ErrRateLimited, rl.opts.MaxPerMinute)
	default:
		return fmt.Errorf("unknown rate limiter result: %d", result)
	}
}

// Usage returns the current count of each configured window.
func (rl *RateLimiter) Usage(ctx context.Context) (map[string]string, error) {
	usage := make(map[string]string)
	now := time.Now()

	if rl.opts.MaxPerSecond > 0 {
		count, err := rl.client.GetClient().ZCount(ctx, rl.secondKey,
			strconv.FormatInt(now.Add(-time.Second).UnixMilli(), 10), "+inf").Result()
		if err != nil {
			return nil, err
		}
		usage["per_second"] = fmt.Sprintf("%d/%d", count, rl.opts.MaxPerSecond)
	}

	if rl.opts.MaxPerMinute > 0 {
		count, err := rl.client.GetClient().ZCount(ctx, rl.minuteKey,
			strconv.FormatInt(now.Add(-time.Minute).UnixMilli(), 10), "+inf").Result()
		if err != nil {
			return nil, err
		}
		usage["per_minute"] = fmt.Sprintf("%d/%d", count, rl.opts.MaxPerMinute)
	}

	return usage, nil
}

// Reset removes every key of this limiter.
func (rl *RateLimiter) Reset(ctx context.Context) error {
	return rl.client.Delete(ctx, rl.secondKey, rl.minuteKey)
}

const acquireScript = `
local second_key = KEYS[1]
local minute_key = KEYS[2]

local max_second = tonumber(ARGV[1])
local max_minute = tonumber(ARGV[2])
local member = ARGV[3]
local now = tonumber(ARGV[4])

if max_second > 0 then
	redis.call("ZREMRANGEBYSCORE", second_key, "-inf", now - 1000)
	if redis.call("ZCARD", second_key) >= max_second then
		return -1
	end
end

if max_minute > 0 then
	redis.call("ZREMRANGEBYSCORE", minute_key, "-inf", now - 60000)
	if redis.call("ZCARD", minute_key) >= max_minute then
		return -2
	end
end

if max_second > 0 then
	redis.call("ZADD", second_key, now, member)
	redis.call("PEXPIRE", second_key, 2000)
end

if max_minute > 0 then
	redis.call("ZADD", minute_key, now, member)
	redis.call("PEXPIRE", minute_key, 61000)
end

return 1
`
