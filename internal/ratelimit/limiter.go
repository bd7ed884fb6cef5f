package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrTooManyAttempts = errors.New("too many login attempts; try again later")

const namespace = "login_rate"

// LoginLimiter counts login attempts per identifier in a fixed window.
// A nil *LoginLimiter allows everything.
type LoginLimiter struct {
	client redis.UniversalClient
	max    int
	window time.Duration
}

func New(client redis.UniversalClient, max int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, max: max, window: window}
}

// NewFromURL connects to REDIS_URL and verifies the connection.
func NewFromURL(ctx context.Context, url string, max int, window time.Duration) (*LoginLimiter, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return New(client, max, window), nil
}

// Allow records one attempt for key and reports ErrTooManyAttempts past the limit.
func (l *LoginLimiter) Allow(ctx context.Context, key string) error {
	if l == nil {
		return nil
	}
	cnt, err := l.incrWithExpire(ctx, key)
	if err != nil {
		return err
	}
	if int(cnt) > l.max {
		return ErrTooManyAttempts
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if l == nil {
		return nil
	}
	return l.client.Del(ctx, namespace+":"+key).Err()
}

func (l *LoginLimiter) Close() error {
	if l == nil {
		return nil
	}
	return l.client.Close()
}

func (l *LoginLimiter) incrWithExpire(ctx context.Context, key string) (int64, error) {
	countKey := namespace + ":" + key

	cnt, err := l.client.Incr(ctx, countKey).Result()
	if err != nil {
		return 0, err
	}
	// first hit in the window sets its TTL
	if cnt == 1 {
		_ = l.client.Expire(ctx, countKey, l.window).Err()
	}
	return cnt, nil
}
