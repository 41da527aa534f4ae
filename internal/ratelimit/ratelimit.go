// Package ratelimit throttles clients with a fixed window counter kept in
// Redis. Without a Redis connection every request is let through.
package ratelimit

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Counter is the subset of the Redis client the limiter uses.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// Limiter allows Limit requests per client per Period.
type Limiter struct {
	counter Counter
	limit   int64
	period  time.Duration
	log     *zap.Logger
}

// Connect dials Redis at addr. It returns nil when addr is empty or the
// server does not answer, which disables limiting.
func Connect(ctx context.Context, addr string, log *zap.Logger) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, rate limiting disabled", zap.String("addr", addr), zap.Error(err))
		client.Close()
		return nil
	}
	log.Info("redis connected", zap.String("addr", addr))
	return client
}

func New(counter Counter, limit int, period time.Duration, log *zap.Logger) *Limiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Limiter{counter: counter, limit: int64(limit), period: period, log: log}
}

func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.counter == nil || l.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := "rate_limit:" + clientIP(r)
		count, err := l.counter.Incr(r.Context(), key).Result()
		if err != nil {
			// fail open
			l.log.Warn("rate limit counter failed", zap.String("key", key), zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			if err := l.counter.Expire(r.Context(), key, l.period).Err(); err != nil {
				l.log.Warn("rate limit expire failed", zap.String("key", key), zap.Error(err))
			}
		}

		if count > l.limit {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", l.retryAfter())
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": "Too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) retryAfter() string {
	return strconv.Itoa(int(l.period.Seconds()))
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
