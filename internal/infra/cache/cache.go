// Package cache stores availability snapshots in redis so a flaky booking
// backend does not blank out the calendar on every glitch.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

// Store is a best-effort snapshot cache backed by redis. A nil Store is a
// valid no-op cache, so callers never branch on whether redis is configured.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Connect dials redis at addr and verifies the connection with a ping.
func Connect(ctx context.Context, addr, password string, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{rdb: rdb, ttl: ttl, logger: logger}, nil
}

// Get returns the cached payload for key, or false when absent. Redis
// failures read as a miss.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	if s == nil {
		return nil, false
	}
	payload, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return payload, true
}

// Set stores payload under key with the configured TTL. Failures are logged
// and swallowed; the cache never blocks the request path.
func (s *Store) Set(ctx context.Context, key string, payload []byte) {
	if s == nil {
		return
	}
	if err := s.rdb.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// Close releases the redis connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.rdb.Close()
}
