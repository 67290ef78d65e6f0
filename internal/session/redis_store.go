package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"agile-assistant/backend/internal/features/generation/domain"
	"agile-assistant/backend/internal/logger"
)

const redisKeyPrefix = "agile-assistant:results:"

// RedisStore keeps result sets in Redis so several server replicas can share sessions.
type RedisStore struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewRedisStore connects to addr and pings it before returning.
func NewRedisStore(addr string, ttl time.Duration, log *logger.Logger) (*RedisStore, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{
		log: log.With("service", "RedisSessionStore"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (domain.ResultSet, bool, error) {
	raw, err := s.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var results domain.ResultSet
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, false, fmt.Errorf("decode results: %w", err)
	}
	if s.ttl > 0 {
		if err := s.rdb.Expire(ctx, redisKeyPrefix+id, s.ttl).Err(); err != nil {
			s.log.Warn("failed to refresh session ttl", "session_id", id, "error", err)
		}
	}
	return results, true, nil
}

func (s *RedisStore) Put(ctx context.Context, id string, results domain.ResultSet) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+id, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
