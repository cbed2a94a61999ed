package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps each user's sessions in one hash of ip -> token.
// Expiry is coarse: the whole hash carries the refresh TTL, renewed on every
// write, so an idle user's sessions age out together.
type RedisSessionStore struct {
	client redis.UniversalClient
	prefix string
	cap    int
	ttl    time.Duration
}

func NewRedisSessionStore(client redis.UniversalClient, prefix string, cap int, ttl time.Duration) *RedisSessionStore {
	if prefix == "" {
		prefix = "session"
	}
	return &RedisSessionStore{client: client, prefix: prefix, cap: cap, ttl: ttl}
}

func (s *RedisSessionStore) key(userID uint) string {
	return fmt.Sprintf("%s:user=%d", s.prefix, userID)
}

func (s *RedisSessionStore) Create(ctx context.Context, ip string, userID uint, token string) error {
	key := s.key(userID)
	count, err := s.client.HLen(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("count sessions: %w", err)
	}
	if count >= int64(s.cap) {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("reset sessions: %w", err)
		}
	}
	return s.set(ctx, key, ip, token)
}

func (s *RedisSessionStore) Check(ctx context.Context, ip string, userID uint, token string) (bool, error) {
	stored, err := s.client.HGet(ctx, s.key(userID), ip).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return stored == token, nil
}

func (s *RedisSessionStore) Update(ctx context.Context, ip string, userID uint, token string) error {
	return s.set(ctx, s.key(userID), ip, token)
}

func (s *RedisSessionStore) Count(ctx context.Context, userID uint) (int64, error) {
	count, err := s.client.HLen(ctx, s.key(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

func (s *RedisSessionStore) DeleteByUser(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("delete sessions by user: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) DeleteByIP(ctx context.Context, ip string, userID uint) error {
	if err := s.client.HDel(ctx, s.key(userID), ip).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("delete session by ip: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) set(ctx context.Context, key, ip, token string) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, ip, token)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}
