package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"

	"github.com/redis/go-redis/v9"
)

const reactionCacheTTL = 24 * time.Hour

type RedisReactionCacheStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisReactionCacheStore(client redis.UniversalClient, prefix string) *RedisReactionCacheStore {
	if prefix == "" {
		prefix = "reactions"
	}
	return &RedisReactionCacheStore{client: client, prefix: prefix}
}

func (s *RedisReactionCacheStore) key(postID uint) string {
	return fmt.Sprintf("%s:id=%d", s.prefix, postID)
}

func (s *RedisReactionCacheStore) Get(ctx context.Context, postID uint) (*domain.ReactionCounts, error) {
	cmd := s.client.HMGet(ctx, s.key(postID), "like", "dislike")
	if err := cmd.Err(); err != nil {
		return nil, fmt.Errorf("get reaction cache: %w", err)
	}
	values := cmd.Val()
	if len(values) != 2 || values[0] == nil || values[1] == nil {
		return nil, nil
	}
	like, err := parseCachedCount(values[0])
	if err != nil {
		return nil, err
	}
	dislike, err := parseCachedCount(values[1])
	if err != nil {
		return nil, err
	}
	return &domain.ReactionCounts{Like: like, Dislike: dislike}, nil
}

func (s *RedisReactionCacheStore) Set(ctx context.Context, postID uint, counts domain.ReactionCounts) error {
	key := s.key(postID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, "like", counts.Like, "dislike", counts.Dislike)
	pipe.Expire(ctx, key, reactionCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set reaction cache: %w", err)
	}
	return nil
}

func parseCachedCount(v interface{}) (int64, error) {
	raw, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected reaction cache value type %T", v)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse reaction cache value: %w", err)
	}
	return n, nil
}

func (s *RedisReactionCacheStore) Invalidate(ctx context.Context, postID uint) error {
	if err := s.client.Del(ctx, s.key(postID)).Err(); err != nil {
		return fmt.Errorf("invalidate reaction cache: %w", err)
	}
	return nil
}
