package service

import (
	"context"
	"sync"

	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"
)

// ReactionCacheStore holds the last computed like/dislike aggregates per
// post. It is a pure accelerator: the reaction tables stay authoritative and
// every mutation overwrites the cached entry, never leaving it stale.
type ReactionCacheStore interface {
	// Get returns the cached counts, or nil when the post has no entry.
	Get(ctx context.Context, postID uint) (*domain.ReactionCounts, error)
	Set(ctx context.Context, postID uint, counts domain.ReactionCounts) error
	Invalidate(ctx context.Context, postID uint) error
}

type NoopReactionCacheStore struct{}

func NewNoopReactionCacheStore() *NoopReactionCacheStore { return &NoopReactionCacheStore{} }

func (s *NoopReactionCacheStore) Get(context.Context, uint) (*domain.ReactionCounts, error) {
	return nil, nil
}

func (s *NoopReactionCacheStore) Set(context.Context, uint, domain.ReactionCounts) error {
	return nil
}

func (s *NoopReactionCacheStore) Invalidate(context.Context, uint) error { return nil }

type InMemoryReactionCacheStore struct {
	mu      sync.RWMutex
	entries map[uint]domain.ReactionCounts
}

func NewInMemoryReactionCacheStore() *InMemoryReactionCacheStore {
	return &InMemoryReactionCacheStore{entries: map[uint]domain.ReactionCounts{}}
}

func (s *InMemoryReactionCacheStore) Get(_ context.Context, postID uint) (*domain.ReactionCounts, error) {
	s.mu.RLock()
	counts, ok := s.entries[postID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &counts, nil
}

func (s *InMemoryReactionCacheStore) Set(_ context.Context, postID uint, counts domain.ReactionCounts) error {
	s.mu.Lock()
	s.entries[postID] = counts
	s.mu.Unlock()
	return nil
}

func (s *InMemoryReactionCacheStore) Invalidate(_ context.Context, postID uint) error {
	s.mu.Lock()
	delete(s.entries, postID)
	s.mu.Unlock()
	return nil
}
