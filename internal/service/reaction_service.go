package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"
	"github.com/PivnoyFei/webtronics-social-networking/internal/repository"
)

// ReactionToggler is the toggle contract the reaction service drives.
type ReactionToggler interface {
	Toggle(ctx context.Context, postID, userID uint, wantLike bool) (domain.ReactionCounts, error)
}

type ReactionService struct {
	posts     PostRepository
	reactions ReactionToggler
	cache     ReactionCacheStore
	logger    *slog.Logger
}

func NewReactionService(posts PostRepository, reactions ReactionToggler, cache ReactionCacheStore, logger *slog.Logger) *ReactionService {
	return &ReactionService{posts: posts, reactions: reactions, cache: cache, logger: logger}
}

// React toggles userID's like or dislike on postID and returns the fresh
// aggregates. Authors may not react to their own posts; that rejection is
// distinct from a missing post.
func (s *ReactionService) React(ctx context.Context, postID, userID uint, wantLike bool) (*domain.ReactionCounts, error) {
	authorID, err := s.posts.AuthorID(ctx, postID)
	if errors.Is(err, repository.ErrPostNotFound) {
		return nil, NotFound("Post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("react: %w", err)
	}
	if authorID == userID {
		return nil, Forbidden("Just not your post")
	}

	counts, err := s.reactions.Toggle(ctx, postID, userID, wantLike)
	if errors.Is(err, repository.ErrPostNotFound) {
		return nil, NotFound("Post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("react: %w", err)
	}

	// Overwrite, never leave stale: the cache entry must follow every mutation.
	if err := s.cache.Set(ctx, postID, counts); err != nil {
		s.logger.WarnContext(ctx, "reaction cache overwrite failed", "post_id", postID, "error", err)
	}
	return &counts, nil
}
