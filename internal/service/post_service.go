package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"
	"github.com/PivnoyFei/webtronics-social-networking/internal/repository"
)

// PostRepository is the post storage contract the services consume.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id uint) (*domain.Post, error)
	AuthorID(ctx context.Context, postID uint) (uint, error)
	Update(ctx context.Context, postID, userID uint, text string) (*domain.Post, error)
	Delete(ctx context.Context, postID, userID uint) (bool, error)
	ListPaged(ctx context.Context, q repository.PostListQuery) (repository.PageResult[repository.PostWithCounts], error)
}

// ReactionCounter is the slice of the reaction repository the post service
// needs for detail reads.
type ReactionCounter interface {
	Counts(ctx context.Context, postID uint) (domain.ReactionCounts, error)
}

// PostDetail is a post plus its reaction aggregates.
type PostDetail struct {
	domain.Post
	Like    int64 `json:"like"`
	Dislike int64 `json:"dislike"`
}

type PostService struct {
	posts     PostRepository
	reactions ReactionCounter
	cache     ReactionCacheStore
	logger    *slog.Logger
}

func NewPostService(posts PostRepository, reactions ReactionCounter, cache ReactionCacheStore, logger *slog.Logger) *PostService {
	return &PostService{posts: posts, reactions: reactions, cache: cache, logger: logger}
}

func (s *PostService) Create(ctx context.Context, authorID uint, text string) (*domain.Post, error) {
	if text == "" {
		return nil, Validation("text is required")
	}
	post := &domain.Post{Text: text, AuthorID: authorID}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Get reads a post with its reaction counts, going to the cache first and
// falling back to an authoritative recount that repopulates it.
func (s *PostService) Get(ctx context.Context, postID uint) (*PostDetail, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, repository.ErrPostNotFound) {
		return nil, NotFound("Post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	counts, err := s.cache.Get(ctx, postID)
	if err != nil {
		s.logger.WarnContext(ctx, "reaction cache read failed", "post_id", postID, "error", err)
		counts = nil
	}
	if counts == nil {
		fresh, err := s.reactions.Counts(ctx, postID)
		if err != nil {
			return nil, fmt.Errorf("get post counts: %w", err)
		}
		counts = &fresh
		if err := s.cache.Set(ctx, postID, fresh); err != nil {
			s.logger.WarnContext(ctx, "reaction cache write failed", "post_id", postID, "error", err)
		}
	}
	return &PostDetail{Post: *post, Like: counts.Like, Dislike: counts.Dislike}, nil
}

func (s *PostService) Update(ctx context.Context, postID, userID uint, text string) (*domain.Post, error) {
	if text == "" {
		return nil, Validation("text is required")
	}
	post, err := s.posts.Update(ctx, postID, userID, text)
	if errors.Is(err, repository.ErrPostNotFound) {
		return nil, Forbidden("Only the author can edit or the post does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, postID, userID uint) error {
	deleted, err := s.posts.Delete(ctx, postID, userID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if !deleted {
		return Forbidden("Only the author can delete or has already deleted")
	}
	if err := s.cache.Invalidate(ctx, postID); err != nil {
		s.logger.WarnContext(ctx, "reaction cache invalidate failed", "post_id", postID, "error", err)
	}
	return nil
}

func (s *PostService) List(ctx context.Context, page, limit int, authorID uint) (repository.PageResult[repository.PostWithCounts], error) {
	result, err := s.posts.ListPaged(ctx, repository.PostListQuery{
		PageRequest: repository.PageRequest{Page: page, Limit: limit},
		AuthorID:    authorID,
	})
	if err != nil {
		return result, fmt.Errorf("list posts: %w", err)
	}
	return result, nil
}
