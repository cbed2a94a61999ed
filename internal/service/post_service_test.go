package service

import (
	"context"
	"testing"

	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"
	"github.com/PivnoyFei/webtronics-social-networking/internal/repository"
)

type stubPostRepository struct {
	CreateFn   func(ctx context.Context, post *domain.Post) error
	FindByIDFn func(ctx context.Context, id uint) (*domain.Post, error)
	AuthorIDFn func(ctx context.Context, postID uint) (uint, error)
	UpdateFn   func(ctx context.Context, postID, userID uint, text string) (*domain.Post, error)
	DeleteFn   func(ctx context.Context, postID, userID uint) (bool, error)
	ListFn     func(ctx context.Context, q repository.PostListQuery) (repository.PageResult[repository.PostWithCounts], error)
}

func (s *stubPostRepository) Create(ctx context.Context, post *domain.Post) error {
	return s.CreateFn(ctx, post)
}

func (s *stubPostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	if s.FindByIDFn == nil {
		return nil, repository.ErrPostNotFound
	}
	return s.FindByIDFn(ctx, id)
}

func (s *stubPostRepository) AuthorID(ctx context.Context, postID uint) (uint, error) {
	if s.AuthorIDFn == nil {
		return 0, repository.ErrPostNotFound
	}
	return s.AuthorIDFn(ctx, postID)
}

func (s *stubPostRepository) Update(ctx context.Context, postID, userID uint, text string) (*domain.Post, error) {
	return s.UpdateFn(ctx, postID, userID, text)
}

func (s *stubPostRepository) Delete(ctx context.Context, postID, userID uint) (bool, error) {
	return s.DeleteFn(ctx, postID, userID)
}

func (s *stubPostRepository) ListPaged(ctx context.Context, q repository.PostListQuery) (repository.PageResult[repository.PostWithCounts], error) {
	return s.ListFn(ctx, q)
}

type stubReactionCounter struct {
	counts    domain.ReactionCounts
	countRuns int
}

func (s *stubReactionCounter) Counts(context.Context, uint) (domain.ReactionCounts, error) {
	s.countRuns++
	return s.counts, nil
}

func TestPostServiceCreateRequiresText(t *testing.T) {
	svc := NewPostService(&stubPostRepository{}, &stubReactionCounter{}, NewNoopReactionCacheStore(), discardLogger())

	_, err := svc.Create(context.Background(), 1, "")
	assertServiceError(t, err, KindValidation, "text is required")
}

func TestPostServiceGetReadsCountsThroughCache(t *testing.T) {
	post := &domain.Post{ID: 1, Text: "hello", AuthorID: 2}
	posts := &stubPostRepository{
		FindByIDFn: func(context.Context, uint) (*domain.Post, error) { return post, nil },
	}
	counter := &stubReactionCounter{counts: domain.ReactionCounts{Like: 4, Dislike: 1}}
	cache := NewInMemoryReactionCacheStore()
	svc := NewPostService(posts, counter, cache, discardLogger())
	ctx := context.Background()

	detail, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.Like != 4 || detail.Dislike != 1 {
		t.Fatalf("unexpected counts: %+v", detail)
	}
	if counter.countRuns != 1 {
		t.Fatalf("expected one recount on cache miss, got %d", counter.countRuns)
	}

	// The second read is served by the repopulated cache.
	if _, err := svc.Get(ctx, 1); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if counter.countRuns != 1 {
		t.Fatalf("expected cached read, got %d recounts", counter.countRuns)
	}
}

func TestPostServiceGetMissingPost(t *testing.T) {
	svc := NewPostService(&stubPostRepository{}, &stubReactionCounter{}, NewNoopReactionCacheStore(), discardLogger())

	_, err := svc.Get(context.Background(), 404)
	assertServiceError(t, err, KindNotFound, "Post not found")
}

func TestPostServiceUpdateMapsOwnershipFailureToForbidden(t *testing.T) {
	posts := &stubPostRepository{
		UpdateFn: func(context.Context, uint, uint, string) (*domain.Post, error) {
			return nil, repository.ErrPostNotFound
		},
	}
	svc := NewPostService(posts, &stubReactionCounter{}, NewNoopReactionCacheStore(), discardLogger())

	_, err := svc.Update(context.Background(), 1, 2, "edited")
	assertServiceError(t, err, KindForbidden, "Only the author can edit or the post does not exist")
}

func TestPostServiceDeleteInvalidatesCacheAndMapsFailure(t *testing.T) {
	cache := NewInMemoryReactionCacheStore()
	if err := cache.Set(context.Background(), 1, domain.ReactionCounts{Like: 2}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	deleted := true
	posts := &stubPostRepository{
		DeleteFn: func(context.Context, uint, uint) (bool, error) { return deleted, nil },
	}
	svc := NewPostService(posts, &stubReactionCounter{}, cache, discardLogger())
	ctx := context.Background()

	if err := svc.Delete(ctx, 1, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if counts, _ := cache.Get(ctx, 1); counts != nil {
		t.Fatalf("expected cache entry gone, got %+v", counts)
	}

	deleted = false
	err := svc.Delete(ctx, 1, 2)
	assertServiceError(t, err, KindForbidden, "Only the author can delete or has already deleted")
}
