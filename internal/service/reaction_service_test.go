package service

import (
	"context"
	"testing"

	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"
	"github.com/PivnoyFei/webtronics-social-networking/internal/repository"
)

type stubReactionToggler struct {
	counts domain.ReactionCounts
	err    error
	calls  int
}

func (s *stubReactionToggler) Toggle(context.Context, uint, uint, bool) (domain.ReactionCounts, error) {
	s.calls++
	return s.counts, s.err
}

func TestReactionServiceReactTogglesAndOverwritesCache(t *testing.T) {
	posts := &stubPostRepository{
		AuthorIDFn: func(context.Context, uint) (uint, error) { return 1, nil },
	}
	toggler := &stubReactionToggler{counts: domain.ReactionCounts{Like: 1}}
	cache := NewInMemoryReactionCacheStore()
	svc := NewReactionService(posts, toggler, cache, discardLogger())
	ctx := context.Background()

	counts, err := svc.React(ctx, 10, 2, true)
	if err != nil {
		t.Fatalf("react: %v", err)
	}
	if counts.Like != 1 || counts.Dislike != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	if toggler.calls != 1 {
		t.Fatalf("expected one toggle, got %d", toggler.calls)
	}
	cached, _ := cache.Get(ctx, 10)
	if cached == nil || cached.Like != 1 {
		t.Fatalf("expected cache overwritten with fresh counts, got %+v", cached)
	}
}

func TestReactionServiceRejectsAuthorReactingToOwnPost(t *testing.T) {
	posts := &stubPostRepository{
		AuthorIDFn: func(context.Context, uint) (uint, error) { return 2, nil },
	}
	toggler := &stubReactionToggler{}
	svc := NewReactionService(posts, toggler, NewNoopReactionCacheStore(), discardLogger())

	_, err := svc.React(context.Background(), 10, 2, true)
	assertServiceError(t, err, KindForbidden, "Just not your post")
	if toggler.calls != 0 {
		t.Fatal("toggle must not run for the author")
	}
}

func TestReactionServiceMissingPost(t *testing.T) {
	svc := NewReactionService(&stubPostRepository{}, &stubReactionToggler{}, NewNoopReactionCacheStore(), discardLogger())

	_, err := svc.React(context.Background(), 404, 2, true)
	assertServiceError(t, err, KindNotFound, "Post not found")

	// A post deleted between the author check and the toggle surfaces the same way.
	posts := &stubPostRepository{
		AuthorIDFn: func(context.Context, uint) (uint, error) { return 1, nil },
	}
	svc = NewReactionService(posts, &stubReactionToggler{err: repository.ErrPostNotFound}, NewNoopReactionCacheStore(), discardLogger())
	_, err = svc.React(context.Background(), 10, 2, true)
	assertServiceError(t, err, KindNotFound, "Post not found")
}
