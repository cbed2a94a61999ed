package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"

	"gorm.io/gorm"
)

const reactionCountSelect = "posts.*, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS like_count, " +
	"(SELECT COUNT(*) FROM dislikes WHERE dislikes.post_id = posts.id) AS dislike_count"

// PostWithCounts is a post row joined with its reaction aggregates.
type PostWithCounts struct {
	domain.Post
	LikeCount    int64 `gorm:"column:like_count" json:"like"`
	DislikeCount int64 `gorm:"column:dislike_count" json:"dislike"`
}

type PostListQuery struct {
	PageRequest
	AuthorID uint // 0 means no author filter
}

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrUserNotFound
		}
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return &post, nil
}

// AuthorID resolves just the author column; the reaction service uses it for
// the self-reaction check without loading the whole row.
func (r *PostRepository) AuthorID(ctx context.Context, postID uint) (uint, error) {
	var authorID uint
	err := r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", postID).
		Pluck("author", &authorID).Error
	if err != nil {
		return 0, fmt.Errorf("find post author: %w", err)
	}
	if authorID == 0 {
		return 0, ErrPostNotFound
	}
	return authorID, nil
}

// Update edits the text of a post owned by userID. A zero match means either
// the post is absent or the caller is not the author; both come back as
// ErrPostNotFound and the service decides what to surface.
func (r *PostRepository) Update(ctx context.Context, postID, userID uint, text string) (*domain.Post, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ? AND author = ?", postID, userID).
		Updates(map[string]interface{}{"text": text, "update_date": now})
	if res.Error != nil {
		return nil, fmt.Errorf("update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrPostNotFound
	}
	return r.FindByID(ctx, postID)
}

func (r *PostRepository) Delete(ctx context.Context, postID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND author = ?", postID, userID).
		Delete(&domain.Post{})
	if res.Error != nil {
		return false, fmt.Errorf("delete post: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListPaged returns posts newest first with their reaction counts, optionally
// filtered by author.
func (r *PostRepository) ListPaged(ctx context.Context, q PostListQuery) (PageResult[PostWithCounts], error) {
	req := normalizePageRequest(q.PageRequest)
	result := PageResult[PostWithCounts]{Page: req.Page, Limit: req.Limit}

	base := r.db.WithContext(ctx).Model(&domain.Post{})
	if q.AuthorID != 0 {
		base = base.Where("author = ?", q.AuthorID)
	}
	if err := base.Count(&result.Total).Error; err != nil {
		return result, fmt.Errorf("count posts: %w", err)
	}

	query := r.db.WithContext(ctx).
		Table("posts").
		Select(reactionCountSelect).
		Order("timestamp DESC").
		Limit(req.Limit).
		Offset((req.Page - 1) * req.Limit)
	if q.AuthorID != 0 {
		query = query.Where("author = ?", q.AuthorID)
	}
	if err := query.Find(&result.Items).Error; err != nil {
		return result, fmt.Errorf("list posts: %w", err)
	}
	return result, nil
}
