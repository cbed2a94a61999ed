package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository owns the like/dislike toggle. The composite unique index
// on (user_id, post_id) is the only concurrency control: when two identical
// requests race, exactly one insert succeeds and the loser observes
// gorm.ErrDuplicatedKey, which is the ordinary toggle-off path rather than a
// failure.
type ReactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// Toggle applies one like/dislike press for (userID, postID):
//   - first press of this polarity inserts the row and clears the opposite one;
//   - a repeated press deletes the row and leaves the opposite table alone;
//   - a missing post surfaces as ErrPostNotFound.
//
// Insert and compensating deletes run in a single transaction so no
// interleaving can leave both a like and a dislike behind.
func (r *ReactionRepository) Toggle(ctx context.Context, postID, userID uint, wantLike bool) (domain.ReactionCounts, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insertErr := createReaction(tx, postID, userID, wantLike)
		switch {
		case insertErr == nil:
			return deleteReaction(tx, postID, userID, !wantLike)
		case errors.Is(insertErr, gorm.ErrDuplicatedKey):
			return deleteReaction(tx, postID, userID, wantLike)
		case errors.Is(insertErr, gorm.ErrForeignKeyViolated):
			return ErrPostNotFound
		default:
			return fmt.Errorf("insert reaction: %w", insertErr)
		}
	})
	if err != nil {
		return domain.ReactionCounts{}, err
	}
	return r.Counts(ctx, postID)
}

// Counts recomputes the aggregates straight from the tables. Always
// authoritative; caches are overwritten from this.
func (r *ReactionRepository) Counts(ctx context.Context, postID uint) (domain.ReactionCounts, error) {
	var counts domain.ReactionCounts
	err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("post_id = ?", postID).
		Count(&counts.Like).Error
	if err != nil {
		return counts, fmt.Errorf("count likes: %w", err)
	}
	err = r.db.WithContext(ctx).
		Model(&domain.Dislike{}).
		Where("post_id = ?", postID).
		Count(&counts.Dislike).Error
	if err != nil {
		return counts, fmt.Errorf("count dislikes: %w", err)
	}
	return counts, nil
}

func createReaction(tx *gorm.DB, postID, userID uint, like bool) error {
	if like {
		return tx.Omit(clause.Associations).Create(&domain.Like{UserID: userID, PostID: postID}).Error
	}
	return tx.Omit(clause.Associations).Create(&domain.Dislike{UserID: userID, PostID: postID}).Error
}

func deleteReaction(tx *gorm.DB, postID, userID uint, like bool) error {
	var err error
	if like {
		err = tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&domain.Like{}).Error
	} else {
		err = tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&domain.Dislike{}).Error
	}
	if err != nil {
		return fmt.Errorf("delete reaction: %w", err)
	}
	return nil
}
