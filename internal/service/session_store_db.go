package service

import (
	"context"
	"fmt"
	"time"

	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBSessionStore keeps refresh-token grants in the auth_tokens table.
type DBSessionStore struct {
	db  *gorm.DB
	cap int
	ttl time.Duration
}

func NewDBSessionStore(db *gorm.DB, cap int, ttl time.Duration) *DBSessionStore {
	return &DBSessionStore{db: db, cap: cap, ttl: ttl}
}

func (s *DBSessionStore) Create(ctx context.Context, ip string, userID uint, token string) error {
	now := time.Now().UTC()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Session{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("count sessions: %w", err)
		}
		if count >= int64(s.cap) {
			if err := tx.Where("user_id = ?", userID).Delete(&domain.Session{}).Error; err != nil {
				return fmt.Errorf("reset sessions: %w", err)
			}
		}
		session := &domain.Session{
			UserID:       userID,
			IP:           ip,
			RefreshToken: token,
			ExpiresAt:    now.Add(s.ttl),
		}
		if err := tx.Omit(clause.Associations).Create(session).Error; err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		return nil
	})
}

func (s *DBSessionStore) Check(ctx context.Context, ip string, userID uint, token string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("user_id = ? AND ip = ? AND refresh_token = ? AND expires_at >= ?",
			userID, ip, token, time.Now().UTC()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return count > 0, nil
}

// Update replaces the token for an existing (user, ip) binding and extends
// its expiry; a missing binding is admitted as a fresh insert.
func (s *DBSessionStore) Update(ctx context.Context, ip string, userID uint, token string) error {
	now := time.Now().UTC()
	res := s.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("user_id = ? AND ip = ?", userID, ip).
		Updates(map[string]interface{}{
			"refresh_token": token,
			"expires_at":    now.Add(s.ttl),
		})
	if res.Error != nil {
		return fmt.Errorf("update session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return s.Create(ctx, ip, userID, token)
	}
	return nil
}

func (s *DBSessionStore) Count(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

func (s *DBSessionStore) DeleteByUser(ctx context.Context, userID uint) error {
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Session{}).Error
	if err != nil {
		return fmt.Errorf("delete sessions by user: %w", err)
	}
	return nil
}

func (s *DBSessionStore) DeleteByIP(ctx context.Context, ip string, userID uint) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND ip = ?", userID, ip).
		Delete(&domain.Session{}).Error
	if err != nil {
		return fmt.Errorf("delete session by ip: %w", err)
	}
	return nil
}
