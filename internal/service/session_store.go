package service

import "context"

// SessionStore tracks which (user, ip) pairs hold a currently valid refresh
// token. Implementations bound live sessions per user: Create past the cap
// purges every session for that user before admitting the new one (full
// reset, not LRU). Deletes never fail on absent rows; a false Check is the
// only negative signal callers need.
type SessionStore interface {
	Create(ctx context.Context, ip string, userID uint, token string) error
	Check(ctx context.Context, ip string, userID uint, token string) (bool, error)
	Update(ctx context.Context, ip string, userID uint, token string) error
	Count(ctx context.Context, userID uint) (int64, error)
	DeleteByUser(ctx context.Context, userID uint) error
	DeleteByIP(ctx context.Context, ip string, userID uint) error
}
