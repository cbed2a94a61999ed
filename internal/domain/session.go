package domain

import "time"

// Session is one live refresh-token grant: the (user, ip) binding plus the
// token value it was minted with. At most the configured cap of rows may
// exist per user; overflow resets all of them.
type Session struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	IP           string    `gorm:"size:45;index;not null" json:"ip"`
	RefreshToken string    `gorm:"size:512;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `gorm:"index;not null" json:"expires_at"`
	User         User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Session) TableName() string { return "auth_tokens" }
