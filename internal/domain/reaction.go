package domain

// Like and Dislike are disjoint relations. The composite unique index on
// (user_id, post_id) is the concurrency primitive the toggle relies on:
// a duplicate insert must fail atomically and distinguishably.
type Like struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex:unique_for_like;not null" json:"user_id"`
	PostID uint `gorm:"uniqueIndex:unique_for_like;not null" json:"post_id"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post   Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Like) TableName() string { return "likes" }

type Dislike struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex:unique_for_dislike;not null" json:"user_id"`
	PostID uint `gorm:"uniqueIndex:unique_for_dislike;not null" json:"post_id"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post   Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Dislike) TableName() string { return "dislikes" }

// ReactionCounts is the aggregate returned by every reaction mutation and by
// post detail reads.
type ReactionCounts struct {
	Like    int64 `json:"like"`
	Dislike int64 `json:"dislike"`
}
