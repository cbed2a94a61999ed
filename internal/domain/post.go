package domain

import "time"

type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Text      string     `gorm:"type:text;not null" json:"text"`
	AuthorID  uint       `gorm:"column:author;index;not null" json:"author"`
	Author    *User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time  `gorm:"column:timestamp;index" json:"timestamp"`
	// Set by the repository on edit only; nil until the first update.
	UpdateDate *time.Time `gorm:"column:update_date" json:"update_date"`
}

func (Post) TableName() string { return "posts" }
