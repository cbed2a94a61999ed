package database

import (
	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Post{},
		&domain.Like{},
		&domain.Dislike{},
		&domain.Session{},
	)
}
