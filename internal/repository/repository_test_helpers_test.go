package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// _fk=1 turns on sqlite foreign key enforcement; without it the toggle path
// cannot observe gorm.ErrForeignKeyViolated.
func newRepositoryDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Post{},
		&domain.Like{},
		&domain.Dislike{},
		&domain.Session{},
	); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	return db
}

func createUserForTest(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "digest",
		FirstName:    "Test",
		LastName:     "User",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createPostForTest(t *testing.T, db *gorm.DB, authorID uint, text string) *domain.Post {
	t.Helper()
	post := &domain.Post{Text: text, AuthorID: authorID}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}
