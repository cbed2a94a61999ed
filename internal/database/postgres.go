package database

import (
	"github.com/PivnoyFei/webtronics-social-networking/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to postgres. TranslateError is required: the reaction toggle
// distinguishes gorm.ErrDuplicatedKey from gorm.ErrForeignKeyViolated.
func Open(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
}
