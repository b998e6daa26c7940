package repository

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fleamarket/internal/domain/entity"
)

// OpenDB opens the sqlite database at path (":memory:" for tests) and runs
// the schema migration for every entity the repositories persist.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Product{},
		&entity.ChatRoom{},
		&entity.ChatMessage{},
		&entity.Block{},
		&entity.Favorite{},
		&entity.Comment{},
		&entity.Report{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
