package repositories

import (
	"testing"

	"github.com/crestline/huddle/backend/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema
// migrated. The pool is pinned to one connection so every query sees the
// same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("Could not open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Could not get SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&models.User{},
		&models.Channel{},
		&models.ChannelLastViewed{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.Emoji{},
	)
	if err != nil {
		t.Fatalf("Could not migrate schema: %v", err)
	}
	return db
}
