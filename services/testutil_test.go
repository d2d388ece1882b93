package services

import (
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xxml-lang/xxmlhub/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.PostComment{},
		&models.PostCommentRevision{},
		&models.DocModule{},
		&models.DocClass{},
		&models.DocMethod{},
		&models.DocExample{},
		&models.Download{},
		&models.TrafficStat{},
		&models.SecurityEvent{},
	)
	if err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Role: role, PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user error: %v", err)
	}
	return user
}

func createCategory(t *testing.T, db *gorm.DB, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Slug: slug, Name: slug}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category error: %v", err)
	}
	return category
}

// recordingInvalidator captures invalidated paths for assertions.
type recordingInvalidator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingInvalidator) InvalidatePath(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recordingInvalidator) has(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.paths {
		if p == path {
			return true
		}
	}
	return false
}
