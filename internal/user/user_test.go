package user

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := db.Exec("DELETE FROM users").Error; err != nil {
		t.Fatalf("failed to reset users table: %v", err)
	}
	return db
}

func TestSync_CreatesOnFirstSight(t *testing.T) {
	db := setupDB(t)
	u, created, err := Sync(db, "ext_abc123", "jo@example.com", "Jo Doe")
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if !created {
		t.Errorf("expected created=true on first sight")
	}
	if u.ExternalID != "ext_abc123" || u.Role != RoleUser {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestSync_ReturnsExisting(t *testing.T) {
	db := setupDB(t)
	first, _, err := Sync(db, "ext_abc123", "jo@example.com", "Jo Doe")
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	second, created, err := Sync(db, "ext_abc123", "other@example.com", "Someone Else")
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if created {
		t.Errorf("expected created=false for known subject")
	}
	if second.ID != first.ID {
		t.Errorf("expected same row, got %d and %d", first.ID, second.ID)
	}
	if second.Email != "jo@example.com" {
		t.Errorf("sync must not overwrite existing identity fields")
	}
}
