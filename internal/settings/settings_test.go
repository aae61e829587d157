package settings

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"anti-portfolio/internal/config"
)

var testTiers = config.ModelTiers{
	Haiku:  "claude-3-5-haiku-20241022",
	Sonnet: "claude-sonnet-4-5",
	Opus:   "claude-opus-4-5",
}

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&AppSetting{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := db.Exec("DELETE FROM app_settings").Error; err != nil {
		t.Fatalf("failed to reset table: %v", err)
	}
	return db
}

func TestDefaultModel_FallsBackToHaiku(t *testing.T) {
	db := setupDB(t)
	model, err := DefaultModel(db, testTiers)
	if err != nil {
		t.Fatalf("default model failed: %v", err)
	}
	if model != testTiers.Haiku {
		t.Errorf("expected haiku fallback, got %q", model)
	}
}

func TestSetDefaultModel_RoundTrip(t *testing.T) {
	db := setupDB(t)
	if err := SetDefaultModel(db, testTiers, testTiers.Sonnet); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	model, err := DefaultModel(db, testTiers)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if model != testTiers.Sonnet {
		t.Errorf("expected sonnet, got %q", model)
	}
}

func TestSetDefaultModel_UpsertsSingleRow(t *testing.T) {
	db := setupDB(t)
	if err := SetDefaultModel(db, testTiers, testTiers.Sonnet); err != nil {
		t.Fatalf("first set failed: %v", err)
	}
	if err := SetDefaultModel(db, testTiers, testTiers.Opus); err != nil {
		t.Fatalf("second set failed: %v", err)
	}
	var count int64
	db.Model(&AppSetting{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 settings row, got %d", count)
	}
	model, _ := DefaultModel(db, testTiers)
	if model != testTiers.Opus {
		t.Errorf("expected opus, got %q", model)
	}
}

func TestSetDefaultModel_RejectsUnknown(t *testing.T) {
	db := setupDB(t)
	if err := SetDefaultModel(db, testTiers, "gpt-12"); err == nil {
		t.Errorf("expected error for unknown model")
	}
}

func TestDefaultModel_IgnoresStaleSetting(t *testing.T) {
	db := setupDB(t)
	db.Create(&AppSetting{Key: "default_model", Value: "renamed-away-tier"})
	model, err := DefaultModel(db, testTiers)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if model != testTiers.Haiku {
		t.Errorf("expected haiku for stale setting, got %q", model)
	}
}
