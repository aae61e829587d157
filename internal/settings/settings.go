package settings

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"anti-portfolio/internal/config"
)

const keyDefaultModel = "default_model"

// AppSetting is a mutable application-wide key/value row.
type AppSetting struct {
	Key         string    `gorm:"primaryKey;size:64" json:"key"`
	Value       string    `gorm:"size:255;not null" json:"value"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (AppSetting) TableName() string {
	return "app_settings"
}

// DefaultModel returns the model tier used for new generations. Callers
// read this once per operation and snapshot it into the rows they
// create, so a later settings change never alters in-flight work.
func DefaultModel(db *gorm.DB, tiers config.ModelTiers) (string, error) {
	var s AppSetting
	err := db.Where("key = ?", keyDefaultModel).First(&s).Error
	if err == gorm.ErrRecordNotFound {
		return tiers.Haiku, nil
	}
	if err != nil {
		return "", err
	}
	if !tiers.Contains(s.Value) {
		// A tier renamed in config leaves a stale setting behind.
		return tiers.Haiku, nil
	}
	return s.Value, nil
}

// SetDefaultModel validates and upserts the default model setting.
func SetDefaultModel(db *gorm.DB, tiers config.ModelTiers, model string) error {
	if !tiers.Contains(model) {
		return fmt.Errorf("unknown model %q", model)
	}
	s := AppSetting{
		Key:         keyDefaultModel,
		Value:       model,
		Description: "Default model used for profile analysis and simulations",
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error
}
