package db

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"anti-portfolio/internal/config"
	"anti-portfolio/internal/profile"
	"anti-portfolio/internal/settings"
	"anti-portfolio/internal/simulation"
	"anti-portfolio/internal/user"
)

var DB *gorm.DB

func Init(cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := Migrate(db); err != nil {
		return err
	}
	if err := SeedConfigs(db); err != nil {
		return err
	}

	DB = db
	log.Printf("Database connected and migrated")
	return nil
}

// Migrate runs the schema migrations for every model the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&user.User{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(&profile.Analysis{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(&simulation.Simulation{}, &simulation.Message{}, &simulation.Config{}, &simulation.Evaluation{}); err != nil {
		return err
	}
	return db.AutoMigrate(&settings.AppSetting{})
}

// SeedConfigs inserts the built-in simulation presets on an empty
// table. Existing rows are left alone so operator edits survive
// restarts.
func SeedConfigs(db *gorm.DB) error {
	var count int64
	if err := db.Model(&simulation.Config{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	presets := []simulation.Config{
		{
			Name:            "Standard",
			Description:     "The default balanced run.",
			TasksCount:      10,
			ChallengesCount: 3,
			Difficulty:      "medium",
			TimelineType:    "quarter",
			ContextType:     "startup",
			IsDefault:       true,
			IsActive:        true,
		},
		{
			Name:            "Quick",
			Description:     "A short run for a first try.",
			TasksCount:      5,
			ChallengesCount: 1,
			Difficulty:      "easy",
			TimelineType:    "month",
			ContextType:     "startup",
			IsActive:        true,
		},
		{
			Name:            "Extended",
			Description:     "A long run with more room for challenges.",
			TasksCount:      15,
			ChallengesCount: 5,
			Difficulty:      "hard",
			TimelineType:    "year",
			ContextType:     "scaleup",
			IsActive:        true,
		},
		{
			Name:            "Enterprise Challenge",
			Description:     "Corporate setting with frequent escalations.",
			TasksCount:      12,
			ChallengesCount: 4,
			Difficulty:      "hard",
			TimelineType:    "quarter",
			ContextType:     "enterprise",
			IsActive:        true,
		},
	}
	for i := range presets {
		presets[i].ID = uuid.NewString()
	}
	if err := db.Create(&presets).Error; err != nil {
		return err
	}
	log.Printf("[DB] Seeded %d simulation configs", len(presets))
	return nil
}
