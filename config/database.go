package config

import (
	"fmt"

	"calorie-tracker/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// AllModels is the single list of entities AutoMigrate runs over. Tests
// reuse it against an in-memory store.
var AllModels = []any{
	&models.User{},
	&models.Food{},
	&models.EntryItem{},
	&models.WaterEntry{},
	&models.FavoriteMeal{},
	&models.FavoriteMealItem{},
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
		cfg.Database.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(AllModels...); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}
	return db, nil
}
