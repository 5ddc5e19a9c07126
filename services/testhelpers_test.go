package services

import (
	"testing"

	"calorie-tracker/config"
	"calorie-tracker/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(config.AllModels...); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "x",
		CalorieGoal:  2000,
		ProteinGoal:  150,
		CarbsGoal:    250,
		FatGoal:      65,
		WaterGoalMl:  2000,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}

func seedFood(t *testing.T, db *gorm.DB, userID *uint, name string, cals, protein, carbs, fat float64) *models.Food {
	t.Helper()

	food := models.Food{
		UserID:          userID,
		Name:            name,
		CaloriesPer100g: decimal.NewFromFloat(cals),
		ProteinPer100g:  decimal.NewFromFloat(protein),
		CarbsPer100g:    decimal.NewFromFloat(carbs),
		FatPer100g:      decimal.NewFromFloat(fat),
	}
	if err := db.Create(&food).Error; err != nil {
		t.Fatalf("failed to seed food: %v", err)
	}
	return &food
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func wantDecimal(t *testing.T, got decimal.Decimal, want float64, label string) {
	t.Helper()
	if !got.Equal(decimal.NewFromFloat(want)) {
		t.Errorf("%s = %s, want %v", label, got, want)
	}
}
