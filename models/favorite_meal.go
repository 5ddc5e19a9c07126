package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FavoriteMeal is a reusable template of foods and portions. Logging it
// materializes entry items; the template itself is never consumed.
type FavoriteMeal struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	Name        string `gorm:"size:255;not null"`
	Description string
	CreatedAt   time.Time

	Items []FavoriteMealItem `gorm:"foreignKey:FavoriteMealID"`
}

type FavoriteMealItem struct {
	ID             uint `gorm:"primaryKey"`
	FavoriteMealID uint `gorm:"index;not null"`
	FoodID         uint `gorm:"not null"`
	Food           Food

	Grams decimal.Decimal `gorm:"type:numeric(10,2)"`
}
