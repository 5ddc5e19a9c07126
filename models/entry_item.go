package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryItem is one logged portion. The four nutrient values are snapshotted
// at write time from the food's per-100g profile; editing the food later
// must not change historical entries.
type EntryItem struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"index;not null"`
	FoodID uint `gorm:"index;not null"`
	Food   Food

	Grams    decimal.Decimal `gorm:"type:numeric(10,2)"`
	Calories decimal.Decimal `gorm:"type:numeric(10,2)"`
	Protein  decimal.Decimal `gorm:"type:numeric(10,2)"`
	Carbs    decimal.Decimal `gorm:"type:numeric(10,2)"`
	Fat      decimal.Decimal `gorm:"type:numeric(10,2)"`

	// CreatedAt doubles as the meal timestamp and may be backdated.
	CreatedAt time.Time `gorm:"index"`
}
