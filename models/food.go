package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Food is a catalog entry with a per-100g nutrient profile. UserID nil means
// the food is global: visible to everyone, mutable by no one.
type Food struct {
	ID     uint   `gorm:"primaryKey"`
	UserID *uint  `gorm:"index"`
	Name   string `gorm:"size:255;not null"`

	CaloriesPer100g decimal.Decimal `gorm:"type:numeric(10,2)"`
	ProteinPer100g  decimal.Decimal `gorm:"type:numeric(10,2)"`
	CarbsPer100g    decimal.Decimal `gorm:"type:numeric(10,2)"`
	FatPer100g      decimal.Decimal `gorm:"type:numeric(10,2)"`

	CreatedAt time.Time
}
