package models

import "time"

// WaterEntry logs a drink. Date is day-granular and distinct from CreatedAt
// so water can be backdated without losing the actual logging time.
type WaterEntry struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	Date        time.Time `gorm:"index;not null"`
	Milliliters int       `gorm:"not null"`
	CreatedAt   time.Time
}
