package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Nutrient columns are decimals; emit them as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	FirstName    string `gorm:"size:100;not null"`
	MiddleName   string `gorm:"size:100"`
	LastName     string `gorm:"size:100;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"` // stored lowercase
	PasswordHash string `gorm:"not null"`

	// Daily targets. Bounds are enforced at the service boundary, not here.
	CalorieGoal int `gorm:"default:2000"`
	ProteinGoal int `gorm:"default:150"`
	CarbsGoal   int `gorm:"default:250"`
	FatGoal     int `gorm:"default:65"`
	WaterGoalMl int `gorm:"default:2000"`

	ProfilePicture string

	ResetToken    string
	ResetTokenExp time.Time

	CreatedAt time.Time

	Foods   []Food      `gorm:"foreignKey:UserID"`
	Entries []EntryItem `gorm:"foreignKey:UserID"`
}

func (u *User) FullName() string {
	if u.MiddleName == "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName + " " + u.MiddleName + " " + u.LastName
}
