package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"calorie-tracker/models"

	"gorm.io/gorm"
)

type WaterService struct {
	db *gorm.DB
}

func NewWaterService(db *gorm.DB) *WaterService {
	return &WaterService{db: db}
}

type WaterEntryDto struct {
	ID          uint      `json:"id"`
	Date        time.Time `json:"date"`
	Milliliters int       `json:"milliliters"`
	CreatedAt   time.Time `json:"createdAt"`
}

type WaterSummaryDto struct {
	Date             time.Time       `json:"date"`
	TotalMilliliters int             `json:"totalMilliliters"`
	GoalMilliliters  int             `json:"goalMilliliters"`
	PercentageOfGoal float64         `json:"percentageOfGoal"`
	Entries          []WaterEntryDto `json:"entries"`
}

// Summary returns one day's water log, oldest first, with progress against
// the user's water goal.
func (s *WaterService) Summary(userID uint, date time.Time) (*WaterSummaryDto, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	day, _ := DayWindow(date)

	var rows []models.WaterEntry
	err := s.db.
		Where("user_id = ? AND date = ?", userID, day).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := &WaterSummaryDto{
		Date:            day,
		GoalMilliliters: user.WaterGoalMl,
		Entries:         make([]WaterEntryDto, 0, len(rows)),
	}
	for _, r := range rows {
		out.TotalMilliliters += r.Milliliters
		out.Entries = append(out.Entries, WaterEntryDto{
			ID:          r.ID,
			Date:        r.Date,
			Milliliters: r.Milliliters,
			CreatedAt:   r.CreatedAt,
		})
	}
	if user.WaterGoalMl > 0 {
		pct := float64(out.TotalMilliliters) / float64(user.WaterGoalMl) * 100
		out.PercentageOfGoal = math.Round(pct*10) / 10
	}
	return out, nil
}

// Log records a drink against the calendar day of date (today when nil).
func (s *WaterService) Log(userID uint, milliliters int, date *time.Time) (*WaterEntryDto, error) {
	if milliliters <= 0 {
		return nil, fmt.Errorf("%w: milliliters must be greater than 0", ErrInvalid)
	}

	when := time.Now().UTC()
	if date != nil {
		when = date.UTC()
	}
	day, _ := DayWindow(when)

	entry := models.WaterEntry{
		UserID:      userID,
		Date:        day,
		Milliliters: milliliters,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	return &WaterEntryDto{
		ID:          entry.ID,
		Date:        entry.Date,
		Milliliters: entry.Milliliters,
		CreatedAt:   entry.CreatedAt,
	}, nil
}

func (s *WaterService) Get(userID, entryID uint) (*WaterEntryDto, error) {
	var entry models.WaterEntry
	if err := s.db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &WaterEntryDto{
		ID:          entry.ID,
		Date:        entry.Date,
		Milliliters: entry.Milliliters,
		CreatedAt:   entry.CreatedAt,
	}, nil
}

func (s *WaterService) Delete(userID, entryID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.WaterEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
