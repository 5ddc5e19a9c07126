package services

import (
	"errors"
	"fmt"
	"time"

	"calorie-tracker/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	maxGrams = decimal.NewFromInt(10000)
	hundred  = decimal.NewFromInt(100)
)

type EntryService struct {
	db *gorm.DB
}

func NewEntryService(db *gorm.DB) *EntryService {
	return &EntryService{db: db}
}

type EntryItemDto struct {
	ID        uint            `json:"id"`
	UserID    uint            `json:"userId"`
	FoodID    uint            `json:"foodId"`
	FoodName  string          `json:"foodName"`
	Grams     decimal.Decimal `json:"grams"`
	Calories  decimal.Decimal `json:"calories"`
	Protein   decimal.Decimal `json:"protein"`
	Carbs     decimal.Decimal `json:"carbs"`
	Fat       decimal.Decimal `json:"fat"`
	CreatedAt time.Time       `json:"createdAt"`
}

// entryToDto resolves the food name at read time. Renaming a food changes
// how old entries display; the nutrient snapshot stays frozen.
func entryToDto(e *models.EntryItem) EntryItemDto {
	name := "Unknown"
	if e.Food.ID != 0 {
		name = e.Food.Name
	}
	return EntryItemDto{
		ID:        e.ID,
		UserID:    e.UserID,
		FoodID:    e.FoodID,
		FoodName:  name,
		Grams:     e.Grams,
		Calories:  e.Calories,
		Protein:   e.Protein,
		Carbs:     e.Carbs,
		Fat:       e.Fat,
		CreatedAt: e.CreatedAt,
	}
}

// DayWindow returns the closed-open UTC interval covering the calendar day
// of t.
func DayWindow(t time.Time) (start, end time.Time) {
	t = t.UTC()
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func validGrams(grams decimal.Decimal) error {
	if !grams.IsPositive() || grams.GreaterThan(maxGrams) {
		return fmt.Errorf("%w: grams must be in (0, 10000]", ErrInvalid)
	}
	return nil
}

// snapshot computes the stored nutrient values for a portion:
// round(per100g * grams / 100, 2), half away from zero, applied exactly
// once at write time.
func snapshot(per100g, grams decimal.Decimal) decimal.Decimal {
	return per100g.Mul(grams).Div(hundred).Round(2)
}

// visibleFood resolves a food id the user is allowed to log: a global food
// or one of their own.
func (s *EntryService) visibleFood(userID, foodID uint) (*models.Food, error) {
	var food models.Food
	err := s.db.
		Where("id = ? AND (user_id IS NULL OR user_id = ?)", foodID, userID).
		First(&food).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}
	return &food, nil
}

// List returns the user's entries newest first, optionally restricted to
// one calendar day.
func (s *EntryService) List(userID uint, date *time.Time) ([]EntryItemDto, error) {
	q := s.db.Preload("Food").Where("user_id = ?", userID)
	if date != nil {
		start, end := DayWindow(*date)
		q = q.Where("created_at >= ? AND created_at < ?", start, end)
	}

	var entries []models.EntryItem
	if err := q.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}

	out := make([]EntryItemDto, 0, len(entries))
	for i := range entries {
		out = append(out, entryToDto(&entries[i]))
	}
	return out, nil
}

func (s *EntryService) Get(userID, entryID uint) (*EntryItemDto, error) {
	var entry models.EntryItem
	err := s.db.Preload("Food").
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := entryToDto(&entry)
	return &dto, nil
}

// Create logs a portion of a food. An explicit date backdates the entry;
// otherwise it is stamped now. Times are normalized to UTC.
func (s *EntryService) Create(userID, foodID uint, grams decimal.Decimal, date *time.Time) (*EntryItemDto, error) {
	if err := validGrams(grams); err != nil {
		return nil, err
	}

	food, err := s.visibleFood(userID, foodID)
	if err != nil {
		return nil, err
	}

	createdAt := time.Now().UTC()
	if date != nil {
		createdAt = date.UTC()
	}

	entry := models.EntryItem{
		UserID:    userID,
		FoodID:    food.ID,
		Grams:     grams.Round(2),
		Calories:  snapshot(food.CaloriesPer100g, grams),
		Protein:   snapshot(food.ProteinPer100g, grams),
		Carbs:     snapshot(food.CarbsPer100g, grams),
		Fat:       snapshot(food.FatPer100g, grams),
		CreatedAt: createdAt,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	entry.Food = *food
	dto := entryToDto(&entry)
	return &dto, nil
}

// Update repoints an entry at a food and quantity, recomputing the snapshot.
// The original entry is untouched if the new food does not resolve.
func (s *EntryService) Update(userID, entryID, foodID uint, grams decimal.Decimal) (*EntryItemDto, error) {
	if err := validGrams(grams); err != nil {
		return nil, err
	}

	var entry models.EntryItem
	err := s.db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	food, err := s.visibleFood(userID, foodID)
	if err != nil {
		return nil, err
	}

	entry.FoodID = food.ID
	entry.Grams = grams.Round(2)
	entry.Calories = snapshot(food.CaloriesPer100g, grams)
	entry.Protein = snapshot(food.ProteinPer100g, grams)
	entry.Carbs = snapshot(food.CarbsPer100g, grams)
	entry.Fat = snapshot(food.FatPer100g, grams)

	if err := s.db.Save(&entry).Error; err != nil {
		return nil, err
	}

	entry.Food = *food
	dto := entryToDto(&entry)
	return &dto, nil
}

func (s *EntryService) Delete(userID, entryID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.EntryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
