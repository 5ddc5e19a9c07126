package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"calorie-tracker/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FavoriteMealService struct {
	db      *gorm.DB
	entries *EntryService
}

func NewFavoriteMealService(db *gorm.DB, entries *EntryService) *FavoriteMealService {
	return &FavoriteMealService{db: db, entries: entries}
}

type FavoriteMealItemDto struct {
	ID       uint            `json:"id"`
	FoodID   uint            `json:"foodId"`
	FoodName string          `json:"foodName"`
	Grams    decimal.Decimal `json:"grams"`
	Calories decimal.Decimal `json:"calories"`
	Protein  decimal.Decimal `json:"protein"`
	Carbs    decimal.Decimal `json:"carbs"`
	Fat      decimal.Decimal `json:"fat"`
}

type FavoriteMealDto struct {
	ID            uint                  `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	Items         []FavoriteMealItemDto `json:"items"`
	TotalCalories decimal.Decimal       `json:"totalCalories"`
	TotalProtein  decimal.Decimal       `json:"totalProtein"`
	TotalCarbs    decimal.Decimal       `json:"totalCarbs"`
	TotalFat      decimal.Decimal       `json:"totalFat"`
}

type FavoriteMealItemInput struct {
	FoodID uint            `json:"foodId"`
	Grams  decimal.Decimal `json:"grams"`
}

// favoriteToDto computes item macros from the food's current profile.
// Templates hold no snapshot; the freeze happens only when items become
// ledger entries.
func favoriteToDto(fm *models.FavoriteMeal) FavoriteMealDto {
	out := FavoriteMealDto{
		ID:            fm.ID,
		Name:          fm.Name,
		Description:   fm.Description,
		CreatedAt:     fm.CreatedAt,
		Items:         make([]FavoriteMealItemDto, 0, len(fm.Items)),
		TotalCalories: decimal.Zero,
		TotalProtein:  decimal.Zero,
		TotalCarbs:    decimal.Zero,
		TotalFat:      decimal.Zero,
	}
	for _, it := range fm.Items {
		d := FavoriteMealItemDto{
			ID:       it.ID,
			FoodID:   it.FoodID,
			FoodName: it.Food.Name,
			Grams:    it.Grams,
			Calories: snapshot(it.Food.CaloriesPer100g, it.Grams),
			Protein:  snapshot(it.Food.ProteinPer100g, it.Grams),
			Carbs:    snapshot(it.Food.CarbsPer100g, it.Grams),
			Fat:      snapshot(it.Food.FatPer100g, it.Grams),
		}
		out.Items = append(out.Items, d)
		out.TotalCalories = out.TotalCalories.Add(d.Calories)
		out.TotalProtein = out.TotalProtein.Add(d.Protein)
		out.TotalCarbs = out.TotalCarbs.Add(d.Carbs)
		out.TotalFat = out.TotalFat.Add(d.Fat)
	}
	return out
}

func (s *FavoriteMealService) List(userID uint) ([]FavoriteMealDto, error) {
	var meals []models.FavoriteMeal
	err := s.db.
		Preload("Items").Preload("Items.Food").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}

	out := make([]FavoriteMealDto, 0, len(meals))
	for i := range meals {
		out = append(out, favoriteToDto(&meals[i]))
	}
	return out, nil
}

// Create stores a named template. Item food ids that do not resolve for
// the user are skipped rather than failing the whole template.
func (s *FavoriteMealService) Create(userID uint, name, description string, items []FavoriteMealItemInput) (*FavoriteMealDto, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: meal name is required", ErrInvalid)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one food item is required", ErrInvalid)
	}
	for _, it := range items {
		if err := validGrams(it.Grams); err != nil {
			return nil, err
		}
	}

	meal := models.FavoriteMeal{
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meal).Error; err != nil {
			return err
		}
		for _, it := range items {
			var food models.Food
			err := tx.Where("id = ? AND (user_id IS NULL OR user_id = ?)", it.FoodID, userID).First(&food).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			row := models.FavoriteMealItem{
				FavoriteMealID: meal.ID,
				FoodID:         food.ID,
				Grams:          it.Grams.Round(2),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var created models.FavoriteMeal
	if err := s.db.Preload("Items").Preload("Items.Food").First(&created, meal.ID).Error; err != nil {
		return nil, err
	}
	dto := favoriteToDto(&created)
	return &dto, nil
}

func (s *FavoriteMealService) Delete(userID, mealID uint) error {
	var meal models.FavoriteMeal
	err := s.db.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("favorite_meal_id = ?", meal.ID).Delete(&models.FavoriteMealItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&meal).Error
	})
}

// Log expands a template into ledger entries, optionally backdated. The
// template is read, never mutated: each expansion takes a fresh nutrient
// snapshot at the food's current profile.
func (s *FavoriteMealService) Log(userID, mealID uint, date *time.Time) ([]EntryItemDto, error) {
	var meal models.FavoriteMeal
	err := s.db.Preload("Items").
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	out := make([]EntryItemDto, 0, len(meal.Items))
	for _, it := range meal.Items {
		dto, err := s.entries.Create(userID, it.FoodID, it.Grams, date)
		if err != nil {
			if errors.Is(err, ErrFoodNotFound) {
				// food was deleted after the template was saved
				continue
			}
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}
