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

type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

type FoodDto struct {
	ID              uint            `json:"id"`
	UserID          *uint           `json:"userId"`
	Name            string          `json:"name"`
	CaloriesPer100g decimal.Decimal `json:"caloriesPer100g"`
	ProteinPer100g  decimal.Decimal `json:"proteinPer100g"`
	CarbsPer100g    decimal.Decimal `json:"carbsPer100g"`
	FatPer100g      decimal.Decimal `json:"fatPer100g"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type FoodInput struct {
	Name            string
	CaloriesPer100g decimal.Decimal
	ProteinPer100g  decimal.Decimal
	CarbsPer100g    decimal.Decimal
	FatPer100g      decimal.Decimal
}

func foodToDto(f *models.Food) FoodDto {
	return FoodDto{
		ID:              f.ID,
		UserID:          f.UserID,
		Name:            f.Name,
		CaloriesPer100g: f.CaloriesPer100g,
		ProteinPer100g:  f.ProteinPer100g,
		CarbsPer100g:    f.CarbsPer100g,
		FatPer100g:      f.FatPer100g,
		CreatedAt:       f.CreatedAt,
	}
}

func (in *FoodInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: food name is required", ErrInvalid)
	}
	for _, d := range []decimal.Decimal{in.CaloriesPer100g, in.ProteinPer100g, in.CarbsPer100g, in.FatPer100g} {
		if d.IsNegative() {
			return fmt.Errorf("%w: nutrient values must be non-negative", ErrInvalid)
		}
	}
	return nil
}

// List returns global foods plus the user's own, ordered by name.
func (s *FoodService) List(userID uint) ([]FoodDto, error) {
	var foods []models.Food
	err := s.db.
		Where("user_id IS NULL OR user_id = ?", userID).
		Order("name ASC").
		Find(&foods).Error
	if err != nil {
		return nil, err
	}

	out := make([]FoodDto, 0, len(foods))
	for i := range foods {
		out = append(out, foodToDto(&foods[i]))
	}
	return out, nil
}

func (s *FoodService) Get(userID, foodID uint) (*FoodDto, error) {
	var food models.Food
	err := s.db.
		Where("id = ? AND (user_id IS NULL OR user_id = ?)", foodID, userID).
		First(&food).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := foodToDto(&food)
	return &dto, nil
}

func (s *FoodService) Create(userID uint, in FoodInput) (*FoodDto, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	food := models.Food{
		UserID:          &userID,
		Name:            strings.TrimSpace(in.Name),
		CaloriesPer100g: in.CaloriesPer100g.Round(2),
		ProteinPer100g:  in.ProteinPer100g.Round(2),
		CarbsPer100g:    in.CarbsPer100g.Round(2),
		FatPer100g:      in.FatPer100g.Round(2),
	}
	if err := s.db.Create(&food).Error; err != nil {
		return nil, err
	}
	dto := foodToDto(&food)
	return &dto, nil
}

// ownedFood loads a food the user may mutate. Global foods (no owner) and
// other users' foods both come back as ErrNotFound.
func (s *FoodService) ownedFood(userID, foodID uint) (*models.Food, error) {
	var food models.Food
	err := s.db.Where("id = ? AND user_id = ?", foodID, userID).First(&food).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) Update(userID, foodID uint, in FoodInput) (*FoodDto, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	food, err := s.ownedFood(userID, foodID)
	if err != nil {
		return nil, err
	}

	food.Name = strings.TrimSpace(in.Name)
	food.CaloriesPer100g = in.CaloriesPer100g.Round(2)
	food.ProteinPer100g = in.ProteinPer100g.Round(2)
	food.CarbsPer100g = in.CarbsPer100g.Round(2)
	food.FatPer100g = in.FatPer100g.Round(2)

	if err := s.db.Save(food).Error; err != nil {
		return nil, err
	}
	dto := foodToDto(food)
	return &dto, nil
}

func (s *FoodService) Delete(userID, foodID uint) error {
	food, err := s.ownedFood(userID, foodID)
	if err != nil {
		return err
	}
	return s.db.Delete(food).Error
}
