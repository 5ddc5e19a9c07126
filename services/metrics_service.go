package services

import (
	"fmt"
	"sort"
	"time"

	"calorie-tracker/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MetricsService struct {
	db *gorm.DB
}

func NewMetricsService(db *gorm.DB) *MetricsService {
	return &MetricsService{db: db}
}

type DailyMetricsDto struct {
	Date          time.Time       `json:"date"`
	TotalCalories decimal.Decimal `json:"totalCalories"`
	TotalProtein  decimal.Decimal `json:"totalProtein"`
	TotalCarbs    decimal.Decimal `json:"totalCarbs"`
	TotalFat      decimal.Decimal `json:"totalFat"`
	Entries       []EntryItemDto  `json:"entries"`
}

type DailySummaryDto struct {
	Date     time.Time       `json:"date"`
	Calories decimal.Decimal `json:"calories"`
	Protein  decimal.Decimal `json:"protein"`
	Carbs    decimal.Decimal `json:"carbs"`
	Fat      decimal.Decimal `json:"fat"`
}

type TopFoodDto struct {
	FoodID        uint            `json:"foodId"`
	FoodName      string          `json:"foodName"`
	TotalCalories decimal.Decimal `json:"totalCalories"`
	EntryCount    int             `json:"entryCount"`
}

type RangeMetricsDto struct {
	FromDate      time.Time         `json:"fromDate"`
	ToDate        time.Time         `json:"toDate"`
	TotalCalories decimal.Decimal   `json:"totalCalories"`
	TotalProtein  decimal.Decimal   `json:"totalProtein"`
	TotalCarbs    decimal.Decimal   `json:"totalCarbs"`
	TotalFat      decimal.Decimal   `json:"totalFat"`
	DailyData     []DailySummaryDto `json:"dailyData"`
	TopFoods      []TopFoodDto      `json:"topFoods"`
}

const topFoodsLimit = 10

// Daily sums the nutrient snapshots over one calendar day. An empty day is
// zeros and an empty list, not an error.
func (s *MetricsService) Daily(userID uint, date time.Time) (*DailyMetricsDto, error) {
	start, end := DayWindow(date)

	var entries []models.EntryItem
	err := s.db.Preload("Food").
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	out := &DailyMetricsDto{
		Date:          start,
		TotalCalories: decimal.Zero,
		TotalProtein:  decimal.Zero,
		TotalCarbs:    decimal.Zero,
		TotalFat:      decimal.Zero,
		Entries:       make([]EntryItemDto, 0, len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		out.TotalCalories = out.TotalCalories.Add(e.Calories)
		out.TotalProtein = out.TotalProtein.Add(e.Protein)
		out.TotalCarbs = out.TotalCarbs.Add(e.Carbs)
		out.TotalFat = out.TotalFat.Add(e.Fat)
		out.Entries = append(out.Entries, entryToDto(e))
	}
	return out, nil
}

// Range aggregates [from 00:00, to+1 00:00). The daily series is dense:
// every day in range appears, zero-filled when nothing was logged, so
// charts never skip days. Top foods are ranked by total calories with ties
// left in first-seen order.
func (s *MetricsService) Range(userID uint, from, to time.Time) (*RangeMetricsDto, error) {
	start, _ := DayWindow(from)
	endDay, _ := DayWindow(to)
	if start.After(endDay) {
		return nil, fmt.Errorf("%w: from must be on or before to", ErrInvalid)
	}
	end := endDay.AddDate(0, 0, 1)

	var entries []models.EntryItem
	err := s.db.Preload("Food").
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	out := &RangeMetricsDto{
		FromDate:      start,
		ToDate:        endDay,
		TotalCalories: decimal.Zero,
		TotalProtein:  decimal.Zero,
		TotalCarbs:    decimal.Zero,
		TotalFat:      decimal.Zero,
	}

	byDay := make(map[string]*DailySummaryDto)
	byFood := make(map[uint]*TopFoodDto)
	var foodOrder []uint

	for i := range entries {
		e := &entries[i]
		out.TotalCalories = out.TotalCalories.Add(e.Calories)
		out.TotalProtein = out.TotalProtein.Add(e.Protein)
		out.TotalCarbs = out.TotalCarbs.Add(e.Carbs)
		out.TotalFat = out.TotalFat.Add(e.Fat)

		dayStart, _ := DayWindow(e.CreatedAt)
		key := dayStart.Format("2006-01-02")
		day := byDay[key]
		if day == nil {
			day = &DailySummaryDto{
				Date:     dayStart,
				Calories: decimal.Zero,
				Protein:  decimal.Zero,
				Carbs:    decimal.Zero,
				Fat:      decimal.Zero,
			}
			byDay[key] = day
		}
		day.Calories = day.Calories.Add(e.Calories)
		day.Protein = day.Protein.Add(e.Protein)
		day.Carbs = day.Carbs.Add(e.Carbs)
		day.Fat = day.Fat.Add(e.Fat)

		top := byFood[e.FoodID]
		if top == nil {
			name := "Unknown"
			if e.Food.ID != 0 {
				name = e.Food.Name
			}
			top = &TopFoodDto{FoodID: e.FoodID, FoodName: name, TotalCalories: decimal.Zero}
			byFood[e.FoodID] = top
			foodOrder = append(foodOrder, e.FoodID)
		}
		top.TotalCalories = top.TotalCalories.Add(e.Calories)
		top.EntryCount++
	}

	out.DailyData = make([]DailySummaryDto, 0, int(end.Sub(start).Hours()/24))
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if day, ok := byDay[d.Format("2006-01-02")]; ok {
			out.DailyData = append(out.DailyData, *day)
			continue
		}
		out.DailyData = append(out.DailyData, DailySummaryDto{
			Date:     d,
			Calories: decimal.Zero,
			Protein:  decimal.Zero,
			Carbs:    decimal.Zero,
			Fat:      decimal.Zero,
		})
	}

	top := make([]TopFoodDto, 0, len(foodOrder))
	for _, id := range foodOrder {
		top = append(top, *byFood[id])
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TotalCalories.GreaterThan(top[j].TotalCalories)
	})
	if len(top) > topFoodsLimit {
		top = top[:topFoodsLimit]
	}
	out.TopFoods = top

	return out, nil
}
