package services

import (
	"errors"
	"testing"
	"time"
)

func TestMetricsDailySumsSnapshots(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	rice := seedFood(t, db, nil, "Rice", 130, 2.7, 28, 0.3)
	egg := seedFood(t, db, nil, "Egg", 155, 13, 1.1, 11)
	entries := NewEntryService(db)
	svc := NewMetricsService(db)

	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if _, err := entries.Create(user.ID, rice.ID, dec(100), &day); err != nil {
		t.Fatalf("Create: %v", err)
	}
	later := day.Add(4 * time.Hour)
	if _, err := entries.Create(user.ID, egg.ID, dec(50), &later); err != nil {
		t.Fatalf("Create: %v", err)
	}

	daily, err := svc.Daily(user.ID, day)
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	wantDecimal(t, daily.TotalCalories, 207.5, "total calories")
	wantDecimal(t, daily.TotalProtein, 9.2, "total protein")
	if len(daily.Entries) != 2 {
		t.Errorf("entries = %d, want 2", len(daily.Entries))
	}
}

func TestMetricsDailyEmptyDayIsZeros(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	svc := NewMetricsService(db)

	daily, err := svc.Daily(user.ID, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	wantDecimal(t, daily.TotalCalories, 0, "total calories")
	if len(daily.Entries) != 0 {
		t.Errorf("entries = %d, want 0", len(daily.Entries))
	}
}

func TestMetricsRangeDenseSeries(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	food := seedFood(t, db, nil, "Rice", 100, 2, 20, 1)
	entries := NewEntryService(db)
	svc := NewMetricsService(db)

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 2)
	mid := from.AddDate(0, 0, 1).Add(8 * time.Hour)

	// only the middle day has an entry
	if _, err := entries.Create(user.ID, food.ID, dec(100), &mid); err != nil {
		t.Fatalf("Create: %v", err)
	}

	out, err := svc.Range(user.ID, from, to)
	if err != nil {
		t.Fatalf("Range: %v", err)
	}

	if len(out.DailyData) != 3 {
		t.Fatalf("daily data days = %d, want 3", len(out.DailyData))
	}
	wantDecimal(t, out.DailyData[0].Calories, 0, "day 1 calories")
	wantDecimal(t, out.DailyData[1].Calories, 100, "day 2 calories")
	wantDecimal(t, out.DailyData[2].Calories, 0, "day 3 calories")
	wantDecimal(t, out.TotalCalories, 100, "total calories")
}

func TestMetricsRangeRejectsInvertedRange(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	svc := NewMetricsService(db)

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Range(user.ID, from, from.AddDate(0, 0, -1)); !errors.Is(err, ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestMetricsRangeTopFoods(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	rice := seedFood(t, db, nil, "Rice", 100, 2, 20, 1)
	egg := seedFood(t, db, nil, "Egg", 155, 13, 1.1, 11)
	entries := NewEntryService(db)
	svc := NewMetricsService(db)

	day := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	// rice twice, egg once; egg wins on calories
	for i, c := range []struct {
		foodID uint
		grams  float64
	}{
		{rice.ID, 50},
		{egg.ID, 200},
		{rice.ID, 50},
	} {
		at := day.Add(time.Duration(i) * time.Hour)
		if _, err := entries.Create(user.ID, c.foodID, dec(c.grams), &at); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	out, err := svc.Range(user.ID, day, day)
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(out.TopFoods) != 2 {
		t.Fatalf("top foods = %d, want 2", len(out.TopFoods))
	}
	if out.TopFoods[0].FoodName != "Egg" {
		t.Errorf("top food = %q, want Egg", out.TopFoods[0].FoodName)
	}
	wantDecimal(t, out.TopFoods[0].TotalCalories, 310, "egg calories")
	if out.TopFoods[1].EntryCount != 2 {
		t.Errorf("rice entry count = %d, want 2", out.TopFoods[1].EntryCount)
	}
}

func TestMetricsRangeTopFoodsTiesKeepFirstSeenOrder(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	first := seedFood(t, db, nil, "First", 100, 0, 0, 0)
	second := seedFood(t, db, nil, "Second", 100, 0, 0, 0)
	entries := NewEntryService(db)
	svc := NewMetricsService(db)

	day := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	at2 := day.Add(time.Hour)
	if _, err := entries.Create(user.ID, first.ID, dec(100), &day); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := entries.Create(user.ID, second.ID, dec(100), &at2); err != nil {
		t.Fatalf("Create: %v", err)
	}

	out, err := svc.Range(user.ID, day, day)
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if out.TopFoods[0].FoodName != "First" || out.TopFoods[1].FoodName != "Second" {
		t.Errorf("tie order = %q, %q; want First, Second", out.TopFoods[0].FoodName, out.TopFoods[1].FoodName)
	}
}

func TestMetricsScopedToUser(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	food := seedFood(t, db, nil, "Rice", 100, 2, 20, 1)
	entries := NewEntryService(db)
	svc := NewMetricsService(db)

	day := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	if _, err := entries.Create(alice.ID, food.ID, dec(100), &day); err != nil {
		t.Fatalf("Create: %v", err)
	}

	daily, err := svc.Daily(bob.ID, day)
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	wantDecimal(t, daily.TotalCalories, 0, "bob's calories")
}
