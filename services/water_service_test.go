package services

import (
	"errors"
	"testing"
	"time"
)

func TestWaterLogAndSummary(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	svc := NewWaterService(db)

	day := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	if _, err := svc.Log(user.ID, 500, &day); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if _, err := svc.Log(user.ID, 250, &day); err != nil {
		t.Fatalf("Log: %v", err)
	}

	sum, err := svc.Summary(user.ID, day)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalMilliliters != 750 {
		t.Errorf("total = %d, want 750", sum.TotalMilliliters)
	}
	if sum.GoalMilliliters != 2000 {
		t.Errorf("goal = %d, want 2000", sum.GoalMilliliters)
	}
	if sum.PercentageOfGoal != 37.5 {
		t.Errorf("pct = %v, want 37.5", sum.PercentageOfGoal)
	}
	if len(sum.Entries) != 2 {
		t.Errorf("entries = %d, want 2", len(sum.Entries))
	}
}

func TestWaterLogRejectsNonPositive(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	svc := NewWaterService(db)

	if _, err := svc.Log(user.ID, 0, nil); !errors.Is(err, ErrInvalid) {
		t.Errorf("zero ml err = %v, want ErrInvalid", err)
	}
	if _, err := svc.Log(user.ID, -100, nil); !errors.Is(err, ErrInvalid) {
		t.Errorf("negative ml err = %v, want ErrInvalid", err)
	}
}

func TestWaterSummaryIsDayScoped(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	svc := NewWaterService(db)

	day := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	other := day.AddDate(0, 0, 1)
	if _, err := svc.Log(user.ID, 500, &day); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if _, err := svc.Log(user.ID, 300, &other); err != nil {
		t.Fatalf("Log: %v", err)
	}

	sum, err := svc.Summary(user.ID, day)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalMilliliters != 500 {
		t.Errorf("total = %d, want 500", sum.TotalMilliliters)
	}
}

func TestWaterSummaryUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewWaterService(db)

	if _, err := svc.Summary(9999, time.Now().UTC()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestWaterGetReturnsLoggedDay(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	svc := NewWaterService(db)

	when := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)
	entry, err := svc.Log(alice.ID, 500, &when)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := svc.Get(alice.ID, entry.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	wantDay := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Date.Equal(wantDay) {
		t.Errorf("date = %v, want %v", got.Date, wantDay)
	}
	if got.Milliliters != 500 {
		t.Errorf("milliliters = %d, want 500", got.Milliliters)
	}

	if _, err := svc.Get(bob.ID, entry.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign get err = %v, want ErrNotFound", err)
	}
}

func TestWaterDeleteIsOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	svc := NewWaterService(db)

	entry, err := svc.Log(alice.ID, 500, nil)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}

	if err := svc.Delete(bob.ID, entry.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign delete err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(alice.ID, entry.ID); err != nil {
		t.Errorf("owner delete err = %v", err)
	}
}
