package analyzer

import (
	"testing"
	"time"
)

func TestTimeline(t *testing.T) {
	s := setupTestStore(t)
	defer s.Close()

	elec := addCategory(t, s, "Electricity", 0.5)
	today := time.Now()
	addActivity(t, s, elec, today.AddDate(0, 0, -1), 10) // 5.0
	addActivity(t, s, elec, today, 20)                   // 10.0

	a := New(s)
	timeline, err := a.Timeline(7)
	if err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}

	if len(timeline) != 2 {
		t.Fatalf("expected 2 days, got %d", len(timeline))
	}
	if !timeline[0].Date.Before(timeline[1].Date) {
		t.Error("timeline should be ordered oldest first")
	}
	if timeline[0].Emissions != 5.0 {
		t.Errorf("day 1 emissions = %v, want 5.0", timeline[0].Emissions)
	}
	if timeline[1].Emissions != 10.0 {
		t.Errorf("day 2 emissions = %v, want 10.0", timeline[1].Emissions)
	}
}

func TestTimeline_Empty(t *testing.T) {
	s := setupTestStore(t)
	defer s.Close()

	a := New(s)
	timeline, err := a.Timeline(30)
	if err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}
	if len(timeline) != 0 {
		t.Errorf("expected empty timeline, got %d days", len(timeline))
	}
}

func TestTimeline_InvalidDays(t *testing.T) {
	s := setupTestStore(t)
	defer s.Close()

	a := New(s)
	if _, err := a.Timeline(0); err == nil {
		t.Error("Timeline(0) should fail")
	}
	if _, err := a.Timeline(-5); err == nil {
		t.Error("Timeline(-5) should fail")
	}
}

func TestTopActivities(t *testing.T) {
	s := setupTestStore(t)
	defer s.Close()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	elec := addCategory(t, s, "Electricity", 0.5)
	gas := addCategory(t, s, "Natural Gas", 0.25)
	addActivity(t, s, elec, day, 40)                   // total 20.0
	addActivity(t, s, gas, day, 20)                    // total 5.0
	addActivity(t, s, gas, day.AddDate(0, 0, 1), 20)   // total 10.0

	a := New(s)
	usages, err := a.TopActivities(5)
	if err != nil {
		t.Fatalf("TopActivities failed: %v", err)
	}

	if len(usages) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(usages))
	}
	if usages[0].CategoryName != "Electricity" {
		t.Errorf("top category = %s, want Electricity", usages[0].CategoryName)
	}
	if usages[0].TotalEmissions != 20.0 {
		t.Errorf("TotalEmissions = %v, want 20.0", usages[0].TotalEmissions)
	}
	if usages[1].Frequency != 2 {
		t.Errorf("Natural Gas frequency = %d, want 2", usages[1].Frequency)
	}
}

func TestTopActivities_LimitApplied(t *testing.T) {
	s := setupTestStore(t)
	defer s.Close()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"A", "B", "C", "D"} {
		id := addCategory(t, s, name, 1.0)
		addActivity(t, s, id, day, float64(10*(i+1)))
	}

	a := New(s)
	usages, err := a.TopActivities(2)
	if err != nil {
		t.Fatalf("TopActivities failed: %v", err)
	}
	if len(usages) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(usages))
	}
	if usages[0].CategoryName != "D" || usages[1].CategoryName != "C" {
		t.Errorf("unexpected order: [%s, %s]", usages[0].CategoryName, usages[1].CategoryName)
	}
}
