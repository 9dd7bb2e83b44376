package engine_test

import (
	"testing"
	"time"

	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// NIGHT WINDOW VECTORS
// =============================================================================

func TestCalculateNightHours_Vectors(t *testing.T) {
	cases := []struct {
		start, end string
		want       float64
	}{
		{"22:00", "02:00", 4}, // fully inside the window
		{"21:00", "23:00", 1}, // touches the 22:00 boundary
		{"05:00", "07:00", 1}, // touches the 06:00 boundary
		{"20:00", "08:00", 8}, // spans the whole window, capped at 8h
		{"22:00", "06:00", 8}, // boundary-exact
		{"02:00", "05:00", 3}, // early-morning tail of the window
		{"09:00", "18:00", 0}, // day shift
	}

	for _, c := range cases {
		got, err := engine.CalculateNightHours(c.start, c.end)
		if err != nil {
			t.Fatalf("CalculateNightHours(%s, %s): %v", c.start, c.end, err)
		}
		if got != c.want {
			t.Errorf("CalculateNightHours(%s, %s) = %v, want %v", c.start, c.end, got, c.want)
		}
	}
}

func TestCalculateNightHours_DayShiftsHaveNone(t *testing.T) {
	// Property: any shift fully inside [06:00, 22:00) has zero night hours.
	shifts := [][2]string{
		{"06:00", "14:00"}, {"08:30", "17:30"}, {"12:00", "21:59"}, {"06:00", "22:00"},
	}
	for _, s := range shifts {
		got, err := engine.CalculateNightHours(s[0], s[1])
		if err != nil {
			t.Fatalf("CalculateNightHours(%s, %s): %v", s[0], s[1], err)
		}
		if got != 0 {
			t.Errorf("day shift %s-%s should have 0 night hours, got %v", s[0], s[1], got)
		}
	}
}

func TestCalculateNightHours_NeverExceedsWorkHours(t *testing.T) {
	shifts := [][2]string{
		{"22:00", "02:00"}, {"21:00", "23:00"}, {"20:00", "08:00"},
		{"23:30", "00:15"}, {"05:45", "06:15"}, {"18:00", "09:00"},
	}
	for _, s := range shifts {
		night, err := engine.CalculateNightHours(s[0], s[1])
		if err != nil {
			t.Fatal(err)
		}
		work, err := engine.CalculateWorkHours(s[0], s[1], 0)
		if err != nil {
			t.Fatal(err)
		}
		if night < 0 || night > work {
			t.Errorf("shift %s-%s: night %v outside [0, %v]", s[0], s[1], night, work)
		}
	}
}

// =============================================================================
// BREAK ADJUSTMENT
// =============================================================================

func nightShiftDay(breaks ...engine.BreakInterval) engine.AttendanceDay {
	return engine.AttendanceDay{
		Date:   time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Shifts: []engine.ShiftInterval{{StartTime: "21:00", EndTime: "03:00"}},
		Breaks: breaks,
	}
}

func TestNightHours_BreakInsideWindowSubtracted(t *testing.T) {
	// GIVEN: a 21:00-03:00 shift (5h of night) with a 23:00-24:00 break
	// THEN: the 1h overlap is subtracted, leaving 4h of night
	day := nightShiftDay(engine.BreakInterval{Start: "23:00", End: "24:00"})

	night, err := day.NightHours()
	if err != nil {
		t.Fatal(err)
	}
	if night != 4 {
		t.Errorf("night hours = %v, want 4", night)
	}
}

func TestNightHours_BreakOutsideWindowIgnored(t *testing.T) {
	// A 20:00-21:00 break has no overlap with 22:00-06:00; night stays 5h.
	day := nightShiftDay(engine.BreakInterval{Start: "20:00", End: "21:00"})

	night, err := day.NightHours()
	if err != nil {
		t.Fatal(err)
	}
	if night != 5 {
		t.Errorf("night hours = %v, want 5", night)
	}
}

func TestNightHours_BreakAfterMidnightNormalized(t *testing.T) {
	// A 01:00-02:00 break sits past midnight on the shift's timeline and is
	// fully inside the night window.
	day := nightShiftDay(engine.BreakInterval{Start: "01:00", End: "02:00"})

	night, err := day.NightHours()
	if err != nil {
		t.Fatal(err)
	}
	if night != 4 {
		t.Errorf("night hours = %v, want 4", night)
	}
}

func TestNightHours_NeverNegative(t *testing.T) {
	// Breaks covering more than the whole night portion floor at zero.
	day := engine.AttendanceDay{
		Date:   time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC),
		Shifts: []engine.ShiftInterval{{StartTime: "21:30", EndTime: "23:00"}},
		Breaks: []engine.BreakInterval{{Start: "21:30", End: "23:00"}},
	}

	night, err := day.NightHours()
	if err != nil {
		t.Fatal(err)
	}
	if night != 0 {
		t.Errorf("night hours = %v, want 0", night)
	}
}
