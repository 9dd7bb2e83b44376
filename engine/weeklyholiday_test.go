package engine_test

import (
	"testing"

	"github.com/warp/payroll-engine/engine"
)

func TestWeeklyHolidayHours(t *testing.T) {
	cases := []struct {
		name        string
		weeklyHours float64
		hasAbsence  bool
		want        float64
	}{
		{"20h week earns 4h", 20, false, 4},
		{"absence voids the whole week", 20, true, 0},
		{"below 15h threshold", 14, false, 0},
		{"exactly at threshold", 15, false, 3},
		{"capped at one 8h day", 50, false, 8},
		{"40h week earns a full day", 40, false, 8},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := engine.WeeklyHolidayHours(c.weeklyHours, c.hasAbsence)
			if got != c.want {
				t.Errorf("WeeklyHolidayHours(%v, %v) = %v, want %v",
					c.weeklyHours, c.hasAbsence, got, c.want)
			}
		})
	}
}
