/*
overtime.go - Daily/weekly overtime reconciliation

PURPOSE:
  Korean labor law has two overtime rules: beyond 8 hours in a day, and
  beyond 40 hours in a week. Paying both for the same hours would double
  count, so per week the engine pays the LARGER of the two, never the sum.

EXAMPLES:
  One 12h day, nothing else that week:  daily 4, weekly 0  -> 4
  Five 10h days (50h week):             daily 10, weekly 10 -> 10 (not 20)
  Three 12h days (36h week):            daily 12, weekly 0  -> 12
*/
package engine

const (
	regularDailyHours  = 8.0
	regularWeeklyHours = 40.0

	// Statutory caps; breaches are advisory warnings, never hard errors.
	legalDailyLimit  = 12.0
	legalWeeklyLimit = 52.0
)

// ResolveWeekOvertime returns the payable overtime hours for one week of
// daily worked-hour totals, reconciling the daily and weekly rules under the
// no-double-counting policy.
func ResolveWeekOvertime(dailyHours []float64) float64 {
	var dailyOvertime, weekTotal float64
	for _, h := range dailyHours {
		if h > regularDailyHours {
			dailyOvertime += h - regularDailyHours
		}
		weekTotal += h
	}

	weeklyOvertime := 0.0
	if weekTotal > regularWeeklyHours {
		weeklyOvertime = weekTotal - regularWeeklyHours
	}

	if dailyOvertime > weeklyOvertime {
		return dailyOvertime
	}
	return weeklyOvertime
}
