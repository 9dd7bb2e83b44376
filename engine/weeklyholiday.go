/*
weeklyholiday.go - Weekly holiday allowance (주휴수당)

PURPOSE:
  Statutory paid weekly rest-day allowance. An employee who works at least
  15 hours in a week with no absence earns one paid rest day, prorated as
  one day per five worked days and capped at a full 8-hour day.

ELIGIBILITY:
  Both conditions are hard rules: a single absence anywhere in the week voids
  that entire week's allowance.
*/
package engine

const (
	weeklyHolidayMinHours = 15.0
	weeklyHolidayDivisor  = 5.0
	weeklyHolidayCapHours = 8.0
)

// WeeklyHolidayHours returns the paid allowance hours for one week:
// min(weeklyHours/5, 8) when eligible, zero otherwise.
func WeeklyHolidayHours(weeklyHours float64, hasAbsence bool) float64 {
	if hasAbsence || weeklyHours < weeklyHolidayMinHours {
		return 0
	}
	hours := weeklyHours / weeklyHolidayDivisor
	if hours > weeklyHolidayCapHours {
		hours = weeklyHolidayCapHours
	}
	return hours
}
