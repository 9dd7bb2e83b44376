/*
period.go - Pay periods and calendar-week bucketing

PURPOSE:
  A payroll calculation always covers exactly one calendar month. The weekly
  rules (overtime reconciliation, 주휴수당 eligibility) operate on calendar
  weeks within that month, keyed by their Monday.
*/
package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// PERIOD - One calendar month
// =============================================================================

type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing the given date.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses "YYYY-MM".
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q (want YYYY-MM): %w", s, err)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

func (p Period) Days() int {
	return p.End().Day()
}

func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

// Previous returns the month before this one.
func (p Period) Previous() Period {
	t := p.Start().AddDate(0, -1, 0)
	return Period{Year: t.Year(), Month: t.Month()}
}

func (p Period) String() string {
	return p.Start().Format("2006-01")
}

// =============================================================================
// WEEKS - Monday-keyed calendar weeks
// =============================================================================

// WeekStart returns the Monday of the week containing t, truncated to a date.
func WeekStart(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) - int(time.Monday) + 7) % 7
	t = t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// TENURE
// =============================================================================

// TenureDays returns whole days of employment from start up to asOf.
func TenureDays(start, asOf time.Time) int {
	if start.IsZero() || asOf.Before(start) {
		return 0
	}
	return int(asOf.Sub(start).Hours() / 24)
}
