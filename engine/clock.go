/*
clock.go - Wall-clock parsing and interval arithmetic

PURPOSE:
  Parses "HH:MM" strings into minute offsets and computes shift durations
  that may cross midnight. Also provides the one shared interval-overlap
  primitive reused by the night-window and break-overlap calculations.

TIMELINE MODEL:
  Everything is minutes since 00:00 of the shift's first day, on a 0-2880
  (two day) timeline. A shift whose end is numerically before (or equal to)
  its start gets +1440 on the end, absorbing the midnight crossing. "24:00"
  parses to 1440 and serves as an end-of-day sentinel.

SEE ALSO:
  - night.go: night-window bands on the same timeline
  - breaks.go: break normalization onto a shift's timeline
*/
package engine

import (
	"strconv"
	"strings"
)

const (
	minutesPerDay  = 1440
	minutesPerHour = 60
)

// =============================================================================
// PARSING
// =============================================================================

// TimeToMinutes parses "HH:MM" into minutes since midnight.
// Hours 0-24 are valid ("24:00" only, as an end-of-day sentinel), minutes 0-59.
func TimeToMinutes(hhmm string) (int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, &InvalidTimeError{Value: hhmm}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &InvalidTimeError{Value: hhmm}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &InvalidTimeError{Value: hhmm}
	}
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 {
		return 0, &InvalidTimeError{Value: hhmm}
	}
	if hour == 24 && minute != 0 {
		return 0, &InvalidTimeError{Value: hhmm}
	}
	return hour*minutesPerHour + minute, nil
}

// DurationMinutes returns end - start in minutes, adding a day when the
// difference is negative (midnight crossing). A zero difference stays zero;
// shift-level validation decides whether that is legal (it is not).
func DurationMinutes(startMin, endMin int) int {
	d := endMin - startMin
	if d < 0 {
		d += minutesPerDay
	}
	return d
}

// intervalOverlapMinutes returns the overlap of [aStart, aEnd) and
// [bStart, bEnd) in minutes, never negative. Both the night-window and the
// break-overlap calculations reduce to this primitive.
func intervalOverlapMinutes(aStart, aEnd, bStart, bEnd int) int {
	start := aStart
	if bStart > start {
		start = bStart
	}
	end := aEnd
	if bEnd < end {
		end = bEnd
	}
	if end <= start {
		return 0
	}
	return end - start
}

// =============================================================================
// SHIFT NORMALIZATION
// =============================================================================

// Minutes returns the shift as [start, end) on the 0-2880 timeline, with the
// end pushed past midnight when it is not after the start. A zero-length
// shift fails with ErrEmptyShift.
func (s ShiftInterval) Minutes() (startMin, endMin int, err error) {
	startMin, err = TimeToMinutes(s.StartTime)
	if err != nil {
		return 0, 0, err
	}
	endMin, err = TimeToMinutes(s.EndTime)
	if err != nil {
		return 0, 0, err
	}
	if endMin == startMin {
		return 0, 0, ErrEmptyShift
	}
	if endMin < startMin {
		endMin += minutesPerDay
	}
	return startMin, endMin, nil
}

// DurationMinutes returns the shift length in minutes, before breaks.
func (s ShiftInterval) DurationMinutes() (int, error) {
	startMin, endMin, err := s.Minutes()
	if err != nil {
		return 0, err
	}
	return endMin - startMin, nil
}

// =============================================================================
// WORK HOURS
// =============================================================================

// CalculateWorkHours returns paid hours for a shift after subtracting the
// caller-supplied unpaid break minutes. Never negative.
func CalculateWorkHours(start, end string, breakMinutes int) (float64, error) {
	d, err := ShiftInterval{StartTime: start, EndTime: end}.DurationMinutes()
	if err != nil {
		return 0, err
	}
	d -= breakMinutes
	if d < 0 {
		d = 0
	}
	return float64(d) / minutesPerHour, nil
}

// WorkHours returns the day's paid hours: all shift durations minus all
// unpaid break minutes.
func (d AttendanceDay) WorkHours() (float64, error) {
	total := 0
	for _, s := range d.Shifts {
		dur, err := s.DurationMinutes()
		if err != nil {
			return 0, err
		}
		total += dur
	}
	for _, b := range d.Breaks {
		total -= b.DurationMinutes()
	}
	if total < 0 {
		total = 0
	}
	return float64(total) / minutesPerHour, nil
}
