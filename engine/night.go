/*
night.go - Night-hours calculation (22:00-06:00 window)

PURPOSE:
  Computes the portion of a shift that intersects the statutory night window,
  which pays a +50% premium on top of base pay.

ALGORITHM:
  Shifts live on a 0-2880 minute two-day timeline (clock.go). On that
  timeline the night window appears as three bands:

    [   0,  360)   00:00-06:00 of day 1 (tail of the previous night)
    [1320, 1800)   22:00 day 1 - 06:00 day 2
    [2760, 3240)   22:00 day 2 onward, for shifts that run that late

  Night minutes are the summed overlap of the shift interval with these
  bands, via the shared intervalOverlapMinutes primitive. Break minutes that
  fall inside a band are subtracted (breaks.go), floored at zero.

GUARANTEES:
  - A shift fully inside [06:00, 22:00) has zero night hours.
  - Night hours never exceed the shift duration, nor 8h per night window
    traversed (the window itself is 8h long).
*/
package engine

// nightBands on the 0-2880 timeline, in minutes. The third band is wider
// than the timeline can reach; the overlap primitive clips it for free.
var nightBands = [...][2]int{
	{0, 6 * minutesPerHour},
	{22 * minutesPerHour, 30 * minutesPerHour},
	{46 * minutesPerHour, 54 * minutesPerHour},
}

// nightWindowOverlap returns how many minutes of [startMin, endMin) fall
// inside the night window.
func nightWindowOverlap(startMin, endMin int) int {
	total := 0
	for _, band := range nightBands {
		total += intervalOverlapMinutes(startMin, endMin, band[0], band[1])
	}
	return total
}

// CalculateNightHours returns the hours of a shift inside the night window,
// before any break adjustment.
func CalculateNightHours(start, end string) (float64, error) {
	startMin, endMin, err := ShiftInterval{StartTime: start, EndTime: end}.Minutes()
	if err != nil {
		return 0, err
	}
	return float64(nightWindowOverlap(startMin, endMin)) / minutesPerHour, nil
}

// NightHours returns the day's night hours after subtracting break minutes
// that overlap the night window. Each break is matched against the shift
// whose span contains it. Never negative.
func (d AttendanceDay) NightHours() (float64, error) {
	nightMinutes := 0
	spans := make([][2]int, len(d.Shifts))
	for i, s := range d.Shifts {
		startMin, endMin, err := s.Minutes()
		if err != nil {
			return 0, err
		}
		spans[i] = [2]int{startMin, endMin}
		nightMinutes += nightWindowOverlap(startMin, endMin)
	}

	for _, b := range d.Breaks {
		for _, span := range spans {
			overlap := b.nightOverlapMinutes(span[0], span[1])
			if overlap > 0 {
				nightMinutes -= overlap
				break
			}
		}
	}

	if nightMinutes < 0 {
		nightMinutes = 0
	}
	return float64(nightMinutes) / minutesPerHour, nil
}
