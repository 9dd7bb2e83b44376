/*
breaks.go - Break-time adjustment

PURPOSE:
  Breaks are unpaid and count toward no differential. Their total minutes are
  subtracted from worked hours (clock.go), and the portion of each break that
  falls inside the night window is subtracted from night hours (night.go).

NORMALIZATION:
  A break is recorded in wall-clock time and is always fully contained within
  its owning shift's span. To place it on the shift's 0-2880 timeline, a break
  that starts before the shift's start-of-day-1 clock time is shifted by +1440
  (it happened after midnight), and a break whose end wraps past midnight gets
  +1440 on the end.
*/
package engine

// DurationMinutes returns the break length. An explicit Minutes value wins;
// otherwise it is derived from the start/end clock times.
func (b BreakInterval) DurationMinutes() int {
	if b.Minutes > 0 {
		return b.Minutes
	}
	start, err := TimeToMinutes(b.Start)
	if err != nil {
		return 0
	}
	end, err := TimeToMinutes(b.End)
	if err != nil {
		return 0
	}
	return DurationMinutes(start, end)
}

// minutesOn places the break on the timeline of a shift spanning
// [shiftStart, shiftEnd). Returns ok=false when the break has no usable
// clock times or does not fall inside the shift span.
func (b BreakInterval) minutesOn(shiftStart, shiftEnd int) (startMin, endMin int, ok bool) {
	if b.Start == "" || b.End == "" {
		return 0, 0, false
	}
	startMin, err := TimeToMinutes(b.Start)
	if err != nil {
		return 0, 0, false
	}
	endMin, err = TimeToMinutes(b.End)
	if err != nil {
		return 0, 0, false
	}
	if endMin < startMin {
		endMin += minutesPerDay
	}
	if startMin < shiftStart {
		// Clock time before the shift's start means the break happened on
		// the far side of midnight.
		startMin += minutesPerDay
		endMin += minutesPerDay
	}
	if startMin < shiftStart || endMin > shiftEnd {
		return 0, 0, false
	}
	return startMin, endMin, true
}

// nightOverlapMinutes returns how many minutes of the break fall inside the
// night window, on the owning shift's timeline.
func (b BreakInterval) nightOverlapMinutes(shiftStart, shiftEnd int) int {
	startMin, endMin, ok := b.minutesOn(shiftStart, shiftEnd)
	if !ok {
		return 0
	}
	return nightWindowOverlap(startMin, endMin)
}
