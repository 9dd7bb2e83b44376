/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All engine error types in one place for consistency and discoverability.
  Callers should match with errors.Is / errors.As.

ERROR CATEGORIES:
  1. Input validation - malformed time strings, zero-length shifts. These stop
     the calculation for the offending record and identify it.
  2. Invariant violations - deductions exceeding gross pay. Reported, never
     silently clamped; they indicate inconsistent contract data upstream.

  Eligibility short-circuits (ineligible 주휴수당, ineligible severance) are
  NOT errors: they resolve to a zero amount and the calculation continues.
  Legal-limit breaches are Warning values on the result, not errors.

USAGE:
  if errors.Is(err, engine.ErrInvalidTimeFormat) { ... }

  var nn *engine.NegativeNetPayError
  if errors.As(err, &nn) { log.Printf("gross %d < deductions %d", ...) }

SEE ALSO:
  - clock.go: raises ErrInvalidTimeFormat / ErrEmptyShift
  - deduction.go: raises NegativeNetPayError
*/
package engine

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidTimeFormat is returned for wall-clock strings that are not
	// "HH:MM" with hour 0-24 and minute 0-59 ("24:00" only as end-of-day).
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrEmptyShift is returned for a zero-length work shift.
	ErrEmptyShift = errors.New("empty shift")

	// ErrNegativeNetPay is returned when deductions would exceed gross pay,
	// which indicates inconsistent contract data upstream.
	ErrNegativeNetPay = errors.New("deductions exceed gross pay")

	// ErrNoAttendance is returned when a calculation input has no days at all.
	ErrNoAttendance = errors.New("no attendance records in period")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the offending record
// =============================================================================

// InvalidTimeError identifies the malformed wall-clock value.
type InvalidTimeError struct {
	Value string
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid time format: %q (want HH:MM)", e.Value)
}

func (e *InvalidTimeError) Unwrap() error { return ErrInvalidTimeFormat }

// AttendanceError wraps a validation failure with the calendar day it
// occurred on, so batch callers can surface the offending record.
type AttendanceError struct {
	Date time.Time
	Err  error
}

func (e *AttendanceError) Error() string {
	return fmt.Sprintf("attendance %s: %v", e.Date.Format("2006-01-02"), e.Err)
}

func (e *AttendanceError) Unwrap() error { return e.Err }

// NegativeNetPayError reports the gross/deduction amounts that violated the
// non-negativity invariant.
type NegativeNetPayError struct {
	Gross      int64
	Deductions int64
}

func (e *NegativeNetPayError) Error() string {
	return fmt.Sprintf("deductions %d exceed gross pay %d", e.Deductions, e.Gross)
}

func (e *NegativeNetPayError) Unwrap() error { return ErrNegativeNetPay }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidationError returns true if the error is due to invalid input data
// (as opposed to an engine invariant violation).
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidTimeFormat) ||
		errors.Is(err, ErrEmptyShift) ||
		errors.Is(err, ErrNoAttendance)
}
