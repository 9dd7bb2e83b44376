/*
engine.go - Calculation entry point and result assembly

PURPOSE:
  Orchestrates the full pipeline for one employee and one calendar month:

    time arithmetic -> night hours -> break adjustment -> weekly buckets
      -> overtime reconciliation + 주휴수당 -> pay composition -> deductions
      -> assembled SalaryCalculationResult

PURITY:
  Calculate is a pure function: no I/O, no shared state, inputs never
  mutated. It may be called concurrently for different employees without
  coordination, and identical inputs always yield an identical result.

PARTIAL FAILURE:
  CalculateBatch isolates failures per employee: one malformed attendance
  record stops only that employee's calculation, never the whole run.
*/
package engine

import (
	"sort"
	"time"
)

// =============================================================================
// PER-DAY RESOLUTION
// =============================================================================

// resolvedDay is one attendance day after interval arithmetic.
type resolvedDay struct {
	Date       time.Time
	WorkHours  float64
	NightHours float64
	IsHoliday  bool
	HasAbsence bool
}

func resolveDay(day AttendanceDay) (resolvedDay, error) {
	hours, err := day.WorkHours()
	if err != nil {
		return resolvedDay{}, &AttendanceError{Date: day.Date, Err: err}
	}
	night, err := day.NightHours()
	if err != nil {
		return resolvedDay{}, &AttendanceError{Date: day.Date, Err: err}
	}
	return resolvedDay{
		Date:       day.Date,
		WorkHours:  hours,
		NightHours: night,
		IsHoliday:  day.IsHoliday,
		HasAbsence: day.HasAbsence,
	}, nil
}

// =============================================================================
// CALCULATE - One employee, one month
// =============================================================================

// Calculate runs the full salary calculation for one employee and period.
func Calculate(input CalculationInput) (*SalaryCalculationResult, error) {
	if len(input.Days) == 0 {
		return nil, ErrNoAttendance
	}

	days := make([]resolvedDay, 0, len(input.Days))
	for _, d := range input.Days {
		rd, err := resolveDay(d)
		if err != nil {
			return nil, err
		}
		days = append(days, rd)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	var totals payTotals
	var warnings []Warning

	// Bucket days into Monday-keyed calendar weeks.
	weekDays := make(map[time.Time][]resolvedDay)
	var weekKeys []time.Time
	for _, d := range days {
		totals.WorkHours += d.WorkHours
		totals.NightHours += d.NightHours
		if d.IsHoliday {
			totals.HolidayHours += d.WorkHours
		}
		if d.WorkHours > 0 {
			totals.WorkedDays++
		}
		if d.WorkHours > legalDailyLimit {
			warnings = append(warnings, Warning{Code: WarnDailyLimit, Date: d.Date, Hours: d.WorkHours})
		}

		key := WeekStart(d.Date)
		if _, seen := weekDays[key]; !seen {
			weekKeys = append(weekKeys, key)
		}
		weekDays[key] = append(weekDays[key], d)
	}
	sort.Slice(weekKeys, func(i, j int) bool { return weekKeys[i].Before(weekKeys[j]) })

	// Weekly rules: overtime reconciliation and 주휴수당, per week, summed.
	for _, key := range weekKeys {
		var dailyHours []float64
		var weekTotal float64
		hasAbsence := false
		for _, d := range weekDays[key] {
			dailyHours = append(dailyHours, d.WorkHours)
			weekTotal += d.WorkHours
			if d.HasAbsence {
				hasAbsence = true
			}
		}
		totals.OvertimeHours += ResolveWeekOvertime(dailyHours)
		totals.WeeklyHolidayHrs += WeeklyHolidayHours(weekTotal, hasAbsence)
		if weekTotal > legalWeeklyLimit {
			warnings = append(warnings, Warning{Code: WarnWeeklyLimit, Date: key, Hours: weekTotal})
		}
	}

	result := &SalaryCalculationResult{
		EmployeeID:     input.EmployeeID,
		Period:         input.Period.String(),
		TotalWorkHours: totals.WorkHours,
		OvertimeHours:  totals.OvertimeHours,
		NightHours:     totals.NightHours,
		HolidayHours:   totals.HolidayHours,
		IncentivePay:   input.Incentive,
		Warnings:       warnings,
		ContractInfo: ContractInfo{
			SalaryType:            input.Contract.SalaryType,
			HourlyWage:            input.Contract.HourlyWage,
			Allowances:            input.Contract.Allowances,
			Insurances:            input.Contract.Insurances,
			WeeklyHolidayEligible: input.Contract.WeeklyHolidayEligible,
			SeveranceEnabled:      input.Contract.SeverancePay,
		},
	}

	result.BasePay = composeBasePay(input.Contract, totals)
	composeAllowances(input.Contract, totals, result)

	avgWeeklyHours := totals.WorkHours / (float64(input.Period.Days()) / 7.0)
	result.SeverancePay = composeSeverance(input.Contract, input.Period, avgWeeklyHours, input.Severance)

	result.TotalPay = result.BasePay + result.OvertimePay + result.NightPay +
		result.HolidayPay + result.WeeklyHolidayPay + result.IncentivePay +
		result.SeverancePay

	deductions, err := CalculateDeductions(result.TotalPay, input.Contract.Insurances)
	if err != nil {
		return nil, err
	}
	result.NationalPension = deductions.NationalPension
	result.HealthInsurance = deductions.HealthInsurance
	result.LongTermCare = deductions.LongTermCare
	result.EmploymentInsurance = deductions.EmploymentInsurance
	result.IncomeTax = deductions.IncomeTax
	result.TotalDeductions = deductions.Total
	result.NetPay = result.TotalPay - result.TotalDeductions

	return result, nil
}

// =============================================================================
// BATCH - Many employees, partial-failure semantics
// =============================================================================

// BatchItem is the outcome of one employee's calculation in a batch run.
type BatchItem struct {
	EmployeeID string
	Result     *SalaryCalculationResult
	Err        error
}

// CalculateBatch runs Calculate for each input, isolating failures per
// employee: a malformed record fails that item and processing continues.
func CalculateBatch(inputs []CalculationInput) []BatchItem {
	items := make([]BatchItem, len(inputs))
	for i, in := range inputs {
		result, err := Calculate(in)
		items[i] = BatchItem{EmployeeID: in.EmployeeID, Result: result, Err: err}
	}
	return items
}
