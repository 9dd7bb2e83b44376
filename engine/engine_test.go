package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func march2025() engine.Period {
	return engine.Period{Year: 2025, Month: time.March}
}

func hourlyContract() engine.ContractTerms {
	return engine.ContractTerms{
		SalaryType: engine.SalaryHourly,
		HourlyWage: 10_000,
		Allowances: engine.AllowanceFlags{Overtime: true, Night: true, Holiday: true},
		Insurances: engine.InsuranceFlags{
			HasPension:             true,
			HasHealthInsurance:     true,
			HasEmploymentInsurance: true,
			Has4Insurance:          true,
		},
		WeeklyHolidayEligible: true,
	}
}

func workDay(day int, start, end string, breaks ...engine.BreakInterval) engine.AttendanceDay {
	return engine.AttendanceDay{
		Date:   time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC),
		Shifts: []engine.ShiftInterval{{StartTime: start, EndTime: end}},
		Breaks: breaks,
	}
}

func lunchBreak() engine.BreakInterval {
	return engine.BreakInterval{Start: "12:00", End: "13:00"}
}

// fiveTenHourDays is Mon Mar 3 - Fri Mar 7, 09:00-20:00 with a 1h lunch:
// five 10h days, a 50h week.
func fiveTenHourDays() []engine.AttendanceDay {
	var days []engine.AttendanceDay
	for d := 3; d <= 7; d++ {
		days = append(days, workDay(d, "09:00", "20:00", lunchBreak()))
	}
	return days
}

// fourFortyHourWeeks is four Mon-Fri weeks of 8h days: 160h, no overtime.
func fourFortyHourWeeks() []engine.AttendanceDay {
	var days []engine.AttendanceDay
	for _, monday := range []int{3, 10, 17, 24} {
		for d := monday; d < monday+5; d++ {
			days = append(days, workDay(d, "09:00", "18:00", lunchBreak()))
		}
	}
	return days
}

// =============================================================================
// FULL CALCULATION
// =============================================================================

func TestCalculate_HourlyWithOvertimeWeek(t *testing.T) {
	// GIVEN: 10,000 KRW/h, one 50h week (five 10h days), all flags enabled
	// THEN: base 500,000; overtime 10h at 1.5x; 주휴수당 capped at 8h;
	//       statutory deductions on the 730,000 gross
	result, err := engine.Calculate(engine.CalculationInput{
		EmployeeID: "emp-1",
		Period:     march2025(),
		Days:       fiveTenHourDays(),
		Contract:   hourlyContract(),
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, result.TotalWorkHours)
	assert.Equal(t, int64(500_000), result.BasePay)
	assert.Equal(t, 10.0, result.OvertimeHours)
	assert.Equal(t, int64(150_000), result.OvertimePay)
	assert.Equal(t, 0.0, result.NightHours)
	assert.Equal(t, int64(0), result.NightPay)
	assert.Equal(t, int64(80_000), result.WeeklyHolidayPay)
	assert.Equal(t, int64(730_000), result.TotalPay)

	assert.Equal(t, int64(32_850), result.NationalPension)
	assert.Equal(t, int64(25_879), result.HealthInsurance)
	assert.Equal(t, int64(3_351), result.LongTermCare)
	assert.Equal(t, int64(6_570), result.EmploymentInsurance)
	assert.Equal(t, int64(24_090), result.IncomeTax)
	assert.Equal(t, int64(92_740), result.TotalDeductions)
	assert.Equal(t, int64(637_260), result.NetPay)
	assert.Equal(t, result.TotalPay-result.TotalDeductions, result.NetPay)
}

func TestCalculate_Idempotent(t *testing.T) {
	input := engine.CalculationInput{
		EmployeeID: "emp-1",
		Period:     march2025(),
		Days:       fiveTenHourDays(),
		Contract:   hourlyContract(),
		Incentive:  50_000,
	}

	first, err := engine.Calculate(input)
	require.NoError(t, err)
	second, err := engine.Calculate(input)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must yield identical results")
}

func TestCalculate_AllowanceFlagGatesPayNotHours(t *testing.T) {
	// Overtime hours are reported either way; pay requires the contract flag.
	contract := hourlyContract()
	contract.Allowances.Overtime = false

	result, err := engine.Calculate(engine.CalculationInput{
		EmployeeID: "emp-1",
		Period:     march2025(),
		Days:       fiveTenHourDays(),
		Contract:   contract,
	})
	require.NoError(t, err)

	assert.Equal(t, 10.0, result.OvertimeHours)
	assert.Equal(t, int64(0), result.OvertimePay)
	assert.Equal(t, int64(580_000), result.TotalPay) // 500,000 base + 80,000 주휴수당
}

func TestCalculate_DeductionFlagRecomputesNet(t *testing.T) {
	contract := hourlyContract()
	contract.Insurances.HasEmploymentInsurance = false

	result, err := engine.Calculate(engine.CalculationInput{
		EmployeeID: "emp-1",
		Period:     march2025(),
		Days:       fiveTenHourDays(),
		Contract:   contract,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.EmploymentInsurance)
	assert.Equal(t, int64(32_850), result.NationalPension, "other deductions untouched")
	assert.Equal(t, result.TotalPay-result.TotalDeductions, result.NetPay)
}

func TestCalculate_NightShiftMonth(t *testing.T) {
	// Two 21:00-03:00 shifts (6h each, 5h night each), night premium at 0.5x.
	days := []engine.AttendanceDay{
		workDay(3, "21:00", "03:00"),
		workDay(4, "21:00", "03:00"),
	}

	result, err := engine.Calculate(engine.CalculationInput{
		EmployeeID: "emp-2",
		Period:     march2025(),
		Days:       days,
		Contract:   hourlyContract(),
	})
	require.NoError(t, err)

	assert.Equal(t, 12.0, result.TotalWorkHours)
	assert.Equal(t, 10.0, result.NightHours)
	assert.Equal(t, int64(50_000), result.NightPay) // 10,000 x 0.5 x 10h
	assert.Equal(t, int64(120_000), result.BasePay)
}

func TestCalculate_HolidayWork(t *testing.T) {
	days := fiveTenHourDays()
	holiday := workDay(8, "09:00", "17:00") // Saturday, statutory holiday, 8h
	holiday.IsHoliday = true
	days = append(days, holiday)

	result, err := engine.Calculate(engine.CalculationInput{
		EmployeeID: "emp-1",
		Period:     march2025(),
		Days:       days,
		Contract:   hourlyContract(),
	})
	require.NoError(t, err)

	assert.Equal(t, 8.0, result.HolidayHours)
	assert.Equal(t, int64(120_000), result.HolidayPay) // 10,000 x 1.5 x 8h
}

// =============================================================================
// MONTHLY SALARY PRORATION
// =============================================================================

func TestCalculate_MonthlyProratedByWorkedDays(t *testing.T) {
	// 2,100,000/month over 21 contracted days; only 10 days worked.
	contract := engine.ContractTerms{
		SalaryType:     engine.SalaryMonthly,
		MonthlySalary:  2_100_000,
		ContractedDays: 21,
		HourlyWage:     10_000,
	}

	var days []engine.AttendanceDay
	for _, monday := range []int{3, 10} {
		for d := monday; d < monday+5; d++ {
			days = append(days, workDay(d, "09:00", "18:00", lunchBreak()))
		}
	}

	result, err := engine.Calculate(engine.CalculationInput{
		EmployeeID: "emp-3",
		Period:     march2025(),
		Days:       days,
		Contract:   contract,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1_000_000), result.BasePay)
	assert.Equal(t, result.BasePay, result.TotalPay)
}

// =============================================================================
// SEVERANCE
// =============================================================================

func TestCalculate_SeveranceAfterTwoYears(t *testing.T) {
	// GIVEN: two full years of tenure (730 days as of Mar 31 2025), a 160h
	// month, and 4,500,000 KRW over the final 90 days
	// THEN: severance = 50,000 avg daily x 30 x 730/365 = 3,000,000
	contract := engine.ContractTerms{
		SalaryType:   engine.SalaryHourly,
		HourlyWage:   10_000,
		SeverancePay: true,
		TenureStart:  time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC),
	}

	result, err := engine.Calculate(engine.CalculationInput{
		EmployeeID: "emp-4",
		Period:     march2025(),
		Days:       fourFortyHourWeeks(),
		Contract:   contract,
		Severance:  &engine.SeveranceInput{RecentThreeMonthsPay: 4_500_000, RecentThreeMonthsDays: 90},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3_000_000), result.SeverancePay)
}

func TestCalculate_SeveranceIneligible(t *testing.T) {
	severance := &engine.SeveranceInput{RecentThreeMonthsPay: 4_500_000, RecentThreeMonthsDays: 90}

	t.Run("under one year of tenure", func(t *testing.T) {
		contract := hourlyContract()
		contract.SeverancePay = true
		contract.TenureStart = time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)

		result, err := engine.Calculate(engine.CalculationInput{
			EmployeeID: "emp-5", Period: march2025(),
			Days: fourFortyHourWeeks(), Contract: contract, Severance: severance,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.SeverancePay)
	})

	t.Run("contract flag off", func(t *testing.T) {
		contract := hourlyContract()
		contract.TenureStart = time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)

		result, err := engine.Calculate(engine.CalculationInput{
			EmployeeID: "emp-5", Period: march2025(),
			Days: fourFortyHourWeeks(), Contract: contract, Severance: severance,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.SeverancePay)
	})

	t.Run("below 15 average weekly hours", func(t *testing.T) {
		contract := hourlyContract()
		contract.SeverancePay = true
		contract.TenureStart = time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)

		result, err := engine.Calculate(engine.CalculationInput{
			EmployeeID: "emp-5", Period: march2025(),
			Days:     []engine.AttendanceDay{workDay(3, "09:00", "13:00")},
			Contract: contract, Severance: severance,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.SeverancePay)
	})
}

// =============================================================================
// WARNINGS - Legal limits are advisory
// =============================================================================

func TestCalculate_LegalLimitWarnings(t *testing.T) {
	// A 13h day and a 60h week both warn; the calculation still completes.
	var days []engine.AttendanceDay
	for d := 3; d <= 8; d++ { // Mon-Sat, 10h each = 60h
		days = append(days, workDay(d, "08:00", "19:00", lunchBreak()))
	}
	days[0] = workDay(3, "08:00", "21:00") // 13h, no break

	result, err := engine.Calculate(engine.CalculationInput{
		EmployeeID: "emp-6",
		Period:     march2025(),
		Days:       days,
		Contract:   hourlyContract(),
	})
	require.NoError(t, err, "limit breaches are advisory, not errors")

	var codes []engine.WarningCode
	for _, w := range result.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, engine.WarnDailyLimit)
	assert.Contains(t, codes, engine.WarnWeeklyLimit)
}

// =============================================================================
// VALIDATION AND BATCH ISOLATION
// =============================================================================

func TestCalculate_NoAttendance(t *testing.T) {
	_, err := engine.Calculate(engine.CalculationInput{
		EmployeeID: "emp-7",
		Period:     march2025(),
		Contract:   hourlyContract(),
	})
	assert.ErrorIs(t, err, engine.ErrNoAttendance)
}

func TestCalculate_MalformedTimeIdentifiesRecord(t *testing.T) {
	days := []engine.AttendanceDay{
		workDay(3, "09:00", "18:00"),
		workDay(4, "9am", "18:00"),
	}

	_, err := engine.Calculate(engine.CalculationInput{
		EmployeeID: "emp-8", Period: march2025(),
		Days: days, Contract: hourlyContract(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidTimeFormat)

	var ae *engine.AttendanceError
	require.ErrorAs(t, err, &ae, "error should identify the offending record")
	assert.Equal(t, 4, ae.Date.Day())
}

func TestCalculateBatch_IsolatesFailures(t *testing.T) {
	inputs := []engine.CalculationInput{
		{EmployeeID: "good", Period: march2025(), Days: fiveTenHourDays(), Contract: hourlyContract()},
		{EmployeeID: "bad", Period: march2025(),
			Days:     []engine.AttendanceDay{workDay(3, "oops", "18:00")},
			Contract: hourlyContract()},
		{EmployeeID: "also-good", Period: march2025(), Days: fiveTenHourDays(), Contract: hourlyContract()},
	}

	items := engine.CalculateBatch(inputs)
	require.Len(t, items, 3)

	assert.NoError(t, items[0].Err)
	assert.NotNil(t, items[0].Result)
	assert.True(t, errors.Is(items[1].Err, engine.ErrInvalidTimeFormat))
	assert.Nil(t, items[1].Result)
	assert.NoError(t, items[2].Err, "failure of one employee must not stop the run")
}
