/*
compose.go - Gross pay composition

PURPOSE:
  Assembles gross pay from base pay plus each differential, gated by the
  contract's allowance flags. Hours worked in a category and pay owed for it
  are distinct: the engine always reports the hours, but pays them only when
  the contract enables that allowance.

RATES:
  Overtime   1.5x hourly wage
  Night      0.5x hourly wage (the premium on top of base pay, which already
             counts those hours at 1.0x)
  Holiday    1.5x hourly wage

SEVERANCE:
  Paid only when the contract flag is set AND tenure >= 1 year AND average
  weekly hours >= 15. Standard formula: average daily wage over the final
  three months x 30 x (tenure days / 365).
*/
package engine

import "github.com/shopspring/decimal"

var (
	rateOvertime = decimal.NewFromFloat(1.5)
	rateNight    = decimal.NewFromFloat(0.5)
	rateHoliday  = decimal.NewFromFloat(1.5)
)

const (
	severanceMinTenureDays  = 365
	severanceMinWeeklyHours = 15.0
	defaultQuarterDays      = 91 // three months of calendar days
)

// payTotals carries the period's resolved hour totals into composition.
type payTotals struct {
	WorkHours        float64
	OvertimeHours    float64
	NightHours       float64
	HolidayHours     float64
	WeeklyHolidayHrs float64
	WorkedDays       int
}

// composeBasePay computes base pay: wage x hours for hourly contracts, the
// fixed monthly figure prorated by worked-vs-contracted days for monthly.
func composeBasePay(contract ContractTerms, totals payTotals) int64 {
	switch contract.SalaryType {
	case SalaryMonthly:
		contracted := contract.ContractedDays
		if contracted <= 0 {
			return contract.MonthlySalary
		}
		worked := totals.WorkedDays
		if worked > contracted {
			worked = contracted
		}
		return roundWon(decimal.NewFromInt(contract.MonthlySalary).
			Mul(decimal.NewFromInt(int64(worked))).
			Div(decimal.NewFromInt(int64(contracted))))
	default:
		return wonFromHours(contract.HourlyWage, decimal.NewFromInt(1), totals.WorkHours)
	}
}

// composeAllowances fills the allowance fields of the result, each gated by
// its contract flag.
func composeAllowances(contract ContractTerms, totals payTotals, result *SalaryCalculationResult) {
	if contract.Allowances.Overtime {
		result.OvertimePay = wonFromHours(contract.HourlyWage, rateOvertime, totals.OvertimeHours)
	}
	if contract.Allowances.Night {
		result.NightPay = wonFromHours(contract.HourlyWage, rateNight, totals.NightHours)
	}
	if contract.Allowances.Holiday {
		result.HolidayPay = wonFromHours(contract.HourlyWage, rateHoliday, totals.HolidayHours)
	}
	if contract.WeeklyHolidayEligible {
		result.WeeklyHolidayPay = wonFromHours(contract.HourlyWage, decimal.NewFromInt(1), totals.WeeklyHolidayHrs)
	}
}

// composeSeverance computes severance pay, or zero when any eligibility gate
// fails (an eligibility short-circuit, not an error).
func composeSeverance(contract ContractTerms, period Period, avgWeeklyHours float64, sev *SeveranceInput) int64 {
	if !contract.SeverancePay || sev == nil {
		return 0
	}
	tenure := TenureDays(contract.TenureStart, period.End())
	if tenure < severanceMinTenureDays || avgWeeklyHours < severanceMinWeeklyHours {
		return 0
	}

	days := sev.RecentThreeMonthsDays
	if days <= 0 {
		days = defaultQuarterDays
	}
	avgDailyWage := decimal.NewFromInt(sev.RecentThreeMonthsPay).
		Div(decimal.NewFromInt(int64(days)))
	return roundWon(avgDailyWage.
		Mul(decimal.NewFromInt(30)).
		Mul(decimal.NewFromInt(int64(tenure))).
		Div(decimal.NewFromInt(365)))
}
