/*
Package engine implements the payroll calculation core.

PURPOSE:
  This package turns a month of attendance records and a contract's pay terms
  into a gross/net salary breakdown under Korean labor law: overtime, night
  differential, holiday pay, weekly holiday allowance (주휴수당), social
  insurance deductions, income tax withholding, and severance pay.

KEY CONCEPTS IN THIS FILE (types.go):
  - ShiftInterval / BreakInterval: wall-clock "HH:MM" work and rest spans
  - AttendanceDay: one employee's worked intervals for one calendar day
  - ContractTerms: the pay configuration that gates every allowance/deduction
  - SalaryCalculationResult: the itemized, immutable output record

DESIGN PRINCIPLES:
  1. Purity: the engine never mutates inputs and holds no state; identical
     inputs always produce an identical result
  2. Precision: every money multiplication goes through decimal.Decimal and
     is rounded to whole KRW exactly once, never accumulated
  3. Gating: hours worked in a category and pay owed for it are distinct -
     pay is zero unless the contract enables the allowance

USAGE:
  result, err := engine.Calculate(engine.CalculationInput{
      EmployeeID: "emp-1",
      Period:     engine.Period{Year: 2025, Month: time.March},
      Days:       days,
      Contract:   contract,
  })

SEE ALSO:
  - clock.go: "HH:MM" parsing and interval arithmetic
  - night.go: 22:00-06:00 night window overlap
  - engine.go: Calculate entry point and result assembly
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Whole-KRW amounts computed through decimal arithmetic
// =============================================================================

// roundWon converts a decimal money amount to whole KRW. This is the single
// rounding point for every pay component; callers must not round again.
func roundWon(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func wonFromHours(wage int64, rate decimal.Decimal, hours float64) int64 {
	return roundWon(decimal.NewFromInt(wage).Mul(rate).Mul(decimal.NewFromFloat(hours)))
}

// =============================================================================
// ATTENDANCE - Raw worked intervals for a calendar day
// =============================================================================

// ShiftInterval is a single continuous work interval in wall-clock time.
// EndTime may be numerically earlier than StartTime, which signals a midnight
// crossing (duration = end - start + 24h).
type ShiftInterval struct {
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM", "24:00" accepted as end-of-day
}

// BreakInterval is an unpaid rest span, always fully contained within the
// owning shift's wall-clock span after midnight normalization. Minutes, when
// set, overrides the start/end difference (some sources only record totals).
type BreakInterval struct {
	Start   string `json:"start,omitempty"` // "HH:MM"
	End     string `json:"end,omitempty"`   // "HH:MM"
	Minutes int    `json:"minutes,omitempty"`
}

// AttendanceDay aggregates one employee's shifts and breaks for one day.
type AttendanceDay struct {
	Date       time.Time       `json:"date"`
	Shifts     []ShiftInterval `json:"shifts"`
	Breaks     []BreakInterval `json:"breaks,omitempty"`
	IsHoliday  bool            `json:"isHoliday,omitempty"`  // statutory holiday worked
	HasAbsence bool            `json:"hasAbsence,omitempty"` // voids the week's 주휴수당
}

// =============================================================================
// CONTRACT TERMS - Per-employee pay configuration
// =============================================================================

type SalaryType string

const (
	SalaryHourly  SalaryType = "hourly"
	SalaryMonthly SalaryType = "monthly"
)

// AllowanceFlags control whether a differential is paid. Hours in a category
// can be nonzero while its pay is zero, when the contract does not enable it.
type AllowanceFlags struct {
	Overtime bool `json:"overtime"`
	Night    bool `json:"night"`
	Holiday  bool `json:"holiday"`
}

// InsuranceFlags control statutory deductions. Has4Insurance means full
// four-insurance enrollment and additionally gates income tax withholding.
type InsuranceFlags struct {
	HasPension            bool `json:"hasPension"`
	HasHealthInsurance    bool `json:"hasHealthInsurance"`
	HasEmploymentInsurance bool `json:"hasEmploymentInsurance"`
	Has4Insurance         bool `json:"has4Insurance"`
}

// ContractTerms is the pay configuration valid for the calculated month.
type ContractTerms struct {
	SalaryType    SalaryType `json:"salaryType"`
	HourlyWage    int64      `json:"hourlyWage"`    // KRW; also used for differentials on monthly contracts
	MonthlySalary int64      `json:"monthlySalary"` // KRW, for SalaryMonthly

	// ContractedDays is the number of working days the monthly salary covers.
	// Monthly base pay is prorated by worked-vs-contracted days.
	ContractedDays int `json:"contractedDays,omitempty"`

	Allowances AllowanceFlags `json:"allowances"`
	Insurances InsuranceFlags `json:"insurances"`

	WeeklyHolidayEligible bool      `json:"isWeeklyHolidayEligible"`
	SeverancePay          bool      `json:"severancePay"`
	TenureStart           time.Time `json:"tenureStart"`
}

// SeveranceInput carries the wage history the severance formula needs:
// average daily wage over the final three months before the period end.
type SeveranceInput struct {
	RecentThreeMonthsPay  int64 `json:"recentThreeMonthsPay"`
	RecentThreeMonthsDays int   `json:"recentThreeMonthsDays,omitempty"` // defaults to 91
}

// =============================================================================
// CALCULATION INPUT - One employee, one calendar month
// =============================================================================

type CalculationInput struct {
	EmployeeID string
	Period     Period
	Days       []AttendanceDay
	Contract   ContractTerms
	Incentive  int64           // special-shift bonus, passed through verbatim
	Severance  *SeveranceInput // nil when no wage history is available
}

// =============================================================================
// RESULT - Itemized gross/net breakdown
// =============================================================================

// ContractInfo echoes the eligibility flags the calculation actually used.
type ContractInfo struct {
	SalaryType            SalaryType     `json:"salaryType"`
	HourlyWage            int64          `json:"hourlyWage"`
	Allowances            AllowanceFlags `json:"allowances"`
	Insurances            InsuranceFlags `json:"insurances"`
	WeeklyHolidayEligible bool           `json:"isWeeklyHolidayEligible"`
	SeveranceEnabled      bool           `json:"severancePay"`
}

// SalaryCalculationResult is the final breakdown. All monetary fields are
// non-negative whole KRW. TotalPay = BasePay + enabled allowances;
// NetPay = TotalPay - TotalDeductions.
type SalaryCalculationResult struct {
	EmployeeID string `json:"employeeId"`
	Period     string `json:"period"` // "YYYY-MM"

	TotalWorkHours float64 `json:"totalWorkHours"`

	BasePay          int64   `json:"basePay"`
	OvertimeHours    float64 `json:"overtimeHours"`
	OvertimePay      int64   `json:"overtimePay"`
	NightHours       float64 `json:"nightHours"`
	NightPay         int64   `json:"nightPay"`
	HolidayHours     float64 `json:"holidayHours"`
	HolidayPay       int64   `json:"holidayPay"`
	WeeklyHolidayPay int64   `json:"weeklyHolidayPay"`
	IncentivePay     int64   `json:"incentivePay"`
	SeverancePay     int64   `json:"severancePay"`
	TotalPay         int64   `json:"totalPay"`

	NationalPension     int64 `json:"nationalPension"`
	HealthInsurance     int64 `json:"healthInsurance"`
	LongTermCare        int64 `json:"longTermCare"`
	EmploymentInsurance int64 `json:"employmentInsurance"`
	IncomeTax           int64 `json:"incomeTax"`
	TotalDeductions     int64 `json:"totalDeductions"`
	NetPay              int64 `json:"netPay"`

	ContractInfo ContractInfo `json:"contractInfo"`
	Warnings     []Warning    `json:"warnings,omitempty"`
}

// =============================================================================
// WARNINGS - Advisory legal-limit breaches (never hard errors)
// =============================================================================

type WarningCode string

const (
	// WarnDailyLimit: a single day exceeded the 12h basic+overtime cap.
	WarnDailyLimit WarningCode = "daily_limit_exceeded"

	// WarnWeeklyLimit: a week exceeded the 52h basic+overtime cap.
	WarnWeeklyLimit WarningCode = "weekly_limit_exceeded"
)

// Warning reports a statutory-limit breach. The engine still completes the
// calculation; enforcement is the caller's concern.
type Warning struct {
	Code  WarningCode `json:"code"`
	Date  time.Time   `json:"date"` // the day, or the Monday of the week
	Hours float64     `json:"hours"`
}
