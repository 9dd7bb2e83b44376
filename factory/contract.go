/*
Package factory provides JSON to Go contract conversion and presets.

PURPOSE:
  Converts JSON contract definitions into engine.ContractTerms. This enables
  contract configuration without code changes - store admins can define pay
  terms in JSON, and the factory creates the proper Go structs.

JSON SCHEMA:
  {
    "salary_type": "hourly",
    "hourly_wage": 10030,
    "allowances": {"overtime": true, "night": true, "holiday": false},
    "insurances": {"has_pension": true, "has_health_insurance": true,
                   "has_employment_insurance": true, "has_4_insurance": false},
    "weekly_holiday_eligible": true,
    "severance_pay": false,
    "tenure_start": "2024-03-01"
  }

PRESETS:
  PartTimeHourly:  hourly wage, overtime+night allowances, employment
                   insurance only (the common cafe/convenience arrangement)
  FullTimeMonthly: monthly salary, all allowances, full four-insurance
                   enrollment, severance

SEE ALSO:
  - engine/types.go: ContractTerms definition
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ContractJSON is the JSON representation of contract pay terms.
type ContractJSON struct {
	SalaryType     string          `json:"salary_type"`
	HourlyWage     int64           `json:"hourly_wage"`
	MonthlySalary  int64           `json:"monthly_salary,omitempty"`
	ContractedDays int             `json:"contracted_days,omitempty"`
	Allowances     AllowancesJSON  `json:"allowances"`
	Insurances     InsurancesJSON  `json:"insurances"`
	WeeklyHoliday  bool            `json:"weekly_holiday_eligible"`
	SeverancePay   bool            `json:"severance_pay"`
	TenureStart    string          `json:"tenure_start,omitempty"` // YYYY-MM-DD
}

type AllowancesJSON struct {
	Overtime bool `json:"overtime"`
	Night    bool `json:"night"`
	Holiday  bool `json:"holiday"`
}

type InsurancesJSON struct {
	HasPension             bool `json:"has_pension"`
	HasHealthInsurance     bool `json:"has_health_insurance"`
	HasEmploymentInsurance bool `json:"has_employment_insurance"`
	Has4Insurance          bool `json:"has_4_insurance"`
}

// =============================================================================
// CONTRACT FACTORY
// =============================================================================

// ContractFactory converts JSON contracts to engine.ContractTerms.
type ContractFactory struct{}

func NewContractFactory() *ContractFactory {
	return &ContractFactory{}
}

// ParseContract converts a JSON contract definition into ContractTerms.
func (f *ContractFactory) ParseContract(jsonStr string) (engine.ContractTerms, error) {
	var cj ContractJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return engine.ContractTerms{}, fmt.Errorf("invalid contract JSON: %w", err)
	}
	return f.FromJSON(cj)
}

// FromJSON converts an already-decoded ContractJSON.
func (f *ContractFactory) FromJSON(cj ContractJSON) (engine.ContractTerms, error) {
	terms := engine.ContractTerms{
		HourlyWage:     cj.HourlyWage,
		MonthlySalary:  cj.MonthlySalary,
		ContractedDays: cj.ContractedDays,
		Allowances: engine.AllowanceFlags{
			Overtime: cj.Allowances.Overtime,
			Night:    cj.Allowances.Night,
			Holiday:  cj.Allowances.Holiday,
		},
		Insurances: engine.InsuranceFlags{
			HasPension:             cj.Insurances.HasPension,
			HasHealthInsurance:     cj.Insurances.HasHealthInsurance,
			HasEmploymentInsurance: cj.Insurances.HasEmploymentInsurance,
			Has4Insurance:          cj.Insurances.Has4Insurance,
		},
		WeeklyHolidayEligible: cj.WeeklyHoliday,
		SeverancePay:          cj.SeverancePay,
	}

	switch cj.SalaryType {
	case "", string(engine.SalaryHourly):
		terms.SalaryType = engine.SalaryHourly
	case string(engine.SalaryMonthly):
		terms.SalaryType = engine.SalaryMonthly
		if terms.MonthlySalary <= 0 {
			return engine.ContractTerms{}, fmt.Errorf("monthly contract requires monthly_salary")
		}
	default:
		return engine.ContractTerms{}, fmt.Errorf("unknown salary_type %q", cj.SalaryType)
	}

	if cj.TenureStart != "" {
		start, err := time.Parse("2006-01-02", cj.TenureStart)
		if err != nil {
			return engine.ContractTerms{}, fmt.Errorf("invalid tenure_start %q: %w", cj.TenureStart, err)
		}
		terms.TenureStart = start
	}

	return terms, nil
}

// ToJSON converts ContractTerms back to its JSON representation.
func (f *ContractFactory) ToJSON(terms engine.ContractTerms) ContractJSON {
	cj := ContractJSON{
		SalaryType:     string(terms.SalaryType),
		HourlyWage:     terms.HourlyWage,
		MonthlySalary:  terms.MonthlySalary,
		ContractedDays: terms.ContractedDays,
		Allowances: AllowancesJSON{
			Overtime: terms.Allowances.Overtime,
			Night:    terms.Allowances.Night,
			Holiday:  terms.Allowances.Holiday,
		},
		Insurances: InsurancesJSON{
			HasPension:             terms.Insurances.HasPension,
			HasHealthInsurance:     terms.Insurances.HasHealthInsurance,
			HasEmploymentInsurance: terms.Insurances.HasEmploymentInsurance,
			Has4Insurance:          terms.Insurances.Has4Insurance,
		},
		WeeklyHoliday: terms.WeeklyHolidayEligible,
		SeverancePay:  terms.SeverancePay,
	}
	if !terms.TenureStart.IsZero() {
		cj.TenureStart = terms.TenureStart.Format("2006-01-02")
	}
	return cj
}

// =============================================================================
// PRESETS
// =============================================================================

// PartTimeHourly is the common part-time arrangement: hourly wage, overtime
// and night premiums, employment insurance only, 주휴수당 eligible.
func PartTimeHourly(hourlyWage int64, tenureStart time.Time) engine.ContractTerms {
	return engine.ContractTerms{
		SalaryType: engine.SalaryHourly,
		HourlyWage: hourlyWage,
		Allowances: engine.AllowanceFlags{Overtime: true, Night: true},
		Insurances: engine.InsuranceFlags{HasEmploymentInsurance: true},
		WeeklyHolidayEligible: true,
		TenureStart:           tenureStart,
	}
}

// FullTimeMonthly is the standard full-time arrangement: fixed monthly
// salary, every allowance, full four-insurance enrollment, severance.
func FullTimeMonthly(monthlySalary, hourlyWage int64, contractedDays int, tenureStart time.Time) engine.ContractTerms {
	return engine.ContractTerms{
		SalaryType:     engine.SalaryMonthly,
		MonthlySalary:  monthlySalary,
		HourlyWage:     hourlyWage,
		ContractedDays: contractedDays,
		Allowances:     engine.AllowanceFlags{Overtime: true, Night: true, Holiday: true},
		Insurances: engine.InsuranceFlags{
			HasPension:             true,
			HasHealthInsurance:     true,
			HasEmploymentInsurance: true,
			Has4Insurance:          true,
		},
		WeeklyHolidayEligible: true,
		SeverancePay:          true,
		TenureStart:           tenureStart,
	}
}
