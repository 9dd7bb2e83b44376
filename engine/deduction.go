/*
deduction.go - Statutory deductions from gross pay

PURPOSE:
  Applies the social-insurance and withholding rates, each independently
  gated by a contract insurance flag.

RATES (employee share, percent of gross):
  National pension       4.5%
  Health insurance       3.545%
  Long-term care         0.459%  (rides on health insurance, never alone)
  Employment insurance   0.9%
  Income tax             3.3%    (only with full four-insurance enrollment)

  Income tax here is a flat withholding gated on Has4Insurance, not a
  progressive bracket table. That is the business rule, preserved as-is.

ROUNDING:
  Each deduction is rounded to whole KRW exactly once, from the gross.
*/
package engine

import "github.com/shopspring/decimal"

var (
	rateNationalPension     = decimal.NewFromFloat(0.045)
	rateHealthInsurance     = decimal.NewFromFloat(0.03545)
	rateLongTermCare        = decimal.NewFromFloat(0.00459)
	rateEmploymentInsurance = decimal.NewFromFloat(0.009)
	rateIncomeTax           = decimal.NewFromFloat(0.033)
)

// Deductions is the itemized employee-side deduction set for one period.
type Deductions struct {
	NationalPension     int64
	HealthInsurance     int64
	LongTermCare        int64
	EmploymentInsurance int64
	IncomeTax           int64
	Total               int64
}

// CalculateDeductions applies the enabled statutory deductions to gross pay.
// Returns a NegativeNetPayError when the total would exceed gross; that is
// reported rather than clamped, since it signals inconsistent contract data.
func CalculateDeductions(gross int64, flags InsuranceFlags) (Deductions, error) {
	g := decimal.NewFromInt(gross)
	var d Deductions

	if flags.HasPension {
		d.NationalPension = roundWon(g.Mul(rateNationalPension))
	}
	if flags.HasHealthInsurance {
		d.HealthInsurance = roundWon(g.Mul(rateHealthInsurance))
		// Long-term care is a rider on health insurance, not independently
		// selectable.
		d.LongTermCare = roundWon(g.Mul(rateLongTermCare))
	}
	if flags.HasEmploymentInsurance {
		d.EmploymentInsurance = roundWon(g.Mul(rateEmploymentInsurance))
	}
	if flags.Has4Insurance {
		d.IncomeTax = roundWon(g.Mul(rateIncomeTax))
	}

	d.Total = d.NationalPension + d.HealthInsurance + d.LongTermCare +
		d.EmploymentInsurance + d.IncomeTax

	if d.Total > gross {
		return Deductions{}, &NegativeNetPayError{Gross: gross, Deductions: d.Total}
	}
	return d, nil
}
