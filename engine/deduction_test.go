package engine_test

import (
	"testing"

	"github.com/warp/payroll-engine/engine"
)

func allInsurances() engine.InsuranceFlags {
	return engine.InsuranceFlags{
		HasPension:             true,
		HasHealthInsurance:     true,
		HasEmploymentInsurance: true,
		Has4Insurance:          true,
	}
}

func TestCalculateDeductions_AllEnabled(t *testing.T) {
	// GIVEN: 2,000,000 KRW gross with full four-insurance enrollment
	d, err := engine.CalculateDeductions(2_000_000, allInsurances())
	if err != nil {
		t.Fatal(err)
	}

	if d.NationalPension != 90_000 {
		t.Errorf("pension = %d, want 90000 (4.5%%)", d.NationalPension)
	}
	if d.HealthInsurance != 70_900 {
		t.Errorf("health = %d, want 70900 (3.545%%)", d.HealthInsurance)
	}
	if d.LongTermCare != 9_180 {
		t.Errorf("long-term care = %d, want 9180 (0.459%%)", d.LongTermCare)
	}
	if d.EmploymentInsurance != 18_000 {
		t.Errorf("employment = %d, want 18000 (0.9%%)", d.EmploymentInsurance)
	}
	if d.IncomeTax != 66_000 {
		t.Errorf("income tax = %d, want 66000 (3.3%%)", d.IncomeTax)
	}
	if d.Total != 254_080 {
		t.Errorf("total = %d, want 254080", d.Total)
	}
}

func TestCalculateDeductions_EachFlagGatesExactlyOneField(t *testing.T) {
	base, err := engine.CalculateDeductions(2_000_000, allInsurances())
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		mutate func(*engine.InsuranceFlags)
		check  func(engine.Deductions) bool
	}{
		{"pension off", func(f *engine.InsuranceFlags) { f.HasPension = false },
			func(d engine.Deductions) bool {
				return d.NationalPension == 0 &&
					d.HealthInsurance == base.HealthInsurance &&
					d.LongTermCare == base.LongTermCare &&
					d.EmploymentInsurance == base.EmploymentInsurance &&
					d.IncomeTax == base.IncomeTax
			}},
		{"employment off", func(f *engine.InsuranceFlags) { f.HasEmploymentInsurance = false },
			func(d engine.Deductions) bool {
				return d.EmploymentInsurance == 0 &&
					d.NationalPension == base.NationalPension &&
					d.HealthInsurance == base.HealthInsurance &&
					d.LongTermCare == base.LongTermCare &&
					d.IncomeTax == base.IncomeTax
			}},
		{"four-insurance off gates only income tax", func(f *engine.InsuranceFlags) { f.Has4Insurance = false },
			func(d engine.Deductions) bool {
				return d.IncomeTax == 0 &&
					d.NationalPension == base.NationalPension &&
					d.HealthInsurance == base.HealthInsurance
			}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			flags := allInsurances()
			c.mutate(&flags)
			d, err := engine.CalculateDeductions(2_000_000, flags)
			if err != nil {
				t.Fatal(err)
			}
			if !c.check(d) {
				t.Errorf("toggling should zero exactly one field, got %+v", d)
			}
			want := d.NationalPension + d.HealthInsurance + d.LongTermCare +
				d.EmploymentInsurance + d.IncomeTax
			if d.Total != want {
				t.Errorf("total %d inconsistent with items %d", d.Total, want)
			}
		})
	}
}

func TestCalculateDeductions_LongTermCareRidesOnHealth(t *testing.T) {
	// Long-term care is never applied without health insurance, even with
	// every other flag set.
	flags := allInsurances()
	flags.HasHealthInsurance = false

	d, err := engine.CalculateDeductions(2_000_000, flags)
	if err != nil {
		t.Fatal(err)
	}
	if d.HealthInsurance != 0 || d.LongTermCare != 0 {
		t.Errorf("health off must zero both health (%d) and long-term care (%d)",
			d.HealthInsurance, d.LongTermCare)
	}
}

func TestCalculateDeductions_NothingEnabled(t *testing.T) {
	d, err := engine.CalculateDeductions(2_000_000, engine.InsuranceFlags{})
	if err != nil {
		t.Fatal(err)
	}
	if d.Total != 0 {
		t.Errorf("no flags should deduct nothing, got %d", d.Total)
	}
}
