/*
Package payslip renders a payroll snapshot into a printable PDF payslip.

PURPOSE:
  Employees receive a monthly payslip itemizing gross pay, allowances,
  statutory deductions, and net pay. This package turns a stored payroll
  record into that document.

LAYOUT:
  - Header: period and snapshot status
  - Employee block: name, ID, hire date
  - Earnings table: base pay and each allowance actually paid
  - Deductions table: each statutory deduction actually withheld
  - Footer: net pay and advisory warnings, if any

NOTE:
  Amounts are whole KRW and rendered with thousands separators. Hours are
  shown alongside the allowance rows they produced.

SEE ALSO:
  - store/store.go: PayrollRecord, the input
  - api/handlers.go: the download endpoint
*/
package payslip

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/warp/payroll-engine/store"
)

const (
	labelWidth  = 95.0
	valueWidth  = 95.0
	rowHeight   = 8.0
	titleHeight = 12.0
)

// Render produces the PDF payslip for one payroll snapshot.
func Render(emp store.Employee, rec store.PayrollRecord) ([]byte, error) {
	res := rec.Result

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, titleHeight, fmt.Sprintf("Payslip  %s", rec.Period), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Status: %s", rec.Status), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Employee block
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, rowHeight, "Employee", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	infoRow(pdf, "Name", emp.Name)
	infoRow(pdf, "Employee ID", emp.ID)
	if !emp.HireDate.IsZero() {
		infoRow(pdf, "Hire Date", emp.HireDate.Format("2006-01-02"))
	}
	infoRow(pdf, "Total Work Hours", trimHours(res.TotalWorkHours))
	pdf.Ln(4)

	// Earnings
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, rowHeight, "Earnings", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	amountRow(pdf, "Base Pay", res.BasePay)
	if res.OvertimePay > 0 {
		amountRow(pdf, fmt.Sprintf("Overtime (%s h)", trimHours(res.OvertimeHours)), res.OvertimePay)
	}
	if res.NightPay > 0 {
		amountRow(pdf, fmt.Sprintf("Night Differential (%s h)", trimHours(res.NightHours)), res.NightPay)
	}
	if res.HolidayPay > 0 {
		amountRow(pdf, fmt.Sprintf("Holiday Work (%s h)", trimHours(res.HolidayHours)), res.HolidayPay)
	}
	if res.WeeklyHolidayPay > 0 {
		amountRow(pdf, "Weekly Holiday Allowance", res.WeeklyHolidayPay)
	}
	if res.IncentivePay > 0 {
		amountRow(pdf, "Incentive", res.IncentivePay)
	}
	if res.SeverancePay > 0 {
		amountRow(pdf, "Severance", res.SeverancePay)
	}
	pdf.SetFont("Arial", "B", 10)
	amountRow(pdf, "Gross Pay", res.TotalPay)
	pdf.Ln(4)

	// Deductions
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, rowHeight, "Deductions", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if res.NationalPension > 0 {
		amountRow(pdf, "National Pension", res.NationalPension)
	}
	if res.HealthInsurance > 0 {
		amountRow(pdf, "Health Insurance", res.HealthInsurance)
	}
	if res.LongTermCare > 0 {
		amountRow(pdf, "Long-Term Care", res.LongTermCare)
	}
	if res.EmploymentInsurance > 0 {
		amountRow(pdf, "Employment Insurance", res.EmploymentInsurance)
	}
	if res.IncomeTax > 0 {
		amountRow(pdf, "Income Tax", res.IncomeTax)
	}
	pdf.SetFont("Arial", "B", 10)
	amountRow(pdf, "Total Deductions", res.TotalDeductions)
	pdf.Ln(4)

	// Net pay
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(labelWidth, 10, "Net Pay", "T", 0, "L", true, 0, "")
	pdf.CellFormat(valueWidth, 10, formatKRW(res.NetPay), "T", 1, "R", true, 0, "")

	if len(res.Warnings) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(0, 6, "Notices", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		for _, w := range res.Warnings {
			pdf.CellFormat(0, 5, fmt.Sprintf("- %s on %s (%s h)",
				w.Code, w.Date.Format("2006-01-02"), trimHours(w.Hours)), "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func infoRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(labelWidth, rowHeight, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(valueWidth, rowHeight, value, "", 1, "R", false, 0, "")
}

func amountRow(pdf *gofpdf.Fpdf, label string, amount int64) {
	pdf.CellFormat(labelWidth, rowHeight, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(valueWidth, rowHeight, formatKRW(amount), "", 1, "R", false, 0, "")
}

// formatKRW renders whole KRW with thousands separators, e.g. "1,234,567 KRW".
func formatKRW(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out) + " KRW"
	}
	return string(out) + " KRW"
}

func trimHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
