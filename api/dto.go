/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Employee:
    EmployeeDTO, CreateEmployeeRequest

  Contract:
    ContractDTO (wraps factory.ContractJSON)

  Attendance:
    AttendanceDayDTO, UploadAttendanceRequest

  Payroll:
    PayrollDTO, CalculateRequest, BatchRunResultDTO

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/contract.go: ContractJSON type
*/
package api

import (
	"time"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/store"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	HireDate  string `json:"hire_date"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	HireDate string `json:"hire_date"`
}

// ContractDTO represents an employee's pay terms.
type ContractDTO struct {
	EmployeeID string               `json:"employee_id"`
	Contract   factory.ContractJSON `json:"contract"`
	UpdatedAt  string               `json:"updated_at,omitempty"`
}

// SetContractRequest is the request to set an employee's pay terms.
type SetContractRequest struct {
	Contract factory.ContractJSON `json:"contract"`
}

// ShiftDTO is a single work interval in wall-clock time.
type ShiftDTO struct {
	StartTime string `json:"start_time"` // "HH:MM"
	EndTime   string `json:"end_time"`   // "HH:MM", may be earlier (midnight crossing)
}

// BreakDTO is an unpaid rest span within a shift.
type BreakDTO struct {
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	Minutes int    `json:"minutes,omitempty"`
}

// AttendanceDayDTO is one day of worked intervals.
type AttendanceDayDTO struct {
	Date       string     `json:"date"` // "YYYY-MM-DD"
	Shifts     []ShiftDTO `json:"shifts"`
	Breaks     []BreakDTO `json:"breaks,omitempty"`
	IsHoliday  bool       `json:"is_holiday,omitempty"`
	HasAbsence bool       `json:"has_absence,omitempty"`
}

// UploadAttendanceRequest replaces or adds attendance days for an employee.
type UploadAttendanceRequest struct {
	Days []AttendanceDayDTO `json:"days"`
}

// CalculateRequest carries the optional extras a calculation may need.
type CalculateRequest struct {
	Incentive int64              `json:"incentive,omitempty"`
	Severance *SeveranceInputDTO `json:"severance,omitempty"`
}

// SeveranceInputDTO is the wage history for the severance formula.
type SeveranceInputDTO struct {
	RecentThreeMonthsPay  int64 `json:"recent_three_months_pay"`
	RecentThreeMonthsDays int   `json:"recent_three_months_days,omitempty"`
}

// PayrollDTO represents a stored payroll snapshot.
type PayrollDTO struct {
	ID          string                         `json:"id"`
	EmployeeID  string                         `json:"employee_id"`
	Period      string                         `json:"period"`
	Status      string                         `json:"status"`
	Result      engine.SalaryCalculationResult `json:"result"`
	CreatedAt   string                         `json:"created_at"`
	ConfirmedAt string                         `json:"confirmed_at,omitempty"`
	PaidAt      string                         `json:"paid_at,omitempty"`
}

// BatchRunRequest triggers a payroll run across all employees.
type BatchRunRequest struct {
	Period string `json:"period"` // "YYYY-MM"
}

// BatchRunResultDTO is the outcome of a batch run: successes are stored as
// draft snapshots, failures are reported per employee without stopping the run.
type BatchRunResultDTO struct {
	Period    string          `json:"period"`
	Succeeded []PayrollDTO    `json:"succeeded"`
	Failed    []BatchErrorDTO `json:"failed"`
	Skipped   []string        `json:"skipped,omitempty"` // employees with a finalized snapshot
}

// BatchErrorDTO reports one employee's failure in a batch run.
type BatchErrorDTO struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(e store.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		HireDate:  e.HireDate.Format("2006-01-02"),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

func toPayrollDTO(rec store.PayrollRecord) PayrollDTO {
	dto := PayrollDTO{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		Period:     rec.Period,
		Status:     string(rec.Status),
		Result:     rec.Result,
		CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
	}
	if rec.ConfirmedAt != nil {
		dto.ConfirmedAt = rec.ConfirmedAt.Format(time.RFC3339)
	}
	if rec.PaidAt != nil {
		dto.PaidAt = rec.PaidAt.Format(time.RFC3339)
	}
	return dto
}

func toAttendanceDay(dto AttendanceDayDTO) (engine.AttendanceDay, error) {
	date, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		return engine.AttendanceDay{}, err
	}
	day := engine.AttendanceDay{
		Date:       date,
		IsHoliday:  dto.IsHoliday,
		HasAbsence: dto.HasAbsence,
	}
	for _, s := range dto.Shifts {
		day.Shifts = append(day.Shifts, engine.ShiftInterval{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	for _, b := range dto.Breaks {
		day.Breaks = append(day.Breaks, engine.BreakInterval{
			Start:   b.Start,
			End:     b.End,
			Minutes: b.Minutes,
		})
	}
	return day, nil
}

func toAttendanceDayDTO(day engine.AttendanceDay) AttendanceDayDTO {
	dto := AttendanceDayDTO{
		Date:       day.Date.Format("2006-01-02"),
		IsHoliday:  day.IsHoliday,
		HasAbsence: day.HasAbsence,
	}
	for _, s := range day.Shifts {
		dto.Shifts = append(dto.Shifts, ShiftDTO{StartTime: s.StartTime, EndTime: s.EndTime})
	}
	for _, b := range day.Breaks {
		dto.Breaks = append(dto.Breaks, BreakDTO{Start: b.Start, End: b.End, Minutes: b.Minutes})
	}
	return dto
}
