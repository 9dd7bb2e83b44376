/*
handlers.go - HTTP API handlers for the payroll system

PURPOSE:
  Exposes the payroll engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees                  List all employees
    POST   /api/employees                  Create employee
    GET    /api/employees/{id}             Get employee details
    PUT    /api/employees/{id}/contract    Set pay terms
    GET    /api/employees/{id}/contract    Get pay terms
    POST   /api/employees/{id}/attendance  Upload attendance days
    GET    /api/employees/{id}/attendance  List attendance for a period

  Payroll:
    POST   /api/employees/{id}/payroll/{period}/calculate  Calculate one employee
    GET    /api/employees/{id}/payroll/{period}            Get snapshot
    POST   /api/payroll/run                Batch run for a period
    GET    /api/payroll                    List snapshots for a period
    POST   /api/payroll/{id}/confirm       draft -> confirmed
    POST   /api/payroll/{id}/pay           confirmed -> paid
    GET    /api/payroll/{id}/payslip       Download PDF payslip

  Scenarios:
    GET    /api/scenarios                  List demo scenarios
    POST   /api/scenarios/load             Load a demo scenario
    POST   /api/scenarios/reset            Reset database

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (engine, store)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (finalized snapshot)
  - 422: Attendance data the engine rejects
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payslip"
	"github.com/warp/payroll-engine/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     store.Store
	Contracts *factory.ContractFactory

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(st store.Store) *Handler {
	return &Handler{
		Store:     st,
		Contracts: factory.NewContractFactory(),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hire_date format (use YYYY-MM-DD)", err)
		return
	}

	emp := store.Employee{
		ID:       req.ID,
		Name:     req.Name,
		Email:    req.Email,
		HireDate: hireDate,
	}
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// =============================================================================
// CONTRACT HANDLERS
// =============================================================================

// SetContract sets an employee's pay terms.
func (h *Handler) SetContract(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	var req SetContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	terms, err := h.Contracts.FromJSON(req.Contract)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid contract", err)
		return
	}

	if _, err := h.Store.GetEmployee(r.Context(), employeeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}

	rec := store.ContractRecord{EmployeeID: employeeID, Terms: terms}
	if err := h.Store.SaveContract(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save contract", err)
		return
	}

	writeJSON(w, http.StatusOK, ContractDTO{
		EmployeeID: employeeID,
		Contract:   h.Contracts.ToJSON(terms),
	})
}

// GetContract returns an employee's pay terms.
func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	rec, err := h.Store.GetContract(r.Context(), employeeID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Contract not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get contract", err)
		return
	}

	writeJSON(w, http.StatusOK, ContractDTO{
		EmployeeID: employeeID,
		Contract:   h.Contracts.ToJSON(rec.Terms),
		UpdatedAt:  rec.UpdatedAt.Format(time.RFC3339),
	})
}

// =============================================================================
// ATTENDANCE HANDLERS
// =============================================================================

// UploadAttendance adds or replaces attendance days for an employee.
func (h *Handler) UploadAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	var req UploadAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Days) == 0 {
		writeError(w, http.StatusBadRequest, "At least one day is required", nil)
		return
	}

	days := make([]engine.AttendanceDay, 0, len(req.Days))
	for _, d := range req.Days {
		day, err := toAttendanceDay(d)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
		days = append(days, day)
	}

	if err := h.Store.SaveAttendanceDays(r.Context(), employeeID, days); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save attendance", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status": "saved",
		"days":   len(days),
	})
}

// GetAttendance returns an employee's attendance for a period.
func (h *Handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	period, err := engine.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or missing period (use YYYY-MM)", err)
		return
	}

	days, err := h.Store.ListAttendance(r.Context(), employeeID, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list attendance", err)
		return
	}

	dtos := make([]AttendanceDayDTO, len(days))
	for i, d := range days {
		dtos[i] = toAttendanceDayDTO(d)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// CalculatePayroll runs the salary calculation for one employee and period,
// storing the result as a draft snapshot.
func (h *Handler) CalculatePayroll(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	period, err := engine.ParsePeriod(chi.URLParam(r, "period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period (use YYYY-MM)", err)
		return
	}

	// Body is optional: incentive and severance history, when available.
	var req CalculateRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	rec, err := h.calculateAndStore(r.Context(), employeeID, period, req)
	if err != nil {
		writeCalculationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPayrollDTO(*rec))
}

// calculateAndStore loads the employee's contract and attendance, runs the
// engine, and saves a draft snapshot. Shared by the single-employee endpoint,
// the batch run, and the scheduler.
func (h *Handler) calculateAndStore(ctx context.Context, employeeID string, period engine.Period, req CalculateRequest) (*store.PayrollRecord, error) {
	contract, err := h.Store.GetContract(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	days, err := h.Store.ListAttendance(ctx, employeeID, period)
	if err != nil {
		return nil, err
	}

	input := engine.CalculationInput{
		EmployeeID: employeeID,
		Period:     period,
		Days:       days,
		Contract:   contract.Terms,
		Incentive:  req.Incentive,
	}
	if req.Severance != nil {
		input.Severance = &engine.SeveranceInput{
			RecentThreeMonthsPay:  req.Severance.RecentThreeMonthsPay,
			RecentThreeMonthsDays: req.Severance.RecentThreeMonthsDays,
		}
	}

	result, err := engine.Calculate(input)
	if err != nil {
		return nil, err
	}

	rec := store.PayrollRecord{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Period:     period.String(),
		Result:     *result,
		Status:     store.StatusDraft,
	}
	if err := h.Store.SavePayroll(ctx, rec); err != nil {
		return nil, err
	}

	// Re-read so the caller sees the stored record (an existing draft keeps
	// its original ID on recalculation).
	return h.Store.GetPayroll(ctx, employeeID, period)
}

// GetPayroll returns the stored snapshot for one employee and period.
func (h *Handler) GetPayroll(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	period, err := engine.ParsePeriod(chi.URLParam(r, "period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period (use YYYY-MM)", err)
		return
	}

	rec, err := h.Store.GetPayroll(r.Context(), employeeID, period)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Payroll record not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get payroll record", err)
		return
	}
	writeJSON(w, http.StatusOK, toPayrollDTO(*rec))
}

// RunBatch calculates payroll for every employee for the given period.
// Failures are isolated per employee; the run always completes.
func (h *Handler) RunBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	period, err := engine.ParsePeriod(req.Period)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period (use YYYY-MM)", err)
		return
	}

	ctx := r.Context()
	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	out := BatchRunResultDTO{Period: period.String(), Succeeded: []PayrollDTO{}, Failed: []BatchErrorDTO{}}
	for _, emp := range employees {
		rec, err := h.calculateAndStore(ctx, emp.ID, period, CalculateRequest{})
		switch {
		case err == nil:
			out.Succeeded = append(out.Succeeded, toPayrollDTO(*rec))
		case errors.Is(err, store.ErrFinalized):
			out.Skipped = append(out.Skipped, emp.ID)
		default:
			out.Failed = append(out.Failed, BatchErrorDTO{EmployeeID: emp.ID, Error: err.Error()})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// ListPayrolls returns all snapshots for a period.
func (h *Handler) ListPayrolls(w http.ResponseWriter, r *http.Request) {
	period, err := engine.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or missing period (use YYYY-MM)", err)
		return
	}

	records, err := h.Store.ListPayrolls(r.Context(), period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payroll records", err)
		return
	}

	dtos := make([]PayrollDTO, len(records))
	for i, rec := range records {
		dtos[i] = toPayrollDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ConfirmPayroll advances a draft snapshot to confirmed.
func (h *Handler) ConfirmPayroll(w http.ResponseWriter, r *http.Request) {
	h.advancePayroll(w, r, store.StatusConfirmed)
}

// MarkPayrollPaid advances a confirmed snapshot to paid.
func (h *Handler) MarkPayrollPaid(w http.ResponseWriter, r *http.Request) {
	h.advancePayroll(w, r, store.StatusPaid)
}

func (h *Handler) advancePayroll(w http.ResponseWriter, r *http.Request, status store.PayrollStatus) {
	id := chi.URLParam(r, "id")

	err := h.Store.UpdatePayrollStatus(r.Context(), id, status, time.Now())
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Payroll record not found", nil)
		return
	}
	if errors.Is(err, store.ErrFinalized) {
		writeError(w, http.StatusConflict, "Invalid status transition", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update status", err)
		return
	}

	rec, err := h.Store.GetPayrollByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get payroll record", err)
		return
	}
	writeJSON(w, http.StatusOK, toPayrollDTO(*rec))
}

// GetPayslip renders and downloads the PDF payslip for a snapshot.
func (h *Handler) GetPayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.GetPayrollByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Payroll record not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get payroll record", err)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), rec.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}

	pdf, err := payslip.Render(*emp, *rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render payslip", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		`attachment; filename="payslip-`+rec.EmployeeID+`-`+rec.Period+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeCalculationError maps engine and store errors from a calculation to
// HTTP statuses.
func writeCalculationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Employee has no contract on file", err)
	case errors.Is(err, store.ErrFinalized):
		writeError(w, http.StatusConflict, "Payroll for this period is finalized", err)
	case errors.Is(err, engine.ErrNoAttendance):
		writeError(w, http.StatusBadRequest, "No attendance recorded for this period", err)
	case engine.IsValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, "Attendance data is invalid", err)
	default:
		writeError(w, http.StatusInternalServerError, "Calculation failed", err)
	}
}
