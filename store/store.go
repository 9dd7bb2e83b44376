/*
Package store defines the persistence interfaces for the payroll system.

PURPOSE:
  The engine itself is pure and storage-free: it consumes plain records and
  returns a result object. This package defines the records the plumbing
  layers persist (employees, contracts, attendance, calculated payroll
  snapshots) and the interface a backend must implement.

SNAPSHOT LIFECYCLE:
  A calculation produces a fresh result each time. The store keeps one
  snapshot per employee+period with a status:

    draft -> confirmed -> paid

  Recalculating over a confirmed or paid snapshot is rejected; the stored
  figures are what was (or will be) actually paid out.

SEE ALSO:
  - store/sqlite: the SQLite implementation
  - engine: the types stored inside the records
*/
package store

import (
	"context"
	"errors"
	"time"

	"github.com/warp/payroll-engine/engine"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrFinalized is returned when mutating a confirmed or paid payroll
	// snapshot, or confirming/paying out of order.
	ErrFinalized = errors.New("payroll record is finalized")
)

// =============================================================================
// RECORDS
// =============================================================================

// Employee is an entity payroll is calculated for.
type Employee struct {
	ID        string
	Name      string
	Email     string
	HireDate  time.Time
	CreatedAt time.Time
}

// ContractRecord is the pay configuration currently valid for an employee.
type ContractRecord struct {
	EmployeeID string
	Terms      engine.ContractTerms
	UpdatedAt  time.Time
}

// PayrollStatus is the lifecycle state of a stored calculation snapshot.
type PayrollStatus string

const (
	StatusDraft     PayrollStatus = "draft"
	StatusConfirmed PayrollStatus = "confirmed"
	StatusPaid      PayrollStatus = "paid"
)

// PayrollRecord is a persisted snapshot of one calculation result.
type PayrollRecord struct {
	ID          string
	EmployeeID  string
	Period      string // "YYYY-MM"
	Result      engine.SalaryCalculationResult
	Status      PayrollStatus
	CreatedAt   time.Time
	ConfirmedAt *time.Time
	PaidAt      *time.Time
}

// Finalized reports whether the snapshot may no longer be recalculated.
func (r PayrollRecord) Finalized() bool {
	return r.Status == StatusConfirmed || r.Status == StatusPaid
}

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store is the persistence boundary for the payroll plumbing. The engine
// never sees it; only the API layer and scheduler do.
type Store interface {
	// Employees
	SaveEmployee(ctx context.Context, emp Employee) error
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)

	// Contracts
	SaveContract(ctx context.Context, rec ContractRecord) error
	GetContract(ctx context.Context, employeeID string) (*ContractRecord, error)

	// Attendance - day-granular, keyed by employee and date
	SaveAttendanceDays(ctx context.Context, employeeID string, days []engine.AttendanceDay) error
	ListAttendance(ctx context.Context, employeeID string, period engine.Period) ([]engine.AttendanceDay, error)

	// Payroll snapshots
	SavePayroll(ctx context.Context, rec PayrollRecord) error
	GetPayroll(ctx context.Context, employeeID string, period engine.Period) (*PayrollRecord, error)
	GetPayrollByID(ctx context.Context, id string) (*PayrollRecord, error)
	ListPayrolls(ctx context.Context, period engine.Period) ([]PayrollRecord, error)
	UpdatePayrollStatus(ctx context.Context, id string, status PayrollStatus, at time.Time) error

	// Reset clears all data (dev/demo only).
	Reset(ctx context.Context) error
}
