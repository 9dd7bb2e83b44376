/*
Package sqlite provides the SQLite-backed implementation of store.Store.

PURPOSE:
  Persists employees, contract terms, attendance days, and calculated payroll
  snapshots. In production the same patterns apply to PostgreSQL - only minor
  SQL dialect differences.

KEY TABLES:
  employees:        Entity records
  contracts:        Current pay terms per employee (JSON config column)
  attendance_days:  One row per employee per calendar day (JSON payload)
  payroll_records:  Calculation snapshots with draft/confirmed/paid status

SNAPSHOT ENFORCEMENT:
  - One snapshot per employee+period (unique index)
  - A confirmed or paid snapshot cannot be overwritten by recalculation
  - Status only moves forward: draft -> confirmed -> paid

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency.

USAGE:
  st, err := sqlite.New("./data/payroll.db")   // or ":memory:"
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

SEE ALSO:
  - store/store.go: Interface and record definitions
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/store"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ store.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		hire_date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS contracts (
		employee_id TEXT PRIMARY KEY,
		terms_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attendance_days (
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		day_json TEXT NOT NULL,
		PRIMARY KEY (employee_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_employee_date
		ON attendance_days(employee_id, date);

	CREATE TABLE IF NOT EXISTS payroll_records (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		period TEXT NOT NULL,
		result_json TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		confirmed_at TEXT,
		paid_at TEXT
	);

	-- One snapshot per employee per pay period
	CREATE UNIQUE INDEX IF NOT EXISTS idx_payroll_employee_period
		ON payroll_records(employee_id, period);

	CREATE INDEX IF NOT EXISTS idx_payroll_period
		ON payroll_records(period);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) SaveEmployee(ctx context.Context, emp store.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if emp.CreatedAt.IsZero() {
		emp.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, email, hire_date, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, email=excluded.email,
			hire_date=excluded.hire_date`,
		emp.ID, emp.Name, emp.Email,
		emp.HireDate.Format("2006-01-02"), emp.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*store.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, hire_date, created_at FROM employees WHERE id = ?`, id)
	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]store.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, hire_date, created_at FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []store.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *emp)
	}
	return employees, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*store.Employee, error) {
	var emp store.Employee
	var hireDate, createdAt string
	if err := row.Scan(&emp.ID, &emp.Name, &emp.Email, &hireDate, &createdAt); err != nil {
		return nil, err
	}
	emp.HireDate, _ = time.Parse("2006-01-02", hireDate)
	emp.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &emp, nil
}

// =============================================================================
// CONTRACTS
// =============================================================================

func (s *Store) SaveContract(ctx context.Context, rec store.ContractRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	terms, err := json.Marshal(rec.Terms)
	if err != nil {
		return err
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO contracts (employee_id, terms_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(employee_id) DO UPDATE SET terms_json=excluded.terms_json,
			updated_at=excluded.updated_at`,
		rec.EmployeeID, string(terms), rec.UpdatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetContract(ctx context.Context, employeeID string) (*store.ContractRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var termsJSON, updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT terms_json, updated_at FROM contracts WHERE employee_id = ?`,
		employeeID).Scan(&termsJSON, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rec := store.ContractRecord{EmployeeID: employeeID}
	if err := json.Unmarshal([]byte(termsJSON), &rec.Terms); err != nil {
		return nil, fmt.Errorf("corrupt contract for %s: %w", employeeID, err)
	}
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}

// =============================================================================
// ATTENDANCE
// =============================================================================

func (s *Store) SaveAttendanceDays(ctx context.Context, employeeID string, days []engine.AttendanceDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, day := range days {
		payload, err := json.Marshal(day)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO attendance_days (employee_id, date, day_json)
			VALUES (?, ?, ?)
			ON CONFLICT(employee_id, date) DO UPDATE SET day_json=excluded.day_json`,
			employeeID, day.Date.Format("2006-01-02"), string(payload))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) ListAttendance(ctx context.Context, employeeID string, period engine.Period) ([]engine.AttendanceDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT day_json FROM attendance_days
		WHERE employee_id = ? AND date LIKE ?
		ORDER BY date`,
		employeeID, period.String()+"-%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []engine.AttendanceDay
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var day engine.AttendanceDay
		if err := json.Unmarshal([]byte(payload), &day); err != nil {
			return nil, fmt.Errorf("corrupt attendance for %s: %w", employeeID, err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// =============================================================================
// PAYROLL SNAPSHOTS
// =============================================================================

func (s *Store) SavePayroll(ctx context.Context, rec store.PayrollRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A finalized snapshot is what was actually paid; never overwrite it.
	existing, err := s.getPayrollLocked(ctx, `employee_id = ? AND period = ?`,
		rec.EmployeeID, rec.Period)
	if err != nil && err != store.ErrNotFound {
		return err
	}
	if existing != nil && existing.Finalized() {
		return store.ErrFinalized
	}

	result, err := json.Marshal(rec.Result)
	if err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.Status == "" {
		rec.Status = store.StatusDraft
	}

	if existing != nil {
		_, err = s.db.ExecContext(ctx, `
			UPDATE payroll_records
			SET result_json = ?, status = ?, created_at = ?
			WHERE id = ?`,
			string(result), string(rec.Status), rec.CreatedAt.Format(time.RFC3339), existing.ID)
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO payroll_records (id, employee_id, period, result_json, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.EmployeeID, rec.Period, string(result),
		string(rec.Status), rec.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetPayroll(ctx context.Context, employeeID string, period engine.Period) (*store.PayrollRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPayrollLocked(ctx, `employee_id = ? AND period = ?`, employeeID, period.String())
}

func (s *Store) GetPayrollByID(ctx context.Context, id string) (*store.PayrollRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPayrollLocked(ctx, `id = ?`, id)
}

func (s *Store) getPayrollLocked(ctx context.Context, where string, args ...any) (*store.PayrollRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, period, result_json, status, created_at, confirmed_at, paid_at
		FROM payroll_records WHERE `+where, args...)
	rec, err := scanPayroll(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) ListPayrolls(ctx context.Context, period engine.Period) ([]store.PayrollRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, period, result_json, status, created_at, confirmed_at, paid_at
		FROM payroll_records WHERE period = ? ORDER BY employee_id`, period.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []store.PayrollRecord
	for rows.Next() {
		rec, err := scanPayroll(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func scanPayroll(row rowScanner) (*store.PayrollRecord, error) {
	var rec store.PayrollRecord
	var resultJSON, status, createdAt string
	var confirmedAt, paidAt sql.NullString
	if err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.Period, &resultJSON,
		&status, &createdAt, &confirmedAt, &paidAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
		return nil, fmt.Errorf("corrupt payroll record %s: %w", rec.ID, err)
	}
	rec.Status = store.PayrollStatus(status)
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if confirmedAt.Valid {
		t, _ := time.Parse(time.RFC3339, confirmedAt.String)
		rec.ConfirmedAt = &t
	}
	if paidAt.Valid {
		t, _ := time.Parse(time.RFC3339, paidAt.String)
		rec.PaidAt = &t
	}
	return &rec, nil
}

// UpdatePayrollStatus advances a snapshot's lifecycle. Status only moves
// forward: draft -> confirmed -> paid.
func (s *Store) UpdatePayrollStatus(ctx context.Context, id string, status store.PayrollStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getPayrollLocked(ctx, `id = ?`, id)
	if err != nil {
		return err
	}

	ts := at.UTC().Format(time.RFC3339)
	switch {
	case status == store.StatusConfirmed && rec.Status == store.StatusDraft:
		_, err = s.db.ExecContext(ctx, `
			UPDATE payroll_records SET status = ?, confirmed_at = ? WHERE id = ?`,
			string(status), ts, id)
	case status == store.StatusPaid && rec.Status == store.StatusConfirmed:
		_, err = s.db.ExecContext(ctx, `
			UPDATE payroll_records SET status = ?, paid_at = ? WHERE id = ?`,
			string(status), ts, id)
	default:
		return store.ErrFinalized
	}
	return err
}

// =============================================================================
// RESET (dev/demo only)
// =============================================================================

func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"employees", "contracts", "attendance_days", "payroll_records"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
