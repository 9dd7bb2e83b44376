/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates employees, contracts,
	and a month of attendance that demonstrates specific engine features.

AVAILABLE SCENARIOS:

	part-time-cafe:   Hourly worker, evening shifts, 주휴수당 eligible
	full-time-office: Monthly salary, occasional overtime, full insurance
	night-shift:      Shifts crossing midnight, night differential

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create employees
 3. Set contracts via factory presets
 4. Upload attendance for the previous calendar month

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "part-time-cafe"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: LoadScenario, ListScenarios handlers
  - factory/contract.go: contract presets
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/store"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "part-time-cafe",
		Name:        "Part-Time Cafe",
		Description: "Hourly worker with evening shifts and weekly holiday allowance",
	},
	{
		ID:          "full-time-office",
		Name:        "Full-Time Office",
		Description: "Monthly salary with occasional overtime and full four-insurance enrollment",
	},
	{
		ID:          "night-shift",
		Name:        "Night Shift",
		Description: "Shifts crossing midnight showing the 22:00-06:00 night differential",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "part-time-cafe":
		err = loadPartTimeCafeScenario(ctx, h)
	case "full-time-office":
		err = loadFullTimeOfficeScenario(ctx, h)
	case "night-shift":
		err = loadNightShiftScenario(ctx, h)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario: "+req.ScenarioID, nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "loaded",
		"scenario": req.ScenarioID,
	})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// demoPeriod is the month scenarios populate: the one that just closed, so
// the scheduler and batch run have something to pick up.
func demoPeriod() engine.Period {
	return engine.PeriodOf(time.Now()).Previous()
}

// weekdaysIn returns every Monday-to-Friday date in the period.
func weekdaysIn(p engine.Period) []time.Time {
	var days []time.Time
	for d := p.Start(); !d.After(p.End()); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, d)
		}
	}
	return days
}

func shiftDay(date time.Time, start, end string, breaks ...engine.BreakInterval) engine.AttendanceDay {
	return engine.AttendanceDay{
		Date:   date,
		Shifts: []engine.ShiftInterval{{StartTime: start, EndTime: end}},
		Breaks: breaks,
	}
}

func loadPartTimeCafeScenario(ctx context.Context, h *Handler) error {
	period := demoPeriod()
	tenure := period.Start().AddDate(-1, -3, 0)

	emp := store.Employee{ID: "emp-cafe", Name: "Kim Minji", Email: "minji@example.com", HireDate: tenure}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}
	if err := h.Store.SaveContract(ctx, store.ContractRecord{
		EmployeeID: emp.ID,
		Terms:      factory.PartTimeHourly(10_030, tenure),
	}); err != nil {
		return err
	}

	// Five evening shifts a week, 17:00-22:00, no break needed under 6h.
	var days []engine.AttendanceDay
	for _, d := range weekdaysIn(period) {
		days = append(days, shiftDay(d, "17:00", "22:00"))
	}
	return h.Store.SaveAttendanceDays(ctx, emp.ID, days)
}

func loadFullTimeOfficeScenario(ctx context.Context, h *Handler) error {
	period := demoPeriod()
	tenure := period.Start().AddDate(-2, 0, 0)

	emp := store.Employee{ID: "emp-office", Name: "Park Jiwon", Email: "jiwon@example.com", HireDate: tenure}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}

	weekdays := weekdaysIn(period)
	if err := h.Store.SaveContract(ctx, store.ContractRecord{
		EmployeeID: emp.ID,
		Terms:      factory.FullTimeMonthly(2_600_000, 12_440, len(weekdays), tenure),
	}); err != nil {
		return err
	}

	// 09:00-18:00 with a lunch hour; Fridays run two hours over.
	lunch := engine.BreakInterval{Start: "12:00", End: "13:00"}
	var days []engine.AttendanceDay
	for _, d := range weekdays {
		if d.Weekday() == time.Friday {
			days = append(days, shiftDay(d, "09:00", "20:00", lunch))
		} else {
			days = append(days, shiftDay(d, "09:00", "18:00", lunch))
		}
	}
	return h.Store.SaveAttendanceDays(ctx, emp.ID, days)
}

func loadNightShiftScenario(ctx context.Context, h *Handler) error {
	period := demoPeriod()
	tenure := period.Start().AddDate(0, -6, 0)

	emp := store.Employee{ID: "emp-night", Name: "Lee Junho", Email: "junho@example.com", HireDate: tenure}
	if err := h.Store.SaveEmployee(ctx, emp); err != nil {
		return err
	}
	if err := h.Store.SaveContract(ctx, store.ContractRecord{
		EmployeeID: emp.ID,
		Terms:      factory.PartTimeHourly(11_000, tenure),
	}); err != nil {
		return err
	}

	// 21:00-03:00 crossing midnight, four nights a week.
	var days []engine.AttendanceDay
	for _, d := range weekdaysIn(period) {
		if d.Weekday() == time.Friday {
			continue
		}
		days = append(days, shiftDay(d, "21:00", "03:00"))
	}
	return h.Store.SaveAttendanceDays(ctx, emp.ID, days)
}
