/*
scenarios_test.go - Tests for demo scenario loading and the payroll scheduler

Each scenario must load cleanly and produce a calculable month for every
employee it creates.
*/
package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/warp/payroll-engine/store"
)

func TestLoadScenario_AllScenariosCalculate(t *testing.T) {
	for _, sc := range scenarios {
		t.Run(sc.ID, func(t *testing.T) {
			// GIVEN: A freshly loaded scenario
			_, srv := newTestServer(t)
			rec := srv.do(t, "POST", "/api/scenarios/load", map[string]string{"scenario_id": sc.ID})
			if rec.Code != http.StatusOK {
				t.Fatalf("Load scenario: status %d, body %s", rec.Code, rec.Body)
			}

			// WHEN: Running payroll for the month the scenario populated
			period := demoPeriod()
			rec = srv.do(t, "POST", "/api/payroll/run", map[string]string{"period": period.String()})
			if rec.Code != http.StatusOK {
				t.Fatalf("Batch run: status %d, body %s", rec.Code, rec.Body)
			}
			out := decode[BatchRunResultDTO](t, rec)

			// THEN: Every scenario employee calculates cleanly
			if len(out.Failed) != 0 {
				t.Fatalf("Scenario employees should all calculate, failures: %+v", out.Failed)
			}
			if len(out.Succeeded) == 0 {
				t.Fatal("Scenario should create at least one employee")
			}
			for _, p := range out.Succeeded {
				if p.Result.NetPay <= 0 {
					t.Errorf("%s: NetPay = %d, want positive", p.EmployeeID, p.Result.NetPay)
				}
			}
		})
	}
}

func TestLoadScenario_NightShiftHasNightHours(t *testing.T) {
	_, srv := newTestServer(t)
	srv.do(t, "POST", "/api/scenarios/load", map[string]string{"scenario_id": "night-shift"})

	out := decode[BatchRunResultDTO](t, srv.do(t, "POST", "/api/payroll/run",
		map[string]string{"period": demoPeriod().String()}))
	if len(out.Succeeded) != 1 {
		t.Fatalf("Expected one employee, got %d", len(out.Succeeded))
	}

	res := out.Succeeded[0].Result
	if res.NightHours <= 0 {
		t.Errorf("21:00-03:00 shifts must accrue night hours, got %v", res.NightHours)
	}
	if res.NightPay <= 0 {
		t.Errorf("Night premium is enabled in the scenario contract, got pay %d", res.NightPay)
	}
}

func TestScheduler_CalculatesMissingDrafts(t *testing.T) {
	// GIVEN: A loaded scenario with attendance but no snapshots yet
	h, srv := newTestServer(t)
	srv.do(t, "POST", "/api/scenarios/load", map[string]string{"scenario_id": "part-time-cafe"})

	scheduler := NewPayrollScheduler(h.Store, h)

	// WHEN: The scheduler sweeps
	scheduler.RunNow()

	// THEN: The closed month has a draft snapshot
	ctx := context.Background()
	rec, err := h.Store.GetPayroll(ctx, "emp-cafe", demoPeriod())
	if err != nil {
		t.Fatalf("Expected a snapshot after the sweep: %v", err)
	}
	if rec.Status != store.StatusDraft {
		t.Errorf("Scheduler output should be a draft, got %s", rec.Status)
	}

	// AND: A second sweep does not disturb the existing snapshot
	scheduler.RunNow()
	again, err := h.Store.GetPayroll(ctx, "emp-cafe", demoPeriod())
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != rec.ID {
		t.Errorf("Second sweep should skip existing snapshots, ID changed %q -> %q", rec.ID, again.ID)
	}
}
