/*
scheduler.go - Automated monthly payroll scheduler

PURPOSE:
  Periodically checks for employees whose previous month has attendance on
  file but no payroll snapshot yet, and calculates a draft for them.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Targets the previous calendar month (the one that just closed)
  - Skips employees that already have a snapshot for that period
  - Failures are logged per employee; the sweep always completes

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewPayrollScheduler(store, handler)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: RunBatch endpoint (manual payroll run)
  - engine/engine.go: Calculate
*/
package api

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/store"
)

// PayrollScheduler handles automated draft calculation for closed months.
type PayrollScheduler struct {
	Store         store.Store
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewPayrollScheduler creates a new scheduler.
func NewPayrollScheduler(st store.Store, handler *Handler) *PayrollScheduler {
	return &PayrollScheduler{
		Store:         st,
		Handler:       handler,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (ps *PayrollScheduler) Start() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	ps.ticker = time.NewTicker(ps.CheckInterval)
	ps.wg.Add(1)

	go ps.run()

	log.Printf("[Scheduler] Started with check interval: %v", ps.CheckInterval)
}

// Stop stops the scheduler.
func (ps *PayrollScheduler) Stop() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.ticker != nil {
		ps.ticker.Stop()
		close(ps.stop)
		ps.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (ps *PayrollScheduler) run() {
	defer ps.wg.Done()

	// Run immediately on start
	ps.checkAndProcess()

	for {
		select {
		case <-ps.ticker.C:
			ps.checkAndProcess()
		case <-ps.stop:
			return
		}
	}
}

func (ps *PayrollScheduler) checkAndProcess() {
	ctx := context.Background()
	period := engine.PeriodOf(time.Now()).Previous()

	log.Printf("[Scheduler] Sweeping period %s", period)

	employees, err := ps.Store.ListEmployees(ctx)
	if err != nil {
		log.Printf("[Scheduler] Error listing employees: %v", err)
		return
	}

	processedCount := 0
	skippedCount := 0

	for _, emp := range employees {
		// Skip employees that already have a snapshot for this period.
		if _, err := ps.Store.GetPayroll(ctx, emp.ID, period); err == nil {
			skippedCount++
			continue
		} else if !errors.Is(err, store.ErrNotFound) {
			log.Printf("[Scheduler] Error checking snapshot for %s: %v", emp.ID, err)
			continue
		}

		// Nothing to do without a contract or attendance.
		if _, err := ps.Store.GetContract(ctx, emp.ID); err != nil {
			continue
		}
		days, err := ps.Store.ListAttendance(ctx, emp.ID, period)
		if err != nil || len(days) == 0 {
			continue
		}

		if _, err := ps.Handler.calculateAndStore(ctx, emp.ID, period, CalculateRequest{}); err != nil {
			log.Printf("[Scheduler] Error calculating %s/%s: %v", emp.ID, period, err)
			continue
		}
		processedCount++
	}

	if processedCount > 0 || skippedCount > 0 {
		log.Printf("[Scheduler] Completed: %d calculated, %d skipped (already done)",
			processedCount, skippedCount)
	}
}

// RunNow triggers an immediate sweep (for testing/admin).
func (ps *PayrollScheduler) RunNow() {
	ps.checkAndProcess()
}

// GetNextRunTime returns when the next scheduled check will occur.
func (ps *PayrollScheduler) GetNextRunTime() time.Time {
	return time.Now().Add(ps.CheckInterval)
}
