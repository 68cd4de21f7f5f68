package research

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/HendryAvila/introflow/internal/intro"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// InvestorStore is the slice of the store the job needs.
type InvestorStore interface {
	ListInvestors(ctx context.Context, unresearchedOnly bool, limit int) ([]intro.Investor, error)
	SaveInvestorResearch(ctx context.Context, investorID int64, notes string) error
}

// Researcher produces research notes for one investor.
type Researcher interface {
	Research(ctx context.Context, inv intro.Investor) (string, error)
}

// Runner starts research jobs and tracks the latest one.
type Runner struct {
	store      InvestorStore
	researcher Researcher
	batch      int

	current atomic.Pointer[Job]
}

// NewRunner creates a Runner. A batch of zero or less means no limit.
func NewRunner(store InvestorStore, researcher Researcher, batch int) *Runner {
	return &Runner{store: store, researcher: researcher, batch: batch}
}

// Start launches a job over unresearched investors and returns it
// immediately. It fails with ErrJobRunning while another job is active.
// The job outlives ctx's cancellation but keeps its values.
func (r *Runner) Start(ctx context.Context) (*Job, error) {
	prev := r.current.Load()
	if prev != nil && prev.Active() {
		return nil, ErrJobRunning
	}
	job := newJob(timeNow())
	if !r.current.CompareAndSwap(prev, job) {
		return nil, ErrJobRunning
	}
	if !job.start(timeNow()) {
		return nil, fmt.Errorf("research job %s: could not start", job.ID)
	}

	go r.run(context.WithoutCancel(ctx), job)
	return job, nil
}

// Current returns the most recent job, or nil if none has been started.
func (r *Runner) Current() *Job {
	return r.current.Load()
}

func (r *Runner) run(ctx context.Context, job *Job) {
	investors, err := r.store.ListInvestors(ctx, true, r.batch)
	if err != nil {
		log.Printf("WARNING: research job %s: listing investors: %v", job.ID, err)
		job.finish(timeNow(), fmt.Errorf("listing investors: %w", err))
		return
	}
	job.total.Store(int64(len(investors)))

	for _, inv := range investors {
		notes, err := r.researcher.Research(ctx, inv)
		if err == nil {
			err = r.store.SaveInvestorResearch(ctx, inv.ID, notes)
		}
		if err != nil {
			log.Printf("WARNING: research job %s: investor %d: %v", job.ID, inv.ID, err)
			job.failed.Add(1)
		}
		job.processed.Add(1)
	}
	job.finish(timeNow(), nil)
}

// ─── Built-in researcher ─────────────────────────────────────────────────────

// GapResearcher records which profile fields an investor is missing, so
// the team knows what to fill in by hand.
type GapResearcher struct{}

// Research implements Researcher.
func (GapResearcher) Research(_ context.Context, inv intro.Investor) (string, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"firm", inv.Firm},
		{"website", inv.Website},
		{"stage focus", inv.StageFocus},
		{"sector focus", inv.SectorFocus},
	}
	var missing, known []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		} else {
			known = append(known, f.name+": "+f.value)
		}
	}
	if len(missing) == 0 {
		return "Profile complete. " + strings.Join(known, "; "), nil
	}
	notes := "Missing: " + strings.Join(missing, ", ") + "."
	if len(known) > 0 {
		notes += " Known: " + strings.Join(known, "; ") + "."
	}
	return notes, nil
}
