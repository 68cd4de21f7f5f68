// Package research runs the bulk investor research job.
//
// At most one job runs per Runner. A job is an explicit record whose state
// only moves forward pending → running → done|failed through atomic
// compare-and-swap, and whose progress counters are safe to read while the
// job is running.
package research

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ErrJobRunning is returned when a job is requested while another is active.
var ErrJobRunning = errors.New("a research job is already running")

// State is a job's lifecycle state.
type State string

const (
	StatePending State = "pending"
	StateRunning State = "running"
	StateDone    State = "done"
	StateFailed  State = "failed"
)

var stateCodes = []State{StatePending, StateRunning, StateDone, StateFailed}

const (
	codePending uint32 = iota
	codeRunning
	codeDone
	codeFailed
)

// Job is one bulk research run.
type Job struct {
	ID        string
	CreatedAt time.Time

	state     atomic.Uint32
	total     atomic.Int64
	processed atomic.Int64
	failed    atomic.Int64

	mu         sync.Mutex
	startedAt  time.Time
	finishedAt time.Time
	lastErr    string

	done chan struct{}
}

func newJob(now time.Time) *Job {
	j := &Job{
		ID:        uuid.NewString(),
		CreatedAt: now,
		done:      make(chan struct{}),
	}
	j.state.Store(codePending)
	return j
}

// State returns the current lifecycle state.
func (j *Job) State() State {
	return stateCodes[j.state.Load()]
}

// Active reports whether the job is pending or running.
func (j *Job) Active() bool {
	s := j.state.Load()
	return s == codePending || s == codeRunning
}

// Done is closed once the job reaches done or failed.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

func (j *Job) start(now time.Time) bool {
	if !j.state.CompareAndSwap(codePending, codeRunning) {
		return false
	}
	j.mu.Lock()
	j.startedAt = now
	j.mu.Unlock()
	return true
}

func (j *Job) finish(now time.Time, err error) {
	to := codeDone
	if err != nil {
		to = codeFailed
	}
	if !j.state.CompareAndSwap(codeRunning, to) {
		return
	}
	j.mu.Lock()
	j.finishedAt = now
	if err != nil {
		j.lastErr = err.Error()
	}
	j.mu.Unlock()
	close(j.done)
}

// Status is a serializable snapshot of a job.
type Status struct {
	ID         string     `json:"id"`
	State      State      `json:"state"`
	Total      int64      `json:"total"`
	Processed  int64      `json:"processed"`
	Failed     int64      `json:"failed"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Snapshot returns the job's current status.
func (j *Job) Snapshot() Status {
	st := Status{
		ID:        j.ID,
		State:     j.State(),
		Total:     j.total.Load(),
		Processed: j.processed.Load(),
		Failed:    j.failed.Load(),
		CreatedAt: j.CreatedAt,
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.startedAt.IsZero() {
		t := j.startedAt
		st.StartedAt = &t
	}
	if !j.finishedAt.IsZero() {
		t := j.finishedAt
		st.FinishedAt = &t
	}
	st.Error = j.lastErr
	return st
}
