package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/workholic/workholic-go/internal/domain/attendance"
)

// Service is the attendance backend. It is the only source of timestamps.
type Service interface {
	Today(ctx context.Context) (*attendance.Record, error)
	ClockAction(ctx context.Context, action attendance.Action) (attendance.Record, error)
}

// Tracker holds today's record and replaces it wholesale on every
// response. Each request takes a sequence number and a response older
// than the last applied one is dropped.
type Tracker struct {
	svc     Service
	now     func() time.Time
	logger  *slog.Logger
	notices *Notices

	mu      sync.Mutex
	state   State
	nextSeq uint64
	applied uint64
}

func New(svc Service, notices *Notices, now func() time.Time, logger *slog.Logger) *Tracker {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	if notices == nil {
		notices = NewNotices(now)
	}
	return &Tracker{
		svc:     svc,
		now:     now,
		logger:  logger,
		notices: notices,
		state:   Reconcile(nil),
	}
}

func (t *Tracker) begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextSeq++
	return t.nextSeq
}

// commit applies rec unless a newer response was already applied.
func (t *Tracker) commit(seq uint64, rec *attendance.Record) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seq <= t.applied {
		t.logger.Debug("discarding stale attendance response", "seq", seq, "applied", t.applied)
		return false
	}
	t.applied = seq
	t.state = Reconcile(rec)
	return true
}

// Refresh reloads today's record. On failure the state is kept and a
// notice is posted.
func (t *Tracker) Refresh(ctx context.Context) error {
	seq := t.begin()

	rec, err := t.svc.Today(ctx)
	if err != nil {
		t.notices.Post(NoticeError, "Failed to load today's attendance")
		t.logger.Warn("failed to load today's attendance", "error", err)
		return fmt.Errorf("load today: %w", err)
	}

	t.commit(seq, rec)
	return nil
}

// Apply sends action to the backend and adopts the returned record. The
// action is not checked against the current phase and is never retried.
func (t *Tracker) Apply(ctx context.Context, action attendance.Action) error {
	seq := t.begin()

	rec, err := t.svc.ClockAction(ctx, action)
	if err != nil {
		t.notices.Post(NoticeError, err.Error())
		t.logger.Warn("clock action failed", "action", action, "error", err)
		return fmt.Errorf("%s: %w", action, err)
	}

	if t.commit(seq, &rec) {
		t.notices.Post(NoticeSuccess, actionMessage(action))
	}
	return nil
}

func actionMessage(action attendance.Action) string {
	switch action {
	case attendance.ActionClockIn:
		return "Clocked in successfully"
	case attendance.ActionBreakStart:
		return "Break started"
	case attendance.ActionBreakEnd:
		return "Break ended"
	case attendance.ActionClockOut:
		return "Clocked out successfully"
	default:
		return string(action)
	}
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Timers computes the counters for the current state at the tracker clock.
func (t *Tracker) Timers() Timers {
	return t.State().Timers(t.now())
}

func (t *Tracker) Notices() *Notices {
	return t.notices
}
