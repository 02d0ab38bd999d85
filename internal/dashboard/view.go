// Package dashboard is the employee view: today's session, schedule,
// calendar and leaderboard, refreshed once a second.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/workholic/workholic-go/internal/client"
	"github.com/workholic/workholic-go/internal/domain/attendance"
	"github.com/workholic/workholic-go/internal/domain/leaderboard"
	"github.com/workholic/workholic-go/internal/domain/schedule"
	"github.com/workholic/workholic-go/internal/pkg/cron"
	"github.com/workholic/workholic-go/internal/tracker"
)

// RefreshInterval is the display tick.
const RefreshInterval = time.Second

// API is the part of the backend the dashboard reads.
type API interface {
	tracker.Service
	History(ctx context.Context) ([]attendance.Record, error)
	Schedule(ctx context.Context) (client.ScheduleToday, error)
	Leaderboard(ctx context.Context) (leaderboard.LeaderboardResponse, error)
}

// View owns all state of one mounted dashboard. Build it with New, call
// Mount once and Teardown when done.
type View struct {
	api     API
	now     func() time.Time
	logger  *slog.Logger
	tracker *tracker.Tracker
	notices *tracker.Notices
	onTick  func(Frame)

	mu        sync.Mutex
	outcome   schedule.Outcome
	spec      *schedule.Spec
	history   []attendance.Record
	board     leaderboard.LeaderboardResponse
	scheduler *cron.Scheduler
	cancel    context.CancelFunc
	loads     errgroup.Group
}

type Option func(*View)

// WithTick sets the callback that receives a fresh frame on every tick.
func WithTick(fn func(Frame)) Option {
	return func(v *View) { v.onTick = fn }
}

func New(api API, now func() time.Time, logger *slog.Logger, opts ...Option) *View {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	notices := tracker.NewNotices(now)
	v := &View{
		api:     api,
		now:     now,
		logger:  logger,
		notices: notices,
		tracker: tracker.New(api, notices, now, logger),
		outcome: schedule.Outcome{Kind: schedule.KindNoSchedule, Source: schedule.SourceServer},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount starts the initial loads without waiting for them and starts the
// refresh task. Mounting twice is a no-op.
func (v *View) Mount(ctx context.Context) {
	v.mu.Lock()
	if v.scheduler != nil {
		v.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.scheduler = cron.NewScheduler(ctx)
	v.scheduler.AddJob("dashboard_refresh", RefreshInterval, v.refresh)
	v.mu.Unlock()

	// Loads are independent: one failing never cancels the others.
	v.loads.Go(func() error {
		_ = v.tracker.Refresh(ctx)
		return nil
	})
	v.loads.Go(func() error {
		v.loadSchedule(ctx)
		return nil
	})
	v.loads.Go(func() error {
		v.loadHistory(ctx)
		return nil
	})
	v.loads.Go(func() error {
		v.loadLeaderboard(ctx)
		return nil
	})

	v.scheduler.Start()
}

// Teardown stops the refresh task and waits for pending loads.
func (v *View) Teardown() {
	v.mu.Lock()
	sched, cancel := v.scheduler, v.cancel
	v.mu.Unlock()
	if sched == nil {
		return
	}

	sched.Stop()
	cancel()
	_ = v.loads.Wait()
}

// Wait blocks until every load started so far has finished.
func (v *View) Wait() {
	_ = v.loads.Wait()
}

// refresh only recomputes the frame from memory.
func (v *View) refresh(ctx context.Context) error {
	if v.onTick != nil {
		v.onTick(v.Frame())
	}
	return nil
}

// Act sends a clock action. After a clock-out the leaderboard and the
// calendar are reloaded in the background.
func (v *View) Act(ctx context.Context, action attendance.Action) error {
	if err := v.tracker.Apply(ctx, action); err != nil {
		return err
	}
	if action == attendance.ActionClockOut {
		v.loads.Go(func() error {
			v.loadLeaderboard(ctx)
			return nil
		})
	}
	v.loads.Go(func() error {
		v.loadHistory(ctx)
		return nil
	})
	return nil
}

func (v *View) Dismiss(id uint64) bool {
	return v.notices.Dismiss(id)
}

// Notify posts a notice on the panel.
func (v *View) Notify(kind tracker.NoticeKind, message string) tracker.Notice {
	return v.notices.Post(kind, message)
}

func (v *View) loadSchedule(ctx context.Context) {
	outcome, spec := ResolveToday(ctx, v.api, v.now(), v.logger)
	v.mu.Lock()
	v.outcome, v.spec = outcome, spec
	v.mu.Unlock()
}

func (v *View) loadHistory(ctx context.Context) {
	records, err := v.api.History(ctx)
	if err != nil {
		v.notices.Post(tracker.NoticeError, "Failed to load attendance history")
		v.logger.Warn("failed to load attendance history", "error", err)
		return
	}
	v.mu.Lock()
	v.history = records
	v.mu.Unlock()
}

func (v *View) loadLeaderboard(ctx context.Context) {
	board, err := v.api.Leaderboard(ctx)
	if err != nil {
		v.notices.Post(tracker.NoticeError, "Failed to load leaderboard")
		v.logger.Warn("failed to load leaderboard", "error", err)
		return
	}
	v.mu.Lock()
	v.board = board
	v.mu.Unlock()
}

func (v *View) Schedule() schedule.Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.outcome
}

func (v *View) History() []attendance.Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]attendance.Record(nil), v.history...)
}

func (v *View) Leaderboard() leaderboard.LeaderboardResponse {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.board
}

// Calendar projects the loaded history onto the month containing day.
func (v *View) Calendar(day time.Time) Month {
	return NewMonth(day, v.History(), v.now())
}
