package attendance

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workholic/workholic-go/internal/domain/attendance"
	"github.com/workholic/workholic-go/internal/domain/leaderboard"
	"github.com/workholic/workholic-go/internal/domain/user"
	"github.com/workholic/workholic-go/internal/fixtures"
	scheduleService "github.com/workholic/workholic-go/internal/service/schedule"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type memAttendanceRepo struct {
	records map[string]attendance.Record
}

func newMemAttendanceRepo() *memAttendanceRepo {
	return &memAttendanceRepo{records: map[string]attendance.Record{}}
}

func key(email string, date time.Time) string {
	return email + "|" + date.Format(attendance.DateLayout)
}

func (m *memAttendanceRepo) GetByEmailAndDate(ctx context.Context, email string, date time.Time) (*attendance.Record, error) {
	r, ok := m.records[key(email, date)]
	if !ok {
		return nil, nil
	}
	r.Breaks = append([]attendance.Break(nil), r.Breaks...)
	return &r, nil
}

func (m *memAttendanceRepo) Create(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	k := key(r.Email, r.Date)
	if _, ok := m.records[k]; ok {
		return attendance.Record{}, attendance.ErrAlreadyClockedIn
	}
	r.ID = k
	m.records[k] = r
	return r, nil
}

func (m *memAttendanceRepo) Update(ctx context.Context, r attendance.Record) error {
	m.records[key(r.Email, r.Date)] = r
	return nil
}

func (m *memAttendanceRepo) ListByEmail(ctx context.Context, email string, limit int) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range m.records {
		if r.Email == email {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range m.records {
		if filter.Email != nil && r.Email != *filter.Email {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memAttendanceRepo) ListEmailsByDate(ctx context.Context, date time.Time) ([]string, error) {
	var out []string
	for _, r := range m.records {
		if r.Date.Equal(date) {
			out = append(out, r.Email)
		}
	}
	return out, nil
}

type memUserRepo struct {
	user.UserRepository
	users []user.User
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (m *memUserRepo) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type pointsRecorder struct {
	leaderboard.LeaderboardService
	awarded map[string][]attendance.Status
	err     error
}

func (p *pointsRecorder) AwardAttendance(ctx context.Context, email string, status attendance.Status) error {
	if p.err != nil {
		return p.err
	}
	p.awarded[email] = append(p.awarded[email], status)
	return nil
}

type harness struct {
	svc    attendance.AttendanceService
	repo   *memAttendanceRepo
	points *pointsRecorder
	now    time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		repo:   newMemAttendanceRepo(),
		points: &pointsRecorder{awarded: map[string][]attendance.Status{}},
		// Tuesday
		now: time.Date(2024, 6, 4, 10, 30, 0, 0, time.Local),
	}
	users := &memUserRepo{users: []user.User{
		{Email: "asha@workholic.in", Name: "Asha", Role: user.RoleEmployee, Schedule: "general"},
		{Email: "ravi@workholic.in", Name: "Ravi", Role: user.RoleEmployee, Schedule: "shreyas"},
		{Email: "admin@workholic.in", Name: "Admin", Role: user.RoleAdmin, Schedule: "general"},
	}}
	schedules := scheduleService.NewScheduleService(fixtures.NewPresetRepository(), fixtures.DefaultScheduleName)
	h.svc = NewAttendanceService(passthroughTx{}, h.repo, users, schedules, h.points, func() time.Time { return h.now })
	return h
}

func (h *harness) act(t *testing.T, action string, at string) attendance.RecordResponse {
	t.Helper()
	clock, err := time.ParseInLocation("15:04", at, time.Local)
	require.NoError(t, err)
	h.now = time.Date(2024, 6, 4, clock.Hour(), clock.Minute(), 0, 0, time.Local)
	resp, err := h.svc.ClockAction(context.Background(), "asha@workholic.in", attendance.ClockActionRequest{Action: action})
	require.NoError(t, err)
	return resp
}

func TestClockAction_FullDay(t *testing.T) {
	h := newHarness(t)

	resp := h.act(t, "clock-in", "10:30")
	require.NotNil(t, resp.ClockIn)
	assert.Nil(t, resp.Status)

	resp = h.act(t, "break-start", "13:00")
	require.Len(t, resp.Breaks, 1)
	assert.Nil(t, resp.Breaks[0].End)

	h.act(t, "break-end", "14:00")
	resp = h.act(t, "clock-out", "19:00")

	require.NotNil(t, resp.Status)
	assert.Equal(t, "FD", *resp.Status)
	assert.Equal(t, []attendance.Status{attendance.StatusFullDay}, h.points.awarded["asha@workholic.in"])
}

func TestClockAction_LateArrivalIsHalfDay(t *testing.T) {
	h := newHarness(t)

	h.act(t, "clock-in", "11:00")
	resp := h.act(t, "clock-out", "20:30")

	require.NotNil(t, resp.Status)
	assert.Equal(t, "HD", *resp.Status)
}

func TestClockAction_InvalidTransitionsConflict(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.ClockAction(ctx, "asha@workholic.in", attendance.ClockActionRequest{Action: "break-start"})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
	assert.Empty(t, h.repo.records, "rejected action must not create a record")

	h.act(t, "clock-in", "10:30")
	_, err = h.svc.ClockAction(ctx, "asha@workholic.in", attendance.ClockActionRequest{Action: "clock-in"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	h.act(t, "clock-out", "19:00")
	_, err = h.svc.ClockAction(ctx, "asha@workholic.in", attendance.ClockActionRequest{Action: "break-start"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestClockAction_ValidationAndPointFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.ClockAction(ctx, "asha@workholic.in", attendance.ClockActionRequest{Action: "nap"})
	assert.Error(t, err)

	h.act(t, "clock-in", "10:30")
	h.points.err = errors.New("leaderboard unavailable")
	h.now = h.now.Add(8 * time.Hour)
	_, err = h.svc.ClockAction(ctx, "asha@workholic.in", attendance.ClockActionRequest{Action: "clock-out"})
	assert.Error(t, err)

	rec, err := h.svc.GetToday(ctx, "asha@workholic.in")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Nil(t, rec.ClockOut)
}

func TestGetToday_NoRecord(t *testing.T) {
	h := newHarness(t)

	rec, err := h.svc.GetToday(context.Background(), "asha@workholic.in")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestGetHistory_NewestFirstAndLimited(t *testing.T) {
	h := newHarness(t)
	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 40; i++ {
		d := base.AddDate(0, 0, i)
		h.repo.records[key("asha@workholic.in", d)] = attendance.Record{Email: "asha@workholic.in", Date: d, Status: attendance.StatusFullDay}
	}

	history, err := h.svc.GetHistory(context.Background(), "asha@workholic.in")
	require.NoError(t, err)
	require.Len(t, history, HistoryLimit)
	assert.Equal(t, "2024-05-10", history[0].Date)
}

func TestMarkAbsent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// Saturday in week 2: general is off, shreyas has weekends off.
	secondSaturday := time.Date(2024, 6, 8, 0, 0, 0, 0, time.Local)
	n, err := h.svc.MarkAbsent(ctx, secondSaturday)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Tuesday: Asha already has a record, Ravi does not, admins are skipped.
	h.act(t, "clock-in", "10:30")
	n, err = h.svc.MarkAbsent(ctx, time.Date(2024, 6, 4, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []attendance.Status{attendance.StatusAbsent}, h.points.awarded["ravi@workholic.in"])

	rec, err := h.repo.GetByEmailAndDate(ctx, "ravi@workholic.in", time.Date(2024, 6, 4, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)

	// A second sweep finds nothing new.
	n, err = h.svc.MarkAbsent(ctx, time.Date(2024, 6, 4, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestListAttendance_ValidatesFilter(t *testing.T) {
	h := newHarness(t)
	bad := "not-a-date"

	_, err := h.svc.ListAttendance(context.Background(), attendance.AttendanceFilter{StartDate: &bad})
	assert.Error(t, err)

	h.act(t, "clock-in", "10:30")
	all, err := h.svc.ListAttendance(context.Background(), attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
