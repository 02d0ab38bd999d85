package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workholic/workholic-go/internal/domain/attendance"
)

type fakeAttendanceService struct {
	attendance.AttendanceService
	dates []time.Time
	err   error
}

func (f *fakeAttendanceService) MarkAbsent(ctx context.Context, date time.Time) (int, error) {
	f.dates = append(f.dates, date)
	return 2, f.err
}

func TestMarkAbsentEmployees_OncePerDay(t *testing.T) {
	svc := &fakeAttendanceService{}
	now := time.Date(2024, 6, 5, 0, 30, 0, 0, time.Local)
	jobs := NewAttendanceJobs(svc, func() time.Time { return now })

	require.NoError(t, jobs.MarkAbsentEmployees(context.Background()))
	require.NoError(t, jobs.MarkAbsentEmployees(context.Background()))

	require.Len(t, svc.dates, 1)
	assert.Equal(t, "2024-06-04", svc.dates[0].Format(attendance.DateLayout))

	now = now.Add(24 * time.Hour)
	require.NoError(t, jobs.MarkAbsentEmployees(context.Background()))
	require.Len(t, svc.dates, 2)
	assert.Equal(t, "2024-06-05", svc.dates[1].Format(attendance.DateLayout))
}

func TestMarkAbsentEmployees_RetriesAfterFailure(t *testing.T) {
	svc := &fakeAttendanceService{err: errors.New("db down")}
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)
	jobs := NewAttendanceJobs(svc, func() time.Time { return now })

	assert.Error(t, jobs.MarkAbsentEmployees(context.Background()))

	svc.err = nil
	require.NoError(t, jobs.MarkAbsentEmployees(context.Background()))
	assert.Len(t, svc.dates, 2)
	assert.Equal(t, "2024-05-31", svc.dates[1].Format(attendance.DateLayout))
}
