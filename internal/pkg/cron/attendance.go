package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/workholic/workholic-go/internal/domain/attendance"
)

// AttendanceJobs holds the attendance housekeeping jobs of the server.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	now               func() time.Time

	mu        sync.Mutex
	lastSwept string
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, now func() time.Time) *AttendanceJobs {
	if now == nil {
		now = time.Now
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		now:               now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("mark_absent_employees", interval, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees marks yesterday's absentees. It does the work once
// per calendar day no matter how often it is scheduled.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	now := j.now()
	yesterday := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, now.Location())
	key := yesterday.Format(attendance.DateLayout)

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.lastSwept == key {
		return nil
	}

	slog.Info("Cron: Starting mark absent employees job", "date", key)

	count, err := j.attendanceService.MarkAbsent(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("mark absent for %s: %w", key, err)
	}
	j.lastSwept = key

	slog.Info("Cron: Marked absent employees", "date", key, "count", count)
	return nil
}
