package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockAction applies a clock-in/out or break action for the employee
	ClockAction(ctx context.Context, email string, req ClockActionRequest) (RecordResponse, error)

	// GetToday returns today's record, nil when the employee has none yet
	GetToday(ctx context.Context, email string) (*RecordResponse, error)

	// GetHistory returns the latest records of the employee
	GetHistory(ctx context.Context, email string) ([]RecordResponse, error)

	// ListAttendance retrieves records of all employees (admin)
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]RecordResponse, error)

	// MarkAbsent records an absence for every scheduled employee without a record on date
	MarkAbsent(ctx context.Context, date time.Time) (int, error)
}
