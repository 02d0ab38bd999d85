package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// GetByEmailAndDate returns nil without error when no record exists.
	GetByEmailAndDate(ctx context.Context, email string, date time.Time) (*Record, error)

	// Create inserts the record together with its breaks
	Create(ctx context.Context, record Record) (Record, error)

	// Update rewrites clock times, status and the break list
	Update(ctx context.Context, record Record) error

	// ListByEmail returns the newest records first
	ListByEmail(ctx context.Context, email string, limit int) ([]Record, error)

	// List retrieves records of every employee with names joined
	List(ctx context.Context, filter AttendanceFilter) ([]Record, error)

	// ListEmailsByDate returns the emails that have a record on date
	ListEmailsByDate(ctx context.Context, date time.Time) ([]string, error)
}
