package attendance

import (
	"time"
)

// Status is the server-computed day classification.
type Status string

const (
	StatusFullDay Status = "FD"
	StatusHalfDay Status = "HD"
	StatusAbsent  Status = "A"
	StatusHoliday Status = "H"
)

var StatusValues = []string{
	string(StatusFullDay),
	string(StatusHalfDay),
	string(StatusAbsent),
	string(StatusHoliday),
}

func (s Status) Label() string {
	switch s {
	case StatusFullDay:
		return "Full Day"
	case StatusHalfDay:
		return "Half Day"
	case StatusAbsent:
		return "Absent"
	case StatusHoliday:
		return "Holiday"
	default:
		return string(s)
	}
}

// Points awarded on the leaderboard for a finished day.
func (s Status) Points() int {
	switch s {
	case StatusFullDay:
		return 2
	case StatusHalfDay:
		return 1
	case StatusAbsent:
		return -1
	default:
		return 0
	}
}

type Action string

const (
	ActionClockIn    Action = "clock-in"
	ActionBreakStart Action = "break-start"
	ActionBreakEnd   Action = "break-end"
	ActionClockOut   Action = "clock-out"
)

var ActionValues = []string{
	string(ActionClockIn),
	string(ActionBreakStart),
	string(ActionBreakEnd),
	string(ActionClockOut),
}

type Break struct {
	Start time.Time
	End   *time.Time
}

func (b Break) IsOpen() bool {
	return b.End == nil
}

// Duration of a closed break; open breaks count as zero.
func (b Break) Duration() time.Duration {
	if b.End == nil {
		return 0
	}
	return b.End.Sub(b.Start)
}

// LateGrace is how late a clock-in may be before the day counts as a half day.
const LateGrace = 15 * time.Minute

// Record is one employee's attendance for one calendar date.
type Record struct {
	ID        string
	Email     string
	Date      time.Time
	ClockIn   *time.Time
	ClockOut  *time.Time
	Breaks    []Break
	Status    Status // empty until computed
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// OpenBreak returns the index of the break without an end, or -1.
func (r *Record) OpenBreak() int {
	for i := range r.Breaks {
		if r.Breaks[i].IsOpen() {
			return i
		}
	}
	return -1
}

// BreakTotal sums closed breaks, truncated to whole milliseconds.
func (r *Record) BreakTotal() time.Duration {
	var total time.Duration
	for _, b := range r.Breaks {
		total += b.Duration().Truncate(time.Millisecond)
	}
	return total
}

// WorkedMinutes is clock-out minus clock-in minus closed breaks.
func (r *Record) WorkedMinutes() int {
	if r.ClockIn == nil || r.ClockOut == nil {
		return 0
	}
	worked := r.ClockOut.Sub(*r.ClockIn) - r.BreakTotal()
	if worked < 0 {
		return 0
	}
	return int(worked / time.Minute)
}

func (r *Record) IsClosed() bool {
	return r.ClockOut != nil
}

// Apply performs action at now. The record is left untouched on error.
func (r *Record) Apply(action Action, now time.Time) error {
	if r.IsClosed() {
		return ErrAlreadyClockedOut
	}

	switch action {
	case ActionClockIn:
		if r.ClockIn != nil {
			return ErrAlreadyClockedIn
		}
		r.ClockIn = &now

	case ActionBreakStart:
		if r.ClockIn == nil {
			return ErrNotClockedIn
		}
		if r.OpenBreak() >= 0 {
			return ErrAlreadyOnBreak
		}
		r.Breaks = append(r.Breaks, Break{Start: now})

	case ActionBreakEnd:
		i := r.OpenBreak()
		if i < 0 {
			return ErrNotOnBreak
		}
		r.Breaks[i].End = &now

	case ActionClockOut:
		if r.ClockIn == nil {
			return ErrNotClockedIn
		}
		if i := r.OpenBreak(); i >= 0 {
			r.Breaks[i].End = &now
		}
		r.ClockOut = &now

	default:
		return ErrInvalidAction
	}

	return nil
}

// ComputeStatus grades a closed record against the expected start and the
// expected working time: more than LateGrace late or less than 80% of the
// expected time worked is a half day. A record without clock-in is absent.
func (r *Record) ComputeStatus(expectedStart time.Time, expectedWork time.Duration) Status {
	if r.ClockIn == nil {
		return StatusAbsent
	}
	if r.ClockIn.Sub(expectedStart) > LateGrace {
		return StatusHalfDay
	}
	if r.ClockOut == nil {
		return StatusHalfDay
	}
	worked := r.ClockOut.Sub(*r.ClockIn) - r.BreakTotal()
	if worked*5 < expectedWork*4 {
		return StatusHalfDay
	}
	return StatusFullDay
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
