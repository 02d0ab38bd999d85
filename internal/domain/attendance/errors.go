package attendance

import "errors"

// Attendance domain errors
var (
	// Clock action errors
	ErrAlreadyClockedIn  = errors.New("you have already clocked in today")
	ErrNotClockedIn      = errors.New("you have not clocked in yet")
	ErrAlreadyClockedOut = errors.New("you have already clocked out today")
	ErrAlreadyOnBreak    = errors.New("a break is already in progress")
	ErrNotOnBreak        = errors.New("no break is in progress")
	ErrInvalidAction     = errors.New("invalid clock action")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidRecord      = errors.New("malformed attendance record")
)
