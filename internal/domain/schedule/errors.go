package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrInvalidClock     = errors.New("invalid time of day, use HH:MM")
)
