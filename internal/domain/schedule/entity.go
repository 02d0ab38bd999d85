package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/workholic/workholic-go/internal/pkg/validator"
)

// WeekendOff is the Spec.Weekend value that takes Saturday and Sunday off.
const WeekendOff = "off"

// DaySpec is the working window for one day category.
type DaySpec struct {
	Start         string `json:"start"`
	End           string `json:"end"`
	BreakDuration int    `json:"breakDuration"`
}

// Spec is an employee's weekly schedule as served by GET /api/schedule/today.
// WorkingSaturdays is nil when undefined; an empty non-nil slice means no
// Saturday of the month is worked.
type Spec struct {
	Weekdays         *DaySpec `json:"weekdays,omitempty"`
	Friday           *DaySpec `json:"friday,omitempty"`
	Saturday         *DaySpec `json:"saturday,omitempty"`
	Weekend          string   `json:"weekend,omitempty"`
	WorkingSaturdays []int    `json:"workingSaturdays"`
}

func (s Spec) IsWeekendOff() bool {
	return s.Weekend == WeekendOff
}

// IsWorkingSaturday reports whether the given week of the month is listed.
func (s Spec) IsWorkingSaturday(week int) bool {
	for _, w := range s.WorkingSaturdays {
		if w == week {
			return true
		}
	}
	return false
}

func (s Spec) Validate() error {
	var errs validator.ValidationErrors

	validateDay := func(field string, d *DaySpec) {
		if d == nil {
			return
		}
		if !validator.IsValidClock(d.Start) {
			errs.Add(field+".start", "start must be in HH:MM format")
		}
		if !validator.IsValidClock(d.End) {
			errs.Add(field+".end", "end must be in HH:MM format")
		}
		if d.BreakDuration < 0 {
			errs.Add(field+".breakDuration", "breakDuration must not be negative")
		}
		start, errStart := ParseClock(d.Start)
		end, errEnd := ParseClock(d.End)
		if errStart == nil && errEnd == nil && end.Minutes() <= start.Minutes() {
			errs.Add(field+".end", "end must be after start")
		}
	}

	validateDay("weekdays", s.Weekdays)
	validateDay("friday", s.Friday)
	validateDay("saturday", s.Saturday)

	for _, w := range s.WorkingSaturdays {
		if w < 1 || w > 5 {
			errs.Add("workingSaturdays", "week of month must be between 1 and 5")
			break
		}
	}

	return errs.Err()
}

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM".
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

// Minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
