package schedule

import (
	"fmt"
	"time"
)

type OutcomeKind int

const (
	// KindNoSchedule means no rule produced a window ("No schedule available").
	KindNoSchedule OutcomeKind = iota
	// KindDayOff is an explicit day off (weekend, non-working Saturday).
	KindDayOff
	KindWorkWindow
)

func (k OutcomeKind) String() string {
	switch k {
	case KindDayOff:
		return "day_off"
	case KindWorkWindow:
		return "work_window"
	default:
		return "no_schedule"
	}
}

// Source tells a server-confirmed outcome apart from the degraded default.
type Source string

const (
	SourceServer   Source = "server"
	SourceFallback Source = "fallback"
)

// Outcome is the resolved schedule for one calendar date.
type Outcome struct {
	Kind   OutcomeKind
	Reason string
	Source Source

	Start         Clock
	End           Clock
	WorkMinutes   int
	RequiredHours int
	BreakMinutes  int
}

func (o Outcome) IsWorkDay() bool {
	return o.Kind == KindWorkWindow
}

// Lines renders the outcome the way the dashboard shows today's schedule.
func (o Outcome) Lines() []string {
	switch o.Kind {
	case KindWorkWindow:
		return []string{
			"Clock In: " + o.Start.String(),
			"Clock Out: " + o.End.String(),
			fmt.Sprintf("%dh required", o.RequiredHours),
			fmt.Sprintf("%d min break", o.BreakMinutes),
		}
	case KindDayOff:
		return []string{o.Reason + " - No work scheduled"}
	default:
		return []string{"No schedule available"}
	}
}

// Rule is one step of the resolution order. Rules are evaluated top to
// bottom and the first one whose Matches returns true decides the outcome.
type Rule struct {
	Name    string
	Matches func(s Spec, day time.Time) bool
	Resolve func(s Spec, day time.Time) Outcome
}

// Rules is the resolution order; precedence is significant.
var Rules = []Rule{
	{
		Name: "weekend_off",
		Matches: func(s Spec, day time.Time) bool {
			return s.IsWeekendOff() && isWeekend(day)
		},
		Resolve: func(s Spec, day time.Time) Outcome {
			return dayOff("Weekend")
		},
	},
	{
		Name: "friday_override",
		Matches: func(s Spec, day time.Time) bool {
			return s.IsWeekendOff() && day.Weekday() == time.Friday && s.Friday != nil
		},
		Resolve: func(s Spec, day time.Time) Outcome {
			return windowFrom(*s.Friday)
		},
	},
	{
		Name: "working_saturdays",
		Matches: func(s Spec, day time.Time) bool {
			return s.WorkingSaturdays != nil && day.Weekday() == time.Saturday
		},
		Resolve: func(s Spec, day time.Time) Outcome {
			if !s.IsWorkingSaturday(WeekOfMonth(day)) {
				return dayOff("Saturday")
			}
			if s.Saturday == nil {
				return noSchedule()
			}
			return windowFrom(*s.Saturday)
		},
	},
	{
		Name: "saturday",
		Matches: func(s Spec, day time.Time) bool {
			return day.Weekday() == time.Saturday && s.Saturday != nil
		},
		Resolve: func(s Spec, day time.Time) Outcome {
			return windowFrom(*s.Saturday)
		},
	},
	{
		Name: "weekdays",
		Matches: func(s Spec, day time.Time) bool {
			return s.Weekdays != nil
		},
		Resolve: func(s Spec, day time.Time) Outcome {
			return windowFrom(*s.Weekdays)
		},
	},
}

// Resolve applies Rules to spec for the given date. A nil spec resolves to
// KindNoSchedule. Resolve never mutates spec.
func Resolve(spec *Spec, day time.Time) Outcome {
	if spec == nil {
		return noSchedule()
	}
	for _, rule := range Rules {
		if rule.Matches(*spec, day) {
			return rule.Resolve(*spec, day)
		}
	}
	return noSchedule()
}

// WeekdayWindow is the weekdays window of s regardless of the date, or
// KindNoSchedule when s has none.
func (s Spec) WeekdayWindow() Outcome {
	if s.Weekdays == nil {
		return noSchedule()
	}
	return windowFrom(*s.Weekdays)
}

// On returns the clock time c on the calendar date of day.
func (c Clock) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// Fallback is the degraded-mode outcome used when the schedule service is
// unreachable: 10:30-19:00 with 8h required and a 60 minute break on
// weekdays, nothing on weekends.
func Fallback(day time.Time) Outcome {
	if isWeekend(day) {
		o := dayOff("Weekend")
		o.Source = SourceFallback
		return o
	}
	return Outcome{
		Kind:          KindWorkWindow,
		Source:        SourceFallback,
		Start:         Clock{Hour: 10, Minute: 30},
		End:           Clock{Hour: 19},
		WorkMinutes:   450,
		RequiredHours: 8,
		BreakMinutes:  60,
	}
}

// WeekOfMonth is ceil(day-of-month / 7).
func WeekOfMonth(day time.Time) int {
	return (day.Day() + 6) / 7
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func dayOff(reason string) Outcome {
	return Outcome{Kind: KindDayOff, Reason: reason, Source: SourceServer}
}

func noSchedule() Outcome {
	return Outcome{Kind: KindNoSchedule, Source: SourceServer}
}

func windowFrom(d DaySpec) Outcome {
	start, err := ParseClock(d.Start)
	if err != nil {
		return noSchedule()
	}
	end, err := ParseClock(d.End)
	if err != nil {
		return noSchedule()
	}

	work := end.Minutes() - start.Minutes() - d.BreakDuration
	if work < 0 {
		work = 0
	}

	return Outcome{
		Kind:          KindWorkWindow,
		Source:        SourceServer,
		Start:         start,
		End:           end,
		WorkMinutes:   work,
		RequiredHours: work / 60,
		BreakMinutes:  d.BreakDuration,
	}
}
