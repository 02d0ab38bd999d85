package tracker

import (
	"fmt"
	"time"
)

const timeOfDay = "15:04:05"

// Timers are the counters shown on the dashboard.
type Timers struct {
	// Work is time clocked in minus breaks. It stops while on break.
	Work time.Duration
	// Break is the running break, zero when not on one.
	Break time.Duration
	// BreakTotal is closed breaks plus the running one.
	BreakTotal time.Duration
	// Running is false once the day is closed or before it starts.
	Running bool
}

// Timers computes the counters at now. Finished days do not depend on now.
func (s State) Timers(now time.Time) Timers {
	switch s.Phase {
	case PhaseClockedIn:
		return Timers{
			Work:       nonNegative(now.Sub(*s.WorkStart) - s.AccumulatedBreak),
			BreakTotal: s.AccumulatedBreak,
			Running:    true,
		}
	case PhaseOnBreak:
		running := nonNegative(now.Sub(*s.BreakStart))
		return Timers{
			Work:       nonNegative(s.BreakStart.Sub(*s.WorkStart) - s.AccumulatedBreak),
			Break:      running,
			BreakTotal: s.AccumulatedBreak + running,
			Running:    true,
		}
	case PhaseClockedOut:
		t := Timers{BreakTotal: s.AccumulatedBreak}
		if s.Record.ClockIn != nil {
			t.Work = nonNegative(s.Record.ClockOut.Sub(*s.Record.ClockIn) - s.AccumulatedBreak)
		}
		return t
	default:
		return Timers{}
	}
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// FormatClock renders d as zero padded HH:MM:SS.
func FormatClock(d time.Duration) string {
	secs := int64(nonNegative(d) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

// FormatCompact renders d as "Xh Ym", or "Ym" under an hour.
func FormatCompact(d time.Duration) string {
	mins := int64(nonNegative(d) / time.Minute)
	if h := mins / 60; h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins%60)
	}
	return fmt.Sprintf("%dm", mins)
}
