// Package tracker derives the live session view of today's attendance
// record: the phase, the elapsed work and break time, and which clock
// actions make sense next.
package tracker

import (
	"time"

	"github.com/workholic/workholic-go/internal/domain/attendance"
)

// Phase is derived from a record, never stored.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseClockedIn
	PhaseOnBreak
	PhaseClockedOut
)

func (p Phase) String() string {
	switch p {
	case PhaseClockedIn:
		return "Clocked In"
	case PhaseOnBreak:
		return "On Break"
	case PhaseClockedOut:
		return "Clocked Out"
	default:
		return "Not Started"
	}
}

// State is the tracker's view of one record.
type State struct {
	Record           *attendance.Record
	Phase            Phase
	WorkStart        *time.Time
	BreakStart       *time.Time
	AccumulatedBreak time.Duration
}

// Reconcile derives the session state from a freshly fetched record. It is
// pure: the record is copied and repeated calls give identical results.
func Reconcile(record *attendance.Record) State {
	if record == nil {
		return State{Phase: PhaseNotStarted}
	}

	rec := cloneRecord(*record)
	s := State{
		Record:           &rec,
		AccumulatedBreak: rec.BreakTotal(),
	}

	switch {
	case rec.ClockOut != nil:
		s.Phase = PhaseClockedOut
	case rec.ClockIn != nil:
		s.WorkStart = rec.ClockIn
		if i := rec.OpenBreak(); i >= 0 {
			s.Phase = PhaseOnBreak
			start := rec.Breaks[i].Start
			s.BreakStart = &start
		} else {
			s.Phase = PhaseClockedIn
		}
	default:
		s.Phase = PhaseNotStarted
	}

	return s
}

func cloneRecord(r attendance.Record) attendance.Record {
	out := r
	if r.ClockIn != nil {
		t := *r.ClockIn
		out.ClockIn = &t
	}
	if r.ClockOut != nil {
		t := *r.ClockOut
		out.ClockOut = &t
	}
	if r.EmployeeName != nil {
		n := *r.EmployeeName
		out.EmployeeName = &n
	}
	out.Breaks = make([]attendance.Break, len(r.Breaks))
	for i, b := range r.Breaks {
		out.Breaks[i] = attendance.Break{Start: b.Start}
		if b.End != nil {
			end := *b.End
			out.Breaks[i].End = &end
		}
	}
	return out
}

// Allowed reports whether action is offered in phase.
func Allowed(phase Phase, action attendance.Action) bool {
	switch action {
	case attendance.ActionClockIn:
		return phase == PhaseNotStarted
	case attendance.ActionBreakStart:
		return phase == PhaseClockedIn
	case attendance.ActionBreakEnd:
		return phase == PhaseOnBreak
	case attendance.ActionClockOut:
		return phase == PhaseClockedIn || phase == PhaseOnBreak
	default:
		return false
	}
}

// AllowedActions lists the enabled controls in display order.
func (s State) AllowedActions() []attendance.Action {
	var out []attendance.Action
	for _, a := range []attendance.Action{
		attendance.ActionClockIn,
		attendance.ActionBreakStart,
		attendance.ActionBreakEnd,
		attendance.ActionClockOut,
	} {
		if Allowed(s.Phase, a) {
			out = append(out, a)
		}
	}
	return out
}

// Detail is the one-line status shown under the phase label.
func (s State) Detail() string {
	switch s.Phase {
	case PhaseClockedIn:
		return "Clocked in at " + s.WorkStart.Local().Format(timeOfDay)
	case PhaseOnBreak:
		return "On break since " + s.BreakStart.Local().Format(timeOfDay)
	case PhaseClockedOut:
		return "Clocked out at " + s.Record.ClockOut.Local().Format(timeOfDay)
	default:
		return "Not clocked in yet"
	}
}

// StatusLabel is the server computed day status, empty until graded.
func (s State) StatusLabel() string {
	if s.Record == nil || s.Record.Status == "" {
		return ""
	}
	return s.Record.Status.Label()
}
