package dashboard

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/workholic/workholic-go/internal/domain/attendance"
	"github.com/workholic/workholic-go/internal/domain/schedule"
	"github.com/workholic/workholic-go/internal/tracker"
)

// Frame is everything the session panel shows at one instant.
type Frame struct {
	At             time.Time
	Phase          tracker.Phase
	StatusLabel    string
	StatusDetail   string
	WorkClock      string
	BreakClock     string
	WorkSummary    string
	BreakSummary   string
	DayStatus      string
	Schedule       []string
	ScheduleSource schedule.Source
	Actions        []attendance.Action
	Notices        []tracker.Notice
}

// Frame computes the panel from memory only.
func (v *View) Frame() Frame {
	now := v.now()
	state := v.tracker.State()
	timers := state.Timers(now)
	outcome := v.Schedule()

	return Frame{
		At:             now,
		Phase:          state.Phase,
		StatusLabel:    state.Phase.String(),
		StatusDetail:   state.Detail(),
		WorkClock:      tracker.FormatClock(timers.Work),
		BreakClock:     tracker.FormatClock(timers.Break),
		WorkSummary:    tracker.FormatCompact(timers.Work),
		BreakSummary:   fmt.Sprintf("%d min", int(timers.BreakTotal/time.Minute)),
		DayStatus:      state.StatusLabel(),
		Schedule:       outcome.Lines(),
		ScheduleSource: outcome.Source,
		Actions:        state.AllowedActions(),
		Notices:        v.notices.Active(),
	}
}

func (f Frame) Allows(action attendance.Action) bool {
	for _, a := range f.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// Render writes the frame as plain text.
func (f Frame) Render(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", f.At.Format("Mon 02 Jan 2006 15:04:05"), f.StatusLabel)
	fmt.Fprintf(&b, "  %s\n", f.StatusDetail)
	fmt.Fprintf(&b, "  Work  %s   Break %s\n", f.WorkClock, f.BreakClock)
	fmt.Fprintf(&b, "  Today %s worked, %s break\n", f.WorkSummary, f.BreakSummary)
	if f.DayStatus != "" {
		fmt.Fprintf(&b, "  Status: %s\n", f.DayStatus)
	}

	b.WriteString("Schedule")
	if f.ScheduleSource == schedule.SourceFallback {
		b.WriteString(" (default)")
	}
	b.WriteString("\n")
	for _, line := range f.Schedule {
		fmt.Fprintf(&b, "  %s\n", line)
	}

	if len(f.Actions) > 0 {
		names := make([]string, len(f.Actions))
		for i, a := range f.Actions {
			names[i] = string(a)
		}
		fmt.Fprintf(&b, "Actions: %s\n", strings.Join(names, ", "))
	}
	for _, n := range f.Notices {
		fmt.Fprintf(&b, "[%s] %s\n", n.Kind, n.Message)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
