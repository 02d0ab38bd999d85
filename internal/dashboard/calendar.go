package dashboard

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/workholic/workholic-go/internal/domain/attendance"
)

// Day is one calendar cell.
type Day struct {
	Date         time.Time
	Status       attendance.Status
	Weekend      bool
	Today        bool
	BreakMinutes int
	ClockIn      *time.Time
	ClockOut     *time.Time
}

// Month is a calendar month laid out Sunday first. Lead is the number of
// blank cells before the 1st.
type Month struct {
	First time.Time
	Lead  int
	Days  []Day
}

// NewMonth places records onto the month that contains day.
func NewMonth(day time.Time, records []attendance.Record, now time.Time) Month {
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	last := first.AddDate(0, 1, -1)

	byDate := make(map[string]attendance.Record, len(records))
	for _, r := range records {
		byDate[r.Date.Format(attendance.DateLayout)] = r
	}

	m := Month{First: first, Lead: int(first.Weekday())}
	today := now.Format(attendance.DateLayout)
	for d := 1; d <= last.Day(); d++ {
		date := first.AddDate(0, 0, d-1)
		key := date.Format(attendance.DateLayout)
		cell := Day{
			Date:    date,
			Weekend: date.Weekday() == time.Saturday || date.Weekday() == time.Sunday,
			Today:   key == today,
		}
		if r, ok := byDate[key]; ok {
			cell.Status = r.Status
			cell.BreakMinutes = int(r.BreakTotal() / time.Minute)
			cell.ClockIn, cell.ClockOut = r.ClockIn, r.ClockOut
		}
		m.Days = append(m.Days, cell)
	}
	return m
}

// Render draws a seven column grid. Each cell shows the day and its status
// code; unrecorded weekends show "--".
func (m Month) Render(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", m.First.Format("January 2006"))
	b.WriteString(" Sun    Mon    Tue    Wed    Thu    Fri    Sat\n")

	col := 0
	for ; col < m.Lead; col++ {
		b.WriteString("       ")
	}
	for _, d := range m.Days {
		mark := string(d.Status)
		if mark == "" && d.Weekend {
			mark = "--"
		}
		open, closing := " ", " "
		if d.Today {
			open, closing = "[", "]"
		}
		fmt.Fprintf(&b, "%s%2d %-2s%s", open, d.Date.Day(), mark, closing)
		col++
		if col%7 == 0 {
			b.WriteString("\n")
		}
	}
	if col%7 != 0 {
		b.WriteString("\n")
	}
	b.WriteString("FD full day  HD half day  A absent  H holiday\n")

	_, err := io.WriteString(w, b.String())
	return err
}
