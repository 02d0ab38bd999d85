package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/workholic/workholic-go/internal/dashboard"
	"github.com/workholic/workholic-go/internal/domain/attendance"
	"github.com/workholic/workholic-go/internal/tracker"
)

const clearScreen = "\033[H\033[2J"

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live session dashboard (i clock in, b break, o clock out, d N dismiss, q quit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if err := a.login(ctx); err != nil {
				return err
			}

			view := dashboard.New(a.api, nil, a.logger, dashboard.WithTick(func(f dashboard.Frame) {
				fmt.Print(clearScreen)
				_ = f.Render(os.Stdout)
				fmt.Print("> ")
			}))
			view.Mount(ctx)
			defer view.Teardown()

			lines := readLines(ctx, os.Stdin)

			for {
				select {
				case <-ctx.Done():
					return nil
				case line, ok := <-lines:
					if !ok || line == "q" {
						return nil
					}
					a.handleInput(ctx, view, line)
				}
			}
		},
	}
}

// readLines delivers trimmed lines from r until r ends or ctx is done.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func (a *app) handleInput(ctx context.Context, view *dashboard.View, line string) {
	frame := view.Frame()
	switch {
	case line == "i":
		a.act(ctx, view, frame, attendance.ActionClockIn)
	case line == "b" && frame.Phase == tracker.PhaseOnBreak:
		a.act(ctx, view, frame, attendance.ActionBreakEnd)
	case line == "b":
		a.act(ctx, view, frame, attendance.ActionBreakStart)
	case line == "o":
		a.act(ctx, view, frame, attendance.ActionClockOut)
	case strings.HasPrefix(line, "d "):
		if id, err := strconv.ParseUint(strings.TrimSpace(line[2:]), 10, 64); err == nil {
			view.Dismiss(id)
		}
	case line == "":
	default:
		a.logger.Debug("unknown input", "line", line)
	}
}

// act sends action only when the panel offers it.
func (a *app) act(ctx context.Context, view *dashboard.View, frame dashboard.Frame, action attendance.Action) {
	if !frame.Allows(action) {
		view.Notify(tracker.NoticeInfo, notAvailable(action, frame.Phase))
		a.logger.Debug("action not available", "action", action, "phase", frame.Phase.String())
		return
	}
	_ = view.Act(ctx, action)
}

func notAvailable(action attendance.Action, phase tracker.Phase) string {
	return fmt.Sprintf("%s is not available while %s", action, phase)
}

func (a *app) clockCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "clock <clock-in|break-start|break-end|clock-out>",
		Short:     "Send one clock action",
		Args:      cobra.ExactArgs(1),
		ValidArgs: attendance.ActionValues,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := attendance.ClockActionRequest{Action: args[0]}
			if err := req.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.login(ctx); err != nil {
				return err
			}

			action := attendance.Action(req.Action)
			t := tracker.New(a.api, nil, nil, a.logger)
			if err := t.Refresh(ctx); err != nil {
				return requireRole(err, "employee")
			}
			if phase := t.State().Phase; !tracker.Allowed(phase, action) {
				return errors.New(notAvailable(action, phase))
			}
			if err := t.Apply(ctx, action); err != nil {
				return requireRole(err, "employee")
			}

			state := t.State()
			fmt.Printf("%s. %s\n", state.Phase, state.Detail())
			return nil
		},
	}
}

func (a *app) scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Show today's work window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.login(ctx); err != nil {
				return err
			}

			today := time.Now()
			outcome, _ := dashboard.ResolveToday(ctx, a.api, today, a.logger)

			fmt.Println(today.Format("Monday, 02 January 2006"))
			for _, line := range outcome.Lines() {
				fmt.Println("  " + line)
			}
			return nil
		},
	}
}

func (a *app) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recent attendance records",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.login(ctx); err != nil {
				return err
			}
			records, err := a.api.History(ctx)
			if err != nil {
				return err
			}
			return printRecords(records, false)
		},
	}
}

func (a *app) calendarCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Monthly attendance calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if month != "" {
				parsed, err := time.ParseInLocation("2006-01", month, time.Local)
				if err != nil {
					return fmt.Errorf("--month must be YYYY-MM")
				}
				day = parsed
			}

			ctx := cmd.Context()
			if err := a.login(ctx); err != nil {
				return err
			}
			records, err := a.api.History(ctx)
			if err != nil {
				return err
			}
			return dashboard.NewMonth(day, records, time.Now()).Render(os.Stdout)
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month to show (YYYY-MM), default current")
	return cmd
}

func (a *app) leaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the points leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.login(ctx); err != nil {
				return err
			}
			board, err := a.api.Leaderboard(ctx)
			if err != nil {
				return err
			}
			return dashboard.RenderLeaderboard(os.Stdout, board)
		},
	}
}

func printRecords(records []attendance.Record, withEmployee bool) error {
	if len(records) == 0 {
		fmt.Println("No attendance records")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if withEmployee {
		fmt.Fprint(w, "EMPLOYEE\t")
	}
	fmt.Fprintln(w, "DATE\tCLOCK IN\tCLOCK OUT\tBREAK\tWORKED\tSTATUS")
	for _, r := range records {
		if withEmployee {
			name := r.Email
			if r.EmployeeName != nil && *r.EmployeeName != "" {
				name = *r.EmployeeName
			}
			fmt.Fprintf(w, "%s\t", name)
		}
		status := "-"
		if r.Status != "" {
			status = r.Status.Label()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d min\t%s\t%s\n",
			r.Date.Format(attendance.DateLayout),
			clockOf(r.ClockIn),
			clockOf(r.ClockOut),
			int(r.BreakTotal()/time.Minute),
			tracker.FormatCompact(time.Duration(r.WorkedMinutes())*time.Minute),
			status,
		)
	}
	return w.Flush()
}

func clockOf(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Local().Format("15:04:05")
}
