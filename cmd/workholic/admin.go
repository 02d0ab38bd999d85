package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/workholic/workholic-go/internal/domain/attendance"
	"github.com/workholic/workholic-go/internal/domain/leaderboard"
	"github.com/workholic/workholic-go/internal/domain/report"
	"github.com/workholic/workholic-go/internal/domain/user"
)

func (a *app) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administration commands",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(cmd); err != nil {
				return err
			}
			return a.login(cmd.Context())
		},
	}
	cmd.AddCommand(
		a.usersCmd(),
		a.tasksCmd(),
		a.attendanceCmd(),
		a.exportCmd(),
		a.reportCmd(),
	)
	return cmd
}

func (a *app) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List and manage users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.api.Users(cmd.Context())
			if err != nil {
				return requireRole(err, "admin")
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "EMAIL\tNAME\tROLE\tSCHEDULE")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Email, u.Name, u.Role, u.Schedule)
			}
			return w.Flush()
		},
	}

	var req user.CreateUserRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.Validate(); err != nil {
				return err
			}
			if err := a.api.CreateUser(cmd.Context(), req); err != nil {
				return requireRole(err, "admin")
			}
			fmt.Println("User created")
			return nil
		},
	}
	userFlags(create, &req.Email, &req.Name, &req.Role, &req.Schedule, &req.Password)

	var upd user.UpdateUserRequest
	update := &cobra.Command{
		Use:   "update",
		Short: "Update a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := upd.Validate(); err != nil {
				return err
			}
			if err := a.api.UpdateUser(cmd.Context(), upd); err != nil {
				return requireRole(err, "admin")
			}
			fmt.Println("User updated")
			return nil
		},
	}
	userFlags(update, &upd.Email, &upd.Name, &upd.Role, &upd.Schedule, &upd.Password)

	del := &cobra.Command{
		Use:   "delete <email>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := user.DeleteUserRequest{Email: args[0]}
			if err := req.Validate(); err != nil {
				return err
			}
			if err := a.api.DeleteUser(cmd.Context(), req.Email); err != nil {
				return requireRole(err, "admin")
			}
			fmt.Println("User deleted")
			return nil
		},
	}

	cmd.AddCommand(create, update, del)
	return cmd
}

func userFlags(cmd *cobra.Command, email, name, role, schedule, password *string) {
	cmd.Flags().StringVar(email, "user-email", "", "User email")
	cmd.Flags().StringVar(name, "name", "", "Display name")
	cmd.Flags().StringVar(role, "role", string(user.RoleEmployee), "Role (admin or employee)")
	cmd.Flags().StringVar(schedule, "schedule", "general", "Schedule name")
	cmd.Flags().StringVar(password, "user-password", "", "Password (empty lets the user set it on first login)")
	_ = cmd.MarkFlagRequired("user-email")
}

func (a *app) tasksCmd() *cobra.Command {
	var req leaderboard.UpdateTasksRequest
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Add task points to an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.Validate(); err != nil {
				return err
			}
			if err := a.api.UpdateTasks(cmd.Context(), req); err != nil {
				return requireRole(err, "admin")
			}
			fmt.Printf("Added %d %s task(s) to %s\n", req.Count, req.TaskType, req.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "user-email", "", "Employee email")
	cmd.Flags().StringVar(&req.TaskType, "type", string(leaderboard.TaskSmall), "Task type (small, regular, big)")
	cmd.Flags().IntVar(&req.Count, "count", 1, "Number of tasks, must be positive")
	_ = cmd.MarkFlagRequired("user-email")
	return cmd
}

func (a *app) attendanceCmd() *cobra.Command {
	var email, start, end, status string
	var limit int
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "List attendance of all employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := attendance.AttendanceFilter{Limit: limit}
			for _, f := range []struct {
				dst **string
				val string
			}{{&filter.Email, email}, {&filter.StartDate, start}, {&filter.EndDate, end}, {&filter.Status, status}} {
				if f.val != "" {
					v := f.val
					*f.dst = &v
				}
			}
			if err := filter.Validate(); err != nil {
				return err
			}

			records, err := a.api.Attendance(cmd.Context(), filter)
			if err != nil {
				return requireRole(err, "admin")
			}
			return printRecords(records, true)
		},
	}
	cmd.Flags().StringVar(&email, "user-email", "", "Only this employee")
	cmd.Flags().StringVar(&start, "start", "", "From date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "To date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "Status (FD, HD, A, H)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum records")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var start, end, dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download attendance as an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req report.ExportRequest
			if start != "" {
				req.StartDate = &start
			}
			if end != "" {
				req.EndDate = &end
			}
			if err := req.Validate(); err != nil {
				return err
			}

			file, err := a.api.ExportExcel(cmd.Context(), req)
			if err != nil {
				return requireRole(err, "admin")
			}
			path := filepath.Join(dir, filepath.Base(file.Filename))
			if err := os.WriteFile(path, file.Content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Printf("Saved %s (%d bytes)\n", path, len(file.Content))
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "From date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "To date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dir, "dir", ".", "Output directory")
	return cmd
}

func (a *app) reportCmd() *cobra.Command {
	var month, year int
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Monthly attendance summary per employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := report.MonthlyAttendanceReportRequest{Month: month, Year: year}
			if err := req.Validate(); err != nil {
				return err
			}
			rep, err := a.api.MonthlyReport(cmd.Context(), month, year)
			if err != nil {
				return requireRole(err, "admin")
			}

			fmt.Printf("%s to %s\n", rep.PeriodStart, rep.PeriodEnd)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "EMPLOYEE\tFD\tHD\tA\tH\tHOURS\tBREAK MIN\tPOINTS")
			for _, e := range rep.Employees {
				s := e.Summary
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%.2f\t%d\t%d\n",
					e.Name, s.FullDays, s.HalfDays, s.Absences, s.Holidays,
					s.TotalWorkHours, s.TotalBreakMinutes, s.AttendancePoints)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&month, "month", 0, "Month (1-12)")
	cmd.Flags().IntVar(&year, "year", 0, "Year")
	_ = cmd.MarkFlagRequired("month")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}
