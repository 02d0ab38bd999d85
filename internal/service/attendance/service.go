package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workholic/workholic-go/internal/domain/attendance"
	"github.com/workholic/workholic-go/internal/domain/leaderboard"
	"github.com/workholic/workholic-go/internal/domain/schedule"
	"github.com/workholic/workholic-go/internal/domain/user"
	"github.com/workholic/workholic-go/internal/pkg/database"
)

// HistoryLimit is the number of records GetHistory returns.
const HistoryLimit = 30

type AttendanceServiceImpl struct {
	tx database.TxRunner
	attendance.AttendanceRepository
	user.UserRepository
	scheduleService    schedule.ScheduleService
	leaderboardService leaderboard.LeaderboardService
	now                func() time.Time
}

// ClockAction implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockAction(ctx context.Context, email string, req attendance.ClockActionRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}
	action := attendance.Action(req.Action)
	now := a.now()
	date := attendance.DateOf(now)

	var result attendance.Record
	err := a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		existing, err := a.AttendanceRepository.GetByEmailAndDate(txCtx, email, date)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}

		record := attendance.Record{Email: email, Date: date}
		if existing != nil {
			record = *existing
		}

		if err := record.Apply(action, now); err != nil {
			return err
		}

		if action == attendance.ActionClockOut {
			status, err := a.gradeDay(txCtx, email, &record)
			if err != nil {
				return err
			}
			record.Status = status
			if err := a.leaderboardService.AwardAttendance(txCtx, email, status); err != nil {
				return fmt.Errorf("failed to award attendance points: %w", err)
			}
		}

		if existing == nil {
			created, err := a.AttendanceRepository.Create(txCtx, record)
			if err != nil {
				return err
			}
			result = created
			return nil
		}

		if err := a.AttendanceRepository.Update(txCtx, record); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		result = record
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("clock action applied", "email", email, "action", action, "status", result.Status)
	return attendance.NewRecordResponse(result), nil
}

// gradeDay resolves the employee's window for the record's date and grades
// the record against it. Days that resolve to no work are graded against
// the weekday window.
func (a *AttendanceServiceImpl) gradeDay(ctx context.Context, email string, record *attendance.Record) (attendance.Status, error) {
	u, err := a.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	spec, err := a.scheduleService.GetSpec(ctx, u.Schedule)
	if err != nil {
		return "", err
	}

	window := schedule.Resolve(&spec, record.Date)
	if !window.IsWorkDay() {
		window = spec.WeekdayWindow()
	}
	if !window.IsWorkDay() {
		return attendance.StatusFullDay, nil
	}

	expectedStart := window.Start.On(record.Date)
	expectedWork := time.Duration(window.WorkMinutes) * time.Minute
	return record.ComputeStatus(expectedStart, expectedWork), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, email string) (*attendance.RecordResponse, error) {
	record, err := a.AttendanceRepository.GetByEmailAndDate(ctx, email, attendance.DateOf(a.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return nil, nil
	}
	resp := attendance.NewRecordResponse(*record)
	return &resp, nil
}

// GetHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetHistory(ctx context.Context, email string) ([]attendance.RecordResponse, error) {
	records, err := a.AttendanceRepository.ListByEmail(ctx, email, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance history: %w", err)
	}
	return toResponses(records), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return toResponses(records), nil
}

// MarkAbsent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAbsent(ctx context.Context, date time.Time) (int, error) {
	date = attendance.DateOf(date)

	employees, err := a.UserRepository.ListByRole(ctx, user.RoleEmployee)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees: %w", err)
	}

	present, err := a.AttendanceRepository.ListEmailsByDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to list attendance for %s: %w", date.Format(attendance.DateLayout), err)
	}
	seen := make(map[string]bool, len(present))
	for _, email := range present {
		seen[email] = true
	}

	marked := 0
	for _, emp := range employees {
		if seen[emp.Email] {
			continue
		}

		outcome, err := a.scheduleService.ResolveDay(ctx, emp.Schedule, date)
		if err != nil {
			slog.Error("failed to resolve schedule", "email", emp.Email, "error", err)
			continue
		}
		if !outcome.IsWorkDay() {
			continue
		}

		err = a.tx.WithinTx(ctx, func(txCtx context.Context) error {
			if _, err := a.AttendanceRepository.Create(txCtx, attendance.Record{
				Email:  emp.Email,
				Date:   date,
				Status: attendance.StatusAbsent,
			}); err != nil {
				return err
			}
			return a.leaderboardService.AwardAttendance(txCtx, emp.Email, attendance.StatusAbsent)
		})
		if err != nil {
			slog.Error("failed to mark absent", "email", emp.Email, "error", err)
			continue
		}
		marked++
	}

	return marked, nil
}

func toResponses(records []attendance.Record) []attendance.RecordResponse {
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewRecordResponse(r))
	}
	return responses
}

func NewAttendanceService(
	tx database.TxRunner,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	scheduleService schedule.ScheduleService,
	leaderboardService leaderboard.LeaderboardService,
	now func() time.Time,
) attendance.AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		scheduleService:      scheduleService,
		leaderboardService:   leaderboardService,
		now:                  now,
	}
}
