package report

import (
	"fmt"
	"time"

	"github.com/workholic/workholic-go/internal/pkg/validator"
)

// ========================================
// EXCEL EXPORT
// ========================================

// ExportColumns is the header row of the attendance export.
var ExportColumns = []string{
	"Employee Name",
	"Email",
	"Date",
	"Clock In",
	"Clock Out",
	"Status",
	"Break Duration (min)",
	"Total Breaks",
}

const (
	ExportSheetName   = "Attendance Data"
	ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ExportRequest struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	var start, end time.Time
	if r.StartDate != nil && *r.StartDate != "" {
		d, ok := validator.IsValidDate(*r.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
		start = d
	}
	if r.EndDate != nil && *r.EndDate != "" {
		d, ok := validator.IsValidDate(*r.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
		end = d
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportRow is one attendance record flattened for the spreadsheet.
type ExportRow struct {
	EmployeeName string
	Email        string
	Date         string
	ClockIn      string
	ClockOut     string
	Status       string
	BreakMinutes int
	TotalBreaks  int
}

// Values returns the row in ExportColumns order.
func (r ExportRow) Values() []any {
	return []any{r.EmployeeName, r.Email, r.Date, r.ClockIn, r.ClockOut, r.Status, r.BreakMinutes, r.TotalBreaks}
}

type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
	Rows        int
}

// ========================================
// MONTHLY ATTENDANCE REPORT
// ========================================

type MonthlyAttendanceReportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *MonthlyAttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2020 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyAttendanceReport struct {
	PeriodMonth int    `json:"periodMonth"`
	PeriodYear  int    `json:"periodYear"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
	GeneratedAt string `json:"generatedAt"`

	Employees []MonthlyAttendanceEmployee `json:"employees"`
}

type MonthlyAttendanceEmployee struct {
	Email string `json:"email"`
	Name  string `json:"name"`

	Summary AttendanceSummary `json:"summary"`
}

type AttendanceSummary struct {
	FullDays          int     `json:"fullDays"`
	HalfDays          int     `json:"halfDays"`
	Absences          int     `json:"absences"`
	Holidays          int     `json:"holidays"`
	TotalWorkHours    float64 `json:"totalWorkHours"`
	TotalBreakMinutes int     `json:"totalBreakMinutes"`
	AttendancePoints  int     `json:"attendancePoints"`
}
