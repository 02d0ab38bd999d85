package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/workholic/workholic-go/internal/domain/attendance"
	"github.com/workholic/workholic-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

// exportLimit caps the rows of a single export.
const exportLimit = 5000

const timestampLayout = "2006-01-02 15:04:05"

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	now            func() time.Time
}

func NewReportService(attendanceRepo attendance.AttendanceRepository, now func() time.Time) report.ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		now:            now,
	}
}

// ExportAttendance renders every matching record as one spreadsheet row
func (s *ReportServiceImpl) ExportAttendance(ctx context.Context, req report.ExportRequest) (report.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return report.ExportFile{}, err
	}

	records, err := s.attendanceRepo.List(ctx, attendance.AttendanceFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Limit:     exportLimit,
	})
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to get attendance data: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := report.ExportSheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	header := make([]any, 0, len(report.ExportColumns))
	for _, c := range report.ExportColumns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(report.ExportColumns))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	for i, rec := range records {
		values := ToExportRow(rec).Values()
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
		}
	}

	_ = f.SetColWidth(sheet, "A", "B", 28)
	_ = f.SetColWidth(sheet, "C", "E", 20)
	_ = f.SetColWidth(sheet, "F", lastCol, 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.ExportFile{
		Filename:    fmt.Sprintf("attendance-export-%s.xlsx", s.now().Format("2006-01-02")),
		ContentType: report.ExportContentType,
		Content:     buf.Bytes(),
		Rows:        len(records),
	}, nil
}

// ToExportRow flattens a record. Missing clock times read "N/A" and the
// employee email stands in for an unknown name.
func ToExportRow(rec attendance.Record) report.ExportRow {
	row := report.ExportRow{
		EmployeeName: rec.Email,
		Email:        rec.Email,
		Date:         rec.Date.Format(attendance.DateLayout),
		ClockIn:      formatTimestamp(rec.ClockIn),
		ClockOut:     formatTimestamp(rec.ClockOut),
		Status:       string(rec.Status),
		BreakMinutes: int(rec.BreakTotal() / time.Minute),
		TotalBreaks:  len(rec.Breaks),
	}
	if rec.EmployeeName != nil && *rec.EmployeeName != "" {
		row.EmployeeName = *rec.EmployeeName
	}
	if row.Status == "" {
		row.Status = "N/A"
	}
	return row
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Local().Format(timestampLayout)
}

// GenerateMonthlyAttendanceReport generates the monthly attendance report
func (s *ReportServiceImpl) GenerateMonthlyAttendanceReport(ctx context.Context, req report.MonthlyAttendanceReportRequest) (report.MonthlyAttendanceReport, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return report.MonthlyAttendanceReport{}, err
	}

	// Calculate period dates
	periodStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.Local)
	periodEnd := periodStart.AddDate(0, 1, -1)
	start := periodStart.Format(attendance.DateLayout)
	end := periodEnd.Format(attendance.DateLayout)

	records, err := s.attendanceRepo.List(ctx, attendance.AttendanceFilter{
		StartDate: &start,
		EndDate:   &end,
		Limit:     exportLimit,
	})
	if err != nil {
		return report.MonthlyAttendanceReport{}, fmt.Errorf("failed to get attendance data: %w", err)
	}

	byEmail := map[string]*report.MonthlyAttendanceEmployee{}
	workedMinutes := map[string]int{}
	for _, rec := range records {
		emp, ok := byEmail[rec.Email]
		if !ok {
			emp = &report.MonthlyAttendanceEmployee{Email: rec.Email, Name: rec.Email}
			if rec.EmployeeName != nil {
				emp.Name = *rec.EmployeeName
			}
			byEmail[rec.Email] = emp
		}

		switch rec.Status {
		case attendance.StatusFullDay:
			emp.Summary.FullDays++
		case attendance.StatusHalfDay:
			emp.Summary.HalfDays++
		case attendance.StatusAbsent:
			emp.Summary.Absences++
		case attendance.StatusHoliday:
			emp.Summary.Holidays++
		}
		emp.Summary.AttendancePoints += rec.Status.Points()
		emp.Summary.TotalBreakMinutes += int(rec.BreakTotal() / time.Minute)
		workedMinutes[rec.Email] += rec.WorkedMinutes()
	}

	employees := make([]report.MonthlyAttendanceEmployee, 0, len(byEmail))
	for email, emp := range byEmail {
		emp.Summary.TotalWorkHours = math.Round(float64(workedMinutes[email])/60*100) / 100
		employees = append(employees, *emp)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].Name < employees[j].Name })

	return report.MonthlyAttendanceReport{
		PeriodMonth: req.Month,
		PeriodYear:  req.Year,
		PeriodStart: start,
		PeriodEnd:   end,
		GeneratedAt: s.now().Format(time.RFC3339),
		Employees:   employees,
	}, nil
}
