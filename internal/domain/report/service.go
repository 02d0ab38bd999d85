package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// ExportAttendance renders attendance records as an xlsx workbook
	ExportAttendance(ctx context.Context, req ExportRequest) (ExportFile, error)

	// Generate Monthly Attendance Report
	GenerateMonthlyAttendanceReport(ctx context.Context, req MonthlyAttendanceReportRequest) (MonthlyAttendanceReport, error)
}
