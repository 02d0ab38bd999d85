package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/workholic/workholic-go/internal/domain/attendance"
	"github.com/workholic/workholic-go/internal/domain/auth"
	"github.com/workholic/workholic-go/internal/domain/leaderboard"
	"github.com/workholic/workholic-go/internal/domain/report"
	"github.com/workholic/workholic-go/internal/domain/schedule"
	"github.com/workholic/workholic-go/internal/domain/user"
)

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (auth.LoginResponse, error) {
	var out auth.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", nil, auth.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	c.SetToken(out.AccessToken)
	return out, nil
}

// Logout revokes the token server side and forgets it.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil, nil)
	c.SetToken("")
	return err
}

func (c *Client) CurrentUser(ctx context.Context) (auth.SessionUser, error) {
	var out struct {
		User auth.SessionUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, nil, &out); err != nil {
		return auth.SessionUser{}, err
	}
	return out.User, nil
}

// Today returns today's record, nil before the first clock-in.
func (c *Client) Today(ctx context.Context) (*attendance.Record, error) {
	var out struct {
		Record *attendance.RecordResponse `json:"record"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/attendance/today", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Record == nil {
		return nil, nil
	}
	rec, err := out.Record.ToRecord()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) ClockAction(ctx context.Context, action attendance.Action) (attendance.Record, error) {
	var out struct {
		Record attendance.RecordResponse `json:"record"`
	}
	req := attendance.ClockActionRequest{Action: string(action)}
	if err := c.do(ctx, http.MethodPost, "/api/clock-action", nil, req, &out); err != nil {
		return attendance.Record{}, err
	}
	return out.Record.ToRecord()
}

func (c *Client) History(ctx context.Context) ([]attendance.Record, error) {
	var out struct {
		Attendance []attendance.RecordResponse `json:"attendance"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/attendance/history", nil, nil, &out); err != nil {
		return nil, err
	}
	return toRecords(out.Attendance)
}

// ScheduleToday is the caller's weekly spec plus the server's rendering of
// today.
type ScheduleToday struct {
	Spec  schedule.Spec `json:"schedule"`
	Today []string      `json:"today"`
}

func (c *Client) Schedule(ctx context.Context) (ScheduleToday, error) {
	var out ScheduleToday
	if err := c.do(ctx, http.MethodGet, "/api/schedule/today", nil, nil, &out); err != nil {
		return ScheduleToday{}, err
	}
	return out, nil
}

func (c *Client) Leaderboard(ctx context.Context) (leaderboard.LeaderboardResponse, error) {
	var out leaderboard.LeaderboardResponse
	if err := c.do(ctx, http.MethodGet, "/api/leaderboard", nil, nil, &out); err != nil {
		return leaderboard.LeaderboardResponse{}, err
	}
	return out, nil
}

// ========================================
// ADMIN
// ========================================

func (c *Client) Employees(ctx context.Context) ([]user.EmployeeResponse, error) {
	var out struct {
		Employees []user.EmployeeResponse `json:"employees"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/employees", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Employees, nil
}

func (c *Client) Users(ctx context.Context) ([]user.UserResponse, error) {
	var out struct {
		Users []user.UserResponse `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) User(ctx context.Context, email string) (user.UserResponse, error) {
	var out struct {
		User user.UserResponse `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/users/"+url.PathEscape(email), nil, nil, &out); err != nil {
		return user.UserResponse{}, err
	}
	return out.User, nil
}

func (c *Client) CreateUser(ctx context.Context, req user.CreateUserRequest) error {
	return c.do(ctx, http.MethodPost, "/api/admin/users/create", nil, req, nil)
}

func (c *Client) UpdateUser(ctx context.Context, req user.UpdateUserRequest) error {
	return c.do(ctx, http.MethodPost, "/api/admin/users/update", nil, req, nil)
}

func (c *Client) DeleteUser(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/users/delete", nil, user.DeleteUserRequest{Email: email}, nil)
}

func (c *Client) UpdateTasks(ctx context.Context, req leaderboard.UpdateTasksRequest) error {
	return c.do(ctx, http.MethodPost, "/api/admin/update-tasks", nil, req, nil)
}

func (c *Client) Attendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, error) {
	q := url.Values{}
	setIf(q, "email", filter.Email)
	setIf(q, "start_date", filter.StartDate)
	setIf(q, "end_date", filter.EndDate)
	setIf(q, "status", filter.Status)
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}

	var out struct {
		Attendance []attendance.RecordResponse `json:"attendance"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/attendance", q, nil, &out); err != nil {
		return nil, err
	}
	return toRecords(out.Attendance)
}

func (c *Client) MonthlyReport(ctx context.Context, month, year int) (report.MonthlyAttendanceReport, error) {
	q := url.Values{}
	q.Set("month", strconv.Itoa(month))
	q.Set("year", strconv.Itoa(year))

	var out struct {
		Report report.MonthlyAttendanceReport `json:"report"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/reports/attendance", q, nil, &out); err != nil {
		return report.MonthlyAttendanceReport{}, err
	}
	return out.Report, nil
}

// ExportExcel downloads the attendance workbook. The filename comes from
// the Content-Disposition header.
func (c *Client) ExportExcel(ctx context.Context, req report.ExportRequest) (report.ExportFile, error) {
	q := url.Values{}
	setIf(q, "start_date", req.StartDate)
	setIf(q, "end_date", req.EndDate)

	httpReq, err := c.newRequest(ctx, http.MethodGet, "/api/admin/export-excel", q, nil)
	if err != nil {
		return report.ExportFile{}, err
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("export: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("read export: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return report.ExportFile{}, decodeError(resp.StatusCode, content)
	}

	file := report.ExportFile{
		Filename:    "attendance-export.xlsx",
		ContentType: resp.Header.Get("Content-Type"),
		Content:     content,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		file.Filename = params["filename"]
	}
	return file, nil
}

func setIf(q url.Values, key string, v *string) {
	if v != nil && *v != "" {
		q.Set(key, *v)
	}
}

func toRecords(in []attendance.RecordResponse) ([]attendance.Record, error) {
	out := make([]attendance.Record, 0, len(in))
	for _, r := range in {
		rec, err := r.ToRecord()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
