package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workholic/workholic-go/internal/domain/attendance"
	"github.com/workholic/workholic-go/internal/domain/auth"
	"github.com/workholic/workholic-go/internal/domain/leaderboard"
	"github.com/workholic/workholic-go/internal/domain/report"
	"github.com/workholic/workholic-go/internal/domain/user"
	"github.com/workholic/workholic-go/internal/fixtures"
	"github.com/workholic/workholic-go/internal/pkg/jwt"
	"github.com/workholic/workholic-go/internal/pkg/sse"
	scheduleService "github.com/workholic/workholic-go/internal/service/schedule"
)

const handlerTestSecret = "test-secret-key-for-jwt"

var testUsers = map[string]user.User{
	"admin@workholic.in": {Email: "admin@workholic.in", Name: "Admin", Role: user.RoleAdmin, Schedule: "general"},
	"asha@workholic.in":  {Email: "asha@workholic.in", Name: "Asha Rao", Role: user.RoleEmployee, Schedule: "general"},
}

type stubAuthService struct {
	jwt jwt.Service
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	u, ok := testUsers[req.Email]
	if !ok || req.Password != "secret123" {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	token, exp, err := s.jwt.GenerateAccessToken(u)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	return auth.LoginResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: exp,
		Role:                 string(u.Role),
		User:                 auth.SessionUser{Email: u.Email, Name: u.Name, Role: string(u.Role), Schedule: u.Schedule},
	}, nil
}

func (s *stubAuthService) Logout(ctx context.Context, tokenID string, expiresAt int64) error {
	s.jwt.RevokeToken(tokenID, expiresAt)
	return nil
}

func (s *stubAuthService) CurrentUser(ctx context.Context, email string) (auth.SessionUser, error) {
	u, ok := testUsers[email]
	if !ok {
		return auth.SessionUser{}, user.ErrUserNotFound
	}
	return auth.SessionUser{Email: u.Email, Name: u.Name, Role: string(u.Role), Schedule: u.Schedule}, nil
}

type stubAttendanceService struct {
	attendance.AttendanceService
	lastEmail string
}

func (s *stubAttendanceService) ClockAction(ctx context.Context, email string, req attendance.ClockActionRequest) (attendance.RecordResponse, error) {
	s.lastEmail = email
	if req.Action == string(attendance.ActionBreakEnd) {
		return attendance.RecordResponse{}, attendance.ErrNotOnBreak
	}
	in := "2024-06-04T10:30:00Z"
	return attendance.RecordResponse{Date: "2024-06-04", ClockIn: &in, Breaks: []attendance.BreakResponse{}}, nil
}

func (s *stubAttendanceService) GetToday(ctx context.Context, email string) (*attendance.RecordResponse, error) {
	return nil, nil
}

type stubLeaderboardService struct {
	leaderboard.LeaderboardService
	updated []leaderboard.UpdateTasksRequest
}

func (s *stubLeaderboardService) Get(ctx context.Context, email string, isEmployee bool) (leaderboard.LeaderboardResponse, error) {
	rank := 9
	return leaderboard.LeaderboardResponse{
		Leaderboard: []leaderboard.Entry{{Rank: 1, Name: "Ravi", TotalPoints: 10}},
		UserRank:    &rank,
	}, nil
}

func (s *stubLeaderboardService) UpdateTasks(ctx context.Context, req leaderboard.UpdateTasksRequest) error {
	s.updated = append(s.updated, req)
	return nil
}

type stubUserService struct {
	user.UserService
}

func (s *stubUserService) List(ctx context.Context) ([]user.UserResponse, error) {
	var out []user.UserResponse
	for _, u := range testUsers {
		out = append(out, user.NewUserResponse(u))
	}
	return out, nil
}

func (s *stubUserService) Delete(ctx context.Context, actor string, req user.DeleteUserRequest) error {
	if actor == req.Email {
		return user.ErrCannotDeleteSelf
	}
	return nil
}

type stubReportService struct {
	report.ReportService
}

func (s *stubReportService) ExportAttendance(ctx context.Context, req report.ExportRequest) (report.ExportFile, error) {
	return report.ExportFile{
		Filename:    "attendance-export-2024-06-05.xlsx",
		ContentType: report.ExportContentType,
		Content:     []byte("PK-xlsx"),
	}, nil
}

type testServer struct {
	srv         *httptest.Server
	attendance  *stubAttendanceService
	leaderboard *stubLeaderboardService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	attendanceSvc := &stubAttendanceService{}
	leaderboardSvc := &stubLeaderboardService{}
	schedules := scheduleService.NewScheduleService(fixtures.NewPresetRepository(), fixtures.DefaultScheduleName)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(logger, []string{"http://localhost:3000"}, jwtService, Handlers{
		Auth:        NewAuthHandler(&stubAuthService{jwt: jwtService}),
		Attendance:  NewAttendanceHandler(attendanceSvc, sse.NewHub()),
		Schedule:    NewScheduleHandler(schedules, func() time.Time { return time.Date(2024, 6, 4, 9, 0, 0, 0, time.Local) }),
		Leaderboard: NewLeaderboardHandler(leaderboardSvc),
		User:        NewUserHandler(&stubUserService{}),
		Report:      NewReportHandler(&stubReportService{}),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{srv: srv, attendance: attendanceSvc, leaderboard: leaderboardSvc}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp, decoded
}

func (ts *testServer) login(t *testing.T, email string) string {
	t.Helper()
	resp, body := ts.do(t, http.MethodPost, "/api/login", "", auth.LoginRequest{Email: email, Password: "secret123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, ok := body["token"].(string)
	require.True(t, ok)
	return token
}

func TestRouter_PublicEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp, body := ts.do(t, http.MethodGet, "/api/test", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Server is running", body["message"])

	resp, body = ts.do(t, http.MethodPost, "/api/login", "", auth.LoginRequest{Email: "asha@workholic.in", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid credentials", body["message"])

	resp, body = ts.do(t, http.MethodPost, "/api/login", "", auth.LoginRequest{Email: "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	details := body["error"].(map[string]any)["details"].(map[string]any)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
}

func TestRouter_RequiresToken(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.do(t, http.MethodPost, "/api/clock-action", "", attendance.ClockActionRequest{Action: "clock-in"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodGet, "/api/user", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_EmployeeFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "asha@workholic.in")

	resp, body := ts.do(t, http.MethodPost, "/api/clock-action", token, attendance.ClockActionRequest{Action: "clock-in"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	record := body["record"].(map[string]any)
	assert.Equal(t, "2024-06-04T10:30:00Z", record["clockIn"])
	assert.Equal(t, "asha@workholic.in", ts.attendance.lastEmail)

	resp, body = ts.do(t, http.MethodPost, "/api/clock-action", token, attendance.ClockActionRequest{Action: "break-end"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, attendance.ErrNotOnBreak.Error(), body["message"])

	resp, body = ts.do(t, http.MethodGet, "/api/attendance/today", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "record")
	assert.Nil(t, body["record"])

	resp, body = ts.do(t, http.MethodGet, "/api/schedule/today", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	spec := body["schedule"].(map[string]any)
	assert.Equal(t, "10:30", spec["weekdays"].(map[string]any)["start"])

	resp, body = ts.do(t, http.MethodGet, "/api/leaderboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(9), body["userRank"])
	assert.Len(t, body["leaderboard"], 1)

	resp, _ = ts.do(t, http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "asha@workholic.in")

	resp, body := ts.do(t, http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Asha Rao", body["user"].(map[string]any)["name"])

	resp, _ = ts.do(t, http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodGet, "/api/user", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_AdminEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "admin@workholic.in")

	resp, _ := ts.do(t, http.MethodPost, "/api/clock-action", token, attendance.ClockActionRequest{Action: "clock-in"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := ts.do(t, http.MethodGet, "/api/admin/users", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["users"], 2)

	resp, _ = ts.do(t, http.MethodPost, "/api/admin/update-tasks", token, leaderboard.UpdateTasksRequest{Email: "asha@workholic.in", TaskType: "big", Count: 0})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Empty(t, ts.leaderboard.updated)

	resp, _ = ts.do(t, http.MethodPost, "/api/admin/update-tasks", token, leaderboard.UpdateTasksRequest{Email: "asha@workholic.in", TaskType: "big", Count: 2})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, ts.leaderboard.updated, 1)

	resp, _ = ts.do(t, http.MethodPost, "/api/admin/users/delete", token, user.DeleteUserRequest{Email: "admin@workholic.in"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodGet, "/api/admin/export-excel", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, report.ExportContentType, resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="attendance-export-2024-06-05.xlsx"`, resp.Header.Get("Content-Disposition"))
}

// openStream connects to an event stream and returns a line reader after
// the connection comment.
func (ts *testServer) openStream(t *testing.T, path, token string) *bufio.Reader {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.srv.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": connected\n", line)
	_, _ = reader.ReadString('\n')
	return reader
}

func readEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()
	name, err := r.ReadString('\n')
	require.NoError(t, err)
	data, err := r.ReadString('\n')
	require.NoError(t, err)
	return strings.TrimPrefix(strings.TrimSpace(name), "event: "), strings.TrimPrefix(strings.TrimSpace(data), "data: ")
}

func TestRouter_AttendanceStreams(t *testing.T) {
	ts := newTestServer(t)
	employee := ts.login(t, "asha@workholic.in")
	admin := ts.login(t, "admin@workholic.in")

	own := ts.openStream(t, "/api/attendance/stream", employee)
	all := ts.openStream(t, "/api/admin/attendance/stream", admin)

	resp, _ := ts.do(t, http.MethodGet, "/api/admin/attendance/stream", employee, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/api/clock-action", employee, attendance.ClockActionRequest{Action: "clock-in"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, r := range []*bufio.Reader{own, all} {
		name, data := readEvent(t, r)
		assert.Equal(t, "attendance", name)
		assert.Contains(t, data, `"clockIn":"2024-06-04T10:30:00Z"`)
	}
}
