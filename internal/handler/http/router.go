package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/workholic/workholic-go/internal/domain/user"
	"github.com/workholic/workholic-go/internal/handler/http/middleware"
	"github.com/workholic/workholic-go/internal/handler/http/response"
	"github.com/workholic/workholic-go/internal/pkg/jwt"
)

// NewLogger returns the ECS formatted JSON logger shared by the server and
// the request log.
func NewLogger(env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workholic"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)
}

type Handlers struct {
	Auth        AuthHandler
	Attendance  AttendanceHandler
	Schedule    ScheduleHandler
	Leaderboard LeaderboardHandler
	User        UserHandler
	Report      ReportHandler
}

func NewRouter(logger *slog.Logger, allowedOrigins []string, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/test", h.Auth.Test)
		r.Post("/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/logout", h.Auth.Logout)
			r.Get("/user", h.Auth.CurrentUser)

			r.With(middleware.RequirePermission(user.PermissionLeaderboardView)).
				Get("/leaderboard", h.Leaderboard.Get)

			// Employee self service
			r.With(middleware.RequireEmployee, middleware.RequirePermission(user.PermissionAttendanceClock)).
				Post("/clock-action", h.Attendance.ClockAction)
			r.Route("/attendance", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
				r.Get("/today", h.Attendance.Today)
				r.Get("/history", h.Attendance.History)
				r.Get("/stream", h.Attendance.Stream)
			})
			r.With(middleware.RequirePermission(user.PermissionScheduleViewOwn)).
				Get("/schedule/today", h.Schedule.Today)

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Get("/employees", h.User.ListEmployees)
					r.Get("/users", h.User.List)
					r.Get("/users/{email}", h.User.Get)
					r.Post("/users/create", h.User.Create)
					r.Post("/users/update", h.User.Update)
					r.Post("/users/delete", h.User.Delete)
				})

				r.With(middleware.RequirePermission(user.PermissionTasksAssign)).
					Post("/update-tasks", h.Leaderboard.UpdateTasks)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/attendance", h.Attendance.List)
					r.Get("/attendance/stream", h.Attendance.StreamAll)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportsExport))
					r.Get("/export-excel", h.Report.ExportExcel)
					r.Get("/reports/attendance", h.Report.GetMonthlyAttendanceReport)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Not found")
	})

	return r
}
