package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/workholic/workholic-go/internal/fixtures"
	"github.com/workholic/workholic-go/internal/config"
	"github.com/workholic/workholic-go/internal/domain/user"
	appHTTP "github.com/workholic/workholic-go/internal/handler/http"
	"github.com/workholic/workholic-go/internal/pkg/cron"
	"github.com/workholic/workholic-go/internal/pkg/database"
	"github.com/workholic/workholic-go/internal/pkg/jwt"
	"github.com/workholic/workholic-go/internal/pkg/sse"
	"github.com/workholic/workholic-go/internal/repository/postgresql"
	attendanceService "github.com/workholic/workholic-go/internal/service/attendance"
	serviceAuth "github.com/workholic/workholic-go/internal/service/auth"
	leaderboardService "github.com/workholic/workholic-go/internal/service/leaderboard"
	reportService "github.com/workholic/workholic-go/internal/service/report"
	scheduleService "github.com/workholic/workholic-go/internal/service/schedule"
	userService "github.com/workholic/workholic-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := appHTTP.NewLogger(cfg.App.Env, level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		logger.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		logger.Error("Error migrating database", "error", err)
		os.Exit(1)
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaderboardRepo := postgresql.NewLeaderboardRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	scheduleSvc := scheduleService.NewScheduleService(fixtures.NewPresetRepository(), fixtures.DefaultScheduleName)
	leaderboardSvc := leaderboardService.NewLeaderboardService(txRunner, leaderboardRepo, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		txRunner,
		attendanceRepo,
		userRepo,
		scheduleSvc,
		leaderboardSvc,
		nil,
	)
	authSvc := serviceAuth.NewAuthService(userRepo, JWTService)
	userSvc := userService.NewUserService(userRepo, scheduleSvc)
	reportSvc := reportService.NewReportService(attendanceRepo, nil)

	if err := seedAdmin(ctx, userSvc, cfg.Admin); err != nil {
		logger.Error("Error seeding admin account", "error", err)
		os.Exit(1)
	}

	scheduler := cron.NewScheduler(ctx)
	cron.NewAttendanceJobs(attendanceSvc, nil).RegisterJobs(scheduler, cfg.Cron.AbsenceSweepInterval)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(logger, cfg.CORS.AllowedOrigins, JWTService, appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(authSvc),
		Attendance:  appHTTP.NewAttendanceHandler(attendanceSvc, sse.NewHub()),
		Schedule:    appHTTP.NewScheduleHandler(scheduleSvc, nil),
		Leaderboard: appHTTP.NewLeaderboardHandler(leaderboardSvc),
		User:        appHTTP.NewUserHandler(userSvc),
		Report:      appHTTP.NewReportHandler(reportSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server running", "addr", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}

// seedAdmin creates the configured administrator unless it already exists.
func seedAdmin(ctx context.Context, users user.UserService, admin config.AdminConfig) error {
	account := fixtures.GetDefaultAdmin(admin.Email)
	err := users.Create(ctx, user.CreateUserRequest{
		Name:     account.Name,
		Email:    account.Email,
		Role:     string(account.Role),
		Schedule: account.Schedule,
		Password: admin.Password,
	})
	if errors.Is(err, user.ErrUserEmailExists) {
		return nil
	}
	return err
}
