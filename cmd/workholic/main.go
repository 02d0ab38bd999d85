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

	"github.com/spf13/cobra"

	"github.com/workholic/workholic-go/internal/client"
	"github.com/workholic/workholic-go/internal/config"
)

const appVersion = "1.0.0"

// app carries what every command needs after flags are parsed.
type app struct {
	cfg    *config.ClientConfig
	logger *slog.Logger
	api    *client.Client
}

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:           "workholic",
		Short:         "Workholic attendance dashboard and admin tool",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.SetVersionTemplate("workholic v{{.Version}}\n")

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	a.cfg = cfg

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.APIURL, "api", cfg.APIURL, "Backend base URL")
	flags.StringVar(&a.cfg.Email, "email", cfg.Email, "Login email")
	flags.StringVar(&a.cfg.Password, "password", cfg.Password, "Login password")
	flags.DurationVar(&a.cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	flags.StringVar(&a.cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	root.AddCommand(
		a.watchCmd(),
		a.clockCmd(),
		a.scheduleCmd(),
		a.historyCmd(),
		a.calendarCmd(),
		a.leaderboardCmd(),
		a.adminCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.cfg.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q", a.cfg.LogLevel)
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	a.api = client.New(a.cfg.APIURL, client.WithHTTPClient(&http.Client{Timeout: a.cfg.Timeout}))
	return nil
}

// login signs in with the configured credentials.
func (a *app) login(ctx context.Context) error {
	if a.cfg.Email == "" || a.cfg.Password == "" {
		return errors.New("email and password are required (flags or WORKHOLIC_EMAIL / WORKHOLIC_PASSWORD)")
	}
	resp, err := a.api.Login(ctx, a.cfg.Email, a.cfg.Password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	a.logger.Debug("logged in", "email", resp.User.Email, "role", resp.Role)
	if resp.FirstLogin {
		fmt.Println("Password set. Welcome to Workholic!")
	}
	return nil
}

// requireRole sends users of the wrong role back with a clear message.
func requireRole(err error, role string) error {
	if errors.Is(err, client.ErrForbidden) {
		return fmt.Errorf("this command is for %s accounts", role)
	}
	return err
}
