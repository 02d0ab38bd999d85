package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/workholic/workholic-go/internal/client"
	"github.com/workholic/workholic-go/internal/domain/schedule"
)

// ScheduleAPI fetches the signed-in employee's schedule.
type ScheduleAPI interface {
	Schedule(ctx context.Context) (client.ScheduleToday, error)
}

// ResolveToday fetches the schedule and resolves it for today. When the
// fetch fails it returns the default window and a nil spec, logged at WARN
// with source=fallback.
func ResolveToday(ctx context.Context, api ScheduleAPI, today time.Time, logger *slog.Logger) (schedule.Outcome, *schedule.Spec) {
	resp, err := api.Schedule(ctx)
	if err != nil {
		logger.Warn("schedule unavailable, using default window",
			"source", schedule.SourceFallback, "error", err)
		return schedule.Fallback(today), nil
	}

	outcome := schedule.Resolve(&resp.Spec, today)
	logger.Info("schedule loaded", "source", outcome.Source, "kind", outcome.Kind.String())
	return outcome, &resp.Spec
}
