package schedule

import (
	"context"
	"time"
)

// SpecRepository looks up named weekly schedules.
type SpecRepository interface {
	GetByName(ctx context.Context, name string) (Spec, error)
	Names(ctx context.Context) []string
}

type ScheduleService interface {
	// GetSpec returns the weekly schedule registered under name, falling back
	// to the default schedule for unknown names.
	GetSpec(ctx context.Context, name string) (Spec, error)

	// ResolveDay resolves the named schedule for a calendar date.
	ResolveDay(ctx context.Context, name string, day time.Time) (Outcome, error)

	// IsKnown reports whether name is a registered schedule.
	IsKnown(ctx context.Context, name string) bool
}
