package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/workholic/workholic-go/internal/domain/schedule"
)

type scheduleServiceImpl struct {
	specRepo    schedule.SpecRepository
	defaultName string
}

// GetSpec implements schedule.ScheduleService.
func (s *scheduleServiceImpl) GetSpec(ctx context.Context, name string) (schedule.Spec, error) {
	spec, err := s.specRepo.GetByName(ctx, name)
	if err == nil {
		return spec, nil
	}
	if !errors.Is(err, schedule.ErrScheduleNotFound) {
		return schedule.Spec{}, fmt.Errorf("failed to get schedule %q: %w", name, err)
	}

	slog.Debug("unknown schedule, using default", "schedule", name, "default", s.defaultName)
	spec, err = s.specRepo.GetByName(ctx, s.defaultName)
	if err != nil {
		return schedule.Spec{}, fmt.Errorf("failed to get default schedule %q: %w", s.defaultName, err)
	}
	return spec, nil
}

// ResolveDay implements schedule.ScheduleService.
func (s *scheduleServiceImpl) ResolveDay(ctx context.Context, name string, day time.Time) (schedule.Outcome, error) {
	spec, err := s.GetSpec(ctx, name)
	if err != nil {
		return schedule.Outcome{}, err
	}
	return schedule.Resolve(&spec, day), nil
}

// IsKnown implements schedule.ScheduleService.
func (s *scheduleServiceImpl) IsKnown(ctx context.Context, name string) bool {
	for _, n := range s.specRepo.Names(ctx) {
		if n == name {
			return true
		}
	}
	return false
}

func NewScheduleService(specRepo schedule.SpecRepository, defaultName string) schedule.ScheduleService {
	return &scheduleServiceImpl{
		specRepo:    specRepo,
		defaultName: defaultName,
	}
}
