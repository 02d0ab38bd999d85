package leaderboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/workholic/workholic-go/internal/domain/attendance"
	"github.com/workholic/workholic-go/internal/domain/leaderboard"
	"github.com/workholic/workholic-go/internal/domain/user"
	"github.com/workholic/workholic-go/internal/pkg/database"
)

type leaderboardServiceImpl struct {
	tx              database.TxRunner
	leaderboardRepo leaderboard.LeaderboardRepository
	userRepo        user.UserRepository
}

// Get implements leaderboard.LeaderboardService.
func (s *leaderboardServiceImpl) Get(ctx context.Context, callerEmail string, callerIsEmployee bool) (leaderboard.LeaderboardResponse, error) {
	standings, err := s.leaderboardRepo.List(ctx)
	if err != nil {
		return leaderboard.LeaderboardResponse{}, fmt.Errorf("failed to list leaderboard: %w", err)
	}

	ranked := leaderboard.Rank(standings)

	resp := leaderboard.LeaderboardResponse{
		Leaderboard: ranked[:min(len(ranked), leaderboard.TopSize)],
	}
	if callerIsEmployee {
		for _, e := range ranked {
			if e.Email == callerEmail {
				if e.Rank > leaderboard.TopSize {
					rank := e.Rank
					resp.UserRank = &rank
				}
				break
			}
		}
	}
	return resp, nil
}

// UpdateTasks implements leaderboard.LeaderboardService.
func (s *leaderboardServiceImpl) UpdateTasks(ctx context.Context, req leaderboard.UpdateTasksRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		standing, err := s.standingFor(txCtx, req.Email)
		if err != nil {
			return err
		}
		if err := standing.AddTasks(leaderboard.TaskType(req.TaskType), req.Count); err != nil {
			return err
		}
		return s.leaderboardRepo.Upsert(txCtx, standing)
	})
}

// AwardAttendance implements leaderboard.LeaderboardService. It runs on the
// caller's context so it joins an open transaction.
func (s *leaderboardServiceImpl) AwardAttendance(ctx context.Context, email string, status attendance.Status) error {
	points := status.Points()
	if points == 0 {
		return nil
	}

	standing, err := s.standingFor(ctx, email)
	if err != nil {
		return err
	}
	standing.AttendancePoints += points
	return s.leaderboardRepo.Upsert(ctx, standing)
}

func (s *leaderboardServiceImpl) standingFor(ctx context.Context, email string) (leaderboard.Standing, error) {
	standing, err := s.leaderboardRepo.GetByEmail(ctx, email)
	if errors.Is(err, leaderboard.ErrStandingNotFound) {
		return leaderboard.Standing{Email: email}, nil
	}
	if err != nil {
		return leaderboard.Standing{}, fmt.Errorf("failed to get leaderboard entry: %w", err)
	}
	return standing, nil
}

func NewLeaderboardService(tx database.TxRunner, leaderboardRepo leaderboard.LeaderboardRepository, userRepo user.UserRepository) leaderboard.LeaderboardService {
	return &leaderboardServiceImpl{
		tx:              tx,
		leaderboardRepo: leaderboardRepo,
		userRepo:        userRepo,
	}
}
