package leaderboard

import (
	"context"

	"github.com/workholic/workholic-go/internal/domain/attendance"
)

type LeaderboardService interface {
	// Get returns the top entries; callerEmail is used for userRank when the
	// caller is an employee ranked outside the top.
	Get(ctx context.Context, callerEmail string, callerIsEmployee bool) (LeaderboardResponse, error)

	// UpdateTasks adds task points for an employee (admin).
	UpdateTasks(ctx context.Context, req UpdateTasksRequest) error

	// AwardAttendance adds the points of a finished day.
	AwardAttendance(ctx context.Context, email string, status attendance.Status) error
}
