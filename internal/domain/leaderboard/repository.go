package leaderboard

import "context"

type LeaderboardRepository interface {
	// GetByEmail returns ErrStandingNotFound when the employee has no entry yet.
	GetByEmail(ctx context.Context, email string) (Standing, error)

	// Upsert stores the standing, creating the row on first use.
	Upsert(ctx context.Context, s Standing) error

	// List returns every standing with the employee name joined.
	List(ctx context.Context) ([]Standing, error)
}
