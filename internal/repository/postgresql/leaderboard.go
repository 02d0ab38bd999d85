package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workholic/workholic-go/internal/domain/leaderboard"
	"github.com/workholic/workholic-go/internal/pkg/database"
)

type leaderboardRepository struct {
	db *database.DB
}

func NewLeaderboardRepository(db *database.DB) leaderboard.LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// GetByEmail implements leaderboard.LeaderboardRepository.
func (r *leaderboardRepository) GetByEmail(ctx context.Context, email string) (leaderboard.Standing, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.email, COALESCE(u.name, l.email), l.attendance_points,
		       l.small_tasks, l.regular_tasks, l.big_tasks, l.updated_at
		FROM leaderboard l
		LEFT JOIN users u ON u.email = l.email
		WHERE l.email = $1
	`
	if _, inTx := database.TxFromContext(ctx); inTx {
		query += ` FOR UPDATE OF l`
	}

	var s leaderboard.Standing
	err := q.QueryRow(ctx, query, email).Scan(
		&s.Email, &s.Name, &s.AttendancePoints,
		&s.SmallTasks, &s.RegularTasks, &s.BigTasks, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leaderboard.Standing{}, leaderboard.ErrStandingNotFound
		}
		return leaderboard.Standing{}, fmt.Errorf("failed to get standing: %w", err)
	}
	return s, nil
}

// Upsert implements leaderboard.LeaderboardRepository.
func (r *leaderboardRepository) Upsert(ctx context.Context, s leaderboard.Standing) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaderboard (email, attendance_points, small_tasks, regular_tasks, big_tasks)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET
			attendance_points = EXCLUDED.attendance_points,
			small_tasks = EXCLUDED.small_tasks,
			regular_tasks = EXCLUDED.regular_tasks,
			big_tasks = EXCLUDED.big_tasks,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, s.Email, s.AttendancePoints, s.SmallTasks, s.RegularTasks, s.BigTasks); err != nil {
		return fmt.Errorf("failed to upsert standing: %w", err)
	}
	return nil
}

// List implements leaderboard.LeaderboardRepository.
func (r *leaderboardRepository) List(ctx context.Context) ([]leaderboard.Standing, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT l.email, u.name, l.attendance_points,
		       l.small_tasks, l.regular_tasks, l.big_tasks, l.updated_at
		FROM leaderboard l
		JOIN users u ON u.email = l.email
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings: %w", err)
	}
	defer rows.Close()

	standings := []leaderboard.Standing{}
	for rows.Next() {
		var s leaderboard.Standing
		if err := rows.Scan(
			&s.Email, &s.Name, &s.AttendancePoints,
			&s.SmallTasks, &s.RegularTasks, &s.BigTasks, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}
