package postgresql

import (
	"context"
	"fmt"

	"github.com/workholic/workholic-go/internal/pkg/database"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    email         TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    role          TEXT NOT NULL CHECK (role IN ('admin', 'employee')),
    schedule      TEXT NOT NULL DEFAULT 'general',
    password_hash TEXT,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const createAttendanceTable = `
CREATE TABLE IF NOT EXISTS attendance (
    id         UUID PRIMARY KEY,
    email      TEXT NOT NULL REFERENCES users(email) ON DELETE CASCADE,
    date       DATE NOT NULL,
    clock_in   TIMESTAMPTZ,
    clock_out  TIMESTAMPTZ,
    status     TEXT CHECK (status IN ('FD', 'HD', 'A', 'H')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (email, date)
);
`

const createAttendanceBreaksTable = `
CREATE TABLE IF NOT EXISTS attendance_breaks (
    attendance_id UUID NOT NULL REFERENCES attendance(id) ON DELETE CASCADE,
    position      INT NOT NULL,
    start_time    TIMESTAMPTZ NOT NULL,
    end_time      TIMESTAMPTZ,
    PRIMARY KEY (attendance_id, position)
);
`

const createLeaderboardTable = `
CREATE TABLE IF NOT EXISTS leaderboard (
    email             TEXT PRIMARY KEY REFERENCES users(email) ON DELETE CASCADE,
    attendance_points INT NOT NULL DEFAULT 0,
    small_tasks       INT NOT NULL DEFAULT 0 CHECK (small_tasks >= 0),
    regular_tasks     INT NOT NULL DEFAULT 0 CHECK (regular_tasks >= 0),
    big_tasks         INT NOT NULL DEFAULT 0 CHECK (big_tasks >= 0),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const createAttendanceDateIndex = `
CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance (date);
`

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db *database.DB) error {
	statements := []string{
		createUsersTable,
		createAttendanceTable,
		createAttendanceBreaksTable,
		createLeaderboardTable,
		createAttendanceDateIndex,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}
