package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workholic/workholic-go/internal/domain/attendance"
	"github.com/workholic/workholic-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// localDate moves a DATE column value, decoded as UTC midnight, onto the
// same calendar date in the local timezone.
func localDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func scanRecord(row pgx.Row, withName bool) (attendance.Record, error) {
	var (
		rec    attendance.Record
		status *string
	)
	dest := []interface{}{
		&rec.ID, &rec.Email, &rec.Date, &rec.ClockIn, &rec.ClockOut, &status,
		&rec.CreatedAt, &rec.UpdatedAt,
	}
	if withName {
		dest = append(dest, &rec.EmployeeName)
	}
	if err := row.Scan(dest...); err != nil {
		return attendance.Record{}, err
	}
	rec.Date = localDate(rec.Date)
	if status != nil {
		rec.Status = attendance.Status(*status)
	}
	return rec, nil
}

func statusParam(s attendance.Status) *string {
	if s == "" {
		return nil
	}
	v := string(s)
	return &v
}

// GetByEmailAndDate implements attendance.AttendanceRepository.
// Inside a transaction the row is locked until commit.
func (a *attendanceRepository) GetByEmailAndDate(ctx context.Context, email string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, email, date, clock_in, clock_out, status, created_at, updated_at
		FROM attendance
		WHERE email = $1 AND date = $2
	`
	if _, inTx := database.TxFromContext(ctx); inTx {
		query += ` FOR UPDATE`
	}

	rec, err := scanRecord(q.QueryRow(ctx, query, email, date.Format(attendance.DateLayout)), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	breaks, err := a.loadBreaks(ctx, []string{rec.ID})
	if err != nil {
		return nil, err
	}
	rec.Breaks = breaks[rec.ID]

	return &rec, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}
	record.ID = id.String()

	query := `
		INSERT INTO attendance (id, email, date, clock_in, clock_out, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.ID,
		record.Email,
		record.Date.Format(attendance.DateLayout),
		record.ClockIn,
		record.ClockOut,
		statusParam(record.Status),
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return attendance.Record{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	if err := a.writeBreaks(ctx, q, record.ID, record.Breaks); err != nil {
		return attendance.Record{}, err
	}

	return record, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance
		SET clock_in = $2, clock_out = $3, status = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, record.ID, record.ClockIn, record.ClockOut, statusParam(record.Status))
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	if _, err := q.Exec(ctx, `DELETE FROM attendance_breaks WHERE attendance_id = $1`, record.ID); err != nil {
		return fmt.Errorf("failed to clear breaks: %w", err)
	}
	return a.writeBreaks(ctx, q, record.ID, record.Breaks)
}

func (a *attendanceRepository) writeBreaks(ctx context.Context, q database.Querier, attendanceID string, breaks []attendance.Break) error {
	for i, b := range breaks {
		_, err := q.Exec(ctx,
			`INSERT INTO attendance_breaks (attendance_id, position, start_time, end_time) VALUES ($1, $2, $3, $4)`,
			attendanceID, i, b.Start, b.End,
		)
		if err != nil {
			return fmt.Errorf("failed to write break: %w", err)
		}
	}
	return nil
}

// loadBreaks returns the breaks of every id in insertion order.
func (a *attendanceRepository) loadBreaks(ctx context.Context, ids []string) (map[string][]attendance.Break, error) {
	result := make(map[string][]attendance.Break, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `
		SELECT attendance_id, start_time, end_time
		FROM attendance_breaks
		WHERE attendance_id = ANY($1)
		ORDER BY attendance_id, position
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get breaks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id string
			b  attendance.Break
		)
		if err := rows.Scan(&id, &b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		result[id] = append(result[id], b)
	}
	return result, rows.Err()
}

// ListByEmail implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmail(ctx context.Context, email string, limit int) ([]attendance.Record, error) {
	query := `
		SELECT id, email, date, clock_in, clock_out, status, created_at, updated_at
		FROM attendance
		WHERE email = $1
		ORDER BY date DESC
		LIMIT $2
	`
	return a.queryRecords(ctx, false, query, email, limit)
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, error) {
	// Build WHERE clause
	where := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Email != nil && *filter.Email != "" {
		where += fmt.Sprintf(" AND a.email = $%d", argIdx)
		args = append(args, *filter.Email)
		argIdx++
	}

	// Date range filters
	if filter.StartDate != nil && *filter.StartDate != "" {
		where += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	// Status filter
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT a.id, a.email, a.date, a.clock_in, a.clock_out, a.status, a.created_at, a.updated_at,
		       u.name
		FROM attendance a
		LEFT JOIN users u ON u.email = a.email
		WHERE %s
		ORDER BY a.date DESC, u.name ASC
		LIMIT $%d
	`, where, argIdx)

	return a.queryRecords(ctx, true, query, args...)
}

func (a *attendanceRepository) queryRecords(ctx context.Context, withName bool, query string, args ...interface{}) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := []attendance.Record{}
	ids := []string{}
	for rows.Next() {
		rec, err := scanRecord(rows, withName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
		ids = append(ids, rec.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	breaks, err := a.loadBreaks(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Breaks = breaks[records[i].ID]
	}
	return records, nil
}

// ListEmailsByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListEmailsByDate(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `SELECT email FROM attendance WHERE date = $1`, date.Format(attendance.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance emails: %w", err)
	}
	emails, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan attendance emails: %w", err)
	}
	return emails, nil
}
