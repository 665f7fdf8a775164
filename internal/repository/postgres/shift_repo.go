package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shmirascheduler/internal/domain"
)

const shiftColumns = `id, deceased_name, location_name, event_date, shift_time, max_volunteers, current_volunteers, start_at, end_at, pronoun, verb_phrase, personal_info`

type shiftRepository struct {
	DB *sql.DB
}

func NewShiftRepository(db *sql.DB) domain.ShiftRepository {
	return &shiftRepository{
		DB: db,
	}
}

func scanShift(scanner interface{ Scan(dest ...any) error }) (*domain.Shift, error) {
	shift := &domain.Shift{}
	err := scanner.Scan(&shift.ID, &shift.DeceasedName, &shift.LocationName, &shift.EventDate, &shift.ShiftTime,
		&shift.MaxVolunteers, &shift.CurrentVolunteers, &shift.StartAt, &shift.EndAt,
		&shift.Pronoun, &shift.VerbPhrase, &shift.PersonalInfo)
	if err != nil {
		return nil, err
	}
	return shift, nil
}

func (r *shiftRepository) List(ctx context.Context) ([]*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts ORDER BY start_at`
	return r.queryShifts(ctx, query)
}

func (r *shiftRepository) ListStartingAfter(ctx context.Context, t time.Time) ([]*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE start_at > $1 ORDER BY start_at`
	return r.queryShifts(ctx, query, t)
}

func (r *shiftRepository) queryShifts(ctx context.Context, query string, args ...any) ([]*domain.Shift, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []*domain.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if shifts == nil {
		shifts = []*domain.Shift{}
	}
	return shifts, nil
}

func (r *shiftRepository) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`
	shift, err := scanShift(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return shift, nil
}

func (r *shiftRepository) Insert(ctx context.Context, shifts []*domain.Shift) error {
	query := `
		INSERT INTO shifts (` + shiftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for _, shift := range shifts {
		_, err := r.DB.ExecContext(ctx, query,
			shift.ID, shift.DeceasedName, shift.LocationName, shift.EventDate, shift.ShiftTime,
			shift.MaxVolunteers, shift.CurrentVolunteers, shift.StartAt, shift.EndAt,
			shift.Pronoun, shift.VerbPhrase, shift.PersonalInfo)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	return err
}

func (r *shiftRepository) SetCurrentVolunteers(ctx context.Context, id string, count int) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE shifts SET current_volunteers = $1 WHERE id = $2`, count, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
