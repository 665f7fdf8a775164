package postgres

import (
	"context"
	"database/sql"
	"errors"

	"shmirascheduler/internal/domain"
)

type signupRepository struct {
	DB *sql.DB
}

func NewSignupRepository(db *sql.DB) domain.SignupRepository {
	return &signupRepository{
		DB: db,
	}
}

func (r *signupRepository) Create(ctx context.Context, signup *domain.Signup) error {
	query := `
		INSERT INTO signups (shift_id, volunteer_token, volunteer_name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, signup.ShiftID, signup.VolunteerToken, signup.VolunteerName, signup.CreatedAt).
		Scan(&signup.ID)
}

func (r *signupRepository) GetByShiftAndToken(ctx context.Context, shiftID, token string) (*domain.Signup, error) {
	query := `
		SELECT id, shift_id, volunteer_token, volunteer_name, created_at
		FROM signups
		WHERE shift_id = $1 AND volunteer_token = $2
	`
	signup := &domain.Signup{}
	err := r.DB.QueryRowContext(ctx, query, shiftID, token).
		Scan(&signup.ID, &signup.ShiftID, &signup.VolunteerToken, &signup.VolunteerName, &signup.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return signup, nil
}

func (r *signupRepository) DeleteByShiftAndToken(ctx context.Context, shiftID, token string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM signups WHERE shift_id = $1 AND volunteer_token = $2`, shiftID, token)
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

func (r *signupRepository) ListShiftIDsByToken(ctx context.Context, token string) ([]string, error) {
	query := `
		SELECT shift_id
		FROM signups
		WHERE volunteer_token = $1
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, token)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
