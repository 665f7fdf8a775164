package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"shmirascheduler/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestSignupRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO signups \(shift_id, volunteer_token, volunteer_name, created_at\)`).
					WithArgs("shift-1", "guest-token-1", "Rivka Stern", createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("signup-uuid-1"))
			},
			wantID: "signup-uuid-1",
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO signups`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSignupRepository(db)
			signup := &domain.Signup{
				ShiftID:        "shift-1",
				VolunteerToken: "guest-token-1",
				VolunteerName:  "Rivka Stern",
				CreatedAt:      createdAt,
			}
			err = repo.Create(ctx, signup)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, signup.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSignupRepository_GetByShiftAndToken_NotFound(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM signups WHERE shift_id = \$1 AND volunteer_token = \$2`).
		WithArgs("shift-1", "guest-token-1").
		WillReturnError(sql.ErrNoRows)

	repo := NewSignupRepository(db)
	_, err = repo.GetByShiftAndToken(ctx, "shift-1", "guest-token-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupRepository_DeleteByShiftAndToken(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{name: "deleted", rows: 1},
		{name: "nothing to delete", rows: 0, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(`DELETE FROM signups WHERE shift_id = \$1 AND volunteer_token = \$2`).
				WithArgs("shift-1", "guest-token-1").
				WillReturnResult(sqlmock.NewResult(0, tt.rows))

			repo := NewSignupRepository(db)
			err = repo.DeleteByShiftAndToken(ctx, "shift-1", "guest-token-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSignupRepository_ListShiftIDsByToken(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT shift_id\s+FROM signups\s+WHERE volunteer_token = \$1`).
		WithArgs("guest-token-1").
		WillReturnRows(sqlmock.NewRows([]string{"shift_id"}).AddRow("shift-1").AddRow("shift-3"))

	repo := NewSignupRepository(db)
	ids, err := repo.ListShiftIDsByToken(ctx, "guest-token-1")
	require.NoError(t, err)
	require.Equal(t, []string{"shift-1", "shift-3"}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}
