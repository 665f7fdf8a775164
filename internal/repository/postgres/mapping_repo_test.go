package postgres

import (
	"context"
	"testing"
	"time"

	"shmirascheduler/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestMappingRepository_ListLive(t *testing.T) {
	ctx := context.Background()
	sentAt := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT source_kind, event_token, person_token, email_sent, sent_at\s+FROM notification_map`).
		WillReturnRows(sqlmock.NewRows([]string{"source_kind", "event_token", "person_token", "email_sent", "sent_at"}).
			AddRow("guest", "event-1", "guest-1", true, sentAt).
			AddRow("member", "event-1", "member-1", false, nil))

	repo := NewMappingRepository(db)
	mappings, err := repo.ListLive(ctx)
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	require.Equal(t, domain.SourceGuest, mappings[0].SourceKind)
	require.True(t, mappings[0].EmailSent)
	require.NotNil(t, mappings[0].SentAt)
	require.False(t, mappings[1].EmailSent)
	require.Nil(t, mappings[1].SentAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMappingRepository_ArchiveThenDelete(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mapping := &domain.NotificationMapping{
		SourceKind:  domain.SourceGuest,
		EventToken:  "event-1",
		PersonToken: "guest-1",
		EmailSent:   true,
	}

	mock.ExpectExec(`INSERT INTO notification_map_archive`).
		WithArgs(mapping.SourceKind, mapping.EventToken, mapping.PersonToken, mapping.EmailSent, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM notification_map`).
		WithArgs(mapping.SourceKind, mapping.EventToken, mapping.PersonToken).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewMappingRepository(db)
	require.NoError(t, repo.Archive(ctx, []*domain.NotificationMapping{mapping}))
	require.NoError(t, repo.Delete(ctx, mapping.Key()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMappingRepository_MarkSent(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	key := domain.MappingKey{SourceKind: domain.SourceMember, EventToken: "event-1", PersonToken: "member-1"}

	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{name: "marked", rows: 1},
		{name: "row gone", rows: 0, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(`UPDATE notification_map\s+SET email_sent = TRUE, sent_at = \$1`).
				WithArgs(at, key.SourceKind, key.EventToken, key.PersonToken).
				WillReturnResult(sqlmock.NewResult(0, tt.rows))

			repo := NewMappingRepository(db)
			err = repo.MarkSent(ctx, key, at)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
