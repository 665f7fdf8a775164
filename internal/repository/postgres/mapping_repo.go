package postgres

import (
	"context"
	"database/sql"
	"time"

	"shmirascheduler/internal/domain"
)

type mappingRepository struct {
	DB *sql.DB
}

func NewMappingRepository(db *sql.DB) domain.MappingRepository {
	return &mappingRepository{
		DB: db,
	}
}

func (r *mappingRepository) ListLive(ctx context.Context) ([]*domain.NotificationMapping, error) {
	query := `
		SELECT source_kind, event_token, person_token, email_sent, sent_at
		FROM notification_map
		ORDER BY event_token, person_token
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []*domain.NotificationMapping
	for rows.Next() {
		mapping := &domain.NotificationMapping{}
		if err := rows.Scan(&mapping.SourceKind, &mapping.EventToken, &mapping.PersonToken,
			&mapping.EmailSent, &mapping.SentAt); err != nil {
			return nil, err
		}
		mappings = append(mappings, mapping)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if mappings == nil {
		mappings = []*domain.NotificationMapping{}
	}
	return mappings, nil
}

func (r *mappingRepository) Insert(ctx context.Context, mappings []*domain.NotificationMapping) error {
	query := `
		INSERT INTO notification_map (source_kind, event_token, person_token, email_sent, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, mapping := range mappings {
		_, err := r.DB.ExecContext(ctx, query,
			mapping.SourceKind, mapping.EventToken, mapping.PersonToken, mapping.EmailSent, mapping.SentAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *mappingRepository) Archive(ctx context.Context, mappings []*domain.NotificationMapping) error {
	query := `
		INSERT INTO notification_map_archive (source_kind, event_token, person_token, email_sent, sent_at, archived_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	for _, mapping := range mappings {
		_, err := r.DB.ExecContext(ctx, query,
			mapping.SourceKind, mapping.EventToken, mapping.PersonToken, mapping.EmailSent, mapping.SentAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *mappingRepository) Delete(ctx context.Context, key domain.MappingKey) error {
	query := `
		DELETE FROM notification_map
		WHERE source_kind = $1 AND event_token = $2 AND person_token = $3
	`
	_, err := r.DB.ExecContext(ctx, query, key.SourceKind, key.EventToken, key.PersonToken)
	return err
}

func (r *mappingRepository) MarkSent(ctx context.Context, key domain.MappingKey, at time.Time) error {
	query := `
		UPDATE notification_map
		SET email_sent = TRUE, sent_at = $1
		WHERE source_kind = $2 AND event_token = $3 AND person_token = $4
	`
	res, err := r.DB.ExecContext(ctx, query, at, key.SourceKind, key.EventToken, key.PersonToken)
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
