package postgres

import (
	"context"
	"database/sql"
	"errors"

	"shmirascheduler/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (token, deceased_name, location_name, start_at, end_at, pronoun, verb_phrase, personal_info, submitter_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query,
		event.Token, event.DeceasedName, event.LocationName, event.StartAt, event.EndAt,
		event.Pronoun, event.VerbPhrase, event.PersonalInfo, event.SubmitterEmail, event.CreatedAt)
	return err
}

func (r *eventRepository) GetByToken(ctx context.Context, token string) (*domain.Event, error) {
	query := `
		SELECT token, deceased_name, location_name, start_at, end_at, pronoun, verb_phrase, personal_info, submitter_email, created_at
		FROM events
		WHERE token = $1
	`
	event := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, token).
		Scan(&event.Token, &event.DeceasedName, &event.LocationName, &event.StartAt, &event.EndAt,
			&event.Pronoun, &event.VerbPhrase, &event.PersonalInfo, &event.SubmitterEmail, &event.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT token, deceased_name, location_name, start_at, end_at, pronoun, verb_phrase, personal_info, submitter_email, created_at
		FROM events
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event := &domain.Event{}
		if err := rows.Scan(&event.Token, &event.DeceasedName, &event.LocationName, &event.StartAt, &event.EndAt,
			&event.Pronoun, &event.VerbPhrase, &event.PersonalInfo, &event.SubmitterEmail, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (r *eventRepository) Latest(ctx context.Context) (*domain.Event, error) {
	query := `
		SELECT token, deceased_name, location_name, start_at, end_at, pronoun, verb_phrase, personal_info, submitter_email, created_at
		FROM events
		ORDER BY created_at DESC
		LIMIT 1
	`
	event := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query).
		Scan(&event.Token, &event.DeceasedName, &event.LocationName, &event.StartAt, &event.EndAt,
			&event.Pronoun, &event.VerbPhrase, &event.PersonalInfo, &event.SubmitterEmail, &event.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}
