package postgres

import (
	"context"
	"database/sql"
	"errors"

	"shmirascheduler/internal/domain"
)

type locationRepository struct {
	DB *sql.DB
}

func NewLocationRepository(db *sql.DB) domain.LocationRepository {
	return &locationRepository{
		DB: db,
	}
}

func (r *locationRepository) List(ctx context.Context) ([]*domain.Location, error) {
	query := `
		SELECT name, address, phone, directions_url, info
		FROM locations
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*domain.Location
	for rows.Next() {
		location := &domain.Location{}
		if err := rows.Scan(&location.Name, &location.Address, &location.Phone,
			&location.DirectionsURL, &location.Info); err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []*domain.Location{}
	}
	return locations, nil
}

func (r *locationRepository) GetByName(ctx context.Context, name string) (*domain.Location, error) {
	query := `
		SELECT name, address, phone, directions_url, info
		FROM locations
		WHERE name = $1
	`
	location := &domain.Location{}
	err := r.DB.QueryRowContext(ctx, query, name).
		Scan(&location.Name, &location.Address, &location.Phone, &location.DirectionsURL, &location.Info)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return location, nil
}
