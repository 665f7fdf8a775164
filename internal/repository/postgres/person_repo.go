package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"shmirascheduler/internal/domain"
)

type personRepository struct {
	DB *sql.DB
}

func NewPersonRepository(db *sql.DB) domain.PersonRepository {
	return &personRepository{
		DB: db,
	}
}

func (r *personRepository) ListApprovedGuests(ctx context.Context) ([]*domain.Person, error) {
	query := `
		SELECT token, first_name, last_name, email, names_of_interest
		FROM guests
		WHERE approved = TRUE
		ORDER BY last_name, first_name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []*domain.Person
	for rows.Next() {
		person := &domain.Person{Kind: domain.SourceGuest, Approved: true}
		if err := rows.Scan(&person.Token, &person.FirstName, &person.LastName, &person.Email,
			pq.Array(&person.NamesOfInterest)); err != nil {
			return nil, err
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if people == nil {
		people = []*domain.Person{}
	}
	return people, nil
}

func (r *personRepository) ListApprovedMembers(ctx context.Context) ([]*domain.Person, error) {
	query := `
		SELECT token, first_name, last_name, email
		FROM members
		WHERE approved = TRUE
		ORDER BY last_name, first_name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []*domain.Person
	for rows.Next() {
		person := &domain.Person{Kind: domain.SourceMember, Approved: true}
		if err := rows.Scan(&person.Token, &person.FirstName, &person.LastName, &person.Email); err != nil {
			return nil, err
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if people == nil {
		people = []*domain.Person{}
	}
	return people, nil
}

// GetByToken resolves an approved person from either roster. Members are
// checked first; the rosters never share tokens in practice.
func (r *personRepository) GetByToken(ctx context.Context, token string) (*domain.Person, error) {
	memberQuery := `
		SELECT token, first_name, last_name, email
		FROM members
		WHERE token = $1 AND approved = TRUE
	`
	person := &domain.Person{Kind: domain.SourceMember, Approved: true}
	err := r.DB.QueryRowContext(ctx, memberQuery, token).
		Scan(&person.Token, &person.FirstName, &person.LastName, &person.Email)
	if err == nil {
		return person, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	guestQuery := `
		SELECT token, first_name, last_name, email, names_of_interest
		FROM guests
		WHERE token = $1 AND approved = TRUE
	`
	person = &domain.Person{Kind: domain.SourceGuest, Approved: true}
	err = r.DB.QueryRowContext(ctx, guestQuery, token).
		Scan(&person.Token, &person.FirstName, &person.LastName, &person.Email,
			pq.Array(&person.NamesOfInterest))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return person, nil
}
