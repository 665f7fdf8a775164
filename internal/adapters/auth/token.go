package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shmirascheduler/internal/domain"
)

type personTokenVerifier struct {
	people domain.PersonRepository
}

// NewPersonTokenVerifier returns a TokenVerifier that treats the bearer token
// as an opaque person token and resolves it against the approved rosters.
func NewPersonTokenVerifier(people domain.PersonRepository) domain.TokenVerifier {
	return &personTokenVerifier{people: people}
}

func (v *personTokenVerifier) Verify(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrInvalidToken
	}
	person, err := v.people.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidToken
		}
		return "", fmt.Errorf("failed to verify token: %w", err)
	}
	return person.Token, nil
}
