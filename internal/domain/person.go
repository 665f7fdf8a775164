package domain

import (
	"context"
	"strings"
)

// SourceKind distinguishes which roster a person came from.
type SourceKind string

const (
	SourceGuest  SourceKind = "guest"
	SourceMember SourceKind = "member"
)

// Person is a volunteer from either the guest or the member roster. Rosters are
// maintained outside this system; this core only reads them.
type Person struct {
	Token     string     `json:"token"`
	Kind      SourceKind `json:"kind"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Approved  bool       `json:"approved"`

	// NamesOfInterest holds trimmed, lower-cased decedent names a guest asked
	// to be notified about. Empty for members, who are notified of everything.
	NamesOfInterest []string `json:"names_of_interest,omitempty"`
}

// FullName returns the person's display name.
func (p *Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// InterestedIn reports whether a guest's interest list contains the given
// normalized decedent name. Members are always interested.
func (p *Person) InterestedIn(matchName string) bool {
	if p.Kind == SourceMember {
		return true
	}
	for _, n := range p.NamesOfInterest {
		if n == matchName {
			return true
		}
	}
	return false
}

// PersonRepository defines read access to the guest and member rosters.
type PersonRepository interface {
	ListApprovedGuests(ctx context.Context) ([]*Person, error)
	ListApprovedMembers(ctx context.Context) ([]*Person, error)
	// GetByToken resolves a person from either roster; only approved people
	// resolve. Returns ErrNotFound otherwise.
	GetByToken(ctx context.Context, token string) (*Person, error)
}

// TokenVerifier verifies an opaque bearer token and returns the person token it
// belongs to.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (personToken string, err error)
}
