package domain

import (
	"context"
	"strings"
	"time"
)

// Event is a death-notice submission describing a decedent, a location, and the
// shmira window volunteers should cover. Events are immutable once created;
// the token is assigned at intake and is the event's identity everywhere else.
type Event struct {
	Token          string    `json:"token"`
	DeceasedName   string    `json:"deceased_name"`
	LocationName   string    `json:"location_name"`
	StartAt        time.Time `json:"start_at"`
	EndAt          time.Time `json:"end_at"`
	Pronoun        string    `json:"pronoun"`
	VerbPhrase     string    `json:"verb_phrase"`
	PersonalInfo   string    `json:"personal_info"`
	SubmitterEmail string    `json:"submitter_email"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. Token is assigned by the
// event service at intake.
func NewEvent(deceasedName, locationName string, startAt, endAt time.Time) *Event {
	return &Event{
		DeceasedName: deceasedName,
		LocationName: locationName,
		StartAt:      startAt,
		EndAt:        endAt,
	}
}

// Validate reports the reasons an event cannot produce shifts. An event with a
// non-empty result is skipped by the deriver, not rejected by storage.
func (e *Event) Validate() []string {
	var problems []string
	if strings.TrimSpace(e.DeceasedName) == "" {
		problems = append(problems, "deceased name is required")
	}
	if strings.TrimSpace(e.LocationName) == "" {
		problems = append(problems, "location name is required")
	}
	if e.StartAt.IsZero() || e.EndAt.IsZero() {
		problems = append(problems, "start and end times are required")
	} else if !e.StartAt.Before(e.EndAt) {
		problems = append(problems, "start time must be before end time")
	}
	return problems
}

// MatchName is the decedent's name normalized the way guest interest lists are
// stored: trimmed and lower-cased.
func (e *Event) MatchName() string {
	return strings.ToLower(strings.TrimSpace(e.DeceasedName))
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByToken(ctx context.Context, token string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Latest(ctx context.Context) (*Event, error)
}

// EventService handles death-notice intake.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
}
