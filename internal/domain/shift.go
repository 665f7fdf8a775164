package domain

import (
	"context"
	"time"
)

// Shift is one hourly bookable slot derived from an Event.
//
// The natural key (deceased name, location, start, end) is what ties a persisted
// shift back to its event across reconciliation runs; the ID is opaque and not
// reproducible, so nothing in reconciliation may key on it.
type Shift struct {
	ID                string    `json:"id"`
	DeceasedName      string    `json:"deceased_name"`
	LocationName      string    `json:"location_name"`
	EventDate         string    `json:"event_date"`
	ShiftTime         string    `json:"shift_time"`
	MaxVolunteers     int       `json:"max_volunteers"`
	CurrentVolunteers int       `json:"current_volunteers"`
	StartAt           time.Time `json:"start_at"`
	EndAt             time.Time `json:"end_at"`
	Pronoun           string    `json:"pronoun"`
	VerbPhrase        string    `json:"verb_phrase"`
	PersonalInfo      string    `json:"personal_info"`
}

// ShiftKey is the natural key of a shift. It is deterministic for a given
// event and hour offset, which is what lets the reconciler preserve live rows
// (and their volunteer counts) across repeated runs.
type ShiftKey struct {
	DeceasedName string
	LocationName string
	StartUnix    int64
	EndUnix      int64
}

// Key returns the shift's natural key.
func (s *Shift) Key() ShiftKey {
	return ShiftKey{
		DeceasedName: s.DeceasedName,
		LocationName: s.LocationName,
		StartUnix:    s.StartAt.Unix(),
		EndUnix:      s.EndAt.Unix(),
	}
}

// ShiftRepository defines the interface for shift storage. SetCurrentVolunteers
// is a single-cell write; it is the only mutation the signup path performs on
// the shift table.
type ShiftRepository interface {
	List(ctx context.Context) ([]*Shift, error)
	ListStartingAfter(ctx context.Context, t time.Time) ([]*Shift, error)
	GetByID(ctx context.Context, id string) (*Shift, error)
	Insert(ctx context.Context, shifts []*Shift) error
	Delete(ctx context.Context, id string) error
	SetCurrentVolunteers(ctx context.Context, id string, count int) error
}

// ShiftSyncStats summarizes one shift reconciliation pass.
type ShiftSyncStats struct {
	Derived  int
	Inserted int
	Deleted  int
	Kept     int
}

// ShiftSynchronizer reconciles the persisted shift table against the shifts
// derivable from the current event set.
type ShiftSynchronizer interface {
	SyncShifts(ctx context.Context) (ShiftSyncStats, error)
}
