package domain

import (
	"context"
	"time"
)

// NotificationMapping pairs a person with an event for the purpose of exactly
// one notification email. The composite key (source kind, event token, person
// token) is unique in the live table; obsolete rows are archived, not lost.
type NotificationMapping struct {
	SourceKind  SourceKind `json:"source_kind"`
	EventToken  string     `json:"event_token"`
	PersonToken string     `json:"person_token"`
	EmailSent   bool       `json:"email_sent"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
}

// MappingKey is the composite key of a notification mapping.
type MappingKey struct {
	SourceKind  SourceKind
	EventToken  string
	PersonToken string
}

// Key returns the mapping's composite key.
func (m *NotificationMapping) Key() MappingKey {
	return MappingKey{SourceKind: m.SourceKind, EventToken: m.EventToken, PersonToken: m.PersonToken}
}

// MappingRepository defines storage for the live notification map and its
// archive. Archive appends a copy; Delete removes from the live table only.
type MappingRepository interface {
	ListLive(ctx context.Context) ([]*NotificationMapping, error)
	Insert(ctx context.Context, mappings []*NotificationMapping) error
	Archive(ctx context.Context, mappings []*NotificationMapping) error
	Delete(ctx context.Context, key MappingKey) error
	MarkSent(ctx context.Context, key MappingKey, at time.Time) error
}

// MappingSyncStats summarizes one mapping reconciliation pass.
type MappingSyncStats struct {
	Required int
	Inserted int
	Archived int
	Kept     int
}

// MappingSynchronizer reconciles the live notification map against the pairs
// required by the current events and rosters.
type MappingSynchronizer interface {
	SyncMappings(ctx context.Context) (MappingSyncStats, error)
}

// DispatchStats summarizes one notification dispatch pass.
type DispatchStats struct {
	Pending int
	Sent    int
	Skipped int
	Failed  int
}

// NotificationDispatcher sends one email per unsent mapping row and marks each
// row sent only after a successful send.
type NotificationDispatcher interface {
	DispatchPending(ctx context.Context) (DispatchStats, error)
}
