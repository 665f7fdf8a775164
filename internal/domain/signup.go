package domain

import (
	"context"
	"time"
)

// Signup is a volunteer's claim on one shift.
type Signup struct {
	ID             string    `json:"id"`
	ShiftID        string    `json:"shift_id"`
	VolunteerToken string    `json:"-"`
	VolunteerName  string    `json:"volunteer_name"`
	CreatedAt      time.Time `json:"created_at"`
}

// SignupRepository defines the interface for signup storage.
type SignupRepository interface {
	Create(ctx context.Context, signup *Signup) error
	GetByShiftAndToken(ctx context.Context, shiftID, token string) (*Signup, error)
	DeleteByShiftAndToken(ctx context.Context, shiftID, token string) error
	ListShiftIDsByToken(ctx context.Context, token string) ([]string, error)
}

// BulkOutcome is the tri-state result of a bulk signup or drop.
type BulkOutcome string

const (
	BulkAllSucceeded BulkOutcome = "all_succeeded"
	BulkPartial      BulkOutcome = "partial"
	BulkAllFailed    BulkOutcome = "all_failed"
)

// BulkResult reports per-shift outcomes of a bulk operation. One failing shift
// never aborts the remaining ones.
type BulkResult struct {
	Requested int               `json:"requested"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Failures  map[string]string `json:"failures,omitempty"`
}

// Outcome classifies the result as all succeeded, partial, or all failed.
func (r BulkResult) Outcome() BulkOutcome {
	switch {
	case r.Failed == 0:
		return BulkAllSucceeded
	case r.Succeeded == 0:
		return BulkAllFailed
	default:
		return BulkPartial
	}
}

// EventSummary is the condensed view of the latest event shown on the portal.
type EventSummary struct {
	DeceasedName string `json:"deceased_name"`
	Address      string `json:"address"`
	Bio          string `json:"bio"`
}

// ShiftBoard is the lock-free read payload for the portal: all future shifts,
// the caller's signed-up shift IDs, and the latest event's summary.
type ShiftBoard struct {
	Shifts           []*Shift      `json:"shifts"`
	SignedUpShiftIDs []string      `json:"signed_up_shift_ids"`
	CurrentEvent     *EventSummary `json:"current_event,omitempty"`
}

// SignupService is the capacity ledger: it serializes all mutations of shift
// capacity behind one lock and rejects over-capacity and duplicate claims.
type SignupService interface {
	SignUp(ctx context.Context, shiftID, token string) error
	DropShift(ctx context.Context, shiftID, token string) error
	BulkSignUp(ctx context.Context, shiftIDs []string, token string) (BulkResult, error)
	BulkDrop(ctx context.Context, shiftIDs []string, token string) (BulkResult, error)
	ListShifts(ctx context.Context, token string) (*ShiftBoard, error)
	ListMyShifts(ctx context.Context, token string) (*ShiftBoard, error)
}
