package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"shmirascheduler/internal/domain"
)

type recordingShiftSync struct {
	calls int
	err   error
}

func (r *recordingShiftSync) SyncShifts(ctx context.Context) (domain.ShiftSyncStats, error) {
	r.calls++
	return domain.ShiftSyncStats{}, r.err
}

type recordingMappingSync struct {
	calls int
	err   error
}

func (r *recordingMappingSync) SyncMappings(ctx context.Context) (domain.MappingSyncStats, error) {
	r.calls++
	return domain.MappingSyncStats{}, r.err
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	eventRepo := &fakeEventRepo{}
	shiftSync := &recordingShiftSync{}
	mappingSync := &recordingMappingSync{}
	svc := NewEventService(eventRepo, shiftSync, mappingSync, testLogger())

	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	event, err := svc.CreateEvent(ctx, domain.NewEvent("Jane Doe", "Sinai Chapel", start, start.Add(2*time.Hour)))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if event.Token == "" {
		t.Fatalf("expected an assigned token")
	}
	if event.CreatedAt.IsZero() {
		t.Fatalf("expected a creation timestamp")
	}
	if len(eventRepo.events) != 1 {
		t.Fatalf("expected the event to be persisted")
	}
	if shiftSync.calls != 1 || mappingSync.calls != 1 {
		t.Fatalf("expected one eager pass of each reconciler, got %d and %d", shiftSync.calls, mappingSync.calls)
	}
}

func TestEventService_CreateEvent_Invalid(t *testing.T) {
	ctx := context.Background()
	svc := NewEventService(&fakeEventRepo{}, &recordingShiftSync{}, &recordingMappingSync{}, testLogger())

	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	_, err := svc.CreateEvent(ctx, domain.NewEvent("", "Sinai Chapel", start, start.Add(time.Hour)))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	if _, err := svc.CreateEvent(ctx, nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil event, got %v", err)
	}
}

func TestEventService_CreateEvent_SyncFailureTolerated(t *testing.T) {
	ctx := context.Background()
	eventRepo := &fakeEventRepo{}
	shiftSync := &recordingShiftSync{err: errors.New("lock busy")}
	mappingSync := &recordingMappingSync{}
	svc := NewEventService(eventRepo, shiftSync, mappingSync, testLogger())

	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	event, err := svc.CreateEvent(ctx, domain.NewEvent("Jane Doe", "Sinai Chapel", start, start.Add(time.Hour)))
	if err != nil {
		t.Fatalf("a failed eager sync must not fail intake: %v", err)
	}
	if event == nil || len(eventRepo.events) != 1 {
		t.Fatalf("event must still be persisted")
	}
	if mappingSync.calls != 1 {
		t.Fatalf("mapping sync should still run after a failed shift sync")
	}
}
