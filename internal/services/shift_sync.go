package services

import (
	"context"
	"fmt"
	"log/slog"

	"shmirascheduler/internal/domain"
)

type shiftSyncService struct {
	eventRepo domain.EventRepository
	shiftRepo domain.ShiftRepository
	lock      *CapacityLock
	logger    *slog.Logger
}

// NewShiftSyncService returns the shift reconciler. It shares the capacity
// lock with the signup service so that deleting or inserting shift rows cannot
// interleave with an in-flight signup.
func NewShiftSyncService(
	eventRepo domain.EventRepository,
	shiftRepo domain.ShiftRepository,
	lock *CapacityLock,
	logger *slog.Logger,
) domain.ShiftSynchronizer {
	return &shiftSyncService{
		eventRepo: eventRepo,
		shiftRepo: shiftRepo,
		lock:      lock,
		logger:    logger,
	}
}

// SyncShifts diffs the shifts derivable from the current event set against the
// persisted shift table by natural key. Missing shifts are inserted with a
// zero volunteer count, shifts no longer derivable are deleted, and matched
// rows are left completely untouched so live signups and counts survive
// repeated runs.
func (s *shiftSyncService) SyncShifts(ctx context.Context) (domain.ShiftSyncStats, error) {
	var stats domain.ShiftSyncStats

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return stats, fmt.Errorf("list events: %w", err)
	}

	// Derive the full required set before touching storage.
	required := make(map[domain.ShiftKey]*domain.Shift)
	for _, event := range events {
		for _, shift := range DeriveHourlyShifts(event, s.logger) {
			required[shift.Key()] = shift
		}
	}
	stats.Derived = len(required)

	if err := s.lock.Acquire(ctx); err != nil {
		return stats, fmt.Errorf("acquire capacity lock: %w", err)
	}
	defer s.lock.Release()

	existing, err := s.shiftRepo.List(ctx)
	if err != nil {
		return stats, fmt.Errorf("list shifts: %w", err)
	}

	matched := make(map[domain.ShiftKey]struct{}, len(existing))
	for _, shift := range existing {
		key := shift.Key()
		if _, ok := required[key]; ok {
			matched[key] = struct{}{}
			stats.Kept++
			continue
		}
		if err := s.shiftRepo.Delete(ctx, shift.ID); err != nil {
			return stats, fmt.Errorf("delete obsolete shift %s: %w", shift.ID, err)
		}
		stats.Deleted++
	}

	var toInsert []*domain.Shift
	for key, shift := range required {
		if _, ok := matched[key]; !ok {
			toInsert = append(toInsert, shift)
		}
	}
	if len(toInsert) > 0 {
		if err := s.shiftRepo.Insert(ctx, toInsert); err != nil {
			return stats, fmt.Errorf("insert new shifts: %w", err)
		}
	}
	stats.Inserted = len(toInsert)

	s.logger.Info("shift sync complete",
		"derived", stats.Derived,
		"inserted", stats.Inserted,
		"deleted", stats.Deleted,
		"kept", stats.Kept,
	)
	return stats, nil
}
