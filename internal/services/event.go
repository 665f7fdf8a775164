package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"shmirascheduler/internal/domain"
)

type eventService struct {
	eventRepo   domain.EventRepository
	shiftSync   domain.ShiftSynchronizer
	mappingSync domain.MappingSynchronizer
	logger      *slog.Logger
	now         func() time.Time
}

// NewEventService returns the death-notice intake service. Each accepted event
// is stamped with a fresh token and immediately pushed through both
// reconcilers so its shifts and notification pairs exist without waiting for
// the next scheduled tick.
func NewEventService(
	eventRepo domain.EventRepository,
	shiftSync domain.ShiftSynchronizer,
	mappingSync domain.MappingSynchronizer,
	logger *slog.Logger,
) domain.EventService {
	return &eventService{
		eventRepo:   eventRepo,
		shiftSync:   shiftSync,
		mappingSync: mappingSync,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event == nil {
		return nil, domain.ErrInvalidInput
	}
	if problems := event.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}

	event.Token = uuid.NewString()
	event.CreatedAt = s.now()
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	// The event is committed; a failed eager sync only delays derived rows
	// until the next scheduled pass.
	if _, err := s.shiftSync.SyncShifts(ctx); err != nil {
		s.logger.Error("post-intake shift sync failed", "event_token", event.Token, "err", err)
	}
	if _, err := s.mappingSync.SyncMappings(ctx); err != nil {
		s.logger.Error("post-intake mapping sync failed", "event_token", event.Token, "err", err)
	}

	return event, nil
}
