package services

import (
	"context"
	"fmt"
	"log/slog"

	"shmirascheduler/internal/domain"
)

type mappingSyncService struct {
	eventRepo   domain.EventRepository
	personRepo  domain.PersonRepository
	mappingRepo domain.MappingRepository
	logger      *slog.Logger
}

// NewMappingSyncService returns the notification-map reconciler.
func NewMappingSyncService(
	eventRepo domain.EventRepository,
	personRepo domain.PersonRepository,
	mappingRepo domain.MappingRepository,
	logger *slog.Logger,
) domain.MappingSynchronizer {
	return &mappingSyncService{
		eventRepo:   eventRepo,
		personRepo:  personRepo,
		mappingRepo: mappingRepo,
		logger:      logger,
	}
}

// SyncMappings rebuilds the required (person, event) notification pairs from
// the current events and rosters, then applies the minimal diff to the live
// map: obsolete rows are copied to the archive and deleted, missing rows are
// inserted unsent, and rows present on both sides keep their emailSent state.
//
// Guests are paired only with events whose decedent name appears in their
// interest list; approved members are paired with every event.
func (s *mappingSyncService) SyncMappings(ctx context.Context) (domain.MappingSyncStats, error) {
	var stats domain.MappingSyncStats

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return stats, fmt.Errorf("list events: %w", err)
	}
	guests, err := s.personRepo.ListApprovedGuests(ctx)
	if err != nil {
		return stats, fmt.Errorf("list guests: %w", err)
	}
	members, err := s.personRepo.ListApprovedMembers(ctx)
	if err != nil {
		return stats, fmt.Errorf("list members: %w", err)
	}

	required := make(map[domain.MappingKey]struct{})
	for _, event := range events {
		matchName := event.MatchName()
		for _, guest := range guests {
			if guest.InterestedIn(matchName) {
				required[domain.MappingKey{
					SourceKind:  domain.SourceGuest,
					EventToken:  event.Token,
					PersonToken: guest.Token,
				}] = struct{}{}
			}
		}
		for _, member := range members {
			required[domain.MappingKey{
				SourceKind:  domain.SourceMember,
				EventToken:  event.Token,
				PersonToken: member.Token,
			}] = struct{}{}
		}
	}
	stats.Required = len(required)

	live, err := s.mappingRepo.ListLive(ctx)
	if err != nil {
		return stats, fmt.Errorf("list mappings: %w", err)
	}

	present := make(map[domain.MappingKey]struct{}, len(live))
	var obsolete []*domain.NotificationMapping
	for _, mapping := range live {
		key := mapping.Key()
		present[key] = struct{}{}
		if _, ok := required[key]; ok {
			stats.Kept++
			continue
		}
		obsolete = append(obsolete, mapping)
	}

	// Archive first, then delete: a crash between the two duplicates a row in
	// the archive rather than losing it.
	if len(obsolete) > 0 {
		if err := s.mappingRepo.Archive(ctx, obsolete); err != nil {
			return stats, fmt.Errorf("archive obsolete mappings: %w", err)
		}
		for _, mapping := range obsolete {
			if err := s.mappingRepo.Delete(ctx, mapping.Key()); err != nil {
				return stats, fmt.Errorf("delete obsolete mapping: %w", err)
			}
			stats.Archived++
		}
	}

	var toInsert []*domain.NotificationMapping
	for key := range required {
		if _, ok := present[key]; !ok {
			toInsert = append(toInsert, &domain.NotificationMapping{
				SourceKind:  key.SourceKind,
				EventToken:  key.EventToken,
				PersonToken: key.PersonToken,
				EmailSent:   false,
			})
		}
	}
	if len(toInsert) > 0 {
		if err := s.mappingRepo.Insert(ctx, toInsert); err != nil {
			return stats, fmt.Errorf("insert new mappings: %w", err)
		}
	}
	stats.Inserted = len(toInsert)

	s.logger.Info("mapping sync complete",
		"required", stats.Required,
		"inserted", stats.Inserted,
		"archived", stats.Archived,
		"kept", stats.Kept,
	)
	return stats, nil
}
