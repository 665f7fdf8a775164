package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shmirascheduler/internal/domain"
)

type dispatchService struct {
	mappingRepo  domain.MappingRepository
	eventRepo    domain.EventRepository
	personRepo   domain.PersonRepository
	locationRepo domain.LocationRepository
	emails       domain.EmailService
	baseURL      string
	logger       *slog.Logger
	now          func() time.Time
}

// NewDispatchService returns the notification dispatcher.
func NewDispatchService(
	mappingRepo domain.MappingRepository,
	eventRepo domain.EventRepository,
	personRepo domain.PersonRepository,
	locationRepo domain.LocationRepository,
	emails domain.EmailService,
	baseURL string,
	logger *slog.Logger,
) domain.NotificationDispatcher {
	return &dispatchService{
		mappingRepo:  mappingRepo,
		eventRepo:    eventRepo,
		personRepo:   personRepo,
		locationRepo: locationRepo,
		emails:       emails,
		baseURL:      baseURL,
		logger:       logger,
		now:          time.Now,
	}
}

// DispatchPending sends one death-notice email per mapping row still marked
// unsent and marks each row sent only after its send succeeded. Rows whose
// event or person has since disappeared are skipped with a log line, and a
// failed send for one row never stops the rest; the next pass retries exactly
// the rows still unsent.
func (s *dispatchService) DispatchPending(ctx context.Context) (domain.DispatchStats, error) {
	var stats domain.DispatchStats

	mappings, err := s.mappingRepo.ListLive(ctx)
	if err != nil {
		return stats, fmt.Errorf("list mappings: %w", err)
	}

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return stats, fmt.Errorf("list events: %w", err)
	}
	eventsByToken := make(map[string]*domain.Event, len(events))
	for _, event := range events {
		eventsByToken[event.Token] = event
	}

	guests, err := s.personRepo.ListApprovedGuests(ctx)
	if err != nil {
		return stats, fmt.Errorf("list guests: %w", err)
	}
	members, err := s.personRepo.ListApprovedMembers(ctx)
	if err != nil {
		return stats, fmt.Errorf("list members: %w", err)
	}
	peopleByToken := make(map[string]*domain.Person, len(guests)+len(members))
	for _, p := range guests {
		peopleByToken[p.Token] = p
	}
	for _, p := range members {
		peopleByToken[p.Token] = p
	}

	for _, mapping := range mappings {
		if mapping.EmailSent {
			continue
		}
		stats.Pending++

		event, okEvent := eventsByToken[mapping.EventToken]
		person, okPerson := peopleByToken[mapping.PersonToken]
		if !okEvent || !okPerson {
			s.logger.Warn("skipping mapping: event or person no longer resolvable",
				"event_token", mapping.EventToken,
				"person_token", mapping.PersonToken,
			)
			stats.Skipped++
			continue
		}

		if err := s.emails.SendDeathNotice(ctx, s.buildNotice(ctx, event, person)); err != nil {
			s.logger.Error("death notice failed", "to", person.Email, "event_token", event.Token, "err", err)
			stats.Failed++
			continue
		}

		// Send-then-mark: a row is marked only after a successful send, so it
		// can never be marked without one. A crash between the two re-sends on
		// the next pass.
		if err := s.mappingRepo.MarkSent(ctx, mapping.Key(), s.now()); err != nil {
			s.logger.Error("could not mark mapping sent", "to", person.Email, "event_token", event.Token, "err", err)
			stats.Failed++
			continue
		}
		stats.Sent++
	}

	s.logger.Info("notification dispatch complete",
		"pending", stats.Pending,
		"sent", stats.Sent,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	return stats, nil
}

func (s *dispatchService) buildNotice(ctx context.Context, event *domain.Event, person *domain.Person) *domain.DeathNoticeEmailData {
	address := event.LocationName
	if location, err := s.locationRepo.GetByName(ctx, event.LocationName); err == nil {
		address = location.Address
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("location lookup failed", "location", event.LocationName, "err", err)
	}

	return &domain.DeathNoticeEmailData{
		Email:        person.Email,
		FirstName:    person.FirstName,
		LastName:     person.LastName,
		DeceasedName: event.DeceasedName,
		Pronoun:      event.Pronoun,
		VerbPhrase:   event.VerbPhrase,
		LocationName: event.LocationName,
		Address:      address,
		StartText:    formatDateAndTime(event.StartAt),
		EndText:      formatDateAndTime(event.EndAt),
		PersonalInfo: event.PersonalInfo,
		PortalURL:    portalURL(s.baseURL, person),
	}
}
