package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shmirascheduler/internal/domain"
)

type signupService struct {
	shiftRepo    domain.ShiftRepository
	signupRepo   domain.SignupRepository
	personRepo   domain.PersonRepository
	eventRepo    domain.EventRepository
	locationRepo domain.LocationRepository
	emails       domain.EmailService
	lock         *CapacityLock
	baseURL      string
	logger       *slog.Logger
	now          func() time.Time
}

// NewSignupService returns the capacity ledger service. All capacity mutations
// go through the shared lock; reads do not.
func NewSignupService(
	shiftRepo domain.ShiftRepository,
	signupRepo domain.SignupRepository,
	personRepo domain.PersonRepository,
	eventRepo domain.EventRepository,
	locationRepo domain.LocationRepository,
	emails domain.EmailService,
	lock *CapacityLock,
	baseURL string,
	logger *slog.Logger,
) domain.SignupService {
	return &signupService{
		shiftRepo:    shiftRepo,
		signupRepo:   signupRepo,
		personRepo:   personRepo,
		eventRepo:    eventRepo,
		locationRepo: locationRepo,
		emails:       emails,
		lock:         lock,
		baseURL:      baseURL,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *signupService) resolveVolunteer(ctx context.Context, token string) (*domain.Person, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}
	person, err := s.personRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("resolve volunteer: %w", err)
	}
	return person, nil
}

// SignUp claims one shift for the volunteer behind the token. The capacity
// check, duplicate check, signup append, and counter increment form one
// critical section under the capacity lock; the confirmation email happens
// outside it and its failure never rolls the signup back.
func (s *signupService) SignUp(ctx context.Context, shiftID, token string) error {
	person, err := s.resolveVolunteer(ctx, token)
	if err != nil {
		return err
	}

	if err := s.lock.Acquire(ctx); err != nil {
		return err
	}

	shift, err := func() (*domain.Shift, error) {
		defer s.lock.Release()

		shift, err := s.shiftRepo.GetByID(ctx, shiftID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get shift: %w", err)
		}
		if shift.CurrentVolunteers >= shift.MaxVolunteers {
			return nil, domain.ErrShiftFull
		}
		if _, err := s.signupRepo.GetByShiftAndToken(ctx, shiftID, token); err == nil {
			return nil, domain.ErrAlreadySignedUp
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("check existing signup: %w", err)
		}

		signup := &domain.Signup{
			ShiftID:        shiftID,
			VolunteerToken: token,
			VolunteerName:  person.FullName(),
			CreatedAt:      s.now(),
		}
		if err := s.signupRepo.Create(ctx, signup); err != nil {
			return nil, fmt.Errorf("create signup: %w", err)
		}
		if err := s.shiftRepo.SetCurrentVolunteers(ctx, shiftID, shift.CurrentVolunteers+1); err != nil {
			return nil, fmt.Errorf("increment volunteer count: %w", err)
		}
		return shift, nil
	}()
	if err != nil {
		return err
	}

	s.logger.Info("signup recorded", "shift_id", shiftID, "volunteer", person.FullName())
	go s.sendConfirmation(person, shift, "Signup")
	return nil
}

// DropShift releases the volunteer's claim on one shift. A shift row missing
// after the signup was removed is logged and tolerated: the signup record is
// the thing being dropped, and the reconciler may legitimately have deleted
// the shift in the meantime.
func (s *signupService) DropShift(ctx context.Context, shiftID, token string) error {
	person, err := s.resolveVolunteer(ctx, token)
	if err != nil {
		return err
	}

	if err := s.lock.Acquire(ctx); err != nil {
		return err
	}

	shift, err := func() (*domain.Shift, error) {
		defer s.lock.Release()

		if _, err := s.signupRepo.GetByShiftAndToken(ctx, shiftID, token); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotSignedUp
			}
			return nil, fmt.Errorf("find signup: %w", err)
		}
		if err := s.signupRepo.DeleteByShiftAndToken(ctx, shiftID, token); err != nil {
			return nil, fmt.Errorf("delete signup: %w", err)
		}

		shift, err := s.shiftRepo.GetByID(ctx, shiftID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Warn("shift missing on drop; signup removed anyway", "shift_id", shiftID)
				return nil, nil
			}
			return nil, fmt.Errorf("get shift: %w", err)
		}

		count := shift.CurrentVolunteers - 1
		if count < 0 {
			count = 0
		}
		if err := s.shiftRepo.SetCurrentVolunteers(ctx, shiftID, count); err != nil {
			return nil, fmt.Errorf("decrement volunteer count: %w", err)
		}
		return shift, nil
	}()
	if err != nil {
		return err
	}

	s.logger.Info("signup dropped", "shift_id", shiftID, "volunteer", person.FullName())
	if shift != nil {
		go s.sendConfirmation(person, shift, "Drop")
	}
	return nil
}

// BulkSignUp applies SignUp to each shift independently; one full or duplicate
// shift never aborts the rest.
func (s *signupService) BulkSignUp(ctx context.Context, shiftIDs []string, token string) (domain.BulkResult, error) {
	return s.bulk(ctx, shiftIDs, token, s.SignUp)
}

// BulkDrop applies DropShift to each shift independently.
func (s *signupService) BulkDrop(ctx context.Context, shiftIDs []string, token string) (domain.BulkResult, error) {
	return s.bulk(ctx, shiftIDs, token, s.DropShift)
}

func (s *signupService) bulk(ctx context.Context, shiftIDs []string, token string, op func(context.Context, string, string) error) (domain.BulkResult, error) {
	result := domain.BulkResult{Requested: len(shiftIDs)}

	// Fail the whole batch only for an unresolvable caller.
	if _, err := s.resolveVolunteer(ctx, token); err != nil {
		return result, err
	}

	for _, shiftID := range shiftIDs {
		if err := op(ctx, shiftID, token); err != nil {
			if result.Failures == nil {
				result.Failures = make(map[string]string)
			}
			result.Failures[shiftID] = err.Error()
			result.Failed++
			continue
		}
		result.Succeeded++
	}
	return result, nil
}

// ListShifts is the lock-free portal read: every future shift, annotated with
// the caller's signed-up shift IDs, plus the latest event's summary. Counts
// may be slightly stale; the authoritative capacity check happens again under
// the lock inside SignUp.
func (s *signupService) ListShifts(ctx context.Context, token string) (*domain.ShiftBoard, error) {
	return s.listShifts(ctx, token, false)
}

// ListMyShifts returns only the future shifts the caller holds a signup for.
func (s *signupService) ListMyShifts(ctx context.Context, token string) (*domain.ShiftBoard, error) {
	return s.listShifts(ctx, token, true)
}

func (s *signupService) listShifts(ctx context.Context, token string, mineOnly bool) (*domain.ShiftBoard, error) {
	if _, err := s.resolveVolunteer(ctx, token); err != nil {
		return nil, err
	}

	shifts, err := s.shiftRepo.ListStartingAfter(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	signedUp, err := s.signupRepo.ListShiftIDsByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list signups: %w", err)
	}

	if mineOnly {
		mine := make(map[string]struct{}, len(signedUp))
		for _, id := range signedUp {
			mine[id] = struct{}{}
		}
		filtered := shifts[:0]
		for _, shift := range shifts {
			if _, ok := mine[shift.ID]; ok {
				filtered = append(filtered, shift)
			}
		}
		shifts = filtered
	}
	if shifts == nil {
		shifts = []*domain.Shift{}
	}
	if signedUp == nil {
		signedUp = []string{}
	}

	return &domain.ShiftBoard{
		Shifts:           shifts,
		SignedUpShiftIDs: signedUp,
		CurrentEvent:     s.currentEventSummary(ctx),
	}, nil
}

func (s *signupService) currentEventSummary(ctx context.Context) *domain.EventSummary {
	event, err := s.eventRepo.Latest(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("could not load latest event for portal summary", "err", err)
		}
		return nil
	}
	return &domain.EventSummary{
		DeceasedName: event.DeceasedName,
		Address:      s.addressFor(ctx, event.LocationName),
		Bio:          event.PersonalInfo,
	}
}

// addressFor expands a location name into its street address; unknown
// locations fall back to the bare name.
func (s *signupService) addressFor(ctx context.Context, locationName string) string {
	location, err := s.locationRepo.GetByName(ctx, locationName)
	if err != nil {
		return locationName
	}
	return location.Address
}

func (s *signupService) sendConfirmation(person *domain.Person, shift *domain.Shift, action string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data := &domain.ShiftConfirmationEmailData{
		Email:         person.Email,
		VolunteerName: person.FullName(),
		Action:        action,
		DeceasedName:  shift.DeceasedName,
		LocationName:  shift.LocationName,
		Address:       s.addressFor(ctx, shift.LocationName),
		Date:          shift.EventDate,
		Time:          shift.ShiftTime,
		PortalURL:     portalURL(s.baseURL, person),
	}
	if err := s.emails.SendShiftConfirmation(ctx, data); err != nil {
		s.logger.Error("confirmation email failed", "to", person.Email, "action", action, "err", err)
	}
}

// portalURL builds the personalized portal link embedded in emails. Guests and
// members land with different query parameters, matching the portal's routing.
func portalURL(baseURL string, person *domain.Person) string {
	param := "m"
	if person.Kind == domain.SourceGuest {
		param = "g"
	}
	return baseURL + "?" + param + "=" + person.Token
}
