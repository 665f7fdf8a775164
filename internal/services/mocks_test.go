package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"shmirascheduler/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeEventRepo struct {
	events []*domain.Event
	err    error
}

func (f *fakeEventRepo) Create(ctx context.Context, event *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventRepo) GetByToken(ctx context.Context, token string) (*domain.Event, error) {
	for _, e := range f.events {
		if e.Token == token {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]*domain.Event(nil), f.events...), nil
}

func (f *fakeEventRepo) Latest(ctx context.Context) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.events) == 0 {
		return nil, domain.ErrNotFound
	}
	return f.events[len(f.events)-1], nil
}

type fakeShiftRepo struct {
	mu     sync.Mutex
	shifts []*domain.Shift
	err    error
}

func (f *fakeShiftRepo) List(ctx context.Context) ([]*domain.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]*domain.Shift(nil), f.shifts...), nil
}

func (f *fakeShiftRepo) ListStartingAfter(ctx context.Context, t time.Time) ([]*domain.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Shift
	for _, s := range f.shifts {
		if s.StartAt.After(t) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.shifts {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeShiftRepo) Insert(ctx context.Context, shifts []*domain.Shift) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shifts = append(f.shifts, shifts...)
	return nil
}

func (f *fakeShiftRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.shifts {
		if s.ID == id {
			f.shifts = append(f.shifts[:i], f.shifts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeShiftRepo) SetCurrentVolunteers(ctx context.Context, id string, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.shifts {
		if s.ID == id {
			s.CurrentVolunteers = count
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeShiftRepo) byID(id string) *domain.Shift {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.shifts {
		if s.ID == id {
			return s
		}
	}
	return nil
}

type fakeSignupRepo struct {
	mu      sync.Mutex
	signups []*domain.Signup
}

func (f *fakeSignupRepo) Create(ctx context.Context, signup *domain.Signup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	signup.ID = "signup-" + signup.ShiftID + "-" + signup.VolunteerToken
	f.signups = append(f.signups, signup)
	return nil
}

func (f *fakeSignupRepo) GetByShiftAndToken(ctx context.Context, shiftID, token string) (*domain.Signup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.signups {
		if s.ShiftID == shiftID && s.VolunteerToken == token {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSignupRepo) DeleteByShiftAndToken(ctx context.Context, shiftID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.signups {
		if s.ShiftID == shiftID && s.VolunteerToken == token {
			f.signups = append(f.signups[:i], f.signups[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeSignupRepo) ListShiftIDsByToken(ctx context.Context, token string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, s := range f.signups {
		if s.VolunteerToken == token {
			ids = append(ids, s.ShiftID)
		}
	}
	return ids, nil
}

type fakePersonRepo struct {
	guests  []*domain.Person
	members []*domain.Person
	err     error
}

func (f *fakePersonRepo) ListApprovedGuests(ctx context.Context) ([]*domain.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.guests, nil
}

func (f *fakePersonRepo) ListApprovedMembers(ctx context.Context) ([]*domain.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.members, nil
}

func (f *fakePersonRepo) GetByToken(ctx context.Context, token string) (*domain.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range append(append([]*domain.Person(nil), f.members...), f.guests...) {
		if p.Token == token {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeMappingRepo struct {
	live     []*domain.NotificationMapping
	archived []*domain.NotificationMapping
	markErr  error
}

func (f *fakeMappingRepo) ListLive(ctx context.Context) ([]*domain.NotificationMapping, error) {
	return append([]*domain.NotificationMapping(nil), f.live...), nil
}

func (f *fakeMappingRepo) Insert(ctx context.Context, mappings []*domain.NotificationMapping) error {
	f.live = append(f.live, mappings...)
	return nil
}

func (f *fakeMappingRepo) Archive(ctx context.Context, mappings []*domain.NotificationMapping) error {
	f.archived = append(f.archived, mappings...)
	return nil
}

func (f *fakeMappingRepo) Delete(ctx context.Context, key domain.MappingKey) error {
	for i, m := range f.live {
		if m.Key() == key {
			f.live = append(f.live[:i], f.live[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeMappingRepo) MarkSent(ctx context.Context, key domain.MappingKey, at time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	for _, m := range f.live {
		if m.Key() == key {
			m.EmailSent = true
			sentAt := at
			m.SentAt = &sentAt
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeMappingRepo) byKey(key domain.MappingKey) *domain.NotificationMapping {
	for _, m := range f.live {
		if m.Key() == key {
			return m
		}
	}
	return nil
}

type fakeEmailService struct {
	mu            sync.Mutex
	confirmations []*domain.ShiftConfirmationEmailData
	notices       []*domain.DeathNoticeEmailData
	failFor       map[string]error
}

func (f *fakeEmailService) SendShiftConfirmation(ctx context.Context, data *domain.ShiftConfirmationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[data.Email]; err != nil {
		return err
	}
	f.confirmations = append(f.confirmations, data)
	return nil
}

func (f *fakeEmailService) SendDeathNotice(ctx context.Context, data *domain.DeathNoticeEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[data.Email]; err != nil {
		return err
	}
	f.notices = append(f.notices, data)
	return nil
}

type fakeLocationRepo struct {
	locations map[string]*domain.Location
}

func (f *fakeLocationRepo) List(ctx context.Context) ([]*domain.Location, error) {
	var out []*domain.Location
	for _, l := range f.locations {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLocationRepo) GetByName(ctx context.Context, name string) (*domain.Location, error) {
	if l, ok := f.locations[name]; ok {
		return l, nil
	}
	return nil, domain.ErrNotFound
}
