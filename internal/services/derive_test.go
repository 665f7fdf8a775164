package services

import (
	"testing"
	"time"

	"shmirascheduler/internal/domain"
)

func TestDeriveHourlyShifts_TilesWindow(t *testing.T) {
	event := &domain.Event{
		Token:        "event-1",
		DeceasedName: "Jane Doe",
		LocationName: "Sinai Chapel",
		StartAt:      time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
		EndAt:        time.Date(2026, 1, 5, 12, 30, 0, 0, time.UTC),
		Pronoun:      "She",
		VerbPhrase:   "was",
	}

	shifts := DeriveHourlyShifts(event, testLogger())

	if len(shifts) != 3 {
		t.Fatalf("expected 3 shifts for a 2.5 hour window, got %d", len(shifts))
	}
	for i, shift := range shifts {
		if shift.MaxVolunteers != 1 || shift.CurrentVolunteers != 0 {
			t.Fatalf("shift %d: expected capacity 1 and count 0, got %d/%d", i, shift.CurrentVolunteers, shift.MaxVolunteers)
		}
		if shift.DeceasedName != "Jane Doe" || shift.LocationName != "Sinai Chapel" {
			t.Fatalf("shift %d: display fields not copied: %+v", i, shift)
		}
		if shift.ID == "" {
			t.Fatalf("shift %d: missing generated ID", i)
		}
	}
	if !shifts[0].StartAt.Equal(event.StartAt) {
		t.Fatalf("first shift should start at the event start, got %v", shifts[0].StartAt)
	}
	if !shifts[1].StartAt.Equal(shifts[0].EndAt) {
		t.Fatalf("shifts should be consecutive, got gap between %v and %v", shifts[0].EndAt, shifts[1].StartAt)
	}
	last := shifts[2]
	if !last.EndAt.Equal(event.EndAt) {
		t.Fatalf("last shift should truncate at the event end, got %v", last.EndAt)
	}
	if got := last.EndAt.Sub(last.StartAt); got != 30*time.Minute {
		t.Fatalf("last shift should be 30 minutes, got %v", got)
	}
}

func TestDeriveHourlyShifts_ExactHours(t *testing.T) {
	event := &domain.Event{
		DeceasedName: "Jane Doe",
		LocationName: "Sinai Chapel",
		StartAt:      time.Date(2026, 1, 5, 22, 0, 0, 0, time.UTC),
		EndAt:        time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC),
	}

	shifts := DeriveHourlyShifts(event, testLogger())

	if len(shifts) != 2 {
		t.Fatalf("expected 2 shifts for a 2 hour window, got %d", len(shifts))
	}
	for _, shift := range shifts {
		if got := shift.EndAt.Sub(shift.StartAt); got != time.Hour {
			t.Fatalf("expected a full hour, got %v", got)
		}
	}
}

func TestDeriveHourlyShifts_InvalidEvent(t *testing.T) {
	tests := []struct {
		name  string
		event *domain.Event
	}{
		{
			name: "missing deceased name",
			event: &domain.Event{
				LocationName: "Sinai Chapel",
				StartAt:      time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
				EndAt:        time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "start equals end",
			event: &domain.Event{
				DeceasedName: "Jane Doe",
				LocationName: "Sinai Chapel",
				StartAt:      time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
				EndAt:        time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "start after end",
			event: &domain.Event{
				DeceasedName: "Jane Doe",
				LocationName: "Sinai Chapel",
				StartAt:      time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC),
				EndAt:        time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if shifts := DeriveHourlyShifts(tt.event, testLogger()); len(shifts) != 0 {
				t.Fatalf("expected no shifts, got %d", len(shifts))
			}
		})
	}
}

func TestDeriveHourlyShifts_DeterministicKeys(t *testing.T) {
	event := &domain.Event{
		DeceasedName: "Jane Doe",
		LocationName: "Sinai Chapel",
		StartAt:      time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
		EndAt:        time.Date(2026, 1, 5, 13, 0, 0, 0, time.UTC),
	}

	first := DeriveHourlyShifts(event, testLogger())
	second := DeriveHourlyShifts(event, testLogger())

	if len(first) != len(second) {
		t.Fatalf("expected equal lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Key() != second[i].Key() {
			t.Fatalf("shift %d: keys differ across derivations: %+v vs %+v", i, first[i].Key(), second[i].Key())
		}
		if first[i].ID == second[i].ID {
			t.Fatalf("shift %d: IDs should be freshly generated each call", i)
		}
	}
}
