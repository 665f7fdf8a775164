package services

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shmirascheduler/internal/domain"
)

// DeriveHourlyShifts expands one event into consecutive one-hour shifts tiling
// [StartAt, EndAt), the final shift truncated at EndAt. Every shift gets a
// capacity of one and a zero volunteer count; display fields are copied from
// the event.
//
// Invalid events (missing fields, start not before end) yield an empty slice
// and a log line, never an error: a malformed event must not stop a
// reconciliation pass over the rest. The natural keys of the result are fully
// determined by the event, which is what makes reconciliation idempotent; only
// the generated IDs differ between calls.
func DeriveHourlyShifts(event *domain.Event, logger *slog.Logger) []*domain.Shift {
	if problems := event.Validate(); len(problems) > 0 {
		logger.Warn("skipping event: invalid for shift derivation",
			"event_token", event.Token,
			"deceased_name", event.DeceasedName,
			"problems", problems,
		)
		return nil
	}

	var shifts []*domain.Shift
	start := event.StartAt
	for start.Before(event.EndAt) {
		end := start.Add(time.Hour)
		if end.After(event.EndAt) {
			end = event.EndAt
		}

		shifts = append(shifts, &domain.Shift{
			ID:                uuid.NewString(),
			DeceasedName:      event.DeceasedName,
			LocationName:      event.LocationName,
			EventDate:         formatShortDate(start),
			ShiftTime:         formatTimeRange(start, end),
			MaxVolunteers:     1,
			CurrentVolunteers: 0,
			StartAt:           start,
			EndAt:             end,
			Pronoun:           event.Pronoun,
			VerbPhrase:        event.VerbPhrase,
			PersonalInfo:      event.PersonalInfo,
		})

		start = end
	}
	return shifts
}

func formatShortDate(t time.Time) string {
	return t.Format("Mon, Jan 2")
}

func formatTimeRange(start, end time.Time) string {
	return start.Format("3:04 PM") + " - " + end.Format("3:04 PM")
}

// formatDateAndTime renders an instant the way notification emails spell out
// the shmira window.
func formatDateAndTime(t time.Time) string {
	return t.Format("Monday, January 2, 2006 at 3:04 PM MST")
}
