// ABOUTME: Remote calendar event model with date-vs-datetime tagged union
// ABOUTME: Normalizes Google Calendar API events into engine-owned values
package calsync

import (
	"time"

	"google.golang.org/api/calendar/v3"
)

// Remote event status values as reported by the calendar API.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusTentative = "tentative"
)

// EventTime is either a point in time or a bare date (all-day events carry
// dates, timed events carry instants; never both).
type EventTime struct {
	instant time.Time
	date    string
}

func NewInstant(t time.Time) EventTime {
	return EventTime{instant: t}
}

func NewDateOnly(date string) EventTime {
	return EventTime{date: date}
}

func (t EventTime) IsDateOnly() bool { return t.date != "" }

// Instant returns the point in time; zero for date-only or missing times.
func (t EventTime) Instant() time.Time { return t.instant }

func (t EventTime) Date() string { return t.date }

// IsZero reports a missing or unparseable time.
func (t EventTime) IsZero() bool { return t.date == "" && t.instant.IsZero() }

// RemoteEvent is one calendar entry as fetched for a reconciliation pass.
// It lives only for the duration of the pass and is never persisted.
type RemoteEvent struct {
	ID          string
	Title       string
	Description string
	Start       EventTime
	End         EventTime
	Status      string
}

// IsAllDay reports whether either end of the event is date-only.
func (e RemoteEvent) IsAllDay() bool {
	return e.Start.IsDateOnly() || e.End.IsDateOnly()
}

// FromGoogleEvent normalizes a Google Calendar API event. Missing or
// malformed times come through as zero EventTimes and are rejected later by
// the item processor, so one bad record cannot abort a run here.
func FromGoogleEvent(event *calendar.Event) RemoteEvent {
	remote := RemoteEvent{
		ID:          event.Id,
		Title:       event.Summary,
		Description: event.Description,
		Status:      event.Status,
	}
	remote.Start = fromGoogleTime(event.Start)
	remote.End = fromGoogleTime(event.End)
	return remote
}

func fromGoogleTime(edt *calendar.EventDateTime) EventTime {
	if edt == nil {
		return EventTime{}
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return EventTime{}
		}
		return NewInstant(t)
	}
	if edt.Date != "" {
		return NewDateOnly(edt.Date)
	}
	return EventTime{}
}
