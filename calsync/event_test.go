// ABOUTME: Tests for Google event normalization and the EventTime union
// ABOUTME: Verifies date-vs-datetime handling and all-day detection
package calsync

import (
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"
)

func TestFromGoogleEventTimed(t *testing.T) {
	event := FromGoogleEvent(&calendar.Event{
		Id:          "gcal-1",
		Summary:     "Binary search drills",
		Description: "Chapters 4-6",
		Status:      "confirmed",
		Start:       &calendar.EventDateTime{DateTime: "2025-06-15T14:00:00Z"},
		End:         &calendar.EventDateTime{DateTime: "2025-06-15T15:30:00Z"},
	})

	if event.ID != "gcal-1" || event.Title != "Binary search drills" {
		t.Errorf("event = %+v", event)
	}
	if event.IsAllDay() {
		t.Error("timed event reported all-day")
	}

	want := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	if !event.Start.Instant().Equal(want) {
		t.Errorf("start = %v", event.Start.Instant())
	}
}

func TestFromGoogleEventAllDay(t *testing.T) {
	event := FromGoogleEvent(&calendar.Event{
		Id:    "gcal-2",
		Start: &calendar.EventDateTime{Date: "2025-06-16"},
		End:   &calendar.EventDateTime{Date: "2025-06-17"},
	})

	if !event.IsAllDay() {
		t.Error("date-only event not reported all-day")
	}
	if event.Start.Date() != "2025-06-16" {
		t.Errorf("start date = %q", event.Start.Date())
	}
	if !event.Start.Instant().IsZero() {
		t.Errorf("date-only instant = %v", event.Start.Instant())
	}
}

func TestFromGoogleEventMalformedTimes(t *testing.T) {
	event := FromGoogleEvent(&calendar.Event{
		Id:    "gcal-3",
		Start: &calendar.EventDateTime{DateTime: "not-a-time"},
		End:   nil,
	})

	if !event.Start.IsZero() {
		t.Error("malformed start should be zero")
	}
	if !event.End.IsZero() {
		t.Error("missing end should be zero")
	}
}

func TestEventTimeUnion(t *testing.T) {
	instant := NewInstant(testNow)
	if instant.IsDateOnly() || instant.IsZero() {
		t.Error("instant misclassified")
	}

	date := NewDateOnly("2025-06-16")
	if !date.IsDateOnly() || date.IsZero() {
		t.Error("date misclassified")
	}

	var zero EventTime
	if !zero.IsZero() {
		t.Error("zero value not zero")
	}
}
