// ABOUTME: Tests for per-event field normalization
// ABOUTME: Verifies duration rounding, title fallback, and status derivation
package calsync

import (
	"testing"
	"time"

	"github.com/studyguru/studyguru/models"
)

func TestProcessEventDurationRounding(t *testing.T) {
	start := testNow.Add(time.Hour)

	cases := []struct {
		name   string
		length time.Duration
		want   int
	}{
		{"whole hour", time.Hour, 60},
		{"rounds up", 45*time.Minute + 40*time.Second, 46},
		{"rounds down", 45*time.Minute + 20*time.Second, 45},
		{"zero length floors to one", 0, 1},
		{"sub-30s floors to one", 10 * time.Second, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			event := RemoteEvent{
				ID:    "ev",
				Title: "Session",
				Start: NewInstant(start),
				End:   NewInstant(start.Add(tc.length)),
			}
			fields, err := processEvent(event, testNow)
			if err != nil {
				t.Fatalf("processEvent: %v", err)
			}
			if fields.DurationMinutes != tc.want {
				t.Errorf("duration = %d, want %d", fields.DurationMinutes, tc.want)
			}
		})
	}
}

func TestProcessEventTitleFallback(t *testing.T) {
	event := timedEvent("ev", "", testNow.Add(time.Hour), 30)
	fields, err := processEvent(event, testNow)
	if err != nil {
		t.Fatalf("processEvent: %v", err)
	}
	if fields.Title != "Untitled Session" {
		t.Errorf("title = %q", fields.Title)
	}
}

func TestProcessEventStatus(t *testing.T) {
	past := timedEvent("past", "Done", testNow.Add(-2*time.Hour), 60)
	fields, err := processEvent(past, testNow)
	if err != nil {
		t.Fatalf("processEvent: %v", err)
	}
	if fields.Status != models.SessionCompleted {
		t.Errorf("past event status = %q", fields.Status)
	}

	// An event that started but has not ended is still scheduled.
	ongoing := timedEvent("ongoing", "In progress", testNow.Add(-30*time.Minute), 60)
	fields, err = processEvent(ongoing, testNow)
	if err != nil {
		t.Fatalf("processEvent: %v", err)
	}
	if fields.Status != models.SessionScheduled {
		t.Errorf("ongoing event status = %q", fields.Status)
	}
}

func TestProcessEventRejectsMalformedTimes(t *testing.T) {
	missing := RemoteEvent{ID: "ev", Title: "No times"}
	if _, err := processEvent(missing, testNow); err == nil {
		t.Error("expected error for missing times")
	}

	backwards := RemoteEvent{
		ID:    "ev",
		Title: "Backwards",
		Start: NewInstant(testNow.Add(time.Hour)),
		End:   NewInstant(testNow),
	}
	if _, err := processEvent(backwards, testNow); err == nil {
		t.Error("expected error for end before start")
	}
}
