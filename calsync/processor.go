// ABOUTME: Per-event normalization into session fields
// ABOUTME: Computes duration and status, isolating malformed events as errors
package calsync

import (
	"fmt"
	"math"
	"time"

	"github.com/studyguru/studyguru/models"
)

// SessionFields is the normalized form of one remote event, ready to be
// written to a local session.
type SessionFields struct {
	Title           string
	Description     string
	ScheduledAt     time.Time
	DurationMinutes int
	Status          string
}

// processEvent extracts session fields from a remote event. A failure here
// affects only this event; the reconciliation loop counts it as skipped and
// moves on.
func processEvent(event RemoteEvent, now time.Time) (SessionFields, error) {
	start := event.Start.Instant()
	end := event.End.Instant()

	if start.IsZero() || end.IsZero() {
		return SessionFields{}, fmt.Errorf("event %s has missing or malformed times", event.ID)
	}
	if end.Before(start) {
		return SessionFields{}, fmt.Errorf("event %s ends before it starts", event.ID)
	}

	title := event.Title
	if title == "" {
		title = "Untitled Session"
	}

	// Whole-minute duration, floored at 1 so zero-length events stay valid.
	minutes := int(math.Round(end.Sub(start).Minutes()))
	if minutes < 1 {
		minutes = 1
	}

	status := models.SessionScheduled
	if end.Before(now) {
		status = models.SessionCompleted
	}

	return SessionFields{
		Title:           title,
		Description:     event.Description,
		ScheduledAt:     start,
		DurationMinutes: minutes,
		Status:          status,
	}, nil
}
