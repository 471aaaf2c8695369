// ABOUTME: Core reconciliation algorithm between remote events and local sessions
// ABOUTME: Classifies each event as create/update/skip, then deletes orphans
package calsync

import (
	"log"

	"github.com/google/uuid"
	"github.com/studyguru/studyguru/models"
)

// SessionStore is the persistence surface the reconciler needs. The db
// package provides the SQLite implementation; tests provide fakes.
type SessionStore interface {
	GetByEventID(userID uuid.UUID, eventID string) (*models.Session, error)
	ListLinked(userID uuid.UUID) ([]models.Session, error)
	Create(session *models.Session) error
	Update(session *models.Session) error
	Delete(id uuid.UUID) error
}

// Reconciler converges local sessions to the fetched remote event set.
type Reconciler struct {
	store SessionStore
	clock Clock
}

func NewReconciler(store SessionStore, clock Clock) *Reconciler {
	if clock == nil {
		clock = SystemClock()
	}
	return &Reconciler{store: store, clock: clock}
}

// Reconcile walks remote events in input order, creating, updating, or
// skipping a session per event, then deletes sessions whose remote
// counterpart is gone. Failures on one event never abort the run; they count
// as skipped. locals must be the user's calendar-linked sessions; local-only
// sessions are never inspected.
//
// Cancelled events are treated as if never fetched: they create nothing,
// update nothing, and do not protect an existing session from the deletion
// pass. All-day events are invisible to reconciliation entirely.
func (r *Reconciler) Reconcile(userID uuid.UUID, events []RemoteEvent, locals []models.Session) SyncResult {
	result := SyncResult{Success: true}
	now := r.clock.Now()

	seen := make(map[string]bool)

	for _, event := range events {
		if event.Status == StatusCancelled {
			continue
		}
		if event.IsAllDay() {
			continue
		}

		fields, err := processEvent(event, now)
		if err != nil {
			log.Printf("Failed to sync event %s: %v", event.ID, err)
			result.Skipped++
			continue
		}

		existing, err := r.store.GetByEventID(userID, event.ID)
		if err != nil {
			log.Printf("Failed to sync event %s: %v", event.ID, err)
			result.Skipped++
			continue
		}

		if existing == nil {
			eventID := event.ID
			session := &models.Session{
				UserID:          userID,
				GoogleEventID:   &eventID,
				Title:           fields.Title,
				Description:     fields.Description,
				ScheduledAt:     fields.ScheduledAt,
				DurationMinutes: fields.DurationMinutes,
				Status:          fields.Status,
			}
			if err := r.store.Create(session); err != nil {
				log.Printf("Failed to sync event %s: %v", event.ID, err)
				result.Skipped++
				continue
			}
			result.Synced++
		} else if sessionChanged(existing, fields) {
			existing.Title = fields.Title
			existing.Description = fields.Description
			existing.ScheduledAt = fields.ScheduledAt
			existing.DurationMinutes = fields.DurationMinutes
			existing.Status = fields.Status
			if err := r.store.Update(existing); err != nil {
				log.Printf("Failed to sync event %s: %v", event.ID, err)
				result.Skipped++
				continue
			}
			result.Updated++
		} else {
			result.Skipped++
		}

		seen[event.ID] = true
	}

	// Deletion pass: anything linked to an event the fetch no longer
	// returned is gone remotely.
	for i := range locals {
		session := &locals[i]
		if session.GoogleEventID == nil || seen[*session.GoogleEventID] {
			continue
		}
		if err := r.store.Delete(session.ID); err != nil {
			log.Printf("Failed to delete session %s: %v", session.ID, err)
			continue
		}
		result.Deleted++
	}

	return result
}

// sessionChanged compares the fields reconciliation owns. Status is derived
// from the clock, not compared; timestamps compare to the second.
func sessionChanged(existing *models.Session, fields SessionFields) bool {
	return existing.Title != fields.Title ||
		existing.Description != fields.Description ||
		existing.ScheduledAt.Unix() != fields.ScheduledAt.Unix() ||
		existing.DurationMinutes != fields.DurationMinutes
}
