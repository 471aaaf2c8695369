// ABOUTME: Top-level calendar sync orchestration for one user
// ABOUTME: Guards the credential, fetches remote events, runs reconciliation
package calsync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/studyguru/studyguru/db"
)

const (
	// CalendarService keys sync_state and sync_log rows.
	CalendarService = "calendar"

	defaultWindowDays = 30
)

// User-facing error messages for the fatal failure classes.
const (
	msgNotAuthenticated = "Not authenticated"
	msgAuthExpired      = "Authentication expired"
	msgFetchFailed      = "Failed to fetch calendar events"
)

// Syncer runs one synchronous reconciliation per call. It is safe for
// concurrent use across different users; concurrent runs for the same user
// must be serialized by the caller, since both would mutate the same
// credential and race on first-sight creates.
type Syncer struct {
	db         *sql.DB
	store      SessionStore
	guard      *TokenGuard
	newSource  SourceFactory
	clock      Clock
	WindowDays int
}

// NewSyncer wires the production syncer: oauth refresh, Google Calendar
// source, SQLite store.
func NewSyncer(database *sql.DB, config *oauth2.Config) *Syncer {
	clock := SystemClock()
	return &Syncer{
		db:         database,
		store:      NewStore(database),
		guard:      NewTokenGuard(NewOAuthRefresher(config), clock),
		newSource:  GoogleSourceFactory(config),
		clock:      clock,
		WindowDays: defaultWindowDays,
	}
}

// NewSyncerWith wires a syncer from explicit collaborators. Tests use this
// to freeze time and fake the remote calendar. database may be nil to skip
// sync_state bookkeeping.
func NewSyncerWith(database *sql.DB, store SessionStore, guard *TokenGuard, factory SourceFactory, clock Clock) *Syncer {
	if clock == nil {
		clock = SystemClock()
	}
	return &Syncer{
		db:         database,
		store:      store,
		guard:      guard,
		newSource:  factory,
		clock:      clock,
		WindowDays: defaultWindowDays,
	}
}

// SyncForUser reconciles the user's calendar-linked sessions against the
// remote calendar. Fatal failures (auth, fetch) return immediately with
// success=false and zero counters; per-event failures only increment the
// skipped counter.
func (s *Syncer) SyncForUser(ctx context.Context, userID uuid.UUID, cred *Credential) SyncResult {
	s.setStatus("syncing", nil)

	if err := s.guard.Ensure(ctx, cred); err != nil {
		switch {
		case errors.Is(err, ErrNotAuthenticated):
			return s.fail(msgNotAuthenticated)
		case errors.Is(err, ErrAuthenticationExpired):
			return s.fail(msgAuthExpired)
		default:
			return s.fail(err.Error())
		}
	}

	source, err := s.newSource(ctx, cred)
	if err != nil {
		log.Printf("Google Calendar API error: %v", err)
		return s.fail(msgFetchFailed)
	}

	window := WindowAround(s.clock.Now(), s.WindowDays)
	events, err := source.ListEvents(ctx, window)
	if err != nil {
		log.Printf("Google Calendar API error: %v", err)
		return s.fail(msgFetchFailed)
	}

	locals, err := s.store.ListLinked(userID)
	if err != nil {
		return s.fail(err.Error())
	}

	result := NewReconciler(s.store, s.clock).Reconcile(userID, events, locals)

	s.recordRun(userID, result)
	log.Println(result.Summary())

	return result
}

func (s *Syncer) fail(message string) SyncResult {
	s.setStatus("error", &message)
	return failure(message)
}

func (s *Syncer) setStatus(status string, errorMsg *string) {
	if s.db == nil {
		return
	}
	if err := db.UpdateSyncStatus(s.db, CalendarService, status, errorMsg); err != nil {
		log.Printf("Failed to update sync status: %v", err)
	}
}

func (s *Syncer) recordRun(userID uuid.UUID, result SyncResult) {
	if s.db == nil {
		return
	}
	if err := db.MarkSyncComplete(s.db, CalendarService); err != nil {
		log.Printf("Failed to mark sync complete: %v", err)
	}
	if err := db.CreateSyncLog(s.db, CalendarService, userID, result.Synced, result.Updated, result.Skipped, result.Deleted); err != nil {
		log.Printf("Failed to record sync log: %v", err)
	}
}

// SyncSummary is a convenience for callers that only want the sentence.
func SyncSummary(result SyncResult) string {
	if result.Success {
		return result.Summary()
	}
	if result.Error != nil {
		return fmt.Sprintf("Sync failed: %s", *result.Error)
	}
	return "Sync failed"
}
