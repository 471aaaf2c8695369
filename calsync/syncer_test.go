// ABOUTME: Tests for the top-level sync orchestration
// ABOUTME: Verifies auth short-circuit, fetch failure mapping, and the happy path
package calsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// fakeSource returns canned events or an error.
type fakeSource struct {
	events []RemoteEvent
	err    error

	calls   int
	windows []TimeWindow
}

func (s *fakeSource) ListEvents(ctx context.Context, window TimeWindow) ([]RemoteEvent, error) {
	s.calls++
	s.windows = append(s.windows, window)
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

func testSyncer(store SessionStore, refresher Refresher, source *fakeSource) *Syncer {
	clock := fixedClock{testNow}
	guard := NewTokenGuard(refresher, clock)
	factory := func(ctx context.Context, cred *Credential) (EventSource, error) {
		return source, nil
	}
	return NewSyncerWith(nil, store, guard, factory, clock)
}

func validCredential() *Credential {
	return &Credential{AccessToken: "tok", Expiry: testNow.Add(time.Hour)}
}

func TestSyncForUserNotAuthenticated(t *testing.T) {
	source := &fakeSource{}
	syncer := testSyncer(newFakeStore(), &fakeRefresher{}, source)

	result := syncer.SyncForUser(context.Background(), uuid.New(), &Credential{})

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Error == nil || *result.Error != "Not authenticated" {
		t.Errorf("error = %v", result.Error)
	}
	if result.Synced != 0 || result.Updated != 0 || result.Skipped != 0 || result.Deleted != 0 {
		t.Errorf("counters must be zero on fatal failure: %+v", result)
	}
	if source.calls != 0 {
		t.Errorf("calendar fetched %d times despite auth failure", source.calls)
	}
}

func TestSyncForUserExpiredRefreshFails(t *testing.T) {
	source := &fakeSource{}
	refresher := &fakeRefresher{err: errors.New("invalid_grant")}
	syncer := testSyncer(newFakeStore(), refresher, source)

	cred := &Credential{AccessToken: "stale", RefreshToken: "revoked", Expiry: testNow.Add(-time.Hour)}
	result := syncer.SyncForUser(context.Background(), uuid.New(), cred)

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Error == nil || *result.Error != "Authentication expired" {
		t.Errorf("error = %v", result.Error)
	}
	if source.calls != 0 {
		t.Errorf("calendar fetched despite expired auth")
	}
}

func TestSyncForUserFetchFailure(t *testing.T) {
	source := &fakeSource{err: errors.New("503 backend unavailable")}
	syncer := testSyncer(newFakeStore(), &fakeRefresher{}, source)

	result := syncer.SyncForUser(context.Background(), uuid.New(), validCredential())

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Error == nil || *result.Error != "Failed to fetch calendar events" {
		t.Errorf("error = %v", result.Error)
	}
}

func TestSyncForUserHappyPath(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()

	store.seed(userID, "stale", SessionFields{
		Title:           "Removed remotely",
		ScheduledAt:     testNow.Add(time.Hour),
		DurationMinutes: 30,
		Status:          "scheduled",
	})

	source := &fakeSource{
		events: []RemoteEvent{
			timedEvent("new", "Fresh session", testNow.Add(2*time.Hour), 60),
		},
	}
	syncer := testSyncer(store, &fakeRefresher{}, source)

	result := syncer.SyncForUser(context.Background(), userID, validCredential())

	if !result.Success {
		t.Fatalf("sync failed: %v", result.Error)
	}
	if result.Synced != 1 || result.Deleted != 1 {
		t.Errorf("unexpected counts: %+v", result)
	}
	if result.Error != nil {
		t.Errorf("error should be nil on success, got %q", *result.Error)
	}

	if source.calls != 1 {
		t.Fatalf("fetch calls = %d", source.calls)
	}
	window := source.windows[0]
	if window.Min != testNow.AddDate(0, 0, -30) || window.Max != testNow.AddDate(0, 0, 30) {
		t.Errorf("window = %v..%v", window.Min, window.Max)
	}
}

func TestSyncForUserCustomWindow(t *testing.T) {
	source := &fakeSource{}
	syncer := testSyncer(newFakeStore(), &fakeRefresher{}, source)
	syncer.WindowDays = 7

	syncer.SyncForUser(context.Background(), uuid.New(), validCredential())

	window := source.windows[0]
	if window.Min != testNow.AddDate(0, 0, -7) || window.Max != testNow.AddDate(0, 0, 7) {
		t.Errorf("window = %v..%v", window.Min, window.Max)
	}
}

func TestSyncSummary(t *testing.T) {
	ok := SyncResult{Success: true, Synced: 2, Updated: 1, Deleted: 3}
	if got := SyncSummary(ok); got != "Calendar synced: 2 created, 1 updated, 3 removed" {
		t.Errorf("summary = %q", got)
	}

	failed := failure("Not authenticated")
	if got := SyncSummary(failed); got != "Sync failed: Not authenticated" {
		t.Errorf("summary = %q", got)
	}
}
