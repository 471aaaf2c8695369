// ABOUTME: Tests for sync state and sync log persistence
// ABOUTME: Verifies the syncing/idle/error lifecycle and run statistics
package db

import (
	"testing"
)

func TestSyncStateLifecycle(t *testing.T) {
	database := setupTestDB(t)

	// 1. Initial state: no sync state exists
	state, err := GetSyncState(database, "calendar")
	if err != nil {
		t.Fatalf("failed to get sync state: %v", err)
	}
	if state != nil {
		t.Errorf("expected nil state for new service, got %+v", state)
	}

	// 2. Start sync: status should be 'syncing'
	if err := UpdateSyncStatus(database, "calendar", "syncing", nil); err != nil {
		t.Fatalf("failed to update sync status: %v", err)
	}

	state, err = GetSyncState(database, "calendar")
	if err != nil {
		t.Fatalf("failed to get sync state: %v", err)
	}
	if state.Status != "syncing" {
		t.Errorf("expected status 'syncing', got %q", state.Status)
	}
	if state.ErrorMessage != nil {
		t.Errorf("expected nil error message during sync, got %v", state.ErrorMessage)
	}
	if state.LastSyncTime != nil {
		t.Error("last_sync_time should be unset before first completion")
	}

	// 3. Complete sync: status should be 'idle' with a timestamp
	if err := MarkSyncComplete(database, "calendar"); err != nil {
		t.Fatalf("failed to mark sync complete: %v", err)
	}

	state, err = GetSyncState(database, "calendar")
	if err != nil {
		t.Fatalf("failed to get sync state: %v", err)
	}
	if state.Status != "idle" {
		t.Errorf("expected status 'idle' after completion, got %q", state.Status)
	}
	if state.LastSyncTime == nil {
		t.Error("expected last_sync_time to be set after completion")
	}

	// 4. Error state: status should be 'error' with message
	errMsg := "Failed to fetch calendar events"
	if err := UpdateSyncStatus(database, "calendar", "error", &errMsg); err != nil {
		t.Fatalf("failed to update sync status to error: %v", err)
	}

	state, err = GetSyncState(database, "calendar")
	if err != nil {
		t.Fatalf("failed to get sync state: %v", err)
	}
	if state.Status != "error" {
		t.Errorf("expected status 'error', got %q", state.Status)
	}
	if state.ErrorMessage == nil || *state.ErrorMessage != errMsg {
		t.Errorf("expected error message %q, got %v", errMsg, state.ErrorMessage)
	}

	// 5. Recovery: a successful run clears the error
	if err := UpdateSyncStatus(database, "calendar", "syncing", nil); err != nil {
		t.Fatalf("failed to restart sync: %v", err)
	}
	if err := MarkSyncComplete(database, "calendar"); err != nil {
		t.Fatalf("failed to mark sync complete: %v", err)
	}

	state, err = GetSyncState(database, "calendar")
	if err != nil {
		t.Fatalf("failed to get sync state: %v", err)
	}
	if state.Status != "idle" {
		t.Errorf("expected status 'idle' after recovery, got %q", state.Status)
	}
	if state.ErrorMessage != nil {
		t.Errorf("error message should be cleared, got %v", *state.ErrorMessage)
	}
}

func TestSyncLog(t *testing.T) {
	database := setupTestDB(t)
	user := testUser(t, database)

	if err := CreateSyncLog(database, "calendar", user.ID, 3, 1, 2, 1); err != nil {
		t.Fatalf("CreateSyncLog: %v", err)
	}
	if err := CreateSyncLog(database, "calendar", user.ID, 0, 0, 4, 0); err != nil {
		t.Fatalf("CreateSyncLog: %v", err)
	}

	logs, err := RecentSyncLogs(database, "calendar", 10)
	if err != nil {
		t.Fatalf("RecentSyncLogs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d log entries, want 2", len(logs))
	}

	var sawFirst, sawSecond bool
	for _, entry := range logs {
		if entry.UserID != user.ID.String() {
			t.Errorf("user id = %q", entry.UserID)
		}
		if entry.ID == "" {
			t.Error("log entry missing id")
		}
		if entry.Synced == 3 && entry.Updated == 1 && entry.Skipped == 2 && entry.Deleted == 1 {
			sawFirst = true
		}
		if entry.Synced == 0 && entry.Skipped == 4 {
			sawSecond = true
		}
	}
	if !sawFirst || !sawSecond {
		t.Errorf("runs missing from log: %+v", logs)
	}
}
