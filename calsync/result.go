// ABOUTME: SyncResult contract returned by calendar reconciliation
// ABOUTME: JSON-serializable run statistics shared by CLI, web, and MCP callers
package calsync

import "fmt"

// SyncResult is the outcome of one reconciliation run. Fatal failures carry
// an error message and zeroed counters; successful runs carry the per-item
// statistics.
type SyncResult struct {
	Success bool    `json:"success"`
	Error   *string `json:"error"`
	Synced  int     `json:"synced"`
	Updated int     `json:"updated"`
	Skipped int     `json:"skipped"`
	Deleted int     `json:"deleted"`
}

func failure(message string) SyncResult {
	return SyncResult{Success: false, Error: &message}
}

// Summary returns the user-facing sentence for a successful run.
func (r SyncResult) Summary() string {
	if !r.Success {
		if r.Error != nil {
			return *r.Error
		}
		return "Sync failed"
	}
	return fmt.Sprintf("Calendar synced: %d created, %d updated, %d removed", r.Synced, r.Updated, r.Deleted)
}
