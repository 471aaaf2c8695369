// ABOUTME: EventSource interface and fetch time window
// ABOUTME: Abstracts the remote calendar behind a single list operation
package calsync

import (
	"context"
	"time"
)

// TimeWindow bounds a calendar fetch. The engine never needs unbounded
// history; the deletion pass only reasons about events inside the window.
type TimeWindow struct {
	Min time.Time
	Max time.Time
}

// WindowAround returns a window of ±days around now.
func WindowAround(now time.Time, days int) TimeWindow {
	return TimeWindow{
		Min: now.AddDate(0, 0, -days),
		Max: now.AddDate(0, 0, days),
	}
}

// EventSource lists remote calendar events for a time window.
type EventSource interface {
	ListEvents(ctx context.Context, window TimeWindow) ([]RemoteEvent, error)
}

// SourceFactory builds an EventSource from a guarded credential. The factory
// runs only after the token guard has produced a usable credential.
type SourceFactory func(ctx context.Context, cred *Credential) (EventSource, error)
