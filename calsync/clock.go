// ABOUTME: Clock abstraction for deterministic time in tests
// ABOUTME: Production code uses the system clock
package calsync

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
