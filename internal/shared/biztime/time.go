// Package biztime centralises how the application reads the clock.
// All storage and transport use UTC.
package biztime

import (
	"sync"
	"time"
)

var (
	clockMu sync.RWMutex
	clock   = time.Now
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return clock().UTC()
}

// SetClock replaces the clock used by NowUTC and returns a function restoring
// the previous one. Intended for tests.
func SetClock(now func() time.Time) (restore func()) {
	clockMu.Lock()
	prev := clock
	clock = now
	clockMu.Unlock()

	return func() {
		clockMu.Lock()
		clock = prev
		clockMu.Unlock()
	}
}

// DaysAgoUTC returns the instant n days before now, in UTC.
func DaysAgoUTC(n int) time.Time {
	return NowUTC().Add(-time.Duration(n) * 24 * time.Hour)
}
