package service

import (
	"fmt"
	"time"
)

// Clock returns the current server-local time. Services take one so day
// boundaries and session expiry are testable.
type Clock func() time.Time

func systemClock() time.Time { return time.Now() }

// dayRange returns [local midnight, next local midnight) for t.
func dayRange(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func checkinDedupeKey(userID uint, t time.Time) string {
	return fmt.Sprintf("checkin:%d:%s", userID, t.Format("2006-01-02"))
}
