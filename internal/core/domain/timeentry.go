package domain

import (
	"errors"
	"time"
)

var ErrInvalidUsername = errors.New("invalid username")
var ErrAlreadyClockedIn = errors.New("user already has an active clock entry")
var ErrNoActiveEntry = errors.New("no active clock entry for user")
var ErrInvalidClockRange = errors.New("clock-out must not precede clock-in")
var ErrTimeEntryNotFound = errors.New("time entry not found")

// TimeEntry is one clock session for an intern. ClockOut is nil while the
// session is active; each username holds at most one active entry.
type TimeEntry struct {
	ID       string     `json:"id" bson:"_id,omitempty"`
	Username string     `json:"username" bson:"username"`
	Company  string     `json:"company" bson:"company"`
	ClockIn  time.Time  `json:"clock_in" bson:"clock_in"`
	ClockOut *time.Time `json:"clock_out,omitempty" bson:"clock_out,omitempty"`
}

// Active reports whether the entry has no clock-out yet.
func (e *TimeEntry) Active() bool {
	return e.ClockOut == nil
}

// Duration returns the entry's length as of now, floored at zero.
// Active entries are measured up to now.
func (e *TimeEntry) Duration(now time.Time) time.Duration {
	end := now
	if e.ClockOut != nil {
		end = *e.ClockOut
	}
	d := end.Sub(e.ClockIn)
	if d < 0 {
		return 0
	}
	return d
}

// DurationWithin returns the portion of the entry that falls on or after
// startOfDay, floored at zero. Entries spanning midnight only count the
// post-midnight part.
func (e *TimeEntry) DurationWithin(startOfDay, now time.Time) time.Duration {
	end := now
	if e.ClockOut != nil {
		end = *e.ClockOut
	}
	start := e.ClockIn
	if start.Before(startOfDay) {
		start = startOfDay
	}
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return d
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
