package ports

import (
	"context"
	"time"

	"github.com/mdc-internships/interntracker/internal/core/domain"
)

// DayGroup is one calendar day of clock entries for display: bucketed by the
// start-of-day of clock-in, entries newest-clock-in-first. TotalSeconds sums
// each entry's full duration, even when an entry runs past midnight.
type DayGroup struct {
	Day          time.Time
	Entries      []*domain.TimeEntry
	TotalSeconds int64
}

// ClockStatus is the current state of a user's clock.
type ClockStatus struct {
	ClockedIn bool
	// Entry is the active entry when ClockedIn is true.
	Entry *domain.TimeEntry
	// TodaySeconds is the user's total for today, clipped to the calendar day.
	TodaySeconds int64
}

// TimeClockService owns the clock ledger: mutations enforce active-session
// exclusivity, reads are derived views recomputed per call.
type TimeClockService interface {
	ClockIn(ctx context.Context, company, username string) (*domain.TimeEntry, error)
	ClockOut(ctx context.Context, username string) (*domain.TimeEntry, error)

	// AddMissingEntry backfills a fully specified past session. Overlap with
	// existing entries is not checked.
	AddMissingEntry(ctx context.Context, company, username string, clockIn, clockOut time.Time) (*domain.TimeEntry, error)

	// FixMissingClockOut closes the user's active entry. A zero clockOut
	// means now.
	FixMissingClockOut(ctx context.Context, username string, clockOut time.Time) (*domain.TimeEntry, error)

	IsClockedIn(ctx context.Context, username string) (bool, error)
	Status(ctx context.Context, username string) (*ClockStatus, error)
	TotalSecondsToday(ctx context.Context, username string) (int64, error)

	// DayGroups returns the user's entries bucketed per calendar day,
	// newest day first.
	DayGroups(ctx context.Context, username string) ([]DayGroup, error)
}
