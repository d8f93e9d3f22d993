package ports

import (
	"context"
	"time"

	"github.com/mdc-internships/interntracker/internal/core/domain"
)

// TimeEntryRepository defines persistence operations for the clock ledger.
// Entries are append-mostly: the only mutation is setting clock-out.
type TimeEntryRepository interface {
	Insert(ctx context.Context, e *domain.TimeEntry) error

	// FindActive returns the user's entry with no clock-out, or
	// domain.ErrNoActiveEntry when none exists. Username is matched exactly
	// as stored.
	FindActive(ctx context.Context, username string) (*domain.TimeEntry, error)

	// SetClockOut stamps the clock-out on the entry with the given id.
	SetClockOut(ctx context.Context, id string, out time.Time) error

	// ListByUsername returns all of the user's entries ordered by clock-in
	// descending (newest first).
	ListByUsername(ctx context.Context, username string) ([]*domain.TimeEntry, error)
}
