package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdc-internships/interntracker/internal/core/domain"
	"github.com/mdc-internships/interntracker/internal/core/ports"
)

// TimeClockService implements the clock ledger and its derived views.
// Mutations for the same username are serialized with a per-username lock so
// active-session exclusivity holds under concurrent callers.
type TimeClockService struct {
	repo   ports.TimeEntryRepository
	locks  *keyedMutex
	logger zerolog.Logger
	// now is swappable for tests.
	now func() time.Time
}

func NewTimeClockService(repo ports.TimeEntryRepository, logger zerolog.Logger) *TimeClockService {
	return &TimeClockService{
		repo:   repo,
		locks:  newKeyedMutex(),
		logger: logger,
		now:    time.Now,
	}
}

// ClockIn opens a new active entry for the user. It rejects an empty username
// and a second clock-in while an entry is still open.
func (s *TimeClockService) ClockIn(ctx context.Context, company, username string) (*domain.TimeEntry, error) {
	u := strings.TrimSpace(username)
	if u == "" {
		return nil, domain.ErrInvalidUsername
	}

	unlock := s.locks.Lock(u)
	defer unlock()

	if _, err := s.repo.FindActive(ctx, u); err == nil {
		return nil, domain.ErrAlreadyClockedIn
	} else if !errors.Is(err, domain.ErrNoActiveEntry) {
		return nil, err
	}

	entry := &domain.TimeEntry{
		ID:       uuid.NewString(),
		Username: u,
		Company:  company,
		ClockIn:  s.now(),
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("username", u).Msg("failed to insert clock entry")
		return nil, err
	}

	s.logger.Info().Str("username", u).Str("company", company).Msg("clocked in")
	return entry, nil
}

// ClockOut closes the user's active entry at now.
func (s *TimeClockService) ClockOut(ctx context.Context, username string) (*domain.TimeEntry, error) {
	return s.closeActive(ctx, username, s.now())
}

// FixMissingClockOut closes the user's active entry at the given time, or at
// now when clockOut is zero.
func (s *TimeClockService) FixMissingClockOut(ctx context.Context, username string, clockOut time.Time) (*domain.TimeEntry, error) {
	if clockOut.IsZero() {
		clockOut = s.now()
	}
	return s.closeActive(ctx, username, clockOut)
}

func (s *TimeClockService) closeActive(ctx context.Context, username string, out time.Time) (*domain.TimeEntry, error) {
	u := strings.TrimSpace(username)
	if u == "" {
		return nil, domain.ErrInvalidUsername
	}

	unlock := s.locks.Lock(u)
	defer unlock()

	entry, err := s.repo.FindActive(ctx, u)
	if err != nil {
		return nil, err
	}

	if out.Before(entry.ClockIn) {
		return nil, domain.ErrInvalidClockRange
	}

	if err := s.repo.SetClockOut(ctx, entry.ID, out); err != nil {
		s.logger.Error().Err(err).Str("username", u).Msg("failed to set clock-out")
		return nil, err
	}
	entry.ClockOut = &out

	s.logger.Info().
		Str("username", u).
		Int64("duration_seconds", int64(entry.Duration(s.now()).Seconds())).
		Msg("clocked out")
	return entry, nil
}

// AddMissingEntry backfills a complete past session. Both endpoints must be
// set and ordered; overlap with existing entries is not checked.
func (s *TimeClockService) AddMissingEntry(ctx context.Context, company, username string, clockIn, clockOut time.Time) (*domain.TimeEntry, error) {
	u := strings.TrimSpace(username)
	if u == "" {
		return nil, domain.ErrInvalidUsername
	}
	if clockOut.Before(clockIn) {
		return nil, domain.ErrInvalidClockRange
	}

	entry := &domain.TimeEntry{
		ID:       uuid.NewString(),
		Username: u,
		Company:  company,
		ClockIn:  clockIn,
		ClockOut: &clockOut,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("username", u).Msg("failed to insert backfill entry")
		return nil, err
	}

	s.logger.Info().
		Str("username", u).
		Time("clock_in", clockIn).
		Time("clock_out", clockOut).
		Msg("backfill entry added")
	return entry, nil
}

// IsClockedIn reports whether an active entry exists for the username.
func (s *TimeClockService) IsClockedIn(ctx context.Context, username string) (bool, error) {
	_, err := s.repo.FindActive(ctx, strings.TrimSpace(username))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNoActiveEntry) {
		return false, nil
	}
	return false, err
}

// TotalSecondsToday sums the portions of the user's entries that fall within
// today. Entries spanning midnight contribute only their post-midnight part.
func (s *TimeClockService) TotalSecondsToday(ctx context.Context, username string) (int64, error) {
	now := s.now()
	startOfDay := domain.StartOfDay(now)

	entries, err := s.repo.ListByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return 0, err
	}

	var total time.Duration
	for _, e := range entries {
		end := now
		if e.ClockOut != nil {
			end = *e.ClockOut
		}
		// Skip entries that ended before today began.
		if e.ClockIn.Before(startOfDay) && end.Before(startOfDay) {
			continue
		}
		total += e.DurationWithin(startOfDay, now)
	}
	return int64(total.Seconds()), nil
}

// Status bundles the clocked-in flag, active entry, and today's total.
func (s *TimeClockService) Status(ctx context.Context, username string) (*ports.ClockStatus, error) {
	u := strings.TrimSpace(username)

	st := &ports.ClockStatus{}
	entry, err := s.repo.FindActive(ctx, u)
	switch {
	case err == nil:
		st.ClockedIn = true
		st.Entry = entry
	case errors.Is(err, domain.ErrNoActiveEntry):
		// not clocked in
	default:
		return nil, err
	}

	today, err := s.TotalSecondsToday(ctx, u)
	if err != nil {
		return nil, err
	}
	st.TodaySeconds = today
	return st, nil
}

// DayGroups buckets the user's entries by the calendar day of clock-in,
// newest day first, entries newest-clock-in-first within a day. Per-day totals
// sum full durations and are not clipped at midnight, unlike
// TotalSecondsToday; the display view keeps the ledger's per-entry accounting.
func (s *TimeClockService) DayGroups(ctx context.Context, username string) ([]ports.DayGroup, error) {
	entries, err := s.repo.ListByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}

	now := s.now()
	buckets := make(map[time.Time][]*domain.TimeEntry)
	for _, e := range entries {
		day := domain.StartOfDay(e.ClockIn)
		buckets[day] = append(buckets[day], e)
	}

	days := make([]time.Time, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	groups := make([]ports.DayGroup, 0, len(days))
	for _, day := range days {
		dayEntries := buckets[day]
		sort.Slice(dayEntries, func(i, j int) bool {
			return dayEntries[i].ClockIn.After(dayEntries[j].ClockIn)
		})

		var total time.Duration
		for _, e := range dayEntries {
			total += e.Duration(now)
		}

		groups = append(groups, ports.DayGroup{
			Day:          day,
			Entries:      dayEntries,
			TotalSeconds: int64(total.Seconds()),
		})
	}
	return groups, nil
}
