package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdc-internships/interntracker/internal/core/domain"
	"github.com/mdc-internships/interntracker/internal/core/ports"
)

// ProjectService implements project CRUD, the per-project activity log, and
// the aggregation views over it. Activity mutations for the same project are
// serialized with a per-project lock because the activity sequence is stored
// as a whole.
type ProjectService struct {
	repo   ports.ProjectRepository
	locks  *keyedMutex
	logger zerolog.Logger
	now    func() time.Time
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{
		repo:   repo,
		locks:  newKeyedMutex(),
		logger: logger,
		now:    time.Now,
	}
}

// UpsertProject creates or replaces a project. End date must not precede
// start date; an empty ID means create.
func (s *ProjectService) UpsertProject(ctx context.Context, p *domain.InternProject) (*domain.InternProject, error) {
	if !domain.ValidStatus(p.Status) {
		p.Status = domain.StatusInProgress
	}
	if p.EndDate.Before(p.StartDate) {
		return nil, domain.ErrInvalidDateRange
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	unlock := s.locks.Lock(p.ID)
	defer unlock()

	// A metadata edit arrives without the activity log. The repo replaces the
	// whole document, so carry the stored log through the write.
	if p.Activities == nil {
		existing, err := s.repo.FindByID(ctx, p.ID)
		switch {
		case err == nil:
			p.Activities = existing.Activities
		case errors.Is(err, domain.ErrProjectNotFound):
			p.Activities = []domain.DailyActivity{}
		default:
			return nil, err
		}
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("project_id", p.ID).Msg("failed to upsert project")
		return nil, err
	}
	s.logger.Info().Str("project_id", p.ID).Str("name", p.Name).Msg("project saved")
	return p, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*domain.InternProject, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) ListProjects(ctx context.Context, ownerID string) ([]*domain.InternProject, error) {
	return s.repo.List(ctx, ownerID)
}

// AddActivity validates and inserts the activity at the head of the project's
// log (newest first).
func (s *ProjectService) AddActivity(ctx context.Context, projectID string, a domain.DailyActivity) (*domain.DailyActivity, error) {
	a.Note = strings.TrimSpace(a.Note)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.Hours = roundHours(a.Hours)

	unlock := s.locks.Lock(projectID)
	defer unlock()

	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	activities := append([]domain.DailyActivity{a}, p.Activities...)
	if err := s.repo.ReplaceActivities(ctx, projectID, activities); err != nil {
		s.logger.Error().Err(err).Str("project_id", projectID).Msg("failed to add activity")
		return nil, err
	}

	s.logger.Info().Str("project_id", projectID).Str("activity_id", a.ID).Float64("hours", a.Hours).Msg("activity added")
	return &a, nil
}

// UpdateActivity replaces the activity with the matching identity.
func (s *ProjectService) UpdateActivity(ctx context.Context, projectID string, a domain.DailyActivity) error {
	a.Note = strings.TrimSpace(a.Note)
	if err := a.Validate(); err != nil {
		return err
	}
	a.Hours = roundHours(a.Hours)

	unlock := s.locks.Lock(projectID)
	defer unlock()

	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}

	found := false
	activities := make([]domain.DailyActivity, len(p.Activities))
	for i, existing := range p.Activities {
		if existing.ID == a.ID {
			activities[i] = a
			found = true
		} else {
			activities[i] = existing
		}
	}
	if !found {
		return domain.ErrActivityNotFound
	}

	if err := s.repo.ReplaceActivities(ctx, projectID, activities); err != nil {
		return err
	}
	s.logger.Info().Str("project_id", projectID).Str("activity_id", a.ID).Msg("activity updated")
	return nil
}

// DeleteActivity removes the activity by identity.
func (s *ProjectService) DeleteActivity(ctx context.Context, projectID, activityID string) error {
	unlock := s.locks.Lock(projectID)
	defer unlock()

	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}

	activities := make([]domain.DailyActivity, 0, len(p.Activities))
	for _, existing := range p.Activities {
		if existing.ID != activityID {
			activities = append(activities, existing)
		}
	}
	if len(activities) == len(p.Activities) {
		return domain.ErrActivityNotFound
	}

	if err := s.repo.ReplaceActivities(ctx, projectID, activities); err != nil {
		return err
	}
	s.logger.Info().Str("project_id", projectID).Str("activity_id", activityID).Msg("activity deleted")
	return nil
}

// SaveActivities is the whole-log save: every activity is validated, then the
// sequence replaces the stored one re-sorted ascending by date.
func (s *ProjectService) SaveActivities(ctx context.Context, projectID string, activities []domain.DailyActivity) error {
	cleaned := make([]domain.DailyActivity, len(activities))
	for i, a := range activities {
		a.Note = strings.TrimSpace(a.Note)
		if err := a.Validate(); err != nil {
			return fmt.Errorf("activity %d: %w", i, err)
		}
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		a.Hours = roundHours(a.Hours)
		cleaned[i] = a
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].Date.Before(cleaned[j].Date)
	})

	unlock := s.locks.Lock(projectID)
	defer unlock()

	if _, err := s.repo.FindByID(ctx, projectID); err != nil {
		return err
	}
	if err := s.repo.ReplaceActivities(ctx, projectID, cleaned); err != nil {
		return err
	}
	s.logger.Info().Str("project_id", projectID).Int("count", len(cleaned)).Msg("activity log saved")
	return nil
}

// TotalHours sums the project's activity hours, unrounded.
func (s *ProjectService) TotalHours(ctx context.Context, projectID string) (float64, error) {
	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return p.TotalHours(), nil
}

// ListActivities pages the log with the fixed page size. The requested page
// is clamped into [1, totalPages], so a page that became invalid after a
// delete degrades to the nearest valid one. The optional filter keeps
// activities whose date falls on any calendar day of the inclusive range.
func (s *ProjectService) ListActivities(ctx context.Context, projectID string, page int, filter ports.ActivityFilter) (*ports.ActivityPage, error) {
	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	activities := filterActivities(p.Activities, filter)

	totalRecords := len(activities)
	totalPages := totalRecords / ports.ActivityPageSize
	if totalRecords%ports.ActivityPageSize != 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * ports.ActivityPageSize
	end := start + ports.ActivityPageSize
	if start > totalRecords {
		start = totalRecords
	}
	if end > totalRecords {
		end = totalRecords
	}

	result := &ports.ActivityPage{
		Items:        activities[start:end],
		TotalRecords: totalRecords,
		TotalHours:   p.TotalHours(),
		Page:         page,
		TotalPages:   totalPages,
	}
	if totalRecords > 0 {
		result.ShowingFrom = start + 1
		result.ShowingTo = end
	}
	return result, nil
}

// ExportLog assembles the data handed to the report renderer: summary totals
// plus rows in stored order. Hours are rounded to two decimals for display;
// no other formatting happens here.
func (s *ProjectService) ExportLog(ctx context.Context, projectID, internName string, filter ports.ActivityFilter) (*ports.LogExport, error) {
	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	activities := filterActivities(p.Activities, filter)

	rows := make([]ports.LogExportRow, len(activities))
	for i, a := range activities {
		rows[i] = ports.LogExportRow{
			Date:  a.Date,
			Hours: roundHours(a.Hours),
			Note:  a.Note,
		}
	}

	rangeLabel := "All Dates"
	switch {
	case !filter.From.IsZero() && !filter.To.IsZero():
		rangeLabel = filter.From.Format("Jan 2, 2006") + " – " + filter.To.Format("Jan 2, 2006")
	case !filter.From.IsZero():
		rangeLabel = "From " + filter.From.Format("Jan 2, 2006")
	case !filter.To.IsZero():
		rangeLabel = "Through " + filter.To.Format("Jan 2, 2006")
	}

	return &ports.LogExport{
		InternName:   internName,
		ProjectName:  p.Name,
		PlannedHours: roundHours(p.PlannedHours),
		LoggedHours:  roundHours(p.TotalHours()),
		RangeLabel:   rangeLabel,
		Rows:         rows,
	}, nil
}

// filterActivities keeps activities within [startOfDay(From), startOfDay(To)+24h).
// The exclusive next-day bound makes both endpoints calendar-day inclusive
// regardless of time-of-day. A zero bound is open on that side, so a
// from-only or to-only filter is a half-open range.
func filterActivities(activities []domain.DailyActivity, f ports.ActivityFilter) []domain.DailyActivity {
	if f.Zero() {
		return activities
	}

	kept := make([]domain.DailyActivity, 0, len(activities))
	for _, a := range activities {
		if !f.From.IsZero() && a.Date.Before(domain.StartOfDay(f.From)) {
			continue
		}
		if !f.To.IsZero() && !a.Date.Before(domain.StartOfDay(f.To).AddDate(0, 0, 1)) {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

// roundHours rounds to two decimal places for display.
func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
