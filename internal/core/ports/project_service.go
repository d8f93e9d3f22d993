package ports

import (
	"context"
	"time"

	"github.com/mdc-internships/interntracker/internal/core/domain"
)

// ActivityPageSize is the fixed page size of the project log view.
const ActivityPageSize = 10

// ActivityFilter is an optional inclusive calendar-day range. Both bounds are
// inclusive regardless of time-of-day: an activity dated anywhere on To is in.
type ActivityFilter struct {
	From time.Time
	To   time.Time
}

// Zero reports whether no range is set.
func (f ActivityFilter) Zero() bool {
	return f.From.IsZero() && f.To.IsZero()
}

// ActivityPage is one page of a project's activity log.
type ActivityPage struct {
	Items        []domain.DailyActivity
	TotalRecords int
	TotalHours   float64
	Page         int
	TotalPages   int
	// ShowingFrom/ShowingTo are 1-based display bounds; both zero when the
	// log is empty.
	ShowingFrom int
	ShowingTo   int
}

// LogExportRow is one row handed to the report collaborator. Hours are
// rounded to two decimals for display.
type LogExportRow struct {
	Date  time.Time
	Hours float64
	Note  string
}

// LogExport is the data contract with the report renderer: computed totals and
// rows in stored order, no formatting beyond numeric rounding.
type LogExport struct {
	InternName   string
	ProjectName  string
	PlannedHours float64
	LoggedHours  float64
	RangeLabel   string
	Rows         []LogExportRow
}

// ProjectService owns project CRUD and the activity log with its derived
// aggregation views.
type ProjectService interface {
	UpsertProject(ctx context.Context, p *domain.InternProject) (*domain.InternProject, error)
	DeleteProject(ctx context.Context, id string) error
	GetProject(ctx context.Context, id string) (*domain.InternProject, error)
	ListProjects(ctx context.Context, ownerID string) ([]*domain.InternProject, error)

	AddActivity(ctx context.Context, projectID string, a domain.DailyActivity) (*domain.DailyActivity, error)
	UpdateActivity(ctx context.Context, projectID string, a domain.DailyActivity) error
	DeleteActivity(ctx context.Context, projectID, activityID string) error

	// SaveActivities is the persisted-form save: atomically replaces the whole
	// log, re-sorted ascending by date.
	SaveActivities(ctx context.Context, projectID string, activities []domain.DailyActivity) error

	TotalHours(ctx context.Context, projectID string) (float64, error)
	ListActivities(ctx context.Context, projectID string, page int, filter ActivityFilter) (*ActivityPage, error)
	ExportLog(ctx context.Context, projectID, internName string, filter ActivityFilter) (*LogExport, error)
}
