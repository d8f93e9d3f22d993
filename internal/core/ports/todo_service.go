package ports

import (
	"context"

	"github.com/mdc-internships/interntracker/internal/core/domain"
)

// MonthKey identifies a calendar month for grouping.
type MonthKey struct {
	Year  int
	Month int
}

// Before orders month keys chronologically.
func (k MonthKey) Before(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

// WeekGroup is one week with its items, oldest item first.
type WeekGroup struct {
	Week  *domain.TodoWeek
	Items []*domain.TodoItem
}

// MonthGroup is one month of weeks, weeks ordered by number then title.
type MonthGroup struct {
	Month MonthKey
	Title string
	Weeks []WeekGroup
}

// TodoService manages onboarding to-do weeks and items and derives the
// month → week → item grouping used by the list view.
type TodoService interface {
	AddWeek(ctx context.Context, number int, title string) (*domain.TodoWeek, error)
	AddItem(ctx context.Context, title, weekID string) (*domain.TodoItem, error)
	ToggleDone(ctx context.Context, itemID string) (*domain.TodoItem, error)
	Grouped(ctx context.Context) ([]MonthGroup, error)

	// SeedIfEmpty installs the starter weeks and items on first run.
	SeedIfEmpty(ctx context.Context) error
}
