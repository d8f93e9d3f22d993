package ports

import (
	"context"

	"github.com/mdc-internships/interntracker/internal/core/domain"
)

// ProjectRepository persists projects with their embedded activity sequences.
// The activity array is always written as a whole, mirroring the snapshot
// persistence model of the ledger.
type ProjectRepository interface {
	Upsert(ctx context.Context, p *domain.InternProject) error
	Delete(ctx context.Context, id string) error

	// FindByID returns domain.ErrProjectNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.InternProject, error)

	// List returns all projects, optionally scoped to an owner.
	List(ctx context.Context, ownerID string) ([]*domain.InternProject, error)

	// ReplaceActivities overwrites the project's whole activity sequence.
	ReplaceActivities(ctx context.Context, projectID string, activities []domain.DailyActivity) error
}
