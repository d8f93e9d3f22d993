package ports

import (
	"context"

	"github.com/mdc-internships/interntracker/internal/core/domain"
)

// InternRepository persists the intern directory.
type InternRepository interface {
	Upsert(ctx context.Context, i *domain.Intern) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Intern, error)

	// FindByUsername matches case-insensitively; used by the login gate.
	// Returns domain.ErrInternNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*domain.Intern, error)

	List(ctx context.Context) ([]*domain.Intern, error)
}
