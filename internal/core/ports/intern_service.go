package ports

import (
	"context"

	"github.com/mdc-internships/interntracker/internal/core/domain"
)

// InternService is directory CRUD. Mutations are admin-only; enforcement
// happens at the transport layer (RBAC middleware).
type InternService interface {
	UpsertIntern(ctx context.Context, i *domain.Intern) (*domain.Intern, error)
	DeleteIntern(ctx context.Context, id string) error
	GetIntern(ctx context.Context, id string) (*domain.Intern, error)
	ListInterns(ctx context.Context) ([]*domain.Intern, error)
}
