package ports

import (
	"context"

	"github.com/mdc-internships/interntracker/internal/core/domain"
)

// TodoRepository persists to-do weeks and items.
type TodoRepository interface {
	InsertWeek(ctx context.Context, w *domain.TodoWeek) error
	ListWeeks(ctx context.Context) ([]*domain.TodoWeek, error)

	InsertItem(ctx context.Context, it *domain.TodoItem) error
	FindItem(ctx context.Context, id string) (*domain.TodoItem, error)
	SetItemDone(ctx context.Context, id string, done bool) error
	ListItems(ctx context.Context) ([]*domain.TodoItem, error)
}
