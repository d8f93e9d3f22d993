package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdc-internships/interntracker/internal/core/domain"
	"github.com/mdc-internships/interntracker/internal/core/ports"
)

// InternService implements directory CRUD.
type InternService struct {
	repo   ports.InternRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewInternService(repo ports.InternRepository, logger zerolog.Logger) *InternService {
	return &InternService{repo: repo, logger: logger, now: time.Now}
}

// UpsertIntern creates or replaces a directory record. Usernames are stored
// lowercase and must be unique across interns.
func (s *InternService) UpsertIntern(ctx context.Context, i *domain.Intern) (*domain.Intern, error) {
	i.Username = strings.ToLower(strings.TrimSpace(i.Username))
	if i.Username == "" {
		return nil, domain.ErrInvalidUsername
	}
	if !i.EndDate.IsZero() && i.EndDate.Before(i.StartDate) {
		return nil, domain.ErrInvalidDateRange
	}

	existing, err := s.repo.FindByUsername(ctx, i.Username)
	if err != nil && !errors.Is(err, domain.ErrInternNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != i.ID {
		return nil, domain.ErrInternExists
	}

	now := s.now()
	if i.ID == "" {
		i.ID = uuid.NewString()
		i.CreatedAt = now
	} else if existing != nil {
		i.CreatedAt = existing.CreatedAt
	}
	i.UpdatedAt = now

	if err := s.repo.Upsert(ctx, i); err != nil {
		s.logger.Error().Err(err).Str("username", i.Username).Msg("failed to upsert intern")
		return nil, err
	}
	s.logger.Info().Str("intern_id", i.ID).Str("username", i.Username).Msg("intern saved")
	return i, nil
}

func (s *InternService) DeleteIntern(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("intern_id", id).Msg("intern deleted")
	return nil
}

func (s *InternService) GetIntern(ctx context.Context, id string) (*domain.Intern, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *InternService) ListInterns(ctx context.Context) ([]*domain.Intern, error) {
	return s.repo.List(ctx)
}
