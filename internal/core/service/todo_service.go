package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdc-internships/interntracker/internal/core/domain"
	"github.com/mdc-internships/interntracker/internal/core/ports"
)

// TodoService manages onboarding weeks and items.
type TodoService struct {
	repo   ports.TodoRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewTodoService(repo ports.TodoRepository, logger zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, logger: logger, now: time.Now}
}

func (s *TodoService) AddWeek(ctx context.Context, number int, title string) (*domain.TodoWeek, error) {
	w := &domain.TodoWeek{
		ID:        uuid.NewString(),
		Number:    number,
		Title:     strings.TrimSpace(title),
		CreatedAt: s.now(),
	}
	if err := s.repo.InsertWeek(ctx, w); err != nil {
		return nil, err
	}
	s.logger.Info().Int("number", number).Str("title", w.Title).Msg("to-do week added")
	return w, nil
}

func (s *TodoService) AddItem(ctx context.Context, title, weekID string) (*domain.TodoItem, error) {
	it := &domain.TodoItem{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		CreatedAt: s.now(),
		WeekID:    weekID,
	}
	if err := s.repo.InsertItem(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *TodoService) ToggleDone(ctx context.Context, itemID string) (*domain.TodoItem, error) {
	it, err := s.repo.FindItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	it.Done = !it.Done
	if err := s.repo.SetItemDone(ctx, itemID, it.Done); err != nil {
		return nil, err
	}
	return it, nil
}

// Grouped derives the month → weeks → items view. Months are chronological;
// weeks within a month order by number then case-insensitive title; items
// within a week order oldest first.
func (s *TodoService) Grouped(ctx context.Context) ([]ports.MonthGroup, error) {
	weeks, err := s.repo.ListWeeks(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	itemsByWeek := make(map[string][]*domain.TodoItem)
	for _, it := range items {
		itemsByWeek[it.WeekID] = append(itemsByWeek[it.WeekID], it)
	}
	for _, weekItems := range itemsByWeek {
		sort.Slice(weekItems, func(i, j int) bool {
			return weekItems[i].CreatedAt.Before(weekItems[j].CreatedAt)
		})
	}

	weeksByMonth := make(map[ports.MonthKey][]*domain.TodoWeek)
	for _, w := range weeks {
		key := ports.MonthKey{Year: w.CreatedAt.Year(), Month: int(w.CreatedAt.Month())}
		weeksByMonth[key] = append(weeksByMonth[key], w)
	}

	months := make([]ports.MonthKey, 0, len(weeksByMonth))
	for key := range weeksByMonth {
		months = append(months, key)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	groups := make([]ports.MonthGroup, 0, len(months))
	for _, key := range months {
		monthWeeks := weeksByMonth[key]
		sort.Slice(monthWeeks, func(i, j int) bool {
			if monthWeeks[i].Number != monthWeeks[j].Number {
				return monthWeeks[i].Number < monthWeeks[j].Number
			}
			return strings.ToLower(monthWeeks[i].Title) < strings.ToLower(monthWeeks[j].Title)
		})

		wg := make([]ports.WeekGroup, len(monthWeeks))
		for i, w := range monthWeeks {
			wg[i] = ports.WeekGroup{Week: w, Items: itemsByWeek[w.ID]}
		}

		groups = append(groups, ports.MonthGroup{
			Month: key,
			Title: monthTitle(key),
			Weeks: wg,
		})
	}
	return groups, nil
}

func monthTitle(key ports.MonthKey) string {
	return fmt.Sprintf("%s %d", time.Month(key.Month), key.Year)
}

// SeedIfEmpty installs the starter weeks and items on first run.
func (s *TodoService) SeedIfEmpty(ctx context.Context) error {
	weeks, err := s.repo.ListWeeks(ctx)
	if err != nil {
		return err
	}
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return err
	}
	if len(weeks) > 0 || len(items) > 0 {
		return nil
	}

	w1, err := s.AddWeek(ctx, 1, "Onboarding")
	if err != nil {
		return err
	}
	w2, err := s.AddWeek(ctx, 2, "Training")
	if err != nil {
		return err
	}

	starters := []struct {
		title  string
		weekID string
	}{
		{"Set up laptop and accounts", w1.ID},
		{"Get access to Jamf / SharePoint", w1.ID},
		{"Review Internship Tracker requirements", w2.ID},
		{"Complete first supervisor-assigned task", w2.ID},
	}
	for _, st := range starters {
		if _, err := s.AddItem(ctx, st.title, st.weekID); err != nil {
			return err
		}
	}
	s.logger.Info().Msg("seeded starter to-do weeks")
	return nil
}
