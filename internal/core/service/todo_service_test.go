package service

import (
	"context"
	"testing"
	"time"

	"github.com/mdc-internships/interntracker/internal/core/domain"
)

type stubTodoRepo struct {
	weeks []*domain.TodoWeek
	items []*domain.TodoItem
}

func (r *stubTodoRepo) InsertWeek(_ context.Context, w *domain.TodoWeek) error {
	clone := *w
	r.weeks = append(r.weeks, &clone)
	return nil
}

func (r *stubTodoRepo) ListWeeks(_ context.Context) ([]*domain.TodoWeek, error) {
	return r.weeks, nil
}

func (r *stubTodoRepo) InsertItem(_ context.Context, it *domain.TodoItem) error {
	clone := *it
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubTodoRepo) FindItem(_ context.Context, id string) (*domain.TodoItem, error) {
	for _, it := range r.items {
		if it.ID == id {
			clone := *it
			return &clone, nil
		}
	}
	return nil, domain.ErrTodoItemNotFound
}

func (r *stubTodoRepo) SetItemDone(_ context.Context, id string, done bool) error {
	for _, it := range r.items {
		if it.ID == id {
			it.Done = done
			return nil
		}
	}
	return domain.ErrTodoItemNotFound
}

func (r *stubTodoRepo) ListItems(_ context.Context) ([]*domain.TodoItem, error) {
	return r.items, nil
}

func TestToggleDone_FlipsTwice(t *testing.T) {
	repo := &stubTodoRepo{}
	svc := NewTodoService(repo, discardLogger)
	ctx := context.Background()

	w, err := svc.AddWeek(ctx, 1, "Onboarding")
	if err != nil {
		t.Fatalf("add week failed: %v", err)
	}
	it, err := svc.AddItem(ctx, "Set up laptop", w.ID)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	toggled, err := svc.ToggleDone(ctx, it.ID)
	if err != nil || !toggled.Done {
		t.Fatalf("expected done=true, got %+v err=%v", toggled, err)
	}
	toggled, err = svc.ToggleDone(ctx, it.ID)
	if err != nil || toggled.Done {
		t.Fatalf("expected done=false after second toggle, got %+v err=%v", toggled, err)
	}
}

func TestToggleDone_MissingItem(t *testing.T) {
	svc := NewTodoService(&stubTodoRepo{}, discardLogger)
	if _, err := svc.ToggleDone(context.Background(), "ghost"); err != domain.ErrTodoItemNotFound {
		t.Fatalf("expected ErrTodoItemNotFound, got %v", err)
	}
}

func TestGrouped_MonthWeekItemOrdering(t *testing.T) {
	repo := &stubTodoRepo{}
	svc := NewTodoService(repo, discardLogger)
	ctx := context.Background()

	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

	times := []time.Time{feb, jan, jan}
	idx := 0
	svc.now = func() time.Time {
		ts := times[idx%len(times)]
		idx++
		return ts
	}

	// Created out of order: a February week first, then two January weeks
	// with descending numbers.
	if _, err := svc.AddWeek(ctx, 1, "Kickoff"); err != nil { // feb
		t.Fatalf("add week: %v", err)
	}
	w2, err := svc.AddWeek(ctx, 2, "Training") // jan
	if err != nil {
		t.Fatalf("add week: %v", err)
	}
	w1, err := svc.AddWeek(ctx, 1, "Onboarding") // jan
	if err != nil {
		t.Fatalf("add week: %v", err)
	}

	// Items inserted newest-first into week 1; grouping must restore
	// oldest-first.
	itemTimes := []time.Time{jan.Add(2 * time.Hour), jan.Add(time.Hour)}
	j := 0
	svc.now = func() time.Time {
		ts := itemTimes[j%len(itemTimes)]
		j++
		return ts
	}
	if _, err := svc.AddItem(ctx, "second task", w1.ID); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := svc.AddItem(ctx, "first task", w1.ID); err != nil {
		t.Fatalf("add item: %v", err)
	}

	groups, err := svc.Grouped(ctx)
	if err != nil {
		t.Fatalf("grouped failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 month groups, got %d", len(groups))
	}

	// Months chronological.
	if groups[0].Title != "January 2026" || groups[1].Title != "February 2026" {
		t.Errorf("month order/titles wrong: %q, %q", groups[0].Title, groups[1].Title)
	}

	// Weeks within January ordered by number.
	janWeeks := groups[0].Weeks
	if len(janWeeks) != 2 || janWeeks[0].Week.ID != w1.ID || janWeeks[1].Week.ID != w2.ID {
		t.Errorf("week order wrong in January group")
	}

	// Items oldest first.
	w1Items := janWeeks[0].Items
	if len(w1Items) != 2 || w1Items[0].Title != "first task" {
		t.Errorf("item order wrong: %+v", w1Items)
	}
}

func TestSeedIfEmpty(t *testing.T) {
	repo := &stubTodoRepo{}
	svc := NewTodoService(repo, discardLogger)
	ctx := context.Background()

	if err := svc.SeedIfEmpty(ctx); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if len(repo.weeks) != 2 || len(repo.items) != 4 {
		t.Fatalf("expected 2 weeks / 4 items, got %d / %d", len(repo.weeks), len(repo.items))
	}

	// Second call is a no-op.
	if err := svc.SeedIfEmpty(ctx); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if len(repo.weeks) != 2 || len(repo.items) != 4 {
		t.Error("seed must not run twice")
	}
}
