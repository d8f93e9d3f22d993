package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/mdc-internships/interntracker/internal/core/domain"
	"github.com/mdc-internships/interntracker/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubProjectRepo struct {
	projects map[string]*domain.InternProject
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.InternProject)}
}

func (r *stubProjectRepo) Upsert(_ context.Context, p *domain.InternProject) error {
	clone := *p
	clone.Activities = append([]domain.DailyActivity(nil), p.Activities...)
	r.projects[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.InternProject, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	clone.Activities = append([]domain.DailyActivity(nil), p.Activities...)
	return &clone, nil
}

func (r *stubProjectRepo) List(_ context.Context, ownerID string) ([]*domain.InternProject, error) {
	var out []*domain.InternProject
	for _, p := range r.projects {
		if ownerID != "" && p.OwnerID != ownerID {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProjectRepo) ReplaceActivities(_ context.Context, projectID string, activities []domain.DailyActivity) error {
	p, ok := r.projects[projectID]
	if !ok {
		return domain.ErrProjectNotFound
	}
	p.Activities = append([]domain.DailyActivity(nil), activities...)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func seedProject(t *testing.T, repo *stubProjectRepo) *domain.InternProject {
	t.Helper()
	p := &domain.InternProject{
		ID:           "proj-1",
		Name:         "Inventory Portal",
		Status:       domain.StatusInProgress,
		StartDate:    time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
		PlannedHours: 120,
		Activities:   []domain.DailyActivity{},
	}
	if err := repo.Upsert(context.Background(), p); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}

func activity(id string, day int, hours float64, note string) domain.DailyActivity {
	return domain.DailyActivity{
		ID:    id,
		Date:  time.Date(2026, 2, day, 10, 0, 0, 0, time.UTC),
		Hours: hours,
		Note:  note,
	}
}

// ---------------------------------------------------------------------------
// Project CRUD
// ---------------------------------------------------------------------------

func TestUpsertProject_RejectsReversedDates(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)

	p := &domain.InternProject{
		Name:      "Bad Dates",
		Status:    domain.StatusInProgress,
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	if _, err := svc.UpsertProject(context.Background(), p); err != domain.ErrInvalidDateRange {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestUpsertProject_AssignsID(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)

	p := &domain.InternProject{
		Name:      "New",
		Status:    domain.StatusInProgress,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	saved, err := svc.UpsertProject(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected generated id")
	}
	if saved.Activities == nil {
		t.Error("activities must be initialized")
	}
}

func TestUpsertProject_MetadataEditKeepsActivities(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)
	ctx := context.Background()

	if _, err := svc.AddActivity(ctx, "proj-1", activity("", 10, 2, "wired the login page")); err != nil {
		t.Fatalf("add activity: %v", err)
	}

	// An edit form submits metadata only; the stored log must survive.
	edit := &domain.InternProject{
		ID:           "proj-1",
		Name:         "Inventory Portal v2",
		Status:       domain.StatusProduction,
		StartDate:    time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
		PlannedHours: 120,
	}
	if _, err := svc.UpsertProject(ctx, edit); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := svc.GetProject(ctx, "proj-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Inventory Portal v2" || got.Status != domain.StatusProduction {
		t.Errorf("metadata not updated: %+v", got)
	}
	if len(got.Activities) != 1 {
		t.Fatalf("activities after metadata edit = %d, want 1", len(got.Activities))
	}
	if got.Activities[0].Note != "wired the login page" {
		t.Errorf("activity changed: %+v", got.Activities[0])
	}
}

func TestUpsertProject_ExplicitActivitiesReplace(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)
	ctx := context.Background()

	if _, err := svc.AddActivity(ctx, "proj-1", activity("", 10, 2, "old")); err != nil {
		t.Fatalf("add activity: %v", err)
	}

	edit := &domain.InternProject{
		ID:         "proj-1",
		Name:       "Inventory Portal",
		Status:     domain.StatusInProgress,
		StartDate:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
		Activities: []domain.DailyActivity{},
	}
	if _, err := svc.UpsertProject(ctx, edit); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := svc.GetProject(ctx, "proj-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Activities) != 0 {
		t.Fatalf("explicit empty log must replace, got %d activities", len(got.Activities))
	}
}

// ---------------------------------------------------------------------------
// Activity CRUD
// ---------------------------------------------------------------------------

func TestAddActivity_InsertsAtHead(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)
	ctx := context.Background()

	if _, err := svc.AddActivity(ctx, "proj-1", activity("", 10, 2, "first")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddActivity(ctx, "proj-1", activity("", 11, 3, "second")); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	p, _ := repo.FindByID(ctx, "proj-1")
	if len(p.Activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(p.Activities))
	}
	if p.Activities[0].Note != "second" {
		t.Errorf("newest activity must be at head, got %q", p.Activities[0].Note)
	}
}

func TestAddActivity_Validation(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)
	ctx := context.Background()

	cases := []struct {
		name    string
		act     domain.DailyActivity
		wantErr error
	}{
		{"zero hours", activity("", 10, 0, "note"), domain.ErrInvalidHours},
		{"negative hours", activity("", 10, -1, "note"), domain.ErrInvalidHours},
		{"nan hours", activity("", 10, math.NaN(), "note"), domain.ErrInvalidHours},
		{"inf hours", activity("", 10, math.Inf(1), "note"), domain.ErrInvalidHours},
		{"blank note", activity("", 10, 1, "   "), domain.ErrEmptyNote},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddActivity(ctx, "proj-1", tc.act); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	p, _ := repo.FindByID(ctx, "proj-1")
	if len(p.Activities) != 0 {
		t.Error("rejected activities must not be stored")
	}
}

func TestUpdateActivity_NotFound(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)

	err := svc.UpdateActivity(context.Background(), "proj-1", activity("missing", 10, 1, "note"))
	if err != domain.ErrActivityNotFound {
		t.Fatalf("expected ErrActivityNotFound, got %v", err)
	}
}

func TestDeleteActivity_RemovesByID(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)
	ctx := context.Background()

	added, err := svc.AddActivity(ctx, "proj-1", activity("", 10, 2, "keep me"))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.DeleteActivity(ctx, "proj-1", added.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.DeleteActivity(ctx, "proj-1", added.ID); err != domain.ErrActivityNotFound {
		t.Fatalf("expected ErrActivityNotFound on second delete, got %v", err)
	}
}

func TestSaveActivities_SortsAscendingByDate(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)
	ctx := context.Background()

	unsorted := []domain.DailyActivity{
		activity("a3", 20, 1, "late"),
		activity("a1", 5, 2, "early"),
		activity("a2", 12, 3, "middle"),
	}
	if err := svc.SaveActivities(ctx, "proj-1", unsorted); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	p, _ := repo.FindByID(ctx, "proj-1")
	if p.Activities[0].ID != "a1" || p.Activities[1].ID != "a2" || p.Activities[2].ID != "a3" {
		t.Errorf("not sorted ascending by date: %v %v %v", p.Activities[0].ID, p.Activities[1].ID, p.Activities[2].ID)
	}
}

func TestSaveActivities_RejectsInvalidRow(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)
	ctx := context.Background()

	rows := []domain.DailyActivity{
		activity("a1", 5, 2, "ok"),
		activity("a2", 6, 0, "bad hours"),
	}
	if err := svc.SaveActivities(ctx, "proj-1", rows); !errors.Is(err, domain.ErrInvalidHours) {
		t.Fatalf("expected ErrInvalidHours, got %v", err)
	}

	p, _ := repo.FindByID(ctx, "proj-1")
	if len(p.Activities) != 0 {
		t.Error("failed save must not partially apply")
	}
}

// ---------------------------------------------------------------------------
// Aggregation
// ---------------------------------------------------------------------------

func TestTotalHours_TracksMutations(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)
	ctx := context.Background()

	a, _ := svc.AddActivity(ctx, "proj-1", activity("", 10, 2.5, "one"))
	b, _ := svc.AddActivity(ctx, "proj-1", activity("", 11, 1.25, "two"))

	total, err := svc.TotalHours(ctx, "proj-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3.75 {
		t.Errorf("expected 3.75, got %v", total)
	}

	updated := *a
	updated.Hours = 4
	if err := svc.UpdateActivity(ctx, "proj-1", updated); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := svc.DeleteActivity(ctx, "proj-1", b.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	total, _ = svc.TotalHours(ctx, "proj-1")
	if total != 4 {
		t.Errorf("expected 4 after mutations, got %v", total)
	}
}

func TestListActivities_Pagination(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)
	ctx := context.Background()

	var rows []domain.DailyActivity
	for i := 0; i < 25; i++ {
		rows = append(rows, domain.DailyActivity{
			ID:    fmt.Sprintf("a%02d", i),
			Date:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Hours: 1,
			Note:  "work",
		})
	}
	if err := svc.SaveActivities(ctx, "proj-1", rows); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	page, err := svc.ListActivities(ctx, "proj-1", 3, ports.ActivityFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalPages != 3 {
		t.Errorf("expected 3 pages for 25 records, got %d", page.TotalPages)
	}
	if len(page.Items) != 5 {
		t.Errorf("expected 5 items on last page, got %d", len(page.Items))
	}
	if page.ShowingFrom != 21 || page.ShowingTo != 25 {
		t.Errorf("showing bounds wrong: %d–%d", page.ShowingFrom, page.ShowingTo)
	}
}

func TestListActivities_PageClampedAfterDelete(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)
	ctx := context.Background()

	var rows []domain.DailyActivity
	for i := 0; i < 25; i++ {
		rows = append(rows, domain.DailyActivity{
			ID:    fmt.Sprintf("a%02d", i),
			Date:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Hours: 1,
			Note:  "work",
		})
	}
	if err := svc.SaveActivities(ctx, "proj-1", rows); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Shrink 25 → 5; a stale page=3 must clamp down to 1.
	if err := svc.SaveActivities(ctx, "proj-1", rows[:5]); err != nil {
		t.Fatalf("shrink failed: %v", err)
	}

	page, err := svc.ListActivities(ctx, "proj-1", 3, ports.ActivityFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 1 || page.TotalPages != 1 {
		t.Errorf("expected page 1/1, got %d/%d", page.Page, page.TotalPages)
	}
	if len(page.Items) != 5 {
		t.Errorf("expected 5 items, got %d", len(page.Items))
	}
}

func TestListActivities_EmptyLog(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)

	page, err := svc.ListActivities(context.Background(), "proj-1", 1, ports.ActivityFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalPages != 1 || page.Page != 1 {
		t.Errorf("empty log must report page 1/1, got %d/%d", page.Page, page.TotalPages)
	}
	if page.ShowingFrom != 0 || page.ShowingTo != 0 {
		t.Errorf("empty log bounds must be 0–0, got %d–%d", page.ShowingFrom, page.ShowingTo)
	}
}

func TestListActivities_DateRangeEndpointsInclusive(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)
	ctx := context.Background()

	rows := []domain.DailyActivity{
		{ID: "before", Date: time.Date(2026, 2, 9, 23, 59, 0, 0, time.UTC), Hours: 1, Note: "n"},
		{ID: "onFrom", Date: time.Date(2026, 2, 10, 0, 30, 0, 0, time.UTC), Hours: 1, Note: "n"},
		{ID: "onTo", Date: time.Date(2026, 2, 12, 23, 30, 0, 0, time.UTC), Hours: 1, Note: "n"},
		{ID: "after", Date: time.Date(2026, 2, 13, 0, 1, 0, 0, time.UTC), Hours: 1, Note: "n"},
	}
	if err := svc.SaveActivities(ctx, "proj-1", rows); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	filter := ports.ActivityFilter{
		// Time-of-day on the bounds must not matter.
		From: time.Date(2026, 2, 10, 18, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 2, 12, 6, 0, 0, 0, time.UTC),
	}
	page, err := svc.ListActivities(ctx, "proj-1", 1, filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 activities in range, got %d", len(page.Items))
	}
	got := map[string]bool{}
	for _, a := range page.Items {
		got[a.ID] = true
	}
	if !got["onFrom"] || !got["onTo"] {
		t.Errorf("range must include both endpoint days: %v", got)
	}
}

func TestListActivities_OneSidedRanges(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)
	ctx := context.Background()

	rows := []domain.DailyActivity{
		{ID: "early", Date: time.Date(2026, 2, 5, 9, 0, 0, 0, time.UTC), Hours: 1, Note: "n"},
		{ID: "late", Date: time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC), Hours: 1, Note: "n"},
	}
	if err := svc.SaveActivities(ctx, "proj-1", rows); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cases := []struct {
		name   string
		filter ports.ActivityFilter
		want   string
	}{
		{
			name:   "from only is open-ended",
			filter: ports.ActivityFilter{From: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
			want:   "late",
		},
		{
			name:   "to only is open-started",
			filter: ports.ActivityFilter{To: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
			want:   "early",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := svc.ListActivities(ctx, "proj-1", 1, tc.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(page.Items) != 1 {
				t.Fatalf("kept %d of 2 activities, want 1", len(page.Items))
			}
			if page.Items[0].ID != tc.want {
				t.Errorf("kept %q, want %q", page.Items[0].ID, tc.want)
			}
		})
	}
}

func TestExportLog_OneSidedRangeLabel(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)
	ctx := context.Background()

	export, err := svc.ExportLog(ctx, "proj-1", "Ana",
		ports.ActivityFilter{From: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if export.RangeLabel != "From Feb 10, 2026" {
		t.Errorf("range label = %q", export.RangeLabel)
	}

	export, err = svc.ExportLog(ctx, "proj-1", "Ana",
		ports.ActivityFilter{To: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if export.RangeLabel != "Through Feb 10, 2026" {
		t.Errorf("range label = %q", export.RangeLabel)
	}
}

func TestExportLog_SummaryAndRows(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, discardLogger)
	seedProject(t, repo)
	ctx := context.Background()

	rows := []domain.DailyActivity{
		activity("a1", 5, 2.345, "analysis"),
		activity("a2", 6, 1.5, "coding"),
	}
	if err := svc.SaveActivities(ctx, "proj-1", rows); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	export, err := svc.ExportLog(ctx, "proj-1", "Ana Perez", ports.ActivityFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if export.InternName != "Ana Perez" || export.ProjectName != "Inventory Portal" {
		t.Errorf("summary identity wrong: %+v", export)
	}
	if export.RangeLabel != "All Dates" {
		t.Errorf("expected All Dates label, got %q", export.RangeLabel)
	}
	if export.PlannedHours != 120 {
		t.Errorf("planned hours wrong: %v", export.PlannedHours)
	}
	// 2.345 rounds to 2.35 on save; logged total = 2.35 + 1.5.
	if export.LoggedHours != 3.85 {
		t.Errorf("logged hours wrong: %v", export.LoggedHours)
	}
	if len(export.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(export.Rows))
	}
	// Rows come out in stored (date-ascending) order, not re-sorted.
	if export.Rows[0].Note != "analysis" {
		t.Errorf("row order wrong: %q first", export.Rows[0].Note)
	}
}
