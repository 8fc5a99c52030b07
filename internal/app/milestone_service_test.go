package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/gantt/internal/app"
	"github.com/example/gantt/internal/core/schedule"
	"github.com/example/gantt/internal/ports/primary"
	"github.com/example/gantt/internal/ports/secondary"
)

func TestCreateMilestone(t *testing.T) {
	svc, store, repo, logs := newMilestoneService(t)
	ctx := context.Background()

	resp, err := svc.CreateMilestone(ctx, primary.CreateMilestoneRequest{
		ProjectID: "PROJ-001",
		Title:     "Design review",
		Start:     "2026-01-01",
		End:       "2026-01-05",
	})
	if err != nil {
		t.Fatalf("CreateMilestone failed: %v", err)
	}
	if resp.MilestoneID != "MS-001" {
		t.Errorf("expected MS-001, got %s", resp.MilestoneID)
	}
	if resp.Milestone.DurationDays != 4 {
		t.Errorf("expected duration 4, got %d", resp.Milestone.DurationDays)
	}

	if _, err := store.Get("MS-001"); err != nil {
		t.Error("created milestone missing from store")
	}
	if _, ok := repo.records["MS-001"]; !ok {
		t.Error("created milestone missing from persistence")
	}
	if len(logs.entries) != 1 || logs.entries[0] != "create MS-001" {
		t.Errorf("expected create audit entry, got %v", logs.entries)
	}
}

func TestCreateMilestone_UnknownProject(t *testing.T) {
	svc, _, _, _ := newMilestoneService(t)

	_, err := svc.CreateMilestone(context.Background(), primary.CreateMilestoneRequest{
		ProjectID: "PROJ-404",
		Title:     "Orphan",
		Start:     "2026-01-01",
		End:       "2026-01-05",
	})
	if !errors.Is(err, app.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestCreateMilestone_PersistenceFailureRollsBack(t *testing.T) {
	svc, store, repo, _ := newMilestoneService(t)
	repo.failCreate = true

	_, err := svc.CreateMilestone(context.Background(), primary.CreateMilestoneRequest{
		ProjectID: "PROJ-001",
		Title:     "Doomed",
		Start:     "2026-01-01",
		End:       "2026-01-05",
	})
	if !errors.Is(err, app.ErrPersistenceFailure) {
		t.Errorf("expected ErrPersistenceFailure, got %v", err)
	}
	if store.Len() != 0 {
		t.Error("failed create must not leave the milestone in the store")
	}
}

func TestLoadProject(t *testing.T) {
	svc, store, repo, _ := newMilestoneService(t)
	repo.records["MS-001"] = &secondary.MilestoneRecord{
		ID:        "MS-001",
		ProjectID: "PROJ-001",
		Title:     "Kickoff",
		Start:     "2026-01-01T00:00:00Z",
		End:       "2026-01-05T00:00:00Z",
		Editable:  true,
		Deletable: true,
	}

	if err := svc.LoadProject(context.Background(), "PROJ-001"); err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	got, err := store.Get("MS-001")
	if err != nil {
		t.Fatalf("loaded milestone missing: %v", err)
	}
	if !got.Start.Equal(day(1)) || !got.End.Equal(day(5)) {
		t.Errorf("loaded bounds wrong: [%v, %v]", got.Start, got.End)
	}

	if err := svc.LoadProject(context.Background(), "PROJ-404"); !errors.Is(err, app.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestUpdateMilestone_SaveFailureRollsBack(t *testing.T) {
	svc, store, repo, _ := newMilestoneService(t)
	seedStore(t, store, milestone("MS-001", 1, 5))
	repo.failSave = true

	err := svc.UpdateMilestone(context.Background(), primary.UpdateMilestoneRequest{
		MilestoneID: "MS-001",
		Title:       "Renamed",
		Completed:   -1,
	})
	if !errors.Is(err, app.ErrPersistenceFailure) {
		t.Errorf("expected ErrPersistenceFailure, got %v", err)
	}

	got, _ := store.Get("MS-001")
	if got.Title != "Milestone MS-001" {
		t.Errorf("store must roll back to pre-update state, got title %q", got.Title)
	}
}

func TestUpdateMilestone_RejectsBadCompletion(t *testing.T) {
	svc, store, _, _ := newMilestoneService(t)
	seedStore(t, store, milestone("MS-001", 1, 5))

	err := svc.UpdateMilestone(context.Background(), primary.UpdateMilestoneRequest{
		MilestoneID: "MS-001",
		Completed:   150,
	})
	if err == nil {
		t.Error("expected error for completion above 100")
	}
}

func TestAddDependency_CycleNeverPersisted(t *testing.T) {
	svc, store, repo, _ := newMilestoneService(t)
	a := milestone("MS-001", 1, 5)
	b := milestone("MS-002", 6, 10)
	b.Dependencies = []string{"MS-001"}
	seedStore(t, store, a, b)
	ctx := context.Background()

	if err := svc.AddDependency(ctx, "MS-001", "MS-002"); !errors.Is(err, schedule.ErrCycleDetected) {
		t.Errorf("expected ErrCycleDetected, got %v", err)
	}
	// Rejected in the store before the persistence collaborator is touched.
	if len(repo.saved) != 0 {
		t.Errorf("cycle must be rejected before any save, saved %v", repo.saved)
	}

	if err := svc.AddDependency(ctx, "MS-002", "MS-001"); err == nil {
		t.Error("expected error for duplicate dependency")
	}
}

func TestRemoveDependency(t *testing.T) {
	svc, store, _, _ := newMilestoneService(t)
	a := milestone("MS-001", 1, 5)
	b := milestone("MS-002", 6, 10)
	b.Dependencies = []string{"MS-001"}
	seedStore(t, store, a, b)
	ctx := context.Background()

	if err := svc.RemoveDependency(ctx, "MS-002", "MS-001"); err != nil {
		t.Fatalf("RemoveDependency failed: %v", err)
	}
	got, _ := store.Get("MS-002")
	if len(got.Dependencies) != 0 {
		t.Errorf("expected dependency removed, got %v", got.Dependencies)
	}

	if err := svc.RemoveDependency(ctx, "MS-002", "MS-001"); err == nil {
		t.Error("expected error removing a missing dependency")
	}
}

func TestMoveMilestone(t *testing.T) {
	svc, store, _, _ := newMilestoneService(t)
	seedStore(t, store, milestone("MS-001", 1, 30), milestone("MS-002", 2, 10))

	if err := svc.MoveMilestone(context.Background(), "MS-002", "MS-001"); err != nil {
		t.Fatalf("MoveMilestone failed: %v", err)
	}
	got, _ := store.Get("MS-002")
	if got.ParentID != "MS-001" || got.Indent != 1 {
		t.Errorf("expected parent MS-001 indent 1, got %q indent %d", got.ParentID, got.Indent)
	}
}

func TestDeleteMilestone_NotDeletable(t *testing.T) {
	svc, store, _, _ := newMilestoneService(t)
	pinned := milestone("MS-001", 1, 5)
	pinned.Deletable = false
	seedStore(t, store, pinned)

	if err := svc.DeleteMilestone(context.Background(), "MS-001", false); !errors.Is(err, app.ErrNotDeletable) {
		t.Errorf("expected ErrNotDeletable, got %v", err)
	}
}

func TestDeleteMilestone_PersistenceFailureRestores(t *testing.T) {
	svc, store, repo, _ := newMilestoneService(t)
	seedStore(t, store, milestone("MS-001", 1, 5))
	repo.failDelete = true

	err := svc.DeleteMilestone(context.Background(), "MS-001", false)
	if !errors.Is(err, app.ErrPersistenceFailure) {
		t.Errorf("expected ErrPersistenceFailure, got %v", err)
	}
	if _, err := store.Get("MS-001"); err != nil {
		t.Error("failed delete must restore the store entry")
	}
}

func TestDeleteMilestone_ForcedPersistsDependents(t *testing.T) {
	svc, store, repo, _ := newMilestoneService(t)
	a := milestone("MS-001", 1, 5)
	b := milestone("MS-002", 6, 10)
	b.Dependencies = []string{"MS-001"}
	seedStore(t, store, a, b)

	if err := svc.DeleteMilestone(context.Background(), "MS-001", true); err != nil {
		t.Fatalf("forced delete failed: %v", err)
	}
	// The dependent lost its edge in the store and was written back.
	got, _ := store.Get("MS-002")
	if len(got.Dependencies) != 0 {
		t.Errorf("expected dependency stripped, got %v", got.Dependencies)
	}
	if len(repo.saved) != 1 || repo.saved[0] != "MS-002" {
		t.Errorf("expected MS-002 re-saved, got %v", repo.saved)
	}
	if rec := repo.records["MS-002"]; len(rec.Dependencies) != 0 {
		t.Errorf("persisted record still carries the edge: %v", rec.Dependencies)
	}
}

func TestDeleteMilestone_PersistsReparentedChildren(t *testing.T) {
	svc, store, repo, _ := newMilestoneService(t)
	root := milestone("MS-001", 1, 30)
	mid := milestone("MS-002", 2, 20)
	mid.ParentID = "MS-001"
	leaf := milestone("MS-003", 3, 5)
	leaf.ParentID = "MS-002"
	seedStore(t, store, root, mid, leaf)

	if err := svc.DeleteMilestone(context.Background(), "MS-002", false); err != nil {
		t.Fatalf("DeleteMilestone failed: %v", err)
	}

	got, _ := store.Get("MS-003")
	if got.ParentID != "MS-001" {
		t.Fatalf("expected child reparented to MS-001, got %q", got.ParentID)
	}
	// The reparented child must reach persistence, not just the store.
	if len(repo.saved) != 1 || repo.saved[0] != "MS-003" {
		t.Errorf("expected MS-003 re-saved, got %v", repo.saved)
	}
	rec := repo.records["MS-003"]
	if rec.ParentID != "MS-001" || rec.Indent != 1 {
		t.Errorf("persisted record disagrees with store: parent %q indent %d", rec.ParentID, rec.Indent)
	}
}

func TestDeleteMilestone_ReloadKeepsHierarchy(t *testing.T) {
	svc, store := newSQLiteMilestoneService(t)
	ctx := context.Background()

	mustCreateMilestone(t, svc, "Root", "2026-01-01", "2026-01-30", "")
	mustCreateMilestone(t, svc, "Mid", "2026-01-02", "2026-01-20", "MS-001")
	mustCreateMilestone(t, svc, "Leaf", "2026-01-03", "2026-01-05", "MS-002")

	if err := svc.DeleteMilestone(ctx, "MS-002", false); err != nil {
		t.Fatalf("DeleteMilestone failed: %v", err)
	}

	// A fresh load must rebuild the same hierarchy this session is showing.
	if err := svc.LoadProject(ctx, "PROJ-001"); err != nil {
		t.Fatalf("LoadProject after delete failed: %v", err)
	}
	got, err := store.Get("MS-003")
	if err != nil {
		t.Fatalf("reloaded child missing: %v", err)
	}
	if got.ParentID != "MS-001" {
		t.Errorf("expected reloaded child under MS-001, got %q", got.ParentID)
	}
	if got.Indent != 1 {
		t.Errorf("expected reloaded indent 1, got %d", got.Indent)
	}
}

func mustCreateMilestone(t *testing.T, svc *app.MilestoneServiceImpl, title, start, end, parentID string) {
	t.Helper()
	_, err := svc.CreateMilestone(context.Background(), primary.CreateMilestoneRequest{
		ProjectID: "PROJ-001",
		Title:     title,
		Start:     start,
		End:       end,
		ParentID:  parentID,
	})
	if err != nil {
		t.Fatalf("CreateMilestone(%s) failed: %v", title, err)
	}
}

func TestToggleExpanded(t *testing.T) {
	svc, store, _, _ := newMilestoneService(t)
	seedStore(t, store, milestone("MS-001", 1, 5))

	if err := svc.ToggleExpanded(context.Background(), "MS-001"); err != nil {
		t.Fatalf("ToggleExpanded failed: %v", err)
	}
	got, _ := store.Get("MS-001")
	if got.IsExpanded {
		t.Error("expected IsExpanded flipped to false")
	}
}
