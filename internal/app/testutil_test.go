package app_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/gantt/internal/adapters/sqlite"
	"github.com/example/gantt/internal/app"
	"github.com/example/gantt/internal/core/schedule"
	"github.com/example/gantt/internal/db"
	"github.com/example/gantt/internal/models"
	"github.com/example/gantt/internal/ports/secondary"
)

var errBoom = errors.New("disk full")

// fakeMilestoneRepo is an in-memory MilestoneRepository with failure
// injection for exercising the rollback paths.
type fakeMilestoneRepo struct {
	records  map[string]*secondary.MilestoneRecord
	projects map[string]bool
	saved    []string // ids passed to Save, in order

	failCreate bool
	failSave   bool
	failDelete bool
}

func newFakeRepo() *fakeMilestoneRepo {
	return &fakeMilestoneRepo{
		records:  make(map[string]*secondary.MilestoneRecord),
		projects: map[string]bool{"PROJ-001": true},
	}
}

func (f *fakeMilestoneRepo) LoadMilestones(ctx context.Context, projectID string) ([]*secondary.MilestoneRecord, error) {
	var out []*secondary.MilestoneRecord
	for _, r := range f.records {
		if r.ProjectID == projectID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeMilestoneRepo) Create(ctx context.Context, m *secondary.MilestoneRecord) error {
	if f.failCreate {
		return errBoom
	}
	f.records[m.ID] = m
	return nil
}

func (f *fakeMilestoneRepo) Save(ctx context.Context, m *secondary.MilestoneRecord) error {
	if f.failSave {
		return errBoom
	}
	f.records[m.ID] = m
	f.saved = append(f.saved, m.ID)
	return nil
}

func (f *fakeMilestoneRepo) Delete(ctx context.Context, id string) error {
	if f.failDelete {
		return errBoom
	}
	delete(f.records, id)
	return nil
}

func (f *fakeMilestoneRepo) GetByID(ctx context.Context, id string) (*secondary.MilestoneRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("milestone not found: %s", id)
	}
	return r, nil
}

func (f *fakeMilestoneRepo) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("MS-%03d", len(f.records)+1), nil
}

func (f *fakeMilestoneRepo) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	return f.projects[projectID], nil
}

var _ secondary.MilestoneRepository = (*fakeMilestoneRepo)(nil)

// fakeLogWriter records audit entries as "action entityID" strings.
type fakeLogWriter struct {
	entries []string
}

func (f *fakeLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	f.entries = append(f.entries, "create "+entityID)
	return nil
}

func (f *fakeLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	f.entries = append(f.entries, "update "+entityID)
	return nil
}

func (f *fakeLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	f.entries = append(f.entries, "delete "+entityID)
	return nil
}

var _ secondary.LogWriter = (*fakeLogWriter)(nil)

func day(n int) time.Time {
	return time.Date(2026, 1, n, 0, 0, 0, 0, time.UTC)
}

func milestone(id string, start, end int) *models.Milestone {
	return &models.Milestone{
		ID:         id,
		ProjectID:  "PROJ-001",
		Title:      "Milestone " + id,
		Start:      day(start),
		End:        day(end),
		Editable:   true,
		Deletable:  true,
		IsExpanded: true,
	}
}

func seedStore(t *testing.T, store *schedule.Store, milestones ...*models.Milestone) {
	t.Helper()
	for _, m := range milestones {
		if err := store.Upsert(m); err != nil {
			t.Fatalf("Upsert(%s) failed: %v", m.ID, err)
		}
	}
}

func newMilestoneService(t *testing.T) (*app.MilestoneServiceImpl, *schedule.Store, *fakeMilestoneRepo, *fakeLogWriter) {
	t.Helper()
	store := schedule.NewStore()
	repo := newFakeRepo()
	logs := &fakeLogWriter{}
	return app.NewMilestoneService(store, repo, logs), store, repo, logs
}

// newSQLiteMilestoneService wires the service to real sqlite repositories over
// an in-memory database carrying the production schema.
func newSQLiteMilestoneService(t *testing.T) (*app.MilestoneServiceImpl, *schedule.Store) {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := database.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	if _, err := database.Exec("INSERT INTO projects (id, name, status) VALUES ('PROJ-001', 'Test', 'active')"); err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}

	store := schedule.NewStore()
	repo := sqlite.NewMilestoneRepository(database)
	return app.NewMilestoneService(store, repo, sqlite.NewLogWriter(database)), store
}
