package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/gantt/internal/db"
	"github.com/example/gantt/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the production schema.
func setupTestDB(t *testing.T) *sql.DB {
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
	return database
}

// seedProject inserts a project row milestones can reference.
func seedProject(t *testing.T, database *sql.DB, id string) {
	t.Helper()
	_, err := database.Exec("INSERT INTO projects (id, name, status) VALUES (?, ?, 'active')", id, "Project "+id)
	if err != nil {
		t.Fatalf("failed to seed project %s: %v", id, err)
	}
}

func testRecord(id string, startDay, endDay int) *secondary.MilestoneRecord {
	return &secondary.MilestoneRecord{
		ID:           id,
		ProjectID:    "PROJ-001",
		Title:        "Milestone " + id,
		Start:        time.Date(2026, 1, startDay, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
		End:          time.Date(2026, 1, endDay, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
		DurationDays: endDay - startDay,
		Editable:     true,
		Deletable:    true,
		IsExpanded:   true,
	}
}

func mustCreate(t *testing.T, repo secondary.MilestoneRepository, record *secondary.MilestoneRecord) {
	t.Helper()
	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("Create(%s) failed: %v", record.ID, err)
	}
}
