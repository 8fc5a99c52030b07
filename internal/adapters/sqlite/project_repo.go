package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/gantt/internal/ports/secondary"
)

// ProjectRepository implements secondary.ProjectRepository with SQLite.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new SQLite project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectSelectCols = "id, name, status, created_at, updated_at"

func scanProject(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ProjectRecord, error) {
	var createdAt, updatedAt time.Time
	record := &secondary.ProjectRecord{}
	err := scanner.Scan(&record.ID, &record.Name, &record.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Create persists a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *secondary.ProjectRecord) error {
	status := project.Status
	if status == "" {
		status = "active"
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO projects (id, name, status) VALUES (?, ?, ?)",
		project.ID, project.Name, status,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+projectSelectCols+" FROM projects WHERE id = ?",
		id,
	)
	record, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return record, nil
}

// List retrieves projects matching the given filters.
func (r *ProjectRepository) List(ctx context.Context, filters secondary.ProjectFilters) ([]*secondary.ProjectRecord, error) {
	query := "SELECT " + projectSelectCols + " FROM projects WHERE 1=1"
	args := []any{}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	query += " ORDER BY created_at ASC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ProjectRecord
	for rows.Next() {
		record, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return records, nil
}

// Delete removes a project; milestones cascade via foreign keys.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("project %s not found", id)
	}
	return nil
}

// GetNextID returns the next available project ID.
func (r *ProjectRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM projects",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next project ID: %w", err)
	}
	return fmt.Sprintf("PROJ-%03d", maxID+1), nil
}

// Ensure ProjectRepository implements the interface
var _ secondary.ProjectRepository = (*ProjectRepository)(nil)
