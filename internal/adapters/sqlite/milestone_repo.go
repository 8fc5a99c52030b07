// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/gantt/internal/ports/secondary"
)

// MilestoneRepository implements secondary.MilestoneRepository with SQLite.
type MilestoneRepository struct {
	db *sql.DB
}

// NewMilestoneRepository creates a new SQLite milestone repository.
func NewMilestoneRepository(db *sql.DB) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

const milestoneSelectCols = "id, project_id, parent_id, title, start_at, end_at, duration_days, indent, completed, editable, deletable, is_expanded, created_at, updated_at"

// scanMilestone scans a milestone row into a MilestoneRecord.
func scanMilestone(scanner interface {
	Scan(dest ...any) error
}) (*secondary.MilestoneRecord, error) {
	var (
		parentID  sql.NullString
		startAt   time.Time
		endAt     time.Time
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.MilestoneRecord{}
	err := scanner.Scan(
		&record.ID, &record.ProjectID, &parentID, &record.Title,
		&startAt, &endAt, &record.DurationDays, &record.Indent,
		&record.Completed, &record.Editable, &record.Deletable, &record.IsExpanded,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.ParentID = parentID.String
	record.Start = startAt.Format(time.RFC3339)
	record.End = endAt.Format(time.RFC3339)
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// LoadMilestones retrieves a project's milestones ordered by start, with
// their dependency sets resolved from the join table.
func (r *MilestoneRepository) LoadMilestones(ctx context.Context, projectID string) ([]*secondary.MilestoneRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+milestoneSelectCols+" FROM milestones WHERE project_id = ? ORDER BY start_at ASC, id ASC",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load milestones: %w", err)
	}
	defer rows.Close()

	var records []*secondary.MilestoneRecord
	byID := make(map[string]*secondary.MilestoneRecord)
	for rows.Next() {
		record, err := scanMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		records = append(records, record)
		byID[record.ID] = record
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate milestones: %w", err)
	}

	depRows, err := r.db.QueryContext(ctx,
		"SELECT d.milestone_id, d.depends_on_id FROM milestone_dependencies d JOIN milestones m ON m.id = d.milestone_id WHERE m.project_id = ? ORDER BY d.milestone_id, d.depends_on_id",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load dependencies: %w", err)
	}
	defer depRows.Close()

	for depRows.Next() {
		var milestoneID, dependsOnID string
		if err := depRows.Scan(&milestoneID, &dependsOnID); err != nil {
			return nil, fmt.Errorf("failed to scan dependency: %w", err)
		}
		if record, ok := byID[milestoneID]; ok {
			record.Dependencies = append(record.Dependencies, dependsOnID)
		}
	}
	if err := depRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dependencies: %w", err)
	}

	return records, nil
}

// GetByID retrieves a milestone by its ID.
func (r *MilestoneRepository) GetByID(ctx context.Context, id string) (*secondary.MilestoneRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+milestoneSelectCols+" FROM milestones WHERE id = ?",
		id,
	)
	record, err := scanMilestone(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("milestone %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get milestone: %w", err)
	}

	depRows, err := r.db.QueryContext(ctx,
		"SELECT depends_on_id FROM milestone_dependencies WHERE milestone_id = ? ORDER BY depends_on_id",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load dependencies: %w", err)
	}
	defer depRows.Close()

	for depRows.Next() {
		var dependsOnID string
		if err := depRows.Scan(&dependsOnID); err != nil {
			return nil, fmt.Errorf("failed to scan dependency: %w", err)
		}
		record.Dependencies = append(record.Dependencies, dependsOnID)
	}
	if err := depRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dependencies: %w", err)
	}

	return record, nil
}

// Create persists a new milestone with its dependency edges in one
// transaction.
func (r *MilestoneRepository) Create(ctx context.Context, milestone *secondary.MilestoneRecord) error {
	start, end, err := parseBounds(milestone)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var parentID sql.NullString
	if milestone.ParentID != "" {
		parentID = sql.NullString{String: milestone.ParentID, Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO milestones (id, project_id, parent_id, title, start_at, end_at, duration_days, indent, completed, editable, deletable, is_expanded) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		milestone.ID, milestone.ProjectID, parentID, milestone.Title,
		start, end, milestone.DurationDays, milestone.Indent,
		milestone.Completed, milestone.Editable, milestone.Deletable, milestone.IsExpanded,
	)
	if err != nil {
		return fmt.Errorf("failed to create milestone: %w", err)
	}

	for _, dep := range milestone.Dependencies {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO milestone_dependencies (milestone_id, depends_on_id) VALUES (?, ?)",
			milestone.ID, dep,
		); err != nil {
			return fmt.Errorf("failed to create dependency edge: %w", err)
		}
	}

	return tx.Commit()
}

// Save updates an existing milestone and replaces its dependency edges in one
// transaction.
func (r *MilestoneRepository) Save(ctx context.Context, milestone *secondary.MilestoneRecord) error {
	start, end, err := parseBounds(milestone)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var parentID sql.NullString
	if milestone.ParentID != "" {
		parentID = sql.NullString{String: milestone.ParentID, Valid: true}
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE milestones SET parent_id = ?, title = ?, start_at = ?, end_at = ?, duration_days = ?, indent = ?, completed = ?, editable = ?, deletable = ?, is_expanded = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		parentID, milestone.Title, start, end, milestone.DurationDays, milestone.Indent,
		milestone.Completed, milestone.Editable, milestone.Deletable, milestone.IsExpanded,
		milestone.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save milestone: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check save result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("milestone %s not found", milestone.ID)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM milestone_dependencies WHERE milestone_id = ?",
		milestone.ID,
	); err != nil {
		return fmt.Errorf("failed to clear dependency edges: %w", err)
	}
	for _, dep := range milestone.Dependencies {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO milestone_dependencies (milestone_id, depends_on_id) VALUES (?, ?)",
			milestone.ID, dep,
		); err != nil {
			return fmt.Errorf("failed to create dependency edge: %w", err)
		}
	}

	return tx.Commit()
}

// Delete removes a milestone; dependency edges cascade via foreign keys.
func (r *MilestoneRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM milestones WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("milestone %s not found", id)
	}
	return nil
}

// GetNextID returns the next available milestone ID.
func (r *MilestoneRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM milestones",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next milestone ID: %w", err)
	}
	return fmt.Sprintf("MS-%03d", maxID+1), nil
}

// ProjectExists checks if a project exists.
func (r *MilestoneRepository) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM projects WHERE id = ?",
		projectID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check project: %w", err)
	}
	return count > 0, nil
}

func parseBounds(milestone *secondary.MilestoneRecord) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, milestone.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start for %s: %w", milestone.ID, err)
	}
	end, err := time.Parse(time.RFC3339, milestone.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end for %s: %w", milestone.ID, err)
	}
	return start, end, nil
}

// Ensure MilestoneRepository implements the interface
var _ secondary.MilestoneRepository = (*MilestoneRepository)(nil)
