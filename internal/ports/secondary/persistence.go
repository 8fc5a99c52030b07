// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// MilestoneRepository defines the secondary port for milestone persistence.
// This is the persistence collaborator the scheduling core writes back to on
// commit.
type MilestoneRepository interface {
	// LoadMilestones retrieves a project's milestones ordered by start.
	LoadMilestones(ctx context.Context, projectID string) ([]*MilestoneRecord, error)

	// Create persists a new milestone.
	Create(ctx context.Context, milestone *MilestoneRecord) error

	// Save updates an existing milestone, dependencies included.
	Save(ctx context.Context, milestone *MilestoneRecord) error

	// Delete removes a milestone from persistence.
	Delete(ctx context.Context, id string) error

	// GetByID retrieves a milestone by its ID.
	GetByID(ctx context.Context, id string) (*MilestoneRecord, error)

	// GetNextID returns the next available milestone ID.
	GetNextID(ctx context.Context) (string, error)

	// ProjectExists checks if a project exists (for validation).
	ProjectExists(ctx context.Context, projectID string) (bool, error)
}

// MilestoneRecord represents a milestone as stored in persistence.
type MilestoneRecord struct {
	ID           string
	ProjectID    string
	ParentID     string
	Title        string
	Start        string // RFC3339
	End          string // RFC3339
	DurationDays int
	Indent       int
	Dependencies []string
	Completed    int
	Editable     bool
	Deletable    bool
	IsExpanded   bool
	CreatedAt    string
	UpdatedAt    string
}

// ProjectRepository defines the secondary port for project persistence.
type ProjectRepository interface {
	// Create persists a new project.
	Create(ctx context.Context, project *ProjectRecord) error

	// GetByID retrieves a project by its ID.
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)

	// List retrieves projects matching the given filters.
	List(ctx context.Context, filters ProjectFilters) ([]*ProjectRecord, error)

	// Delete removes a project and (via cascade) its milestones.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available project ID.
	GetNextID(ctx context.Context) (string, error)
}

// ProjectRecord represents a project as stored in persistence.
type ProjectRecord struct {
	ID        string
	Name      string
	Status    string
	CreatedAt string
	UpdatedAt string
}

// ProjectFilters contains filter options for querying projects.
type ProjectFilters struct {
	Status string
	Limit  int
}
