package primary

import "context"

// MilestoneService defines the primary port for milestone operations.
type MilestoneService interface {
	// LoadProject loads a project's milestones from persistence into the
	// scheduling store, replacing any previous contents.
	LoadProject(ctx context.Context, projectID string) error

	// CreateMilestone creates a new milestone.
	CreateMilestone(ctx context.Context, req CreateMilestoneRequest) (*CreateMilestoneResponse, error)

	// GetMilestone retrieves a milestone by ID.
	GetMilestone(ctx context.Context, milestoneID string) (*Milestone, error)

	// ListMilestones lists the loaded milestones in timeline order.
	ListMilestones(ctx context.Context) ([]*Milestone, error)

	// UpdateMilestone updates a milestone's title, bounds or completion.
	UpdateMilestone(ctx context.Context, req UpdateMilestoneRequest) error

	// MoveMilestone reparents a milestone within the forest.
	MoveMilestone(ctx context.Context, milestoneID, newParentID string) error

	// AddDependency adds a dependency edge (dependsOnID must precede milestoneID).
	AddDependency(ctx context.Context, milestoneID, dependsOnID string) error

	// RemoveDependency removes a dependency edge.
	RemoveDependency(ctx context.Context, milestoneID, dependsOnID string) error

	// DeleteMilestone deletes a milestone. force drops it from dependents'
	// dependency sets instead of failing.
	DeleteMilestone(ctx context.Context, milestoneID string, force bool) error

	// ToggleExpanded flips whether a milestone's children are visible.
	ToggleExpanded(ctx context.Context, milestoneID string) error
}

// Milestone is the milestone DTO exposed through the primary ports.
type Milestone struct {
	ID           string
	ProjectID    string
	Title        string
	Start        string // RFC3339
	End          string // RFC3339
	DurationDays int
	ParentID     string
	Indent       int
	Dependencies []string
	Completed    int
	Editable     bool
	Deletable    bool
	IsExpanded   bool
}

// CreateMilestoneRequest contains parameters for creating a milestone.
type CreateMilestoneRequest struct {
	ProjectID    string
	Title        string
	Start        string // date or RFC3339
	End          string
	ParentID     string   // optional
	Dependencies []string // optional
	Completed    int
}

// CreateMilestoneResponse contains the result of creating a milestone.
type CreateMilestoneResponse struct {
	MilestoneID string
	Milestone   *Milestone
}

// UpdateMilestoneRequest contains parameters for updating a milestone.
// Empty fields are left unchanged; Completed applies when >= 0.
type UpdateMilestoneRequest struct {
	MilestoneID string
	Title       string
	Start       string
	End         string
	Completed   int
}
