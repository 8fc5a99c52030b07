package primary

import "context"

// TimelineService defines the primary port for the interactive timeline:
// the render cycle and the drag/resize state machine entry points.
type TimelineService interface {
	// Render resolves visible milestones against the viewport and returns
	// their pixel rectangles plus the dependency connector paths. Pure with
	// respect to store and session state; no hidden side effects.
	Render(ctx context.Context, req RenderRequest) (*RenderResult, error)

	// BeginDrag starts a drag or resize session on an editable milestone.
	BeginDrag(ctx context.Context, req BeginDragRequest) error

	// UpdateDrag feeds a pointer position into the active session.
	UpdateDrag(ctx context.Context, pointerX float64) error

	// EndDrag resolves the active session: commit when valid, snap back
	// otherwise. On persistence failure the store rolls back to the
	// pre-drag bounds and the error is retryable.
	EndDrag(ctx context.Context) (*CommitOutcome, error)

	// CancelDrag discards the active session with zero side effects.
	CancelDrag(ctx context.Context) error

	// ActiveSession returns the live session, or nil when idle.
	ActiveSession(ctx context.Context) (*DragSession, error)

	// SetScale changes the time scale. Previously computed pixel positions
	// become invalid; an active session is cancelled.
	SetScale(ctx context.Context, scale string) error
}

// Viewport is the visible pixel window of the timeline.
type Viewport struct {
	OffsetX   float64 // horizontal scroll offset in pixels
	Width     float64
	RowHeight float64 // 0 uses the default
}

// RenderRequest contains parameters for a render pass.
type RenderRequest struct {
	Viewport Viewport
}

// PositionedMilestone pairs a milestone with its rendered rectangle. A
// milestone mid-drag carries its live, not committed, bounds.
type PositionedMilestone struct {
	Milestone *Milestone
	X         float64
	Y         float64
	Width     float64
	Height    float64
	Live      bool // true when rendered from an active drag session
	Valid     bool // meaningful only when Live
}

// ConnectorPath is one routed dependency curve.
type ConnectorPath struct {
	FromID string
	ToID   string
	D      string // SVG path data
}

// RenderResult is the output of one render pass.
type RenderResult struct {
	Milestones []PositionedMilestone
	Connectors []ConnectorPath
}

// BeginDragRequest contains parameters for starting a drag session.
type BeginDragRequest struct {
	MilestoneID string
	Mode        string // move, resize-start, resize-end
	PointerX    float64
}

// DragSession mirrors the machine's live session for hosts and renderers.
type DragSession struct {
	MilestoneID string
	Mode        string
	LiveStart   string // RFC3339
	LiveEnd     string
	Valid       bool
	Conflicts   []string
	Violations  []string
}

// CommitOutcome describes a committed drag.
type CommitOutcome struct {
	Milestone *Milestone
}
