package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/gantt/internal/core/connector"
	"github.com/example/gantt/internal/core/drag"
	"github.com/example/gantt/internal/core/schedule"
	"github.com/example/gantt/internal/core/timescale"
	"github.com/example/gantt/internal/models"
	"github.com/example/gantt/internal/ports/primary"
	"github.com/example/gantt/internal/ports/secondary"
)

// Default layout dimensions in pixels.
const (
	DefaultRowHeight = 40.0
	BarHeight        = 24.0
)

// TimelineServiceImpl implements the TimelineService interface: the layout
// orchestrator plus the drag/resize entry points. Single-threaded by design;
// the host serializes calls through its event loop.
type TimelineServiceImpl struct {
	store         *schedule.Store
	milestoneRepo secondary.MilestoneRepository
	mapper        timescale.Mapper
	machine       *drag.Machine
	minDuration   time.Duration
	originSet     bool
}

// NewTimelineService creates a new TimelineService with injected dependencies.
// minDuration zero falls back to one day.
func NewTimelineService(
	store *schedule.Store,
	milestoneRepo secondary.MilestoneRepository,
	scale timescale.Scale,
	minDuration time.Duration,
) *TimelineServiceImpl {
	if minDuration <= 0 {
		minDuration = 24 * time.Hour
	}
	mapper := timescale.NewMapper(scale, time.Time{})
	return &TimelineServiceImpl{
		store:         store,
		milestoneRepo: milestoneRepo,
		mapper:        mapper,
		machine:       drag.NewMachine(store, mapper, minDuration),
		minDuration:   minDuration,
	}
}

// Mapper exposes the current geometry mapper, mainly for hosts that need to
// translate their own coordinates.
func (s *TimelineServiceImpl) Mapper() timescale.Mapper {
	s.ensureOrigin()
	return s.mapper
}

// ensureOrigin anchors the mapper at the earliest milestone start once the
// store has content. The anchor never moves afterwards, so pixel positions
// stay stable across renders at a fixed scale.
func (s *TimelineServiceImpl) ensureOrigin() {
	if s.originSet {
		return
	}
	all := s.store.All()
	if len(all) == 0 {
		return
	}
	s.mapper.Origin = all[0].Start
	s.machine.SetMapper(s.mapper)
	s.originSet = true
}

// Render performs one layout pass: resolve visible milestones (collapsed
// ancestors hide their subtrees), map them to pixel rectangles, overlay the
// live drag session, and route dependency connectors between rendered bars.
func (s *TimelineServiceImpl) Render(ctx context.Context, req primary.RenderRequest) (*primary.RenderResult, error) {
	s.ensureOrigin()

	vp := req.Viewport
	if vp.RowHeight <= 0 {
		vp.RowHeight = DefaultRowHeight
	}

	session := s.machine.Active()
	visible := s.visibleMilestones()

	result := &primary.RenderResult{}
	rects := make(map[string]connector.Rect)
	var edges []connector.Edge

	for row, m := range visible {
		start, end := m.Start, m.End
		live := false
		valid := true
		if session != nil && session.MilestoneID == m.ID {
			start, end = session.LiveStart, session.LiveEnd
			live = true
			valid = session.Valid
		}

		x := s.mapper.ToX(start) - vp.OffsetX
		w := s.mapper.Width(start, end)
		y := float64(row)*vp.RowHeight + (vp.RowHeight-BarHeight)/2

		// Scrolled out of the viewport: not rendered, and connectors that
		// touch it are omitted rather than drawn to a fallback position.
		if vp.Width > 0 && (x+w < 0 || x > vp.Width) {
			continue
		}

		rects[m.ID] = connector.Rect{X: x, Y: y, Width: w, Height: BarHeight}
		for _, depID := range m.Dependencies {
			edges = append(edges, connector.Edge{FromID: depID, ToID: m.ID})
		}

		result.Milestones = append(result.Milestones, primary.PositionedMilestone{
			Milestone: milestoneToDTO(m),
			X:         x,
			Y:         y,
			Width:     w,
			Height:    BarHeight,
			Live:      live,
			Valid:     valid,
		})
	}

	for _, p := range connector.Route(edges, rects) {
		result.Connectors = append(result.Connectors, primary.ConnectorPath{
			FromID: p.FromID,
			ToID:   p.ToID,
			D:      p.SVG(),
		})
	}
	return result, nil
}

// visibleMilestones walks the forest depth-first, skipping the subtrees of
// collapsed milestones. The returned order is the display row order.
func (s *TimelineServiceImpl) visibleMilestones() []*models.Milestone {
	var out []*models.Milestone
	var walk func(parentID string)
	walk = func(parentID string) {
		for _, m := range s.store.Children(parentID) {
			out = append(out, m)
			if m.IsExpanded {
				walk(m.ID)
			}
		}
	}
	walk("")
	return out
}

// BeginDrag starts a drag or resize session.
func (s *TimelineServiceImpl) BeginDrag(ctx context.Context, req primary.BeginDragRequest) error {
	s.ensureOrigin()
	mode, err := drag.ParseMode(req.Mode)
	if err != nil {
		return err
	}
	return s.machine.Begin(req.MilestoneID, mode, req.PointerX)
}

// UpdateDrag feeds a pointer position into the active session.
func (s *TimelineServiceImpl) UpdateDrag(ctx context.Context, pointerX float64) error {
	return s.machine.Update(pointerX)
}

// EndDrag resolves the active session. A valid session commits to the store
// and persists through the milestone repository; a save failure rolls the
// store entry back to its pre-drag bounds and surfaces a retryable error.
func (s *TimelineServiceImpl) EndDrag(ctx context.Context) (*primary.CommitOutcome, error) {
	result, err := s.machine.End()
	if err != nil {
		return nil, err
	}

	if err := s.milestoneRepo.Save(ctx, milestoneToRecord(result.Milestone)); err != nil {
		if rollback, gerr := s.store.Get(result.Milestone.ID); gerr == nil {
			rollback.Start = result.OriginStart
			rollback.End = result.OriginEnd
			_ = s.store.Upsert(rollback)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	return &primary.CommitOutcome{Milestone: milestoneToDTO(result.Milestone)}, nil
}

// CancelDrag discards the active session without touching the store.
func (s *TimelineServiceImpl) CancelDrag(ctx context.Context) error {
	return s.machine.Cancel()
}

// ActiveSession returns the live session, or nil when idle.
func (s *TimelineServiceImpl) ActiveSession(ctx context.Context) (*primary.DragSession, error) {
	session := s.machine.Active()
	if session == nil {
		return nil, nil
	}
	return &primary.DragSession{
		MilestoneID: session.MilestoneID,
		Mode:        string(session.Mode),
		LiveStart:   session.LiveStart.Format(time.RFC3339),
		LiveEnd:     session.LiveEnd.Format(time.RFC3339),
		Valid:       session.Valid,
		Conflicts:   session.Conflicts,
		Violations:  session.Violations,
	}, nil
}

// SetScale changes the time scale. All pixel positions computed at the old
// scale are invalid afterwards; an active drag session is cancelled.
func (s *TimelineServiceImpl) SetScale(ctx context.Context, scale string) error {
	parsed, err := timescale.ParseScale(scale)
	if err != nil {
		return err
	}
	s.mapper = timescale.Mapper{
		Scale:         parsed,
		PixelsPerUnit: parsed.DefaultPixelsPerUnit(),
		Origin:        s.mapper.Origin,
	}
	s.machine.SetMapper(s.mapper)
	return nil
}

// Ensure TimelineServiceImpl implements the interface
var _ primary.TimelineService = (*TimelineServiceImpl)(nil)
