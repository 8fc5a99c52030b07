package app

import (
	"context"
	"fmt"

	"github.com/example/gantt/internal/core/schedule"
	"github.com/example/gantt/internal/models"
	"github.com/example/gantt/internal/ports/primary"
	"github.com/example/gantt/internal/ports/secondary"
)

// MilestoneServiceImpl implements the MilestoneService interface.
type MilestoneServiceImpl struct {
	store         *schedule.Store
	milestoneRepo secondary.MilestoneRepository
	logWriter     secondary.LogWriter
}

// NewMilestoneService creates a new MilestoneService with injected dependencies.
func NewMilestoneService(
	store *schedule.Store,
	milestoneRepo secondary.MilestoneRepository,
	logWriter secondary.LogWriter,
) *MilestoneServiceImpl {
	return &MilestoneServiceImpl{
		store:         store,
		milestoneRepo: milestoneRepo,
		logWriter:     logWriter,
	}
}

// LoadProject loads a project's milestones from persistence into the store.
func (s *MilestoneServiceImpl) LoadProject(ctx context.Context, projectID string) error {
	exists, err := s.milestoneRepo.ProjectExists(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to validate project: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}

	records, err := s.milestoneRepo.LoadMilestones(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to load milestones: %w", err)
	}

	milestones := make([]*models.Milestone, len(records))
	for i, r := range records {
		m, err := recordToMilestone(r)
		if err != nil {
			return err
		}
		milestones[i] = m
	}
	return s.store.Load(milestones)
}

// CreateMilestone creates a new milestone.
func (s *MilestoneServiceImpl) CreateMilestone(ctx context.Context, req primary.CreateMilestoneRequest) (*primary.CreateMilestoneResponse, error) {
	exists, err := s.milestoneRepo.ProjectExists(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate project: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, req.ProjectID)
	}

	start, err := parseWhen(req.Start)
	if err != nil {
		return nil, err
	}
	end, err := parseWhen(req.End)
	if err != nil {
		return nil, err
	}

	nextID, err := s.milestoneRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate milestone ID: %w", err)
	}

	m := &models.Milestone{
		ID:           nextID,
		ProjectID:    req.ProjectID,
		Title:        req.Title,
		Start:        start,
		End:          end,
		ParentID:     req.ParentID,
		Dependencies: append([]string(nil), req.Dependencies...),
		Completed:    req.Completed,
		Editable:     true,
		Deletable:    true,
		IsExpanded:   true,
	}

	// Store first: structural invariants are validated before anything is
	// persisted.
	if err := s.store.Upsert(m); err != nil {
		return nil, err
	}

	created, err := s.store.Get(nextID)
	if err != nil {
		return nil, err
	}
	if err := s.milestoneRepo.Create(ctx, milestoneToRecord(created)); err != nil {
		_ = s.store.Remove(nextID, true)
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	_ = s.logWriter.LogCreate(ctx, "milestone", nextID)

	return &primary.CreateMilestoneResponse{
		MilestoneID: nextID,
		Milestone:   milestoneToDTO(created),
	}, nil
}

// GetMilestone retrieves a milestone by ID.
func (s *MilestoneServiceImpl) GetMilestone(ctx context.Context, milestoneID string) (*primary.Milestone, error) {
	m, err := s.store.Get(milestoneID)
	if err != nil {
		return nil, err
	}
	return milestoneToDTO(m), nil
}

// ListMilestones lists the loaded milestones in timeline order.
func (s *MilestoneServiceImpl) ListMilestones(ctx context.Context) ([]*primary.Milestone, error) {
	all := s.store.All()
	out := make([]*primary.Milestone, len(all))
	for i, m := range all {
		out[i] = milestoneToDTO(m)
	}
	return out, nil
}

// UpdateMilestone updates a milestone's title, bounds or completion.
func (s *MilestoneServiceImpl) UpdateMilestone(ctx context.Context, req primary.UpdateMilestoneRequest) error {
	m, err := s.store.Get(req.MilestoneID)
	if err != nil {
		return err
	}
	before := m.Clone()

	if req.Title != "" {
		m.Title = req.Title
	}
	if req.Start != "" {
		start, err := parseWhen(req.Start)
		if err != nil {
			return err
		}
		m.Start = start
	}
	if req.End != "" {
		end, err := parseWhen(req.End)
		if err != nil {
			return err
		}
		m.End = end
	}
	if req.Completed >= 0 {
		if req.Completed > 100 {
			return fmt.Errorf("completed must be between 0 and 100, got %d", req.Completed)
		}
		m.Completed = req.Completed
	}

	return s.commitUpdate(ctx, before, m)
}

// MoveMilestone reparents a milestone within the forest.
func (s *MilestoneServiceImpl) MoveMilestone(ctx context.Context, milestoneID, newParentID string) error {
	m, err := s.store.Get(milestoneID)
	if err != nil {
		return err
	}
	before := m.Clone()
	m.ParentID = newParentID
	if err := s.commitUpdate(ctx, before, m); err != nil {
		return err
	}
	_ = s.logWriter.LogUpdate(ctx, "milestone", milestoneID, "parent_id", before.ParentID, newParentID)
	return nil
}

// AddDependency adds a dependency edge: dependsOnID must temporally precede
// milestoneID.
func (s *MilestoneServiceImpl) AddDependency(ctx context.Context, milestoneID, dependsOnID string) error {
	if _, err := s.store.Get(dependsOnID); err != nil {
		return err
	}
	m, err := s.store.Get(milestoneID)
	if err != nil {
		return err
	}
	if m.DependsOn(dependsOnID) {
		return fmt.Errorf("milestone %s already depends on %s", milestoneID, dependsOnID)
	}
	before := m.Clone()
	m.Dependencies = append(m.Dependencies, dependsOnID)
	if err := s.commitUpdate(ctx, before, m); err != nil {
		return err
	}
	_ = s.logWriter.LogUpdate(ctx, "milestone", milestoneID, "dependencies", "", dependsOnID)
	return nil
}

// RemoveDependency removes a dependency edge.
func (s *MilestoneServiceImpl) RemoveDependency(ctx context.Context, milestoneID, dependsOnID string) error {
	m, err := s.store.Get(milestoneID)
	if err != nil {
		return err
	}
	if !m.DependsOn(dependsOnID) {
		return fmt.Errorf("milestone %s does not depend on %s", milestoneID, dependsOnID)
	}
	before := m.Clone()
	kept := m.Dependencies[:0]
	for _, d := range m.Dependencies {
		if d != dependsOnID {
			kept = append(kept, d)
		}
	}
	m.Dependencies = kept
	if err := s.commitUpdate(ctx, before, m); err != nil {
		return err
	}
	_ = s.logWriter.LogUpdate(ctx, "milestone", milestoneID, "dependencies", dependsOnID, "")
	return nil
}

// DeleteMilestone deletes a milestone honoring its Deletable flag. Without
// force the delete fails while other milestones depend on it.
func (s *MilestoneServiceImpl) DeleteMilestone(ctx context.Context, milestoneID string, force bool) error {
	m, err := s.store.Get(milestoneID)
	if err != nil {
		return err
	}
	if !m.Deletable {
		return fmt.Errorf("%w: %s", ErrNotDeletable, milestoneID)
	}

	dependents := s.store.Dependents(milestoneID)
	children := s.store.Children(milestoneID)
	if err := s.store.Remove(milestoneID, force); err != nil {
		return err
	}
	if err := s.milestoneRepo.Delete(ctx, milestoneID); err != nil {
		// Restore the store entry so memory and persistence stay aligned.
		_ = s.store.Upsert(m)
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	// Removal reparented the children to the deleted milestone's parent and
	// rewrote the dependents' dependency sets; persist both, or the next load
	// would rebuild a different hierarchy than this session is showing.
	for _, child := range children {
		if c, err := s.store.Get(child.ID); err == nil {
			_ = s.milestoneRepo.Save(ctx, milestoneToRecord(c))
		}
	}
	for _, depID := range dependents {
		if dep, err := s.store.Get(depID); err == nil {
			_ = s.milestoneRepo.Save(ctx, milestoneToRecord(dep))
		}
	}

	_ = s.logWriter.LogDelete(ctx, "milestone", milestoneID)
	return nil
}

// ToggleExpanded flips whether a milestone's children are visible. Layout
// only; scheduling is unaffected.
func (s *MilestoneServiceImpl) ToggleExpanded(ctx context.Context, milestoneID string) error {
	m, err := s.store.Get(milestoneID)
	if err != nil {
		return err
	}
	before := m.Clone()
	m.IsExpanded = !m.IsExpanded
	return s.commitUpdate(ctx, before, m)
}

// commitUpdate applies an edit to the store, persists it, and rolls the store
// back when the save collaborator fails.
func (s *MilestoneServiceImpl) commitUpdate(ctx context.Context, before, after *models.Milestone) error {
	if err := s.store.Upsert(after); err != nil {
		return err
	}
	stored, err := s.store.Get(after.ID)
	if err != nil {
		return err
	}
	if err := s.milestoneRepo.Save(ctx, milestoneToRecord(stored)); err != nil {
		_ = s.store.Upsert(before)
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	return nil
}

// Ensure MilestoneServiceImpl implements the interface
var _ primary.MilestoneService = (*MilestoneServiceImpl)(nil)
