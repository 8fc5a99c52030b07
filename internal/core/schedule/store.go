// Package schedule contains the in-memory milestone collection and the pure
// constraint checks used during drag tracking and at commit.
//
// Milestones live in one indexed collection; parent and dependency
// relationships are plain id references validated on every structural
// mutation (arena + index pattern, no embedded back-pointers).
package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/example/gantt/internal/models"
)

// Store is the in-memory ordered collection of milestones for one project.
// All mutations are atomic: a rejected Upsert or Remove leaves the store
// untouched.
type Store struct {
	milestones map[string]*models.Milestone
	dependents map[string]map[string]struct{} // dependency id -> dependent ids
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		milestones: make(map[string]*models.Milestone),
		dependents: make(map[string]map[string]struct{}),
	}
}

// Load replaces the store contents with the given milestones. Order
// insensitive: a child may arrive before its parent (persistence orders by
// start, and nothing ties a child's bounds to its parent's), so the whole set
// is placed first and the structural invariants are validated against the
// complete forest. The store is untouched when validation fails.
func (s *Store) Load(milestones []*models.Milestone) error {
	loaded := NewStore()
	for _, m := range milestones {
		if m.ID == "" {
			return fmt.Errorf("failed to load milestone: id must not be empty")
		}
		if m.End.Before(m.Start) {
			return fmt.Errorf("failed to load milestone %s: %w: start %s is after end %s",
				m.ID, ErrInvalidInterval, m.Start.Format("2006-01-02"), m.End.Format("2006-01-02"))
		}
		stored := m.Clone()
		stored.DurationDays = wholeDays(stored.Start, stored.End)
		loaded.milestones[stored.ID] = stored
	}

	for _, m := range loaded.milestones {
		if err := loaded.checkParentEdge(m); err != nil {
			return fmt.Errorf("failed to load milestone %s: %w", m.ID, err)
		}
		if err := loaded.checkDependencyEdges(m); err != nil {
			return fmt.Errorf("failed to load milestone %s: %w", m.ID, err)
		}
		for _, d := range m.Dependencies {
			loaded.indexDependent(d, m.ID)
		}
	}
	for _, root := range loaded.Children("") {
		loaded.recomputeIndent(root.ID)
	}

	s.milestones = loaded.milestones
	s.dependents = loaded.dependents
	return nil
}

// Len returns the number of milestones in the store.
func (s *Store) Len() int {
	return len(s.milestones)
}

// Get retrieves a milestone by id. The returned value is a copy; mutations
// only enter the store through Upsert.
func (s *Store) Get(id string) (*models.Milestone, error) {
	m, ok := s.milestones[id]
	if !ok {
		return nil, notFoundError(id)
	}
	return m.Clone(), nil
}

// All returns every milestone ordered by start ascending, id as tiebreak.
func (s *Store) All() []*models.Milestone {
	out := make([]*models.Milestone, 0, len(s.milestones))
	for _, m := range s.milestones {
		out = append(out, m.Clone())
	}
	sortMilestones(out)
	return out
}

// Children returns the direct children of parentID ordered by start
// ascending, id as tiebreak. parentID "" returns the root milestones.
func (s *Store) Children(parentID string) []*models.Milestone {
	var out []*models.Milestone
	for _, m := range s.milestones {
		if m.ParentID == parentID {
			out = append(out, m.Clone())
		}
	}
	sortMilestones(out)
	return out
}

// Siblings returns the milestones sharing a parent with id, excluding id
// itself. Used by the overlap check.
func (s *Store) Siblings(id string) []*models.Milestone {
	m, ok := s.milestones[id]
	if !ok {
		return nil
	}
	var out []*models.Milestone
	for _, other := range s.milestones {
		if other.ID != id && other.ParentID == m.ParentID {
			out = append(out, other.Clone())
		}
	}
	sortMilestones(out)
	return out
}

// Dependents returns the ids of milestones whose dependencies contain id.
// The reverse index is maintained incrementally on every mutation.
func (s *Store) Dependents(id string) []string {
	set, ok := s.dependents[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Upsert inserts or replaces a milestone after validating the structural
// invariants: start <= end, no parent cycle, no dependency cycle. The
// duration and indent caches are recomputed for the affected subtree.
func (s *Store) Upsert(m *models.Milestone) error {
	if m.ID == "" {
		return fmt.Errorf("milestone id must not be empty")
	}
	if m.End.Before(m.Start) {
		return fmt.Errorf("%w: %s start %s is after end %s", ErrInvalidInterval, m.ID, m.Start.Format("2006-01-02"), m.End.Format("2006-01-02"))
	}

	if err := s.checkParentEdge(m); err != nil {
		return err
	}
	if err := s.checkDependencyEdges(m); err != nil {
		return err
	}

	// Validation passed; mutate.
	stored := m.Clone()
	stored.DurationDays = wholeDays(stored.Start, stored.End)

	if prev, ok := s.milestones[m.ID]; ok {
		for _, d := range prev.Dependencies {
			s.unindexDependent(d, m.ID)
		}
	}
	for _, d := range stored.Dependencies {
		s.indexDependent(d, stored.ID)
	}

	s.milestones[stored.ID] = stored
	s.recomputeIndent(stored.ID)
	return nil
}

// Remove deletes a milestone. Without force it fails with ErrHasDependents
// when other milestones depend on id. A forced removal drops id from every
// dependent's dependency set and reparents children to the removed
// milestone's parent.
func (s *Store) Remove(id string, force bool) error {
	m, ok := s.milestones[id]
	if !ok {
		return notFoundError(id)
	}

	deps := s.Dependents(id)
	if len(deps) > 0 && !force {
		return fmt.Errorf("%w: %s is required by %s", ErrHasDependents, id, strings.Join(deps, ", "))
	}

	for _, depID := range deps {
		dependent := s.milestones[depID]
		kept := dependent.Dependencies[:0]
		for _, d := range dependent.Dependencies {
			if d != id {
				kept = append(kept, d)
			}
		}
		dependent.Dependencies = kept
		s.unindexDependent(id, depID)
	}
	delete(s.dependents, id)
	for _, d := range m.Dependencies {
		s.unindexDependent(d, id)
	}

	// Reparent children so the forest stays connected.
	for _, child := range s.milestones {
		if child.ParentID == id {
			child.ParentID = m.ParentID
		}
	}
	delete(s.milestones, id)
	for _, child := range s.Children(m.ParentID) {
		s.recomputeIndent(child.ID)
	}
	return nil
}

// checkParentEdge validates the parent reference: the parent must exist and
// must not be reachable from m through the parent chain.
func (s *Store) checkParentEdge(m *models.Milestone) error {
	if m.ParentID == "" {
		return nil
	}
	if m.ParentID == m.ID {
		return cycleError([]string{m.ID, m.ID})
	}
	if _, ok := s.milestones[m.ParentID]; !ok {
		return notFoundError(m.ParentID)
	}
	path := []string{m.ID}
	seen := map[string]bool{m.ID: true}
	cur := m.ParentID
	for cur != "" {
		path = append(path, cur)
		if cur == m.ID {
			return cycleError(path)
		}
		// A loop further up the chain is reported when its own member is
		// checked; just stop walking here.
		if seen[cur] {
			break
		}
		seen[cur] = true
		parent, ok := s.milestones[cur]
		if !ok {
			break
		}
		cur = parent.ParentID
	}
	return nil
}

// checkDependencyEdges validates that none of m's dependencies can reach m
// through the dependency graph.
func (s *Store) checkDependencyEdges(m *models.Milestone) error {
	for _, d := range m.Dependencies {
		if d == m.ID {
			return cycleError([]string{m.ID, m.ID})
		}
		if path := s.dependencyPath(d, m.ID); path != nil {
			return cycleError(append([]string{m.ID}, path...))
		}
	}
	return nil
}

// dependencyPath returns a deterministic path from -> ... -> target over
// dependency edges, or nil if target is unreachable. One stable witness, not
// all cycles.
func (s *Store) dependencyPath(from, target string) []string {
	var path []string
	seen := make(map[string]bool)

	var dfs func(id string) bool
	dfs = func(id string) bool {
		if seen[id] {
			return false
		}
		seen[id] = true
		path = append(path, id)
		if id == target {
			return true
		}
		if m, ok := s.milestones[id]; ok {
			deps := append([]string(nil), m.Dependencies...)
			sort.Strings(deps)
			for _, d := range deps {
				if dfs(d) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		return false
	}

	if dfs(from) {
		return path
	}
	return nil
}

// recomputeIndent refreshes the indent cache for id and its whole subtree.
func (s *Store) recomputeIndent(id string) {
	m, ok := s.milestones[id]
	if !ok {
		return
	}
	m.Indent = s.depth(id)
	for _, child := range s.milestones {
		if child.ParentID == id {
			s.recomputeIndent(child.ID)
		}
	}
}

// depth returns the true parent-chain length for id.
func (s *Store) depth(id string) int {
	d := 0
	cur := s.milestones[id]
	for cur != nil && cur.ParentID != "" {
		d++
		cur = s.milestones[cur.ParentID]
	}
	return d
}

func (s *Store) indexDependent(depID, dependentID string) {
	set, ok := s.dependents[depID]
	if !ok {
		set = make(map[string]struct{})
		s.dependents[depID] = set
	}
	set[dependentID] = struct{}{}
}

func (s *Store) unindexDependent(depID, dependentID string) {
	if set, ok := s.dependents[depID]; ok {
		delete(set, dependentID)
		if len(set) == 0 {
			delete(s.dependents, depID)
		}
	}
}

func sortMilestones(ms []*models.Milestone) {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].Start.Equal(ms[j].Start) {
			return ms[i].ID < ms[j].ID
		}
		return ms[i].Start.Before(ms[j].Start)
	})
}

func wholeDays(start, end time.Time) int {
	return int(end.Sub(start) / (24 * time.Hour))
}
