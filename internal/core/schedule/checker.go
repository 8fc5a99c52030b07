package schedule

import (
	"sort"

	"github.com/example/gantt/internal/models"
)

// CheckOverlap returns the ids of siblings whose interval intersects the
// candidate's on more than an instant. Only milestones sharing the
// candidate's parent count: hierarchical lanes are independent tracks.
// Pure; safe to call speculatively on every pointer move.
func CheckOverlap(candidate *models.Milestone, siblings []*models.Milestone) []string {
	var conflicts []string
	for _, sib := range siblings {
		if sib.ID == candidate.ID || sib.ParentID != candidate.ParentID {
			continue
		}
		if candidate.Start.Before(sib.End) && sib.Start.Before(candidate.End) {
			conflicts = append(conflicts, sib.ID)
		}
	}
	sort.Strings(conflicts)
	return conflicts
}

// CheckDependencyOrder returns the ids of the candidate's dependencies whose
// end falls after the candidate's start. Violations are reported, not
// auto-corrected. Dependencies that do not resolve are skipped.
func CheckDependencyOrder(candidate *models.Milestone, lookup func(id string) (*models.Milestone, bool)) []string {
	var violations []string
	for _, depID := range candidate.Dependencies {
		dep, ok := lookup(depID)
		if !ok {
			continue
		}
		if dep.End.After(candidate.Start) {
			violations = append(violations, depID)
		}
	}
	sort.Strings(violations)
	return violations
}
