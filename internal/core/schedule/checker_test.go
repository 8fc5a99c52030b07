package schedule_test

import (
	"testing"

	"github.com/example/gantt/internal/core/schedule"
	"github.com/example/gantt/internal/models"
)

func TestCheckOverlap_SiblingsConflict(t *testing.T) {
	// A=[day1,day5], B=[day4,day8] under the same parent: conflict.
	a := milestone("MS-001", 1, 5)
	b := milestone("MS-002", 4, 8)

	conflicts := schedule.CheckOverlap(a, []*models.Milestone{b})
	if len(conflicts) != 1 || conflicts[0] != "MS-002" {
		t.Errorf("expected [MS-002], got %v", conflicts)
	}
}

func TestCheckOverlap_DifferentParentsIgnored(t *testing.T) {
	// Same intervals under different parents: independent tracks, no conflict.
	a := milestone("MS-001", 1, 5)
	a.ParentID = "MS-010"
	b := milestone("MS-002", 4, 8)
	b.ParentID = "MS-011"

	if conflicts := schedule.CheckOverlap(a, []*models.Milestone{b}); len(conflicts) != 0 {
		t.Errorf("expected no conflicts, got %v", conflicts)
	}
}

func TestCheckOverlap_TouchingIsNotConflict(t *testing.T) {
	// Sharing a single instant is allowed: [1,5] and [5,8].
	a := milestone("MS-001", 1, 5)
	b := milestone("MS-002", 5, 8)

	if conflicts := schedule.CheckOverlap(a, []*models.Milestone{b}); len(conflicts) != 0 {
		t.Errorf("expected no conflicts for touching intervals, got %v", conflicts)
	}
}

func TestCheckOverlap_IgnoresSelf(t *testing.T) {
	a := milestone("MS-001", 1, 5)
	if conflicts := schedule.CheckOverlap(a, []*models.Milestone{a}); len(conflicts) != 0 {
		t.Errorf("a milestone must not conflict with itself, got %v", conflicts)
	}
}

func TestCheckDependencyOrder(t *testing.T) {
	dep := milestone("MS-001", 1, 5)
	late := milestone("MS-002", 1, 10)

	lookup := func(id string) (*models.Milestone, bool) {
		switch id {
		case "MS-001":
			return dep, true
		case "MS-002":
			return late, true
		}
		return nil, false
	}

	// Candidate starts at day 5: dependency ending day 5 is satisfied,
	// dependency ending day 10 is not.
	candidate := milestone("MS-003", 5, 8)
	candidate.Dependencies = []string{"MS-001", "MS-002"}

	violations := schedule.CheckDependencyOrder(candidate, lookup)
	if len(violations) != 1 || violations[0] != "MS-002" {
		t.Errorf("expected [MS-002], got %v", violations)
	}
}

func TestCheckDependencyOrder_UnresolvedSkipped(t *testing.T) {
	candidate := milestone("MS-003", 5, 8)
	candidate.Dependencies = []string{"MS-404"}

	violations := schedule.CheckDependencyOrder(candidate, func(string) (*models.Milestone, bool) {
		return nil, false
	})
	if len(violations) != 0 {
		t.Errorf("unresolved dependencies must be skipped, got %v", violations)
	}
}
