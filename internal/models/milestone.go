// Package models contains domain types for gantt entities.
// SQL persistence lives in internal/adapters/sqlite/*.go
package models

import "time"

// Milestone represents a scheduled, time-boxed unit of work on the timeline.
// This is the domain type used within the scheduling core.
// For persistence, use the repository interfaces in ports/secondary.
type Milestone struct {
	ID           string
	ProjectID    string
	Title        string
	Start        time.Time
	End          time.Time
	DurationDays int
	ParentID     string // empty for root milestones
	Indent       int    // cached forest depth, maintained by the store
	Dependencies []string
	Completed    int // percentage 0-100
	Editable     bool
	Deletable    bool
	IsExpanded   bool
}

// Clone returns a deep copy of the milestone.
func (m *Milestone) Clone() *Milestone {
	c := *m
	if m.Dependencies != nil {
		c.Dependencies = make([]string, len(m.Dependencies))
		copy(c.Dependencies, m.Dependencies)
	}
	return &c
}

// DependsOn reports whether id is a direct dependency of the milestone.
func (m *Milestone) DependsOn(id string) bool {
	for _, d := range m.Dependencies {
		if d == id {
			return true
		}
	}
	return false
}

// Project status constants
const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)
