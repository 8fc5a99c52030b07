package app

import (
	"fmt"
	"time"

	"github.com/example/gantt/internal/models"
	"github.com/example/gantt/internal/ports/primary"
	"github.com/example/gantt/internal/ports/secondary"
)

// parseWhen accepts a plain date or a full RFC3339 timestamp.
func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time %q: %w", s, err)
	}
	return t, nil
}

func recordToMilestone(r *secondary.MilestoneRecord) (*models.Milestone, error) {
	start, err := parseWhen(r.Start)
	if err != nil {
		return nil, fmt.Errorf("milestone %s: %w", r.ID, err)
	}
	end, err := parseWhen(r.End)
	if err != nil {
		return nil, fmt.Errorf("milestone %s: %w", r.ID, err)
	}
	return &models.Milestone{
		ID:           r.ID,
		ProjectID:    r.ProjectID,
		Title:        r.Title,
		Start:        start,
		End:          end,
		DurationDays: r.DurationDays,
		ParentID:     r.ParentID,
		Indent:       r.Indent,
		Dependencies: append([]string(nil), r.Dependencies...),
		Completed:    r.Completed,
		Editable:     r.Editable,
		Deletable:    r.Deletable,
		IsExpanded:   r.IsExpanded,
	}, nil
}

func milestoneToRecord(m *models.Milestone) *secondary.MilestoneRecord {
	return &secondary.MilestoneRecord{
		ID:           m.ID,
		ProjectID:    m.ProjectID,
		ParentID:     m.ParentID,
		Title:        m.Title,
		Start:        m.Start.Format(time.RFC3339),
		End:          m.End.Format(time.RFC3339),
		DurationDays: m.DurationDays,
		Indent:       m.Indent,
		Dependencies: append([]string(nil), m.Dependencies...),
		Completed:    m.Completed,
		Editable:     m.Editable,
		Deletable:    m.Deletable,
		IsExpanded:   m.IsExpanded,
	}
}

func milestoneToDTO(m *models.Milestone) *primary.Milestone {
	return &primary.Milestone{
		ID:           m.ID,
		ProjectID:    m.ProjectID,
		Title:        m.Title,
		Start:        m.Start.Format(time.RFC3339),
		End:          m.End.Format(time.RFC3339),
		DurationDays: m.DurationDays,
		ParentID:     m.ParentID,
		Indent:       m.Indent,
		Dependencies: append([]string(nil), m.Dependencies...),
		Completed:    m.Completed,
		Editable:     m.Editable,
		Deletable:    m.Deletable,
		IsExpanded:   m.IsExpanded,
	}
}
