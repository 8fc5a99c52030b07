package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/gantt/internal/app"
	"github.com/example/gantt/internal/config"
	"github.com/example/gantt/internal/core/timescale"
	"github.com/example/gantt/internal/ports/primary"
	"github.com/example/gantt/internal/wire"
)

var milestoneCmd = &cobra.Command{
	Use:   "milestone",
	Short: "Manage milestones (time-boxed bars on the timeline)",
	Long:  "Create, list, edit, link, and delete milestones in the project timeline",
}

var milestoneCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new milestone",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		title := args[0]
		project, _ := cmd.Flags().GetString("project")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		parent, _ := cmd.Flags().GetString("parent")
		depends, _ := cmd.Flags().GetString("depends")

		projectID, err := loadProject(ctx, project)
		if err != nil {
			return err
		}

		var deps []string
		if depends != "" {
			deps = strings.Split(depends, ",")
		}

		resp, err := wire.MilestoneService().CreateMilestone(ctx, primary.CreateMilestoneRequest{
			ProjectID:    projectID,
			Title:        title,
			Start:        start,
			End:          end,
			ParentID:     parent,
			Dependencies: deps,
		})
		if err != nil {
			return fmt.Errorf("failed to create milestone: %w", err)
		}

		m := resp.Milestone
		fmt.Printf("✓ Created milestone %s: %s\n", m.ID, m.Title)
		fmt.Printf("  %s → %s (%d days)\n", shortDate(m.Start), shortDate(m.End), m.DurationDays)
		if m.ParentID != "" {
			fmt.Printf("  Under: %s\n", m.ParentID)
		}
		if len(m.Dependencies) > 0 {
			fmt.Printf("  Depends on: %s\n", strings.Join(m.Dependencies, ", "))
		}
		return nil
	},
}

var milestoneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List milestones",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		project, _ := cmd.Flags().GetString("project")

		if _, err := loadProject(ctx, project); err != nil {
			return err
		}
		milestones, err := wire.MilestoneService().ListMilestones(ctx)
		if err != nil {
			return fmt.Errorf("failed to list milestones: %w", err)
		}
		if len(milestones) == 0 {
			fmt.Println("No milestones found.")
			return nil
		}

		fmt.Printf("Found %d milestone(s):\n\n", len(milestones))
		for _, m := range milestones {
			indent := strings.Repeat("  ", m.Indent)
			idStr := color.New(color.FgHiBlue).Sprint(m.ID)
			var markers []string
			if len(m.Dependencies) > 0 {
				markers = append(markers, color.New(color.FgCyan).Sprintf("after %s", strings.Join(m.Dependencies, ", ")))
			}
			if m.Completed > 0 {
				markers = append(markers, fmt.Sprintf("%d%%", m.Completed))
			}
			if !m.Editable {
				markers = append(markers, color.New(color.FgYellow).Sprint("locked"))
			}
			marker := ""
			if len(markers) > 0 {
				marker = " [" + strings.Join(markers, ", ") + "]"
			}
			fmt.Printf("%s%s  %s  %s → %s%s\n", indent, idStr, m.Title, shortDate(m.Start), shortDate(m.End), marker)
		}
		return nil
	},
}

var milestoneShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a milestone's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		project, _ := cmd.Flags().GetString("project")

		if _, err := loadProject(ctx, project); err != nil {
			return err
		}
		m, err := wire.MilestoneService().GetMilestone(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s: %s\n", m.ID, m.Title)
		fmt.Printf("  Schedule:   %s → %s (%d days)\n", shortDate(m.Start), shortDate(m.End), m.DurationDays)
		fmt.Printf("  Completed:  %d%%\n", m.Completed)
		if m.ParentID != "" {
			fmt.Printf("  Parent:     %s (depth %d)\n", m.ParentID, m.Indent)
		}
		if len(m.Dependencies) > 0 {
			fmt.Printf("  Depends on: %s\n", strings.Join(m.Dependencies, ", "))
		}
		fmt.Printf("  Flags:      editable=%v deletable=%v expanded=%v\n", m.Editable, m.Deletable, m.IsExpanded)
		return nil
	},
}

var milestoneUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a milestone's title, bounds or completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		project, _ := cmd.Flags().GetString("project")
		title, _ := cmd.Flags().GetString("title")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		completed, _ := cmd.Flags().GetInt("completed")

		if _, err := loadProject(ctx, project); err != nil {
			return err
		}
		err := wire.MilestoneService().UpdateMilestone(ctx, primary.UpdateMilestoneRequest{
			MilestoneID: args[0],
			Title:       title,
			Start:       start,
			End:         end,
			Completed:   completed,
		})
		if err != nil {
			return fmt.Errorf("failed to update milestone: %w", err)
		}
		fmt.Printf("✓ Updated milestone %s\n", args[0])
		return nil
	},
}

var milestoneMoveCmd = &cobra.Command{
	Use:   "move [id]",
	Short: "Reparent a milestone within the hierarchy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		project, _ := cmd.Flags().GetString("project")
		parent, _ := cmd.Flags().GetString("parent")

		if _, err := loadProject(ctx, project); err != nil {
			return err
		}
		if err := wire.MilestoneService().MoveMilestone(ctx, args[0], parent); err != nil {
			return fmt.Errorf("failed to move milestone: %w", err)
		}
		if parent == "" {
			fmt.Printf("✓ Moved %s to the top level\n", args[0])
		} else {
			fmt.Printf("✓ Moved %s under %s\n", args[0], parent)
		}
		return nil
	},
}

var milestoneDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a milestone",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		project, _ := cmd.Flags().GetString("project")
		force, _ := cmd.Flags().GetBool("force")

		if _, err := loadProject(ctx, project); err != nil {
			return err
		}
		if err := wire.MilestoneService().DeleteMilestone(ctx, args[0], force); err != nil {
			return fmt.Errorf("failed to delete milestone: %w", err)
		}
		fmt.Printf("✓ Deleted milestone %s\n", args[0])
		return nil
	},
}

var milestoneDependCmd = &cobra.Command{
	Use:   "depend [id] [depends-on-id]",
	Short: "Add a dependency edge between two milestones",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		project, _ := cmd.Flags().GetString("project")

		if _, err := loadProject(ctx, project); err != nil {
			return err
		}
		if err := wire.MilestoneService().AddDependency(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to add dependency: %w", err)
		}
		fmt.Printf("✓ %s now depends on %s\n", args[0], args[1])
		return nil
	},
}

var milestoneUndependCmd = &cobra.Command{
	Use:   "undepend [id] [depends-on-id]",
	Short: "Remove a dependency edge",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		project, _ := cmd.Flags().GetString("project")

		if _, err := loadProject(ctx, project); err != nil {
			return err
		}
		if err := wire.MilestoneService().RemoveDependency(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to remove dependency: %w", err)
		}
		fmt.Printf("✓ %s no longer depends on %s\n", args[0], args[1])
		return nil
	},
}

var milestoneShiftCmd = &cobra.Command{
	Use:   "shift [id]",
	Short: "Shift a milestone by whole days, keeping its duration",
	Long:  "Runs a move gesture through the drag state machine: the shift is validated against siblings and dependencies, and snaps back on conflict.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		return runGesture(cmd, args[0], "move", days)
	},
}

var milestoneResizeCmd = &cobra.Command{
	Use:   "resize [id]",
	Short: "Resize a milestone by whole days at one edge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		edge, _ := cmd.Flags().GetString("edge")
		mode := "resize-end"
		if edge == "start" {
			mode = "resize-start"
		}
		return runGesture(cmd, args[0], mode, days)
	},
}

// runGesture drives the drag/resize state machine for a whole-day delta:
// pointer-down, one pointer-move, pointer-up.
func runGesture(cmd *cobra.Command, milestoneID, mode string, days int) error {
	ctx := context.Background()
	project, _ := cmd.Flags().GetString("project")

	if _, err := loadProject(ctx, project); err != nil {
		return err
	}

	svc := wire.TimelineService()
	if err := svc.BeginDrag(ctx, primary.BeginDragRequest{
		MilestoneID: milestoneID,
		Mode:        mode,
		PointerX:    0,
	}); err != nil {
		return err
	}
	if err := svc.UpdateDrag(ctx, daysToPixels(days)); err != nil {
		_ = svc.CancelDrag(ctx)
		return err
	}

	outcome, err := svc.EndDrag(ctx)
	if err != nil {
		if errors.Is(err, app.ErrPersistenceFailure) {
			fmt.Println(color.New(color.FgRed).Sprint("✗ Save failed; milestone restored to its previous schedule. Retry when persistence is available."))
		}
		return err
	}

	m := outcome.Milestone
	fmt.Printf("✓ %s now runs %s → %s (%d days)\n", m.ID, shortDate(m.Start), shortDate(m.End), m.DurationDays)
	return nil
}

// daysToPixels converts a whole-day delta to a pointer distance at the
// configured scale. Coarser scales snap: a delta smaller than half a unit
// rounds away, same as a real pointer drag would.
func daysToPixels(days int) float64 {
	scale := timescale.ScaleDay
	if cwd, err := os.Getwd(); err == nil {
		if cfg, err := config.LoadConfig(cwd); err == nil {
			if parsed, err := timescale.ParseScale(cfg.TimeScale); err == nil {
				scale = parsed
			}
		}
	}
	units := float64(days) * float64(24*time.Hour) / float64(scale.Unit())
	return units * scale.DefaultPixelsPerUnit()
}

func shortDate(rfc3339 string) string {
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return rfc3339
	}
	return t.Format("2006-01-02")
}

// MilestoneCmd returns the milestone command group.
func MilestoneCmd() *cobra.Command {
	milestoneCreateCmd.Flags().String("project", "", "Project ID (overrides context)")
	milestoneCreateCmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	milestoneCreateCmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	milestoneCreateCmd.Flags().String("parent", "", "Parent milestone ID")
	milestoneCreateCmd.Flags().String("depends", "", "Comma-separated dependency IDs")
	_ = milestoneCreateCmd.MarkFlagRequired("start")
	_ = milestoneCreateCmd.MarkFlagRequired("end")

	milestoneListCmd.Flags().String("project", "", "Project ID (overrides context)")
	milestoneShowCmd.Flags().String("project", "", "Project ID (overrides context)")

	milestoneUpdateCmd.Flags().String("project", "", "Project ID (overrides context)")
	milestoneUpdateCmd.Flags().String("title", "", "New title")
	milestoneUpdateCmd.Flags().String("start", "", "New start date (YYYY-MM-DD)")
	milestoneUpdateCmd.Flags().String("end", "", "New end date (YYYY-MM-DD)")
	milestoneUpdateCmd.Flags().Int("completed", -1, "Completion percentage (0-100)")

	milestoneMoveCmd.Flags().String("project", "", "Project ID (overrides context)")
	milestoneMoveCmd.Flags().String("parent", "", "New parent milestone ID (empty for top level)")

	milestoneDeleteCmd.Flags().String("project", "", "Project ID (overrides context)")
	milestoneDeleteCmd.Flags().Bool("force", false, "Delete even when other milestones depend on it")

	milestoneDependCmd.Flags().String("project", "", "Project ID (overrides context)")
	milestoneUndependCmd.Flags().String("project", "", "Project ID (overrides context)")

	milestoneShiftCmd.Flags().String("project", "", "Project ID (overrides context)")
	milestoneShiftCmd.Flags().Int("days", 0, "Whole days to shift (negative shifts earlier)")
	_ = milestoneShiftCmd.MarkFlagRequired("days")

	milestoneResizeCmd.Flags().String("project", "", "Project ID (overrides context)")
	milestoneResizeCmd.Flags().Int("days", 0, "Whole days to grow (negative shrinks)")
	milestoneResizeCmd.Flags().String("edge", "end", "Which edge to resize: start or end")
	_ = milestoneResizeCmd.MarkFlagRequired("days")

	milestoneCmd.AddCommand(milestoneCreateCmd)
	milestoneCmd.AddCommand(milestoneListCmd)
	milestoneCmd.AddCommand(milestoneShowCmd)
	milestoneCmd.AddCommand(milestoneUpdateCmd)
	milestoneCmd.AddCommand(milestoneMoveCmd)
	milestoneCmd.AddCommand(milestoneDeleteCmd)
	milestoneCmd.AddCommand(milestoneDependCmd)
	milestoneCmd.AddCommand(milestoneUndependCmd)
	milestoneCmd.AddCommand(milestoneShiftCmd)
	milestoneCmd.AddCommand(milestoneResizeCmd)
	return milestoneCmd
}
