package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	svgadapter "github.com/example/gantt/internal/adapters/svg"
	"github.com/example/gantt/internal/config"
	"github.com/example/gantt/internal/core/timescale"
	"github.com/example/gantt/internal/ports/primary"
	"github.com/example/gantt/internal/wire"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Render and configure the project timeline",
}

var timelineRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the timeline to an SVG file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		project, _ := cmd.Flags().GetString("project")
		out, _ := cmd.Flags().GetString("out")
		width, _ := cmd.Flags().GetFloat64("width")
		offset, _ := cmd.Flags().GetFloat64("offset")
		themePath, _ := cmd.Flags().GetString("theme")

		if _, err := loadProject(ctx, project); err != nil {
			return err
		}

		result, err := wire.TimelineService().Render(ctx, primary.RenderRequest{
			Viewport: primary.Viewport{OffsetX: offset, Width: width},
		})
		if err != nil {
			return fmt.Errorf("failed to render timeline: %w", err)
		}

		theme := svgadapter.DefaultTheme()
		if themePath != "" {
			theme, err = svgadapter.LoadTheme(themePath)
			if err != nil {
				return err
			}
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		if err := svgadapter.NewRenderer(theme).Render(result, f); err != nil {
			return fmt.Errorf("failed to write SVG: %w", err)
		}

		fmt.Printf("✓ Rendered %d milestone(s) and %d connector(s) to %s\n",
			len(result.Milestones), len(result.Connectors), out)
		return nil
	},
}

var timelineScaleCmd = &cobra.Command{
	Use:   "scale [hour|day|week|month]",
	Short: "Set the timeline scale",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		scale, err := timescale.ParseScale(args[0])
		if err != nil {
			return err
		}

		if err := wire.TimelineService().SetScale(ctx, string(scale)); err != nil {
			return err
		}

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg, err := config.LoadConfig(cwd)
		if err != nil {
			cfg = config.DefaultConfig()
		}
		cfg.TimeScale = string(scale)
		if err := config.SaveConfig(cwd, cfg); err != nil {
			return err
		}

		fmt.Printf("✓ Time scale set to %s (%.0f px per unit)\n", scale, scale.DefaultPixelsPerUnit())
		return nil
	},
}

var timelineToggleCmd = &cobra.Command{
	Use:   "toggle [id]",
	Short: "Expand or collapse a milestone's children",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		project, _ := cmd.Flags().GetString("project")

		if _, err := loadProject(ctx, project); err != nil {
			return err
		}
		if err := wire.MilestoneService().ToggleExpanded(ctx, args[0]); err != nil {
			return err
		}
		m, err := wire.MilestoneService().GetMilestone(ctx, args[0])
		if err != nil {
			return err
		}
		if m.IsExpanded {
			fmt.Printf("✓ Expanded %s\n", args[0])
		} else {
			fmt.Printf("✓ Collapsed %s\n", args[0])
		}
		return nil
	},
}

// TimelineCmd returns the timeline command group.
func TimelineCmd() *cobra.Command {
	timelineRenderCmd.Flags().String("project", "", "Project ID (overrides context)")
	timelineRenderCmd.Flags().String("out", "timeline.svg", "Output SVG path")
	timelineRenderCmd.Flags().Float64("width", 0, "Viewport width in pixels (0 renders everything)")
	timelineRenderCmd.Flags().Float64("offset", 0, "Horizontal scroll offset in pixels")
	timelineRenderCmd.Flags().String("theme", "", "YAML theme file")

	timelineToggleCmd.Flags().String("project", "", "Project ID (overrides context)")

	timelineCmd.AddCommand(timelineRenderCmd)
	timelineCmd.AddCommand(timelineScaleCmd)
	timelineCmd.AddCommand(timelineToggleCmd)
	return timelineCmd
}
