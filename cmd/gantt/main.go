package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/gantt/internal/cli"
	"github.com/example/gantt/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "gantt",
		Short:   "gantt - milestone scheduling and timeline visualization",
		Version: version.String(),
		Long: `gantt is a CLI tool for planning project timelines.
It schedules hierarchical milestones with dependency edges, validates edits
against overlap and ordering constraints, and renders the result as SVG.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.MilestoneCmd())
	rootCmd.AddCommand(cli.TimelineCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
