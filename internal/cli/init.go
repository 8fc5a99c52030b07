package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/gantt/internal/config"
	"github.com/example/gantt/internal/ports/secondary"
	"github.com/example/gantt/internal/wire"
)

// InitCmd returns the init command.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [project name]",
		Short: "Initialize a gantt project in the current directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			name := args[0]

			repo := wire.ProjectRepository()
			projectID, err := repo.GetNextID(ctx)
			if err != nil {
				return fmt.Errorf("failed to generate project ID: %w", err)
			}
			if err := repo.Create(ctx, &secondary.ProjectRecord{ID: projectID, Name: name}); err != nil {
				return fmt.Errorf("failed to create project: %w", err)
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg := config.DefaultConfig()
			cfg.ProjectID = projectID
			if err := config.SaveConfig(cwd, cfg); err != nil {
				return err
			}

			fmt.Printf("✓ Initialized project %s: %s\n", projectID, name)
			fmt.Printf("  Config written to .gantt/config.json\n")
			return nil
		},
	}
	return cmd
}
