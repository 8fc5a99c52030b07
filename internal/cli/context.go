package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/example/gantt/internal/config"
	"github.com/example/gantt/internal/wire"
)

// projectFromContext resolves the working project: explicit flag value wins,
// otherwise the .gantt/config.json in the current directory.
func projectFromContext(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	cfg, err := config.LoadConfig(cwd)
	if err != nil || cfg.ProjectID == "" {
		return "", fmt.Errorf("no project context detected\nHint: Use --project flag or run 'gantt init' first")
	}
	return cfg.ProjectID, nil
}

// loadProject resolves the project and loads its milestones into the store.
func loadProject(ctx context.Context, flagValue string) (string, error) {
	projectID, err := projectFromContext(flagValue)
	if err != nil {
		return "", err
	}
	if err := wire.MilestoneService().LoadProject(ctx, projectID); err != nil {
		return "", err
	}
	return projectID, nil
}
