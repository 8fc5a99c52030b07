// Package wire provides dependency injection for the gantt application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/example/gantt/internal/adapters/sqlite"
	"github.com/example/gantt/internal/app"
	"github.com/example/gantt/internal/config"
	"github.com/example/gantt/internal/core/schedule"
	"github.com/example/gantt/internal/core/timescale"
	"github.com/example/gantt/internal/db"
	"github.com/example/gantt/internal/ports/primary"
	"github.com/example/gantt/internal/ports/secondary"
)

var (
	milestoneService primary.MilestoneService
	timelineService  primary.TimelineService
	projectRepo      secondary.ProjectRepository
	once             sync.Once
)

// MilestoneService returns the singleton MilestoneService instance.
func MilestoneService() primary.MilestoneService {
	once.Do(initServices)
	return milestoneService
}

// TimelineService returns the singleton TimelineService instance.
func TimelineService() primary.TimelineService {
	once.Do(initServices)
	return timelineService
}

// ProjectRepository returns the singleton project repository.
func ProjectRepository() secondary.ProjectRepository {
	once.Do(initServices)
	return projectRepo
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB
	milestoneRepo := sqlite.NewMilestoneRepository(database)
	projectRepo = sqlite.NewProjectRepository(database)
	logWriter := sqlite.NewLogWriter(database)

	// One shared store: both services operate on the same loaded timeline.
	store := schedule.NewStore()

	scale := timescale.ScaleDay
	minDuration := 24 * time.Hour
	if cwd, err := os.Getwd(); err == nil {
		if cfg, err := config.LoadConfig(cwd); err == nil {
			if parsed, err := timescale.ParseScale(cfg.TimeScale); err == nil {
				scale = parsed
			}
			if cfg.MinimumDurationDays > 0 {
				minDuration = time.Duration(cfg.MinimumDurationDays) * 24 * time.Hour
			}
		}
	}

	milestoneService = app.NewMilestoneService(store, milestoneRepo, logWriter)
	timelineService = app.NewTimelineService(store, milestoneRepo, scale, minDuration)
}
