// Package di provides dependency injection for background jobs.
package di

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/config"
	"github.com/stockwolf/stockwolf-api/internal/modules/portfolio"
	"github.com/stockwolf/stockwolf-api/internal/scheduler"
)

const (
	walCheckpointSchedule = "0 */15 * * * *"
	revaluationTimeout    = 5 * time.Minute
)

// RegisterJobs creates the scheduler and adds the background jobs.
// The revaluation job exists even when unscheduled so it can be triggered manually.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	container.Scheduler = scheduler.New(log)
	jobs := &JobInstances{}

	jobs.Revaluation = portfolio.NewRevaluationJob(container.PortfolioService, revaluationTimeout)
	jobs.Revaluation.SetLogger(log)
	if cfg.RevaluationSchedule != "" {
		if err := container.Scheduler.AddJob(cfg.RevaluationSchedule, jobs.Revaluation); err != nil {
			return nil, fmt.Errorf("failed to schedule %s: %w", jobs.Revaluation.Name(), err)
		}
	}

	if container.SQLiteDB != nil {
		jobs.CheckWALCheckpoints = scheduler.NewCheckWALCheckpointsJob(container.SQLiteDB)
		jobs.CheckWALCheckpoints.SetLogger(log)
		if err := container.Scheduler.AddJob(walCheckpointSchedule, jobs.CheckWALCheckpoints); err != nil {
			return nil, fmt.Errorf("failed to schedule %s: %w", jobs.CheckWALCheckpoints.Name(), err)
		}
	}

	log.Info().Int("jobs", len(jobs.All())).Msg("Jobs registered")
	return jobs, nil
}
