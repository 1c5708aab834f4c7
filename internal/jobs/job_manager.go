package jobs

import (
	"fmt"
	"log/slog"

	"courier/internal/adapters/out/postgres/geocache"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	geocodeCachePruneJob *GeocodeCachePruneJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(cache *geocache.GormGeocodeCache, logger *slog.Logger) *JobManager {
	return &JobManager{
		geocodeCachePruneJob: NewGeocodeCachePruneJob(cache, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.geocodeCachePruneJob.Start(); err != nil {
		return fmt.Errorf("failed to start geocode cache prune job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.geocodeCachePruneJob.Stop()
}
