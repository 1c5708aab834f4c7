package jobs

import (
	"context"
	"log/slog"
	"time"

	"courier/internal/adapters/out/postgres/geocache"

	"github.com/robfig/cron/v3"
)

// geocodeCacheMaxAge is how long a cached reverse-geocode result stays valid.
// Place names drift slowly, a month is comfortably fresh.
const geocodeCacheMaxAge = 30 * 24 * time.Hour

// GeocodeCachePruneJob periodically removes stale entries from the
// reverse-geocode cache so it does not grow without bound.
type GeocodeCachePruneJob struct {
	cache  *geocache.GormGeocodeCache
	cron   *cron.Cron
	logger *slog.Logger
}

// NewGeocodeCachePruneJob creates the nightly cache maintenance job.
func NewGeocodeCachePruneJob(cache *geocache.GormGeocodeCache, logger *slog.Logger) *GeocodeCachePruneJob {
	return &GeocodeCachePruneJob{
		cache:  cache,
		cron:   cron.New(),
		logger: logger.With("component", "geocode_cache_prune_job"),
	}
}

// Start schedules the prune to run nightly at 03:00.
func (j *GeocodeCachePruneJob) Start() error {
	_, err := j.cron.AddFunc("0 3 * * *", func() {
		ctx := context.Background()

		removed, pruneErr := j.cache.Prune(ctx, geocodeCacheMaxAge)
		if pruneErr != nil {
			j.logger.ErrorContext(ctx, "Geocode cache prune failed", "error", pruneErr)
			return
		}
		j.logger.InfoContext(ctx, "Geocode cache pruned", "removed", removed)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Geocode cache prune job started (running nightly)")
	return nil
}

// Stop stops the prune job.
func (j *GeocodeCachePruneJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Geocode cache prune job stopped")
}
