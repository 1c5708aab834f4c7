// Package jobs provides scheduled background tasks for the courier service.
//
// Jobs are cron-based, built on github.com/robfig/cron/v3, and managed
// through JobManager:
//
//	jobManager := jobs.NewJobManager(geocodeCache, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// GeocodeCachePruneJob runs nightly at 03:00 and deletes reverse-geocode
// cache entries that have not been refreshed within the retention window.
package jobs
