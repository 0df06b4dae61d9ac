// Package jobs provides scheduled background tasks for the dispatch system,
// implemented as cron jobs using github.com/robfig/cron/v3.
//
// OrderAssignmentJob runs every second and retries matching for orders that
// are still pending: orders created when every eligible driver was full, or
// before a suitable shift was registered. Jobs are wired and started through
// JobManager:
//
//	jobManager := jobs.NewJobManager(assignPendingOrdersHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
