// Package jobs provides scheduled background tasks for the production line.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// LiveMetricsJob computes the provisional OEE of every Started or Paused order
// and publishes it as an order:live-metrics event. The default schedule is
// "*/5 * * * * *" and can be changed with LIVE_METRICS_SCHEDULE.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewLiveMetricsJob(liveMetricsHandler, notifier, schedule, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed broadcast is logged and retried on the next tick. A job that fails
// to start stops the jobs already running.
package jobs
