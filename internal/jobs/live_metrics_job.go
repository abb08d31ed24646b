package jobs

import (
	"context"
	"log/slog"

	"production/internal/core/application/usecases/dto"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultLiveMetricsSchedule runs the broadcast every five seconds.
const DefaultLiveMetricsSchedule = "*/5 * * * * *"

// LiveMetricsReader computes provisional metrics of the running orders.
type LiveMetricsReader interface {
	Handle(ctx context.Context, query queries.GetLiveMetricsQuery) ([]dto.LiveMetricsView, error)
}

// LiveMetricsJob publishes the provisional metrics of every Started or Paused
// order on a cron schedule (with seconds).
type LiveMetricsJob struct {
	reader   LiveMetricsReader
	notifier ports.Notifier
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewLiveMetricsJob(reader LiveMetricsReader, notifier ports.Notifier, schedule string, logger *slog.Logger) *LiveMetricsJob {
	if schedule == "" {
		schedule = DefaultLiveMetricsSchedule
	}
	return &LiveMetricsJob{
		reader:   reader,
		notifier: notifier,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "live_metrics_job"),
	}
}

// Start registers the broadcast and starts the scheduler.
func (j *LiveMetricsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Live metrics broadcast failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Live metrics job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running broadcast to finish.
func (j *LiveMetricsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Live metrics job stopped")
}

// RunOnce computes and emits one order:live-metrics event per running order.
// It returns the number of events emitted.
func (j *LiveMetricsJob) RunOnce(ctx context.Context) (int, error) {
	query, err := queries.NewGetLiveMetricsQuery(nil)
	if err != nil {
		return 0, err
	}

	views, err := j.reader.Handle(ctx, query)
	if err != nil {
		return 0, err
	}

	for _, view := range views {
		if view.Snapshot.HasNegativeActiveTime() {
			j.logger.WarnContext(ctx, "Counted pauses exceed elapsed time", "order", view.Code, "active_minutes", view.Snapshot.ActiveMinutes)
		}
		j.notifier.Emit(ports.EventOrderLiveMetrics, view)
	}
	return len(views), nil
}
