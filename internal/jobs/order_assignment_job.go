package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderAssignmentJob manages the scheduled retry of pending orders. Runs
// every second to match orders that found no driver at creation time, e.g.
// because every candidate was full or a shift was added later.
type OrderAssignmentJob struct {
	handler commands.AssignPendingOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderAssignmentJob creates a new job for assigning pending orders.
func NewOrderAssignmentJob(
	handler commands.AssignPendingOrdersCommandHandler,
	logger *slog.Logger,
) *OrderAssignmentJob {
	return &OrderAssignmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_assignment_job"),
	}
}

// Start begins the order assignment job to run every second.
func (j *OrderAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAssignPendingOrdersCommand()

		// Orders that still find no driver stay pending; the handler only
		// returns errors for real infrastructure failures.
		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Order assignment job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order assignment job started (running every second)")
	return nil
}

// Stop stops the order assignment job.
func (j *OrderAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order assignment job stopped")
}
