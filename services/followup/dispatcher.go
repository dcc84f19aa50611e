package followup

import (
	"context"
	"errors"
	"fmt"

	"bookingops/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Dispatcher schedules the follow-up for a freshly created record.
type Dispatcher interface {
	Dispatch(ctx context.Context, rec models.BookingRecord) error
}

// Enqueuer is the part of *asynq.Client the dispatcher needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type AsynqDispatcher struct {
	queue  Enqueuer
	logger *zap.Logger
}

func NewAsynqDispatcher(queue Enqueuer, logger *zap.Logger) *AsynqDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsynqDispatcher{queue: queue, logger: logger}
}

func (d *AsynqDispatcher) Dispatch(ctx context.Context, rec models.BookingRecord) error {
	delay := DelayFor(rec.Payload.Booking.Urgency)
	task, opts, err := NewFollowUpTask(PayloadFor(rec), delay)
	if err != nil {
		return fmt.Errorf("build follow-up task: %w", err)
	}

	info, err := d.queue.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		d.logger.Info("Follow-up already queued", zap.String("bookingID", rec.ID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue follow-up for %s: %w", rec.ID, err)
	}

	d.logger.Info("Follow-up queued",
		zap.String("bookingID", rec.ID),
		zap.String("taskID", info.ID),
		zap.Duration("delay", delay))
	return nil
}

// NoopDispatcher is used when the follow-up queue is disabled.
type NoopDispatcher struct{}

func (NoopDispatcher) Dispatch(context.Context, models.BookingRecord) error { return nil }
