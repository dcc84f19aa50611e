package followup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bookingops/models"
	"bookingops/services/booking"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const workerActor = "follow-up-worker"

// AuditAppender records the outcome of a follow-up on the booking's trail.
type AuditAppender interface {
	AppendAudit(ctx context.Context, id string, entry models.AuditLogEntry) (models.BookingRecord, error)
}

// NewHandler processes booking:follow_up tasks.
func NewHandler(appender AuditAppender, logger *zap.Logger) asynq.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, task *asynq.Task) error {
		var p Payload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid follow-up payload", zap.Error(err))
			return fmt.Errorf("decode follow-up payload: %v: %w", err, asynq.SkipRetry)
		}

		_, err := appender.AppendAudit(ctx, p.BookingID, models.AuditLogEntry{
			Actor:   workerActor,
			Role:    models.AuditRoleAutomation,
			Action:  models.ActionFollowUpDispatched,
			Details: describe(p),
		})
		if errors.Is(err, booking.ErrNotFound) {
			logger.Warn("Follow-up for unknown booking dropped", zap.String("bookingID", p.BookingID))
			return fmt.Errorf("booking %s: %v: %w", p.BookingID, err, asynq.SkipRetry)
		}
		if err != nil {
			logger.Error("Failed to record follow-up", zap.String("bookingID", p.BookingID), zap.Error(err))
			return err
		}

		logger.Info("Follow-up dispatched", zap.String("bookingID", p.BookingID), zap.String("urgency", string(p.Urgency)))
		return nil
	}
}

func describe(p Payload) string {
	channels := "preferred channel"
	if len(p.Channels) > 0 {
		names := make([]string, len(p.Channels))
		for i, c := range p.Channels {
			names[i] = string(c)
		}
		channels = strings.Join(names, ", ")
	}
	return fmt.Sprintf("Follow-up sent via %s. Plan: %s", channels, p.Plan)
}
