package cron

import (
	"context"
	"fmt"
	"time"

	"bookingops/services/booking"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SLASource is the part of the booking service the digest reads.
type SLASource interface {
	SLA(ctx context.Context) booking.SLASummary
}

// DigestJob logs one SLA summary.
func DigestJob(src SLASource, logger *zap.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s := src.SLA(ctx)
		fields := []zap.Field{
			zap.Int("total", s.Total),
			zap.Int("urgent", s.Urgent),
			zap.Int("automationShare", s.AutomationShare),
		}
		if s.LastRecordAt != nil {
			fields = append(fields, zap.Time("lastRecordAt", *s.LastRecordAt))
		}
		logger.Info("SLA digest", fields...)
	}
}

// StartSLADigest schedules the digest on a standard cron expression or descriptor such as
// "@every 15m". Stop the returned scheduler on shutdown.
func StartSLADigest(schedule string, src SLASource, logger *zap.Logger) (*cron.Cron, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := cron.New()
	if _, err := c.AddFunc(schedule, DigestJob(src, logger)); err != nil {
		return nil, fmt.Errorf("schedule SLA digest %q: %w", schedule, err)
	}
	c.Start()
	logger.Info("SLA digest scheduled", zap.String("schedule", schedule))
	return c, nil
}
