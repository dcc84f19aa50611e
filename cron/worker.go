package cron

import (
	"time"

	"bookingops/services/followup"
	"bookingops/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const maxStartAttempts = 5

// NewFollowUpMux routes follow-up tasks to the handler that records them on the trail.
func NewFollowUpMux(appender followup.AuditAppender, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(followup.TypeFollowUp, followup.NewHandler(appender, logger))
	return mux
}

// InitFollowUpWorker runs the follow-up worker in background. The returned server is
// shut down by the caller.
func InitFollowUpWorker(appender followup.AuditAppender, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		utils.QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := NewFollowUpMux(appender, logger)

	go func() {
		logger.Info("Starting follow-up worker")
		for attempt := 1; attempt <= maxStartAttempts; attempt++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Follow-up worker failed to start",
				zap.Int("attempt", attempt), zap.Int("maxAttempts", maxStartAttempts), zap.Error(err))
			if attempt == maxStartAttempts {
				logger.Error("Follow-up worker gave up; follow-ups stay queued until restart")
				return
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
	return srv
}
