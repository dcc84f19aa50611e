package followup

import (
	"encoding/json"
	"time"

	"bookingops/models"

	"github.com/hibiken/asynq"
)

const TypeFollowUp = "booking:follow_up"

// Payload is the queued follow-up job for one booking record.
type Payload struct {
	BookingID string                       `json:"bookingId"`
	Plan      string                       `json:"plan"`
	Channels  []models.NotificationChannel `json:"channels"`
	Urgency   models.Urgency               `json:"urgency"`
}

var urgencyDelay = map[models.Urgency]time.Duration{
	models.UrgencyUrgent:   0,
	models.UrgencySoon:     15 * time.Minute,
	models.UrgencyFlexible: time.Hour,
}

// DelayFor returns how long a follow-up waits in the queue for the given urgency.
func DelayFor(u models.Urgency) time.Duration {
	if d, ok := urgencyDelay[u]; ok {
		return d
	}
	return time.Hour
}

func PayloadFor(rec models.BookingRecord) Payload {
	return Payload{
		BookingID: rec.ID,
		Plan:      rec.Reasoning.FollowUpPlan,
		Channels:  append([]models.NotificationChannel(nil), rec.Payload.Preferences.Notifications...),
		Urgency:   rec.Payload.Booking.Urgency,
	}
}

func NewFollowUpTask(payload Payload, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeFollowUp, b)
	opts := []asynq.Option{
		asynq.ProcessIn(delay),
		asynq.TaskID(TypeFollowUp + ":" + payload.BookingID),
		asynq.MaxRetry(5),
	}
	return task, opts, nil
}
