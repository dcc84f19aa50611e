package booking

import (
	"math"
	"time"

	"bookingops/models"
)

// SLASummary is the console's headline view of the queue.
type SLASummary struct {
	Total           int        `json:"total"`
	Urgent          int        `json:"urgent"`
	AutomationShare int        `json:"automationShare"` // percent of records owned by automation
	LastRecordAt    *time.Time `json:"lastRecordAt"`
}

// Summarize expects records newest first, as returned by Store.List.
func Summarize(records []models.BookingRecord) SLASummary {
	summary := SLASummary{Total: len(records)}
	if len(records) == 0 {
		return summary
	}

	automated := 0
	for _, rec := range records {
		if rec.Payload.Booking.Urgency == models.UrgencyUrgent {
			summary.Urgent++
		}
		if rec.RoleOwner == models.OwnerAutomation {
			automated++
		}
	}
	summary.AutomationShare = int(math.Round(float64(automated) / float64(len(records)) * 100))
	last := records[0].CreatedAt
	summary.LastRecordAt = &last
	return summary
}
