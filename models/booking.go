package models

import "time"

// BookingStatus is the lifecycle state of a booking record.
type BookingStatus string

const (
	StatusAcknowledged BookingStatus = "acknowledged"
	StatusInFollowUp   BookingStatus = "in_follow_up"
	StatusCompleted    BookingStatus = "completed"
)

// BookingStatuses lists every status in lifecycle order.
var BookingStatuses = []BookingStatus{StatusAcknowledged, StatusInFollowUp, StatusCompleted}

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusAcknowledged, StatusInFollowUp, StatusCompleted:
		return true
	}
	return false
}

// RoleOwner is the party accountable for progressing a booking record.
type RoleOwner string

const (
	OwnerAutomation RoleOwner = "automation"
	OwnerOperations RoleOwner = "operations"
	OwnerAdmin      RoleOwner = "admin"
)

// BookingRecord binds an accepted intake payload to its reasoning bundle and audit trail.
type BookingRecord struct {
	ID         string          `bson:"id" json:"id"`                 // UUID assigned at creation
	CreatedAt  time.Time       `bson:"createdAt" json:"createdAt"`   // immutable
	Status     BookingStatus   `bson:"status" json:"status"`         // acknowledged, in_follow_up, completed
	RoleOwner  RoleOwner       `bson:"roleOwner" json:"roleOwner"`   // automation, operations, admin
	Payload    BookingPayload  `bson:"payload" json:"payload"`       // validated intake
	Reasoning  ReasoningBundle `bson:"reasoning" json:"reasoning"`   // engine output
	AuditTrail []AuditLogEntry `bson:"auditTrail" json:"auditTrail"` // oldest first, append-only
}

// Clone returns a deep copy so callers can never alias store-owned slices.
func (r BookingRecord) Clone() BookingRecord {
	out := r
	out.Payload = r.Payload.Clone()
	out.Reasoning = r.Reasoning.Clone()
	if r.AuditTrail != nil {
		out.AuditTrail = make([]AuditLogEntry, len(r.AuditTrail))
		copy(out.AuditTrail, r.AuditTrail)
	}
	return out
}
