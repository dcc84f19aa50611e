// File: models/audit.go
package models

import "time"

// AuditRole is the role an audit entry is attributed to.
type AuditRole string

const (
	AuditRoleAdmin      AuditRole = "admin"
	AuditRoleOperations AuditRole = "operations"
	AuditRoleAutomation AuditRole = "automation"
	AuditRoleAssistant  AuditRole = "assistant"
)

func (r AuditRole) Valid() bool {
	switch r {
	case AuditRoleAdmin, AuditRoleOperations, AuditRoleAutomation, AuditRoleAssistant:
		return true
	}
	return false
}

// Audit actions written by the core.
const (
	ActionCreated            = "created"
	ActionStatusChanged      = "status_changed"
	ActionNoteAppended       = "note_appended"
	ActionFollowUpDispatched = "follow_up_dispatched"
)

// AuditLogEntry is one immutable line in a booking record's trail.
type AuditLogEntry struct {
	ID        string    `bson:"id" json:"id"`               // UUID
	Timestamp time.Time `bson:"timestamp" json:"timestamp"` // UTC, millisecond precision
	Actor     string    `bson:"actor" json:"actor"`         // free-text identity
	Role      AuditRole `bson:"role" json:"role"`
	Action    string    `bson:"action" json:"action"` // e.g. created, status_changed, note_appended
	Details   string    `bson:"details" json:"details"`
}
