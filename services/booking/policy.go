package booking

import "bookingops/models"

// InitialOwner picks who owns a freshly created record.
func InitialOwner(p models.BookingPayload) models.RoleOwner {
	if p.Preferences.FollowUpByHuman {
		return models.OwnerOperations
	}
	return models.OwnerAutomation
}

// NextOwner is the ownership transition applied on a status change. Admin action
// promotes the record to admin; nothing ever demotes it.
func NextOwner(current models.RoleOwner, acting models.AuditRole) models.RoleOwner {
	if acting == models.AuditRoleAdmin {
		return models.OwnerAdmin
	}
	return current
}

// CanManage reports whether a role may read and mutate records through the console.
func CanManage(role models.AuditRole) bool {
	return role == models.AuditRoleAdmin || role == models.AuditRoleOperations
}

// NoteAuthor derives the actor and role recorded for a console note.
func NoteAuthor(role models.AuditRole) (string, models.AuditRole) {
	if role == models.AuditRoleAdmin {
		return "admin", models.AuditRoleAdmin
	}
	return "assistant", models.AuditRoleOperations
}
