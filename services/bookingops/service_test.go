package bookingops

import (
	"context"
	"errors"
	"testing"

	"bookingops/models"
	"bookingops/services/booking"
	"bookingops/services/intake"
	"bookingops/services/reasoning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	dispatched []string
	err        error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, rec models.BookingRecord) error {
	d.dispatched = append(d.dispatched, rec.ID)
	return d.err
}

func newTestService(d *recordingDispatcher) *DefaultService {
	engine := reasoning.NewEngine(reasoning.WithStrict(true))
	return NewService(booking.NewStore(), reasoning.NewCachedReasoner(engine, nil, nil), d, nil)
}

func luxuryUrgentRequest() models.IntakeRequest {
	return models.IntakeRequest{
		Contact: models.IntakeContact{FirstName: "Amara", LastName: "Okafor", Email: "amara@example.com"},
		Booking: models.IntakeBooking{
			ServiceCategory:  "accommodation",
			DesiredDateStart: "2026-11-02",
			Timezone:         "Africa/Nairobi",
			BudgetLevel:      "luxury",
			Urgency:          "urgent",
		},
		ChannelMeta: models.IntakeChannelMeta{LeadSource: "direct-site"},
	}
}

func TestSubmitLuxuryUrgentAccommodation(t *testing.T) {
	d := &recordingDispatcher{}
	svc := newTestService(d)

	rec, err := svc.Submit(context.Background(), luxuryUrgentRequest())
	require.NoError(t, err)

	assert.Equal(t, models.OwnerAutomation, rec.RoleOwner)
	assert.Equal(t, models.StatusAcknowledged, rec.Status)
	assert.Equal(t, models.IntentLuxuryLodgingRush, rec.Reasoning.IntentLabel)
	assert.NotEmpty(t, rec.Reasoning.RecommendedActions)

	soon := luxuryUrgentRequest()
	soon.Booking.Urgency = "soon"
	soonRec, err := svc.Submit(context.Background(), soon)
	require.NoError(t, err)
	assert.Greater(t, rec.Reasoning.Confidence, soonRec.Reasoning.Confidence)

	assert.Equal(t, []string{rec.ID, soonRec.ID}, d.dispatched)
	assert.Equal(t, []string{soonRec.ID, rec.ID}, []string{svc.ListBookings(context.Background())[0].ID, svc.ListBookings(context.Background())[1].ID})
}

func TestSubmitRejectsInvalidIntake(t *testing.T) {
	d := &recordingDispatcher{}
	svc := newTestService(d)

	req := luxuryUrgentRequest()
	req.Contact.Email = ""
	_, err := svc.Submit(context.Background(), req)

	var verrs intake.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"contact.email"}, verrs.Fields())
	assert.Empty(t, svc.ListBookings(context.Background()))
	assert.Empty(t, d.dispatched)
}

func TestSubmitKeepsRecordWhenDispatchFails(t *testing.T) {
	svc := newTestService(&recordingDispatcher{err: errors.New("queue down")})

	rec, err := svc.Submit(context.Background(), luxuryUrgentRequest())
	require.NoError(t, err)
	_, err = svc.GetBooking(context.Background(), rec.ID)
	assert.NoError(t, err)
}

func TestReviewByAdmin(t *testing.T) {
	svc := newTestService(&recordingDispatcher{})
	rec, err := svc.Submit(context.Background(), luxuryUrgentRequest())
	require.NoError(t, err)

	status := models.StatusInFollowUp
	note := "  Confirmed suite upgrade  "
	got, err := svc.Review(context.Background(), rec.ID, ReviewRequest{Status: &status, Note: &note}, models.AuditRoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, models.StatusInFollowUp, got.Status)
	assert.Equal(t, models.OwnerAdmin, got.RoleOwner)
	require.Len(t, got.AuditTrail, 3)
	assert.Equal(t, models.ActionStatusChanged, got.AuditTrail[1].Action)
	noteEntry := got.AuditTrail[2]
	assert.Equal(t, models.ActionNoteAppended, noteEntry.Action)
	assert.Equal(t, "admin", noteEntry.Actor)
	assert.Equal(t, models.AuditRoleAdmin, noteEntry.Role)
	assert.Equal(t, "Confirmed suite upgrade", noteEntry.Details)

	feed := svc.RecentAudits(context.Background(), 1)
	require.Len(t, feed, 1)
	assert.Equal(t, noteEntry.ID, feed[0].ID)
	assert.Equal(t, rec.ID, feed[0].BookingID)
}

func TestReviewByOperations(t *testing.T) {
	svc := newTestService(&recordingDispatcher{})
	rec, err := svc.Submit(context.Background(), luxuryUrgentRequest())
	require.NoError(t, err)

	same := models.StatusAcknowledged
	note := "Left a voicemail"
	got, err := svc.Review(context.Background(), rec.ID, ReviewRequest{Status: &same, Note: &note}, models.AuditRoleOperations)
	require.NoError(t, err)

	assert.Equal(t, models.OwnerAutomation, got.RoleOwner)
	require.Len(t, got.AuditTrail, 2)
	assert.Equal(t, "assistant", got.AuditTrail[1].Actor)
	assert.Equal(t, models.AuditRoleOperations, got.AuditTrail[1].Role)

	blank := "   "
	got, err = svc.Review(context.Background(), rec.ID, ReviewRequest{Note: &blank}, models.AuditRoleOperations)
	require.NoError(t, err)
	assert.Len(t, got.AuditTrail, 2)
}

func TestReviewTreatsEmptyStatusAsNoChange(t *testing.T) {
	svc := newTestService(&recordingDispatcher{})
	rec, err := svc.Submit(context.Background(), luxuryUrgentRequest())
	require.NoError(t, err)

	empty := models.BookingStatus("")
	note := "Guest asked for a callback"
	got, err := svc.Review(context.Background(), rec.ID, ReviewRequest{Status: &empty, Note: &note}, models.AuditRoleOperations)
	require.NoError(t, err)

	assert.Equal(t, models.StatusAcknowledged, got.Status)
	require.Len(t, got.AuditTrail, 2)
	assert.Equal(t, models.ActionNoteAppended, got.AuditTrail[1].Action)
}

func TestReviewErrors(t *testing.T) {
	svc := newTestService(&recordingDispatcher{})
	rec, err := svc.Submit(context.Background(), luxuryUrgentRequest())
	require.NoError(t, err)

	bad := models.BookingStatus("archived")
	_, err = svc.Review(context.Background(), rec.ID, ReviewRequest{Status: &bad}, models.AuditRoleAdmin)
	var se *booking.InvalidStatusError
	assert.ErrorAs(t, err, &se)

	_, err = svc.Review(context.Background(), "missing", ReviewRequest{}, models.AuditRoleAdmin)
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestSLA(t *testing.T) {
	svc := newTestService(&recordingDispatcher{})
	human := luxuryUrgentRequest()
	human.Preferences.FollowUpByHuman = true

	_, err := svc.Submit(context.Background(), luxuryUrgentRequest())
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), human)
	require.NoError(t, err)

	sla := svc.SLA(context.Background())
	assert.Equal(t, 2, sla.Total)
	assert.Equal(t, 2, sla.Urgent)
	assert.Equal(t, 50, sla.AutomationShare)
}
