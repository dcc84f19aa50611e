package followup

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bookingops/models"
	"bookingops/services/booking"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

func createRecord(t *testing.T, store *booking.Store, urgency models.Urgency) models.BookingRecord {
	t.Helper()
	p := models.BookingPayload{
		Contact: models.Contact{FirstName: "Amara", LastName: "Okafor", Email: "amara@example.com"},
		Booking: models.BookingSpec{ServiceCategory: models.CategoryTransport, Urgency: urgency, BudgetLevel: models.BudgetValue},
		Preferences: models.Preferences{
			Notifications: []models.NotificationChannel{models.NotifyEmail, models.NotifySMS},
		},
	}
	rec, err := store.Create(context.Background(), p, models.ReasoningBundle{
		RecommendedActions: []string{"a"},
		FollowUpPlan:       "Send the automated confirmation immediately",
	}, booking.InitialOwner(p))
	require.NoError(t, err)
	return rec
}

func TestDelayFor(t *testing.T) {
	assert.Equal(t, time.Duration(0), DelayFor(models.UrgencyUrgent))
	assert.Equal(t, 15*time.Minute, DelayFor(models.UrgencySoon))
	assert.Equal(t, time.Hour, DelayFor(models.UrgencyFlexible))
}

func TestDispatchEnqueuesFollowUpTask(t *testing.T) {
	store := booking.NewStore()
	rec := createRecord(t, store, models.UrgencyUrgent)
	queue := &fakeQueue{}

	require.NoError(t, NewAsynqDispatcher(queue, nil).Dispatch(context.Background(), rec))
	require.Len(t, queue.tasks, 1)
	assert.Equal(t, TypeFollowUp, queue.tasks[0].Type())

	var p Payload
	require.NoError(t, json.Unmarshal(queue.tasks[0].Payload(), &p))
	assert.Equal(t, rec.ID, p.BookingID)
	assert.Equal(t, rec.Reasoning.FollowUpPlan, p.Plan)
	assert.Equal(t, []models.NotificationChannel{models.NotifyEmail, models.NotifySMS}, p.Channels)
	assert.Equal(t, models.UrgencyUrgent, p.Urgency)
}

func TestDispatchTreatsDuplicateAsQueued(t *testing.T) {
	store := booking.NewStore()
	rec := createRecord(t, store, models.UrgencySoon)

	err := NewAsynqDispatcher(&fakeQueue{err: asynq.ErrTaskIDConflict}, nil).Dispatch(context.Background(), rec)
	assert.NoError(t, err)

	err = NewAsynqDispatcher(&fakeQueue{err: errors.New("dial tcp: refused")}, nil).Dispatch(context.Background(), rec)
	assert.Error(t, err)
}

func TestHandlerAppendsFollowUpEntry(t *testing.T) {
	store := booking.NewStore()
	rec := createRecord(t, store, models.UrgencyFlexible)

	task, _, err := NewFollowUpTask(PayloadFor(rec), DelayFor(models.UrgencyFlexible))
	require.NoError(t, err)
	require.NoError(t, NewHandler(store, nil)(context.Background(), task))

	got, err := store.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	require.Len(t, got.AuditTrail, 2)
	entry := got.AuditTrail[1]
	assert.Equal(t, models.ActionFollowUpDispatched, entry.Action)
	assert.Equal(t, "follow-up-worker", entry.Actor)
	assert.Equal(t, models.AuditRoleAutomation, entry.Role)
	assert.Equal(t, "Follow-up sent via email, sms. Plan: Send the automated confirmation immediately", entry.Details)
}

func TestHandlerSkipsRetryForUnknownBookingAndBadPayload(t *testing.T) {
	handler := NewHandler(booking.NewStore(), nil)

	task, _, err := NewFollowUpTask(Payload{BookingID: "gone"}, 0)
	require.NoError(t, err)
	err = handler(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = handler(context.Background(), asynq.NewTask(TypeFollowUp, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestNoopDispatcher(t *testing.T) {
	assert.NoError(t, NoopDispatcher{}.Dispatch(context.Background(), models.BookingRecord{}))
}
